package repository

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/list-manager/internal/domain"
)

type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d targets for %d columns", len(dest), len(r))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r[i]))
	}
	return nil
}

func TestListEntriesQueryJoinsItems(t *testing.T) {
	query, args := listEntriesQuery("l1", domain.Page{Search: "Milk", Limit: 5})

	assert.Contains(t, query, "i.id, i.name, i.quantity_units, i.user_id, i.created_at, i.updated_at")
	assert.Contains(t, query, "FROM list_items li JOIN items i ON i.id = li.item_id")
	assert.Contains(t, query, "WHERE li.list_id=$1 AND LOWER(i.name) LIKE $2 ORDER BY i.name ASC, li.id ASC LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"l1", "%milk%", 5, 0}, args)
}

func TestScanListItemLoadsItem(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	units := "l"

	entry, err := scanListItem(fakeRow{
		"e1", 2, true, "l1", "i1", created, created,
		"i1", "Milk", &units, "u1", created, created,
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", entry.ID)
	assert.Equal(t, 2, entry.Quantity)
	assert.True(t, entry.Completed)
	require.NotNil(t, entry.Item)
	assert.Equal(t, entry.ItemID, entry.Item.ID)
	assert.Equal(t, "Milk", entry.Item.Name)
	assert.Equal(t, "l", *entry.Item.QuantityUnits)
	assert.Equal(t, "u1", entry.Item.UserID)
}

func TestScanListItemWithoutUnits(t *testing.T) {
	now := time.Now()
	entry, err := scanListItem(fakeRow{
		"e1", 0, false, "l1", "i1", now, now,
		"i1", "Bread", nil, "u1", now, now,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Item)
	assert.Nil(t, entry.Item.QuantityUnits)
}

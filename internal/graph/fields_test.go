package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/list-manager/internal/domain"
)

func TestParseUserSelection(t *testing.T) {
	sel, err := ParseUserSelection(" itemCount,,lists , itemCount", domain.Page{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, []Field{UserItemCount, UserLists}, sel.Fields)
	assert.Equal(t, domain.MaxPageLimit, sel.Page.Limit)
	assert.True(t, sel.Has(UserLists))
	assert.False(t, sel.Has(UserItems))

	empty, err := ParseUserSelection("", domain.Page{})
	require.NoError(t, err)
	assert.Empty(t, empty.Fields)
}

func TestParseSelectionRejectsUnknownFields(t *testing.T) {
	_, err := ParseUserSelection("itemCount,password", domain.Page{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "password")

	_, err = ParseListSelection("lists", domain.Page{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/list-manager/internal/domain"
)

// ListItemRepository persists list entries. Ownership is derived from the parent list.
type ListItemRepository interface {
	Create(ctx context.Context, entry *domain.ListItem) error
	Update(ctx context.Context, entry *domain.ListItem) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.ListItem, error)
	ListByList(ctx context.Context, listID string, page domain.Page) ([]domain.ListItem, error)
	CountByList(ctx context.Context, listID string) (int, error)
}

type listItemRepository struct {
	pool *pgxpool.Pool
}

// NewListItemRepository instantiates repository.
func NewListItemRepository(pool *pgxpool.Pool) ListItemRepository {
	return &listItemRepository{pool: pool}
}

const listItemColumns = `li.id, li.quantity, li.completed, li.list_id, li.item_id, li.created_at, li.updated_at,
        i.id, i.name, i.quantity_units, i.user_id, i.created_at, i.updated_at`

func (r *listItemRepository) Create(ctx context.Context, entry *domain.ListItem) error {
	const query = `
        INSERT INTO list_items (quantity, completed, list_id, item_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, entry.Quantity, entry.Completed, entry.ListID, entry.ItemID).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *listItemRepository) Update(ctx context.Context, entry *domain.ListItem) error {
	const query = `
        UPDATE list_items SET quantity=$1, completed=$2, list_id=$3, item_id=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, entry.Quantity, entry.Completed, entry.ListID, entry.ItemID, entry.ID).
		Scan(&entry.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *listItemRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `
        DELETE FROM list_items li USING lists l
        WHERE li.list_id = l.id AND li.id=$1 AND l.user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listItemRepository) GetByID(ctx context.Context, userID, id string) (*domain.ListItem, error) {
	query := `SELECT ` + listItemColumns + `
        FROM list_items li
        JOIN lists l ON l.id = li.list_id
        JOIN items i ON i.id = li.item_id
        WHERE li.id=$1 AND l.user_id=$2`
	entry, err := scanListItem(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, translate(err, domain.ErrNotFound, domain.ErrConflict)
	}
	return entry, nil
}

// ListByList pages the entries of a list with their items; the search term
// matches the item name.
func (r *listItemRepository) ListByList(ctx context.Context, listID string, page domain.Page) ([]domain.ListItem, error) {
	query, args := listEntriesQuery(listID, page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.ListItem{}
	for rows.Next() {
		entry, err := scanListItem(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func listEntriesQuery(listID string, page domain.Page) (string, []any) {
	return newFilter().
		eq("li.list_id", listID).
		search("i.name", page.Search).
		selectPage(`SELECT `+listItemColumns+` FROM list_items li JOIN items i ON i.id = li.item_id`,
			"i.name ASC, li.id ASC", page)
}

func (r *listItemRepository) CountByList(ctx context.Context, listID string) (int, error) {
	query, args := newFilter().eq("list_id", listID).count("list_items")
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanListItem(row pgx.Row) (*domain.ListItem, error) {
	var (
		entry domain.ListItem
		item  domain.Item
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Quantity,
		&entry.Completed,
		&entry.ListID,
		&entry.ItemID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&item.ID,
		&item.Name,
		&item.QuantityUnits,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	entry.Item = &item
	return &entry, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/list-manager/internal/domain"
)

// ItemRepository persists items. Every query is scoped to the owning user.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.Item, error)
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Item, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository instantiates repository.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

const itemColumns = `id, name, quantity_units, user_id, created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (name, quantity_units, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, item.Name, item.QuantityUnits, item.UserID).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET name=$1, quantity_units=$2, updated_at=NOW()
        WHERE id=$3 AND user_id=$4
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, item.Name, item.QuantityUnits, item.ID, item.UserID).
		Scan(&item.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *itemRepository) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, userID, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id=$1 AND user_id=$2`
	item, err := scanItem(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, translate(err, domain.ErrNotFound, domain.ErrConflict)
	}
	return item, nil
}

func (r *itemRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Item, error) {
	query, args := newFilter().
		eq("user_id", userID).
		search("name", page.Search).
		selectPage(`SELECT `+itemColumns+` FROM items`, "name ASC, id ASC", page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *itemRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args := newFilter().eq("user_id", userID).count("items")
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.QuantityUnits,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/list-manager/internal/domain"
)

// ListRepository persists lists. Every query is scoped to the owning user.
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) error
	Update(ctx context.Context, list *domain.List) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.List, error)
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.List, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type listRepository struct {
	pool *pgxpool.Pool
}

// NewListRepository instantiates repository.
func NewListRepository(pool *pgxpool.Pool) ListRepository {
	return &listRepository{pool: pool}
}

const listColumns = `id, name, user_id, created_at, updated_at`

func (r *listRepository) Create(ctx context.Context, list *domain.List) error {
	const query = `
        INSERT INTO lists (name, user_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, list.Name, list.UserID).
		Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *listRepository) Update(ctx context.Context, list *domain.List) error {
	const query = `
        UPDATE lists SET name=$1, updated_at=NOW()
        WHERE id=$2 AND user_id=$3
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, list.Name, list.ID, list.UserID).Scan(&list.UpdatedAt)
	return translate(err, domain.ErrNotFound, domain.ErrConflict)
}

func (r *listRepository) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listRepository) GetByID(ctx context.Context, userID, id string) (*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id=$1 AND user_id=$2`
	list, err := scanList(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, translate(err, domain.ErrNotFound, domain.ErrConflict)
	}
	return list, nil
}

func (r *listRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.List, error) {
	query, args := newFilter().
		eq("user_id", userID).
		search("name", page.Search).
		selectPage(`SELECT `+listColumns+` FROM lists`, "name ASC, id ASC", page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []domain.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *list)
	}
	return lists, rows.Err()
}

func (r *listRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args := newFilter().eq("user_id", userID).count("lists")
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanList(row pgx.Row) (*domain.List, error) {
	var list domain.List
	if err := row.Scan(&list.ID, &list.Name, &list.UserID, &list.CreatedAt, &list.UpdatedAt); err != nil {
		return nil, err
	}
	return &list, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, full_name, email, password_hash, roles, is_active, last_updated_by, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, email, password_hash, roles, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		rolesToStrings(user.Roles),
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return translate(err, domain.ErrUserNotFound, domain.ErrDuplicateEmail)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, email=$2, password_hash=$3, roles=$4, is_active=$5,
            last_updated_by=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		rolesToStrings(user.Roles),
		user.IsActive,
		user.LastUpdatedByID,
		user.ID,
	).Scan(&user.UpdatedAt)
	return translate(err, domain.ErrUserNotFound, domain.ErrDuplicateEmail)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound, domain.ErrDuplicateEmail)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound, domain.ErrDuplicateEmail)
	}
	return user, nil
}

// ListByRoles returns users holding any of roles, or every user when roles is empty.
func (r *userRepository) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	query, args := newFilter().
		overlaps("roles", rolesToStrings(roles)).
		selectAll(`SELECT `+userColumns+` FROM users`, "full_name ASC, id ASC")

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user  domain.User
		roles []string
	)
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&roles,
		&user.IsActive,
		&user.LastUpdatedByID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Roles = lo.Map(roles, func(r string, _ int) domain.Role { return domain.Role(r) })
	return &user, nil
}

func rolesToStrings(roles []domain.Role) []string {
	return lo.Map(roles, func(r domain.Role, _ int) string { return string(r) })
}

package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/list-manager/internal/domain"
)

const uniqueViolation = "23505"

// filter accumulates WHERE clauses and their positional arguments.
type filter struct {
	clauses []string
	args    []any
}

func newFilter() *filter {
	return &filter{}
}

// eq adds "column = $n".
func (f *filter) eq(column string, value any) *filter {
	f.args = append(f.args, value)
	f.clauses = append(f.clauses, fmt.Sprintf("%s=$%d", column, len(f.args)))
	return f
}

// overlaps adds "column && $n" for array columns. An empty value adds nothing.
func (f *filter) overlaps(column string, values []string) *filter {
	if len(values) == 0 {
		return f
	}
	f.args = append(f.args, values)
	f.clauses = append(f.clauses, fmt.Sprintf("%s && $%d", column, len(f.args)))
	return f
}

// search adds a case-insensitive substring match. A blank term adds nothing.
func (f *filter) search(column, term string) *filter {
	term = strings.TrimSpace(term)
	if term == "" {
		return f
	}
	f.args = append(f.args, "%"+strings.ToLower(term)+"%")
	f.clauses = append(f.clauses, fmt.Sprintf("LOWER(%s) LIKE $%d", column, len(f.args)))
	return f
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// selectPage renders a paginated query. Limit and offset are clamped by
// domain.Page.Normalize and bound as arguments.
func (f *filter) selectPage(base, orderBy string, page domain.Page) (string, []any) {
	page = page.Normalize()
	args := append(append([]any(nil), f.args...), page.Limit, page.Offset)
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		base, f.where(), orderBy, len(args)-1, len(args))
	return query, args
}

// selectAll renders an unpaginated query.
func (f *filter) selectAll(base, orderBy string) (string, []any) {
	return fmt.Sprintf("%s%s ORDER BY %s", base, f.where(), orderBy), f.args
}

// count renders a COUNT(*) over base.
func (f *filter) count(from string) (string, []any) {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", from, f.where()), f.args
}

// translate maps driver errors onto domain sentinels.
func translate(err, notFound, conflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", conflict, pgErr.ConstraintName)
	}
	return err
}

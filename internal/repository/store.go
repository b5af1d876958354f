package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticketing/internal/database"
)

// store is embedded by every repository.  Each call borrows one pooled
// connection for a single statement; database/sql returns it on every path.
type store struct {
	db      *sql.DB
	dialect database.Dialect
}

// DB exposes the underlying sql.DB, e.g. for health checks.
func (s store) DB() *sql.DB { return s.db }

func (s store) q(query string) string { return s.dialect.Rebind(query) }

// insert runs an INSERT and returns the generated id.
func (s store) insert(ctx context.Context, query string, args ...any) (uint64, error) {
	if !s.dialect.SupportsLastInsertID() {
		var id uint64
		err := s.db.QueryRowContext(ctx, s.q(query)+" RETURNING id", args...).Scan(&id)
		return id, classify(err)
	}
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/model"
)

// TicketRepo writes and reads purchased seats.
type TicketRepo struct{ store }

func NewTicketRepo(db *sql.DB, d database.Dialect) *TicketRepo {
	return &TicketRepo{store{db: db, dialect: d}}
}

// Create inserts t with a single statement and sets its ID.  There is no
// availability pre-check: UNIQUE(session_id, pos_row, cell) decides, so of
// two concurrent purchases of a seat the first to commit wins and the other
// gets ErrConflict.  A missing session or user yields ErrInvalidReference.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	id, err := r.insert(ctx,
		`INSERT INTO tickets (session_id, pos_row, cell, user_id) VALUES (?, ?, ?, ?)`,
		t.SessionID, t.Row, t.Seat, t.UserID)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// FindBySession returns the sold seats of a session ordered by row, seat.
func (r *TicketRepo) FindBySession(ctx context.Context, sessionID uint64) ([]model.Ticket, error) {
	return r.list(ctx,
		`SELECT id, session_id, pos_row, cell, user_id FROM tickets WHERE session_id = ? ORDER BY pos_row, cell`,
		sessionID)
}

// FindByUser returns the tickets bought by userID, newest first.
func (r *TicketRepo) FindByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return r.list(ctx,
		`SELECT id, session_id, pos_row, cell, user_id FROM tickets WHERE user_id = ? ORDER BY id DESC`,
		userID)
}

func (r *TicketRepo) list(ctx context.Context, query string, args ...any) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Row, &t.Seat, &t.UserID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

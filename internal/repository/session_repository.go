package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/model"
)

// SessionRepo manages persistence for movie sessions.
type SessionRepo struct{ store }

func NewSessionRepo(db *sql.DB, d database.Dialect) *SessionRepo {
	return &SessionRepo{store{db: db, dialect: d}}
}

// FindAll lists every session ordered by id.  Posters are not loaded.
func (r *SessionRepo) FindAll(ctx context.Context) ([]model.MovieSession, error) {
	rows, err := r.db.QueryContext(ctx, r.q(`SELECT id, title, description FROM sessions ORDER BY id`))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MovieSession, 0)
	for rows.Next() {
		var s model.MovieSession
		if err := rows.Scan(&s.ID, &s.Title, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindByID returns the session with its poster, or ErrNotFound.
func (r *SessionRepo) FindByID(ctx context.Context, id uint64) (model.MovieSession, error) {
	var s model.MovieSession
	err := r.db.QueryRowContext(ctx,
		r.q(`SELECT id, title, description, photo FROM sessions WHERE id = ?`), id).
		Scan(&s.ID, &s.Title, &s.Description, &s.Poster)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MovieSession{}, ErrNotFound
	}
	return s, err
}

// Poster returns only the image bytes of a session.
func (r *SessionRepo) Poster(ctx context.Context, id uint64) ([]byte, error) {
	var photo []byte
	err := r.db.QueryRowContext(ctx, r.q(`SELECT photo FROM sessions WHERE id = ?`), id).Scan(&photo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return photo, err
}

// Create inserts s and stores the generated id on it.
func (r *SessionRepo) Create(ctx context.Context, s *model.MovieSession) error {
	id, err := r.insert(ctx,
		`INSERT INTO sessions (title, description, photo) VALUES (?, ?, ?)`,
		s.Title, s.Description, s.Poster)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// Update changes title and description.  The poster is replaced only when
// s.Poster is non-empty.
func (r *SessionRepo) Update(ctx context.Context, s model.MovieSession) error {
	var (
		res sql.Result
		err error
	)
	if len(s.Poster) > 0 {
		res, err = r.db.ExecContext(ctx,
			r.q(`UPDATE sessions SET title = ?, description = ?, photo = ? WHERE id = ?`),
			s.Title, s.Description, s.Poster, s.ID)
	} else {
		res, err = r.db.ExecContext(ctx,
			r.q(`UPDATE sessions SET title = ?, description = ? WHERE id = ?`),
			s.Title, s.Description, s.ID)
	}
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 for unchanged rows, so confirm the row exists
		if _, err := r.Poster(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

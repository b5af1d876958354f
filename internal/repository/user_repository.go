package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/model"
)

// UserRepo persists registered visitors.
type UserRepo struct{ store }

func NewUserRepo(db *sql.DB, d database.Dialect) *UserRepo {
	return &UserRepo{store{db: db, dialect: d}}
}

// Create inserts u and sets its ID.  A second user with the same
// (email, phone) pair yields ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	id, err := r.insert(ctx,
		`INSERT INTO users (username, password, email, phone) VALUES (?, ?, ?, ?)`,
		u.Name, u.Password, u.Email, u.Phone)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// FindByEmail returns every user registered under email.  Uniqueness is on
// (email, phone), so more than one match is possible.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		r.q(`SELECT id, username, password, email, phone FROM users WHERE email = ? ORDER BY id`), email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Password, &u.Email, &u.Phone); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		r.q(`SELECT id, username, password, email, phone FROM users WHERE id = ?`), id).
		Scan(&u.ID, &u.Name, &u.Password, &u.Email, &u.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The store owns both uniqueness invariants: one ticket per
// (session_id, pos_row, cell) and one user per (email, phone).

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		photo LONGBLOB
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		UNIQUE KEY uq_users_email_phone (email, phone)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		session_id BIGINT UNSIGNED NOT NULL,
		pos_row INT NOT NULL,
		cell INT NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		UNIQUE KEY uq_tickets_seat (session_id, pos_row, cell),
		CONSTRAINT fk_tickets_session FOREIGN KEY (session_id) REFERENCES sessions(id),
		CONSTRAINT fk_tickets_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		photo BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		CONSTRAINT uq_users_email_phone UNIQUE (email, phone)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		session_id BIGINT NOT NULL REFERENCES sessions(id),
		pos_row INT NOT NULL,
		cell INT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		CONSTRAINT uq_tickets_seat UNIQUE (session_id, pos_row, cell)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		photo BLOB
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		UNIQUE (email, phone)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		pos_row INTEGER NOT NULL,
		cell INTEGER NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		UNIQUE (session_id, pos_row, cell)
	)`,
}

// EnsureSchema creates the three tables when they do not exist yet.
// It is meant for local runs and tests; production schemas are managed
// outside the application.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case MySQL:
		stmts = mysqlSchema
	case Postgres:
		stmts = postgresSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for dialect %q", d)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

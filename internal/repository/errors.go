// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let services tell a constraint
// conflict apart from a missing row or an unreachable store instead of
// collapsing every failure into "no result".
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness
// constraint, such as a second ticket for the same seat.
var ErrConflict = errors.New("conflict")

// ErrInvalidReference is returned when a write points at a parent row that
// does not exist (foreign key violation).
var ErrInvalidReference = errors.New("invalid reference")

// classify maps driver errors onto the sentinels above.  Errors that are not
// constraint violations are returned unchanged; callers treat them as
// transient store failures.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return errors.Join(ErrConflict, err)
	case isForeignKeyViolation(err):
		return errors.Join(ErrInvalidReference, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1452 || me.Number == 1216
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23503"
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

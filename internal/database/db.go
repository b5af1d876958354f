package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Options describes how to reach the relational store.
type Options struct {
	Driver string // mysql, postgres or sqlite
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string // database name; file path for sqlite
}

// Open connects to the configured store and verifies the connection.
func Open(opts Options) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(dialect.driverName(), dsn(dialect, opts))
	if err != nil {
		return nil, "", err
	}

	// Pool settings
	if dialect == SQLite {
		// one writer at a time; avoids SQLITE_BUSY under concurrent inserts
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return db, dialect, nil
}

func dsn(d Dialect, o Options) string {
	switch d {
	case Postgres:
		u := url.URL{
			Scheme:   "postgres",
			Host:     o.Host + ":" + o.Port,
			Path:     "/" + o.Name,
			RawQuery: "sslmode=disable",
		}
		if o.Pass != "" {
			u.User = url.UserPassword(o.User, o.Pass)
		} else {
			u.User = url.User(o.User)
		}
		return u.String()
	case SQLite:
		return "file:" + o.Name + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	default:
		auth := o.User
		if o.Pass != "" {
			auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, o.Host, o.Port, o.Name)
	}
}

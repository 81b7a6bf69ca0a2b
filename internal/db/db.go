// Package db provides in-memory SQLite database initialization and access.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// memoryDSN names a private in-memory database. Each connection to it would
// get a fresh database, so the pool is pinned to one connection.
const memoryDSN = ":memory:"

// Open creates a private in-memory SQLite database, enables foreign keys,
// and runs migrations. Nothing is written to disk; the data lives until Close.
func Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := configure(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	if err := migrate(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// configure sets SQLite pragmas for foreign keys and an in-memory journal.
func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=MEMORY",
		"PRAGMA foreign_keys=ON",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}

package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// seq preserves insertion order; id is the public comment identifier.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS comments (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT    NOT NULL UNIQUE,
		parent_id  TEXT    REFERENCES comments(id),
		text       TEXT    NOT NULL,
		author     TEXT    NOT NULL,
		created_at TEXT    NOT NULL,
		votes      INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_parent_id ON comments(parent_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	// Database drivers, selected by configuration.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const emailsSchema = `
CREATE TABLE IF NOT EXISTS emails (
	id              TEXT PRIMARY KEY,
	student_name    TEXT NOT NULL DEFAULT '',
	subject         TEXT NOT NULL,
	body            TEXT NOT NULL,
	confidence      DOUBLE PRECISION NOT NULL,
	status          TEXT NOT NULL,
	suggested_reply TEXT NOT NULL,
	article_id      TEXT NOT NULL DEFAULT '',
	received_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_emails_received_at ON emails (received_at);
CREATE INDEX IF NOT EXISTS idx_emails_status ON emails (status);
`

// Open connects to the configured database. Supported drivers are
// "sqlite3" (dsn is a file path or ":memory:") and "postgres".
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == "sqlite3" {
		// A single writer avoids SQLITE_BUSY under concurrent ingest.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, emailsSchema); err != nil {
		return fmt.Errorf("migrate emails schema: %w", err)
	}
	return nil
}

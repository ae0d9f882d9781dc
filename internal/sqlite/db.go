package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// Open opens (creating if needed) one client's outbox store and applies
// migrations. Re-opening an existing store is safe: migrations are
// idempotent, which rerunning the pipeline depends on.
func Open(path string) (*DB, error) {
	if path != ":memory:" && path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to prepare store dir: %w", err)
			}
		}
	}
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the outbox schema. Statements are idempotent so
// the store survives repeated batch runs.
func (db *DB) RunMigrations() error {
	migration := `
-- Outbound messages, one row per contact+template pairing
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    template_id TEXT NOT NULL,
    channel TEXT NOT NULL DEFAULT 'email',
    subject TEXT NOT NULL,
    body TEXT NOT NULL,
    state TEXT NOT NULL CHECK(state IN ('drafted', 'approved', 'sent', 'replied', 'met', 'failed')),
    created_at TIMESTAMP NOT NULL,
    approved_at TIMESTAMP,
    sent_at TIMESTAMP,
    error TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_state ON messages(state);
CREATE INDEX IF NOT EXISTS idx_messages_contact ON messages(contact_id);

-- Engagement activity, references messages without owning them
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    message_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('reply', 'meeting', 'open')),
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (message_id) REFERENCES messages(id)
);
CREATE INDEX IF NOT EXISTS idx_activities_message ON activities(message_id);
CREATE INDEX IF NOT EXISTS idx_activities_kind ON activities(kind);

-- Per-template outcome counters for epsilon-greedy selection
CREATE TABLE IF NOT EXISTS variant_stats (
    variant_set TEXT NOT NULL,
    variant_id TEXT NOT NULL,
    sent INTEGER NOT NULL DEFAULT 0,
    opens INTEGER NOT NULL DEFAULT 0,
    replies INTEGER NOT NULL DEFAULT 0,
    meetings INTEGER NOT NULL DEFAULT 0,
    last_updated TIMESTAMP,
    PRIMARY KEY (variant_set, variant_id)
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database holding the topic catalogue, the last
// progress snapshot and the saved session cookies.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite cache database and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT,
			position INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS progress (
			user_id TEXT PRIMARY KEY,
			xp_points INTEGER DEFAULT 0,
			topics_learned TEXT NOT NULL DEFAULT '[]',
			learning_streak INTEGER DEFAULT 0,
			last_activity TEXT,
			fetched_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS cookies (
			name TEXT NOT NULL,
			domain TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL DEFAULT '/',
			value TEXT NOT NULL,
			expires_unix INTEGER,
			secure INTEGER DEFAULT 0,
			http_only INTEGER DEFAULT 0,
			saved_at INTEGER NOT NULL,
			PRIMARY KEY (name, domain, path)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

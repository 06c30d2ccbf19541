// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

// Logger returns a test logger that only emits warnings and errors.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// schema mirrors the MySQL migrations in SQLite dialect so repository and
// service tests run against an in-process database. Column names and
// constraints match; the repositories only rely on behavior both engines
// share (placeholders, LAST_INSERT_ID, unique and foreign key errors).
const schema = `
CREATE TABLE admins (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE news_and_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    cover_image TEXT,
    date_time DATETIME NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_by INTEGER,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE RESTRICT,
    FOREIGN KEY (created_by) REFERENCES admins (id) ON DELETE SET NULL
);

CREATE TABLE news_and_events_images (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    news_and_events_id INTEGER NOT NULL,
    image_url TEXT NOT NULL,
    image_order INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    FOREIGN KEY (news_and_events_id) REFERENCES news_and_events (id) ON DELETE CASCADE
);
`

// DB opens a temporary SQLite database with the application schema applied.
// The file lives in t.TempDir and is removed with it; Close is registered
// via t.Cleanup.
func DB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api-test.db")
	db, err := sqlx.Connect("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}
	return db
}

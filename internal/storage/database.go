package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// indexed_at stays NULL while a record is pending; it is only set once the
// vector write has been confirmed. Query paths must filter on it.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS images (
			uuid TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			source_url TEXT NOT NULL,
			source_domain TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			dimensions TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			indexed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS image_tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_uuid TEXT NOT NULL,
			tag TEXT NOT NULL,
			confidence REAL NOT NULL,
			FOREIGN KEY (image_uuid) REFERENCES images(uuid) ON DELETE CASCADE,
			UNIQUE (image_uuid, tag)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_image_tags_image_uuid ON image_tags(image_uuid);`,
		`CREATE INDEX IF NOT EXISTS idx_image_tags_tag ON image_tags(tag);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

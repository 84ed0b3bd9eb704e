package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

// InitSchema creates the tables if they do not exist and applies migrations.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS listens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album_art_url TEXT,
			location TEXT NOT NULL,
			play_count INTEGER NOT NULL CHECK (play_count >= 0),
			first_played_at INTEGER NOT NULL,
			last_played_at INTEGER NOT NULL,
			UNIQUE(title, location)
		);

		CREATE INDEX IF NOT EXISTS idx_listens_location ON listens(location);

		CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			first_seen_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS geocode_cache (
			name TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: version 1 databases had no play timestamps
	_, _ = db.Exec(`ALTER TABLE listens ADD COLUMN first_played_at INTEGER NOT NULL DEFAULT 0`)
	_, _ = db.Exec(`ALTER TABLE listens ADD COLUMN last_played_at INTEGER NOT NULL DEFAULT 0`)

	return nil
}

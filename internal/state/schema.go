package state

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS queue_mode (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			repeat_flag INTEGER NOT NULL DEFAULT 0,
			single_flag INTEGER NOT NULL DEFAULT 0,
			consume_flag INTEGER NOT NULL DEFAULT 0,
			random_flag INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_items (
			position INTEGER PRIMARY KEY,
			library_id INTEGER,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			track_number INTEGER NOT NULL DEFAULT 0,
			priority INTEGER NOT NULL DEFAULT 0
		);
	`)
	return err
}

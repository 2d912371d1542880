package sqlite

import "database/sql"

// schemaDDL is applied on open. Statements are idempotent so an existing
// database file is left untouched.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
        user_id       TEXT PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        display_name  TEXT,
        password_hash TEXT NOT NULL,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS lists (
        list_id       TEXT PRIMARY KEY,
        owner_id      TEXT NOT NULL REFERENCES users(user_id),
        name          TEXT NOT NULL,
        is_shared     BOOLEAN NOT NULL DEFAULT FALSE,
        is_public     BOOLEAN NOT NULL DEFAULT FALSE,
        is_favorite   BOOLEAN NOT NULL DEFAULT FALSE,
        is_template   BOOLEAN NOT NULL DEFAULT FALSE,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS items (
        item_id       TEXT PRIMARY KEY,
        list_id       TEXT NOT NULL REFERENCES lists(list_id) ON DELETE CASCADE,
        content       TEXT NOT NULL,
        checked       BOOLEAN NOT NULL DEFAULT FALSE,
        creation_time TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS list_users (
        list_id       TEXT NOT NULL REFERENCES lists(list_id) ON DELETE CASCADE,
        user_id       TEXT NOT NULL REFERENCES users(user_id),
        creation_time TIMESTAMP NOT NULL,
        PRIMARY KEY (list_id, user_id)
    )`,
	`CREATE INDEX IF NOT EXISTS idx_lists_owner ON lists(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_list ON items(list_id, creation_time)`,
}

func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

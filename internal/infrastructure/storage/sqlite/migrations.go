package sqlite

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	external_id INTEGER NOT NULL UNIQUE,
	title TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	ready_in_minutes INTEGER NOT NULL DEFAULT 30,
	servings INTEGER NOT NULL DEFAULT 4,
	source_url TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	instructions TEXT NOT NULL DEFAULT '',
	ingredients TEXT NOT NULL DEFAULT '[]',
	nutrition TEXT NOT NULL DEFAULT '{}',
	spiciness INTEGER NOT NULL DEFAULT 0,
	allergens TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS grocery_lists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS grocery_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	list_id INTEGER NOT NULL REFERENCES grocery_lists(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	amount REAL,
	unit TEXT,
	category TEXT,
	priority TEXT NOT NULL DEFAULT 'medium',
	store_section TEXT,
	is_completed INTEGER NOT NULL DEFAULT 0,
	recipe_id INTEGER,
	added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(list_id, name)
);

CREATE TABLE IF NOT EXISTS pantry_ingredients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_used_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS grocery_templates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS grocery_template_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	template_id INTEGER NOT NULL REFERENCES grocery_templates(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	amount REAL,
	unit TEXT,
	category TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS saved_recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL UNIQUE REFERENCES recipes(id) ON DELETE CASCADE,
	saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tried_recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL UNIQUE REFERENCES recipes(id) ON DELETE CASCADE,
	rating INTEGER,
	notes TEXT,
	tried_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_grocery_items_list ON grocery_items(list_id);
CREATE INDEX IF NOT EXISTS idx_template_items_template ON grocery_template_items(template_id);
`

// runMigrations 建立資料表，重複執行為空操作
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

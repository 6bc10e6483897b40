package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prompt_history (
		id             TEXT PRIMARY KEY,
		category_id    TEXT NOT NULL,
		subcategory_id TEXT NOT NULL,
		content        TEXT NOT NULL,
		answers_json   TEXT NOT NULL DEFAULT '{}',
		word_count     INTEGER NOT NULL DEFAULT 0 CHECK(word_count >= 0),
		char_count     INTEGER NOT NULL DEFAULT 0 CHECK(char_count >= 0),
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_created ON prompt_history(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_history_category ON prompt_history(category_id, subcategory_id)`,

	// v2: track what happened to a prompt after it was generated
	`ALTER TABLE prompt_history ADD COLUMN copied_at TEXT`,
	`ALTER TABLE prompt_history ADD COLUMN saved_path TEXT`,
}

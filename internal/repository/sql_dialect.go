package repository

import (
	"fmt"

	"github.com/guideflow/guideflow/internal/config"
)

// placeholder returns the correct bind variable for the given index based on DB type.
// Postgres uses $1, $2... while MySQL and SQLite use ?
func placeholder(i int) string {
	db := config.GetSystemSettingString(config.DATABASE_TYPE)
	if db == config.DATABASE_TYPE_POSTGRES {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// upsertFlowQuery returns the dialect-specific full-replacement upsert for the
// flows table. Save is a whole-document overwrite, last writer wins.
func upsertFlowQuery() string {
	db := config.GetSystemSettingString(config.DATABASE_TYPE)
	if db == config.DATABASE_TYPE_MYSQL {
		return `
			INSERT INTO flows (id, title, description, category, document, created, updated)
			VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `, ` + placeholder(5) + `, ` + placeholder(6) + `, ` + placeholder(7) + `)
			ON DUPLICATE KEY UPDATE title = VALUES(title),
				description = VALUES(description),
				category = VALUES(category),
				document = VALUES(document),
				updated = VALUES(updated)
		`
	}
	// postgres and sqlite share ON CONFLICT
	return `
			INSERT INTO flows (id, title, description, category, document, created, updated)
			VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `, ` + placeholder(5) + `, ` + placeholder(6) + `, ` + placeholder(7) + `)
			ON CONFLICT (id)
			DO UPDATE SET title = EXCLUDED.title,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				document = EXCLUDED.document,
				updated = EXCLUDED.updated
		`
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS student_availability (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		time TEXT NOT NULL,
		type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS student_class_schedule (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		time TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_student_availability_student_id ON student_availability(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_student_class_schedule_student_id ON student_class_schedule(student_id)`,
}

// EnsureSchema creates the submission tables when missing. Existing tables and rows are
// left untouched, so it is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

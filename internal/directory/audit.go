// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Audit records every field overwrite the pipeline performs in a SQLite
// database, so silent-looking merges stay reviewable after the fact.
// A nil *Audit is valid and records nothing.
type Audit struct {
	db *sql.DB
}

// OpenAudit opens or creates the audit database at path, creating the
// schema if it does not exist.
func OpenAudit(path string) (*Audit, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS field_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at TEXT NOT NULL,
			stage TEXT NOT NULL,
			name TEXT NOT NULL,
			field TEXT NOT NULL,
			old_value TEXT,
			new_value TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_field_changes_name ON field_changes(name)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating audit schema: %w", err)
		}
	}

	return &Audit{db: db}, nil
}

// Close releases the database connection.
func (a *Audit) Close() error {
	if a == nil {
		return nil
	}
	return a.db.Close()
}

// Record inserts one field change.
func (a *Audit) Record(stage, name, field, oldValue, newValue string) error {
	if a == nil {
		return nil
	}
	_, err := a.db.Exec(
		`INSERT INTO field_changes (at, stage, name, field, old_value, new_value)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), stage, name, field, oldValue, newValue,
	)
	if err != nil {
		return fmt.Errorf("recording change for %s: %w", name, err)
	}
	return nil
}

// Change is one recorded field overwrite.
type Change struct {
	At       string
	Stage    string
	Name     string
	Field    string
	OldValue string
	NewValue string
}

// Changes returns all recorded changes for a researcher, oldest first.
func (a *Audit) Changes(name string) ([]Change, error) {
	if a == nil {
		return nil, nil
	}
	rows, err := a.db.Query(
		`SELECT at, stage, name, field, old_value, new_value
		 FROM field_changes WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("querying changes for %s: %w", name, err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var c Change
		if err := rows.Scan(&c.At, &c.Stage, &c.Name, &c.Field, &c.OldValue, &c.NewValue); err != nil {
			return nil, fmt.Errorf("scanning change row: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// Package sqlite implements service.Backend on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"tasklist/internal/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	status      TEXT NOT NULL
);
`

// DB stores tasks in a single table keyed by position.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &DB{db: db}, nil
}

// Load implements service.Backend.
func (d *DB) Load(ctx context.Context) ([]service.Task, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, description, status FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []service.Task
	for rows.Next() {
		var t service.Task
		var status string
		if err := rows.Scan(&t.ID, &t.Description, &status); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Status = service.Status(status)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

// Save implements service.Backend. All rows are replaced in one transaction.
func (d *DB) Save(ctx context.Context, tasks []service.Task) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (id, description, status) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Description, string(t.Status)); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

// Close implements service.Backend.
func (d *DB) Close() error {
	return d.db.Close()
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL UNIQUE,
		focus_minutes INTEGER NOT NULL DEFAULT 25,
		break_minutes INTEGER NOT NULL DEFAULT 5,
		color         TEXT NOT NULL DEFAULT '#8ec07c',
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_records (
		id          TEXT PRIMARY KEY,
		category_id TEXT NOT NULL REFERENCES categories(id),
		phase       TEXT NOT NULL CHECK(phase IN ('focus','break')),
		started_at  TEXT NOT NULL,
		ended_at    TEXT NOT NULL,
		planned_sec INTEGER NOT NULL,
		actual_sec  INTEGER NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 1,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_records_category ON session_records(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_session_records_started ON session_records(started_at)`,
}

// defaultCategories are seeded into an empty database so a fresh install
// can start a session without any setup.
var defaultCategories = []struct {
	name         string
	focusMinutes int
	breakMinutes int
	color        string
}{
	{"Study", 25, 5, "#8ec07c"},
	{"Work", 50, 10, "#83a598"},
	{"Coding", 45, 10, "#d3869b"},
	{"Reading", 30, 5, "#fabd2f"},
}

// Migrate runs all schema migrations and seeds default categories into an
// empty database.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := seedDefaultCategories(database); err != nil {
		return fmt.Errorf("seeding default categories: %w", err)
	}
	return nil
}

func seedDefaultCategories(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range defaultCategories {
		if _, err := database.Exec(
			`INSERT INTO categories (id, name, focus_minutes, break_minutes, color, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), c.name, c.focusMinutes, c.breakMinutes, c.color, now,
		); err != nil {
			return fmt.Errorf("inserting category %q: %w", c.name, err)
		}
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the CREATE TABLE statements for the four tables owned by the
// store: accounts, movies, schedules and tickets. Every statement is
// idempotent so InitSchema is safe to run on each startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
        id            INTEGER PRIMARY KEY AUTOINCREMENT,
        username      TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        role          TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
        created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
	`CREATE TABLE IF NOT EXISTS movies (
        id           INTEGER PRIMARY KEY AUTOINCREMENT,
        title        TEXT NOT NULL,
        description  TEXT NOT NULL,
        duration_min INTEGER NOT NULL CHECK (duration_min > 0),
        poster_path  TEXT NOT NULL,
        trailer_path TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS schedules (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        movie_id    INTEGER NOT NULL REFERENCES movies (id),
        show_date   TEXT NOT NULL,
        show_time   TEXT NOT NULL,
        hall        INTEGER NOT NULL CHECK (hall > 0),
        price_cents INTEGER NOT NULL CHECK (price_cents >= 0)
    )`,
	`CREATE TABLE IF NOT EXISTS tickets (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        account_id  INTEGER NOT NULL REFERENCES accounts (id),
        schedule_id INTEGER NOT NULL REFERENCES schedules (id),
        quantity    INTEGER NOT NULL CHECK (quantity >= 1),
        created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
}

// InitSchema creates any missing tables. It runs inside a single transaction
// so a partially created schema is rolled back when the medium fails.
func InitSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("init schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

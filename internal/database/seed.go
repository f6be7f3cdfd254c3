package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

// Seed loads a small demo data set: one administrator, one regular account,
// five movies and a schedule per movie. It is a no-op when any account
// already exists, so enabling it on every startup is harmless.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	accounts := []struct {
		username, password, role string
	}{
		{"admin", "admin", "ADMIN"},
		{"demo", "demo", "USER"},
	}
	for _, a := range accounts {
		var hash string
		hash, err = utils.HashPassword(a.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (username, password_hash, role) VALUES (?,?,?)`,
			a.username, hash, a.role); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	movies := []struct {
		title, description string
		duration           uint32
	}{
		{"Titanic", "A romance aboard the doomed liner", 180},
		{"The Avengers", "Earth's mightiest heroes assemble", 120},
		{"Interstellar", "A voyage beyond the wormhole", 150},
		{"Fight Club", "An insomniac meets a soap salesman", 110},
		{"Jumanji", "A board game that plays back", 130},
	}
	for i, m := range movies {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO movies (title, description, duration_min, poster_path, trailer_path) VALUES (?,?,?,?,?)`,
			m.title, m.description, m.duration,
			fmt.Sprintf("posters/poster%d.png", i+1),
			fmt.Sprintf("trailers/trailer%d.mp4", i+1)); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	schedules := []struct {
		movieID    uint64
		date, time string
		hall       uint32
		priceCents uint32
	}{
		{1, "2023-05-01", "10:00", 1, 10000},
		{2, "2023-05-02", "11:00", 2, 15000},
		{3, "2023-05-03", "12:00", 3, 20000},
		{4, "2023-05-04", "13:00", 1, 12000},
		{5, "2023-05-05", "14:00", 2, 18000},
	}
	for _, s := range schedules {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO schedules (movie_id, show_date, show_time, hall, price_cents) VALUES (?,?,?,?,?)`,
			s.movieID, s.date, s.time, s.hall, s.priceCents); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

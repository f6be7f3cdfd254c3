// Package repository contains data access logic for showtimes. A Schedule
// pins a movie to a calendar date, a time of day, a hall number and a ticket
// price. Dates and times are stored as plain strings ("2006-01-02" and
// "15:04") because the store never computes with them; it only relays them
// to the presentation layer.
//
// Known limitation: nothing prevents two schedules from occupying the same
// hall at the same date and time. Overlap checking is deliberately absent.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Schedule represents one showtime of a movie.
type Schedule struct {
	ID         uint64 `json:"id"`
	MovieID    uint64 `json:"movie_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Hall       uint32 `json:"hall"`
	PriceCents uint32 `json:"price_cents"`
}

// ErrScheduleNotFound indicates that a schedule was not located in the store.
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepo manages persistence for showtimes.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (s *Schedule) validate() error {
	if s.Date == "" {
		return fmt.Errorf("%w: date must not be empty", ErrValidation)
	}
	if s.Time == "" {
		return fmt.Errorf("%w: time must not be empty", ErrValidation)
	}
	if s.Hall == 0 {
		return fmt.Errorf("%w: hall must be positive", ErrValidation)
	}
	return nil
}

// Create inserts a new schedule and assigns the generated ID back to the
// struct. The referenced movie is verified inside the same transaction as
// the insert; a missing movie yields ErrMovieNotFound.
func (r *ScheduleRepo) Create(ctx context.Context, s *Schedule) (err error) {
	if err = s.validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, s.MovieID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}

	const q = `INSERT INTO schedules (movie_id, show_date, show_time, hall, price_cents) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.MovieID, s.Date, s.Time, s.Hall, s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a schedule by its ID. It returns ErrScheduleNotFound if
// there is no matching row.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*Schedule, error) {
	const q = `SELECT id, movie_id, show_date, show_time, hall, price_cents FROM schedules WHERE id = ?`
	var s Schedule
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.Date, &s.Time, &s.Hall, &s.PriceCents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns all schedules for a given movie ordered by date and
// time ascending. When none exist it returns an empty slice and nil error.
func (r *ScheduleRepo) ListByMovie(ctx context.Context, movieID uint64) ([]Schedule, error) {
	const q = `SELECT id, movie_id, show_date, show_time, hall, price_cents
               FROM schedules
               WHERE movie_id = ?
               ORDER BY show_date ASC, show_time ASC`
	return r.list(ctx, q, movieID)
}

// ListAll returns every schedule in the store ordered by date and time.
func (r *ScheduleRepo) ListAll(ctx context.Context) ([]Schedule, error) {
	const q = `SELECT id, movie_id, show_date, show_time, hall, price_cents
               FROM schedules
               ORDER BY show_date ASC, show_time ASC`
	return r.list(ctx, q)
}

func (r *ScheduleRepo) list(ctx context.Context, q string, args ...any) ([]Schedule, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.MovieID, &s.Date, &s.Time, &s.Hall, &s.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a schedule provided no ticket references it. As with movie
// deletion the checks and the delete share one transaction, and deletion is
// blocked rather than cascaded when dependents exist.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM schedules WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return err
	}

	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE schedule_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrScheduleInUse
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	return err
}

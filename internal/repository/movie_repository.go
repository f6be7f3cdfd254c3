// Package repository contains data access logic for the movie catalog. This
// file defines the Movie model and repository methods over the movies table.
// A Movie may exist with zero schedules; nothing ties it to a showtime until
// an administrator creates one.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Movie represents one catalog entry. PosterPath and TrailerPath hold
// filesystem paths or URIs to externally managed media; the store never
// interprets the referenced files.
type Movie struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
	PosterPath  string `json:"poster_path"`
	TrailerPath string `json:"trailer_path"`
}

// ErrMovieNotFound indicates that a movie was not located in the store.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo manages persistence for catalog entries.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// validate rejects empty required fields and a non-positive duration before
// any row is written.
func (m *Movie) validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	if m.DurationMin == 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	return nil
}

// Create inserts a new movie and assigns the generated ID back to the struct.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	if err := m.validate(); err != nil {
		return err
	}
	const q = `INSERT INTO movies (title, description, duration_min, poster_path, trailer_path) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMin, m.PosterPath, m.TrailerPath)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its ID. It returns ErrMovieNotFound if there
// is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	const q = `SELECT id, title, description, duration_min, poster_path, trailer_path FROM movies WHERE id = ?`
	var m Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description, &m.DurationMin, &m.PosterPath, &m.TrailerPath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the whole catalog ordered by title. When no movies exist it
// returns an empty slice and nil error.
func (r *MovieRepo) List(ctx context.Context) ([]Movie, error) {
	const q = `SELECT id, title, description, duration_min, poster_path, trailer_path FROM movies ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMin, &m.PosterPath, &m.TrailerPath); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites a movie's attributes. It only performs the UPDATE when at
// least one field differs; otherwise it returns ErrNoChange. When the row
// does not exist it returns ErrMovieNotFound.
func (r *MovieRepo) Update(ctx context.Context, m *Movie) error {
	if err := m.validate(); err != nil {
		return err
	}
	const q = `UPDATE movies
               SET title = ?, description = ?, duration_min = ?, poster_path = ?, trailer_path = ?
               WHERE id = ?
                 AND (title <> ? OR description <> ? OR duration_min <> ? OR poster_path <> ? OR trailer_path <> ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.Description, m.DurationMin, m.PosterPath, m.TrailerPath, // SET
		m.ID,
		m.Title, m.Description, m.DurationMin, m.PosterPath, m.TrailerPath, // only if at least one field differs
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Determine whether it's "not found" or simply "no change".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a movie provided no schedule references it. The existence
// and dependency checks run inside one transaction so the decision and the
// delete cannot interleave with another write. Deleting is blocked rather
// than cascaded: a movie with showtimes must have them removed first.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}

	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE movie_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrMovieInUse
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}

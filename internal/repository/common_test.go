package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

// newTestDB opens a fresh in-memory store with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.InitSchema(context.Background(), db))
	return db
}

// createTestAccount inserts an account and returns its ID. bcrypt.MinCost
// keeps the hashing cheap in tests.
func createTestAccount(t *testing.T, db *sql.DB, username, role string) uint64 {
	t.Helper()
	id, err := repository.NewAccountRepo(db).Create(context.Background(), username, "pw", role, bcrypt.MinCost)
	require.NoError(t, err)
	return id
}

// createTestMovie inserts a movie and returns its ID.
func createTestMovie(t *testing.T, db *sql.DB, title string) uint64 {
	t.Helper()
	m := &repository.Movie{
		Title:       title,
		Description: "a test movie",
		DurationMin: 120,
		PosterPath:  "posters/test.png",
		TrailerPath: "trailers/test.mp4",
	}
	require.NoError(t, repository.NewMovieRepo(db).Create(context.Background(), m))
	return m.ID
}

// createTestSchedule inserts a schedule for movieID and returns its ID.
func createTestSchedule(t *testing.T, db *sql.DB, movieID uint64) uint64 {
	t.Helper()
	s := &repository.Schedule{
		MovieID:    movieID,
		Date:       "2023-05-01",
		Time:       "10:00",
		Hall:       1,
		PriceCents: 10000,
	}
	require.NoError(t, repository.NewScheduleRepo(db).Create(context.Background(), s))
	return s.ID
}

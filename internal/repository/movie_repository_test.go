package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

func TestMovieRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		m := &repository.Movie{
			Title:       "Titanic",
			Description: "A romance aboard the doomed liner",
			DurationMin: 180,
			PosterPath:  "posters/titanic.png",
			TrailerPath: "trailers/titanic.mp4",
		}
		require.NoError(t, repo.Create(ctx, m))
		require.NotZero(t, m.ID)

		got, err := repo.GetByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		_, err := repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrMovieNotFound)
	})

	t.Run("RejectsEmptyTitle", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		err := repo.Create(ctx, &repository.Movie{Title: " ", Description: "d", DurationMin: 90})
		assert.ErrorIs(t, err, repository.ErrValidation)
	})

	t.Run("RejectsZeroDuration", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		err := repo.Create(ctx, &repository.Movie{Title: "x", Description: "d", DurationMin: 0})
		assert.ErrorIs(t, err, repository.ErrValidation)
	})
}

func TestMovieRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		movies, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("OrderedByTitle", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		createTestMovie(t, db, "Interstellar")
		createTestMovie(t, db, "Fight Club")

		movies, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, "Fight Club", movies[0].Title)
		assert.Equal(t, "Interstellar", movies[1].Title)
	})
}

func TestMovieRepo_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ChangesFields", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)
		id := createTestMovie(t, db, "Jumanji")

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		got.Description = "a board game that plays back"
		got.DurationMin = 130
		require.NoError(t, repo.Update(ctx, got))

		again, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("NoChange", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)
		id := createTestMovie(t, db, "Jumanji")

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)

		err = repo.Update(ctx, got)
		assert.ErrorIs(t, err, repository.ErrNoChange)
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		err := repo.Update(ctx, &repository.Movie{ID: 42, Title: "x", Description: "d", DurationMin: 90})
		assert.ErrorIs(t, err, repository.ErrMovieNotFound)
	})
}

// A driver result that cannot report affected rows must surface its error
// instead of being mistaken for "no change".
func TestMovieRepo_UpdateSurfacesResultError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewMovieRepo(db)

	resultErr := errors.New("rows affected unavailable")
	mock.ExpectExec("UPDATE movies").WillReturnResult(sqlmock.NewErrorResult(resultErr))

	err = repo.Update(context.Background(), &repository.Movie{ID: 1, Title: "x", Description: "d", DurationMin: 90})

	assert.ErrorIs(t, err, resultErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)
		id := createTestMovie(t, db, "Jumanji")

		require.NoError(t, repo.Delete(ctx, id))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrMovieNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)

		assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrMovieNotFound)
	})

	t.Run("BlockedBySchedule", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewMovieRepo(db)
		movieID := createTestMovie(t, db, "Jumanji")
		createTestSchedule(t, db, movieID)

		// Restrict, not cascade: the movie and its schedule must survive
		// the rejected delete.
		assert.ErrorIs(t, repo.Delete(ctx, movieID), repository.ErrMovieInUse)

		_, err := repo.GetByID(ctx, movieID)
		assert.NoError(t, err)
		scheds, err := repository.NewScheduleRepo(db).ListByMovie(ctx, movieID)
		require.NoError(t, err)
		assert.Len(t, scheds, 1)
	})
}

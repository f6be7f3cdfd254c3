package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

func TestScheduleRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)
		movieID := createTestMovie(t, db, "Titanic")

		s := &repository.Schedule{
			MovieID:    movieID,
			Date:       "2023-05-01",
			Time:       "10:00",
			Hall:       1,
			PriceCents: 10000,
		}
		require.NoError(t, repo.Create(ctx, s))
		require.NotZero(t, s.ID)

		scheds, err := repo.ListByMovie(ctx, movieID)
		require.NoError(t, err)
		require.Len(t, scheds, 1)
		assert.Equal(t, *s, scheds[0])
	})

	t.Run("MissingMovie", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)

		err := repo.Create(ctx, &repository.Schedule{
			MovieID: 42, Date: "2023-05-01", Time: "10:00", Hall: 1,
		})
		assert.ErrorIs(t, err, repository.ErrMovieNotFound)
	})

	t.Run("RejectsZeroHall", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)
		movieID := createTestMovie(t, db, "Titanic")

		err := repo.Create(ctx, &repository.Schedule{
			MovieID: movieID, Date: "2023-05-01", Time: "10:00", Hall: 0,
		})
		assert.ErrorIs(t, err, repository.ErrValidation)
	})

	t.Run("PermitsHallOverlap", func(t *testing.T) {
		// Two showtimes may occupy the same hall at the same date and
		// time; overlap checking is a documented non-feature.
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)
		movieID := createTestMovie(t, db, "Titanic")

		for i := 0; i < 2; i++ {
			err := repo.Create(ctx, &repository.Schedule{
				MovieID: movieID, Date: "2023-05-01", Time: "10:00", Hall: 1, PriceCents: 100,
			})
			require.NoError(t, err)
		}

		scheds, err := repo.ListByMovie(ctx, movieID)
		require.NoError(t, err)
		assert.Len(t, scheds, 2)
	})
}

func TestScheduleRepo_Lists(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewScheduleRepo(db)

	m1 := createTestMovie(t, db, "Titanic")
	m2 := createTestMovie(t, db, "Jumanji")
	createTestSchedule(t, db, m1)
	createTestSchedule(t, db, m2)

	byMovie, err := repo.ListByMovie(ctx, m1)
	require.NoError(t, err)
	assert.Len(t, byMovie, 1)
	assert.Equal(t, m1, byMovie[0].MovieID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestScheduleRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)
		movieID := createTestMovie(t, db, "Titanic")
		id := createTestSchedule(t, db, movieID)

		require.NoError(t, repo.Delete(ctx, id))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)

		assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrScheduleNotFound)
	})

	t.Run("BlockedByTicket", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewScheduleRepo(db)
		movieID := createTestMovie(t, db, "Titanic")
		scheduleID := createTestSchedule(t, db, movieID)
		accountID := createTestAccount(t, db, "alice", repository.RoleUser)

		ticket := &repository.Ticket{AccountID: accountID, ScheduleID: scheduleID, Quantity: 2}
		require.NoError(t, repository.NewTicketRepo(db).Create(ctx, ticket))

		assert.ErrorIs(t, repo.Delete(ctx, scheduleID), repository.ErrScheduleInUse)

		_, err := repo.GetByID(ctx, scheduleID)
		assert.NoError(t, err)
	})
}

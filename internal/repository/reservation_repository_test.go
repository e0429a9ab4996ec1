package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservation(name string, date time.Time) *model.Reservation {
	return &model.Reservation{
		CustomerName: name,
		Phone:        "+998901234567",
		TableNumber:  3,
		Guests:       4,
		Date:         date,
		Status:       model.ReservationStatusPending,
	}
}

func TestReservationRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	t.Run("assigns increasing ids", func(t *testing.T) {
		first, err := repo.Create(ctx, newReservation("Ali", time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		second, err := repo.Create(ctx, newReservation("Vali", time.Date(2024, 5, 2, 19, 0, 0, 0, time.UTC)))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Greater(t, second, first)
	})

	t.Run("rejects an explicit id already in use", func(t *testing.T) {
		res := newReservation("Sami", time.Date(2024, 5, 3, 19, 0, 0, 0, time.UTC))
		res.ID = 1

		_, err := repo.Create(ctx, res)
		assert.ErrorIs(t, err, ErrDuplicateID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("keeps an explicit free id", func(t *testing.T) {
		res := newReservation("Sami", time.Date(2024, 5, 3, 19, 0, 0, 0, time.UTC))
		res.ID = 50

		id, err := repo.Create(ctx, res)
		require.NoError(t, err)
		assert.Equal(t, int64(50), id)
	})
}

func TestReservationRepository_IDsAreNotReused(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, newReservation("Ali", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id))

	next, err := repo.Create(ctx, newReservation("Vali", time.Now().UTC()))
	require.NoError(t, err)
	assert.Greater(t, next, id)
}

func TestReservationRepository_ListRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	tashkent := time.FixedZone("UZT", 5*60*60)
	date := time.Date(2024, 5, 1, 19, 30, 0, 0, tashkent)
	_, err := repo.Create(ctx, newReservation("Ali", date))
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, "Ali", got.CustomerName)
	assert.Equal(t, 3, got.TableNumber)
	assert.Equal(t, 4, got.Guests)
	assert.Equal(t, model.ReservationStatusPending, got.Status)
	assert.True(t, date.Equal(got.Date))
	assert.Equal(t, time.UTC, got.Date.Location())
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, newReservation("Ali", time.Date(2024, 5, 1, 19, 0, 0, 123456789, time.UTC)))
	require.NoError(t, err)

	t.Run("changes only the status", func(t *testing.T) {
		before, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, before, 1)

		require.NoError(t, repo.UpdateStatus(ctx, id, model.ReservationStatusConfirmed))

		after, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, model.ReservationStatusConfirmed, after[0].Status)

		restored := *after[0]
		restored.Status = before[0].Status
		assert.Equal(t, *before[0], restored)
	})

	t.Run("missing reservation is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.UpdateStatus(ctx, 999, model.ReservationStatusCancelled))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("concurrent updates leave a valid status", func(t *testing.T) {
		statuses := []model.ReservationStatus{
			model.ReservationStatusPending,
			model.ReservationStatusConfirmed,
			model.ReservationStatusCompleted,
			model.ReservationStatusCancelled,
		}

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(s model.ReservationStatus) {
				defer wg.Done()
				assert.NoError(t, repo.UpdateStatus(ctx, id, s))
			}(statuses[i%len(statuses)])
		}
		wg.Wait()

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.True(t, all[0].Status.Valid())
	})
}

func TestReservationRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, newReservation("Ali", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.NoError(t, repo.Delete(ctx, id), "deleting a missing record is tolerated")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

func TestTripRepo_CreateAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		input := tripFixture(owner.ID)

		created := mustTrip(t, r, input)
		got, err := r.Trips.GetByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, input.ID, got.ID)
		assert.Equal(t, owner.ID, got.UserID)
		assert.Equal(t, "Kyoto", got.Destination)
		assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
		assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
		assert.Equal(t, input.ItineraryDays, got.ItineraryDays)
		assert.True(t, got.IsPublic)
		assert.Nil(t, got.LastViewedAt)
		assert.True(t, got.CreatedAt.Equal(base))
	})
}

func TestTripRepo_GetByIDForOwner(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		other := mustUser(t, r, "Bo", "bo@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))

		_, err := r.Trips.GetByIDForOwner(ctx, trip.ID, owner.ID)
		require.NoError(t, err)

		_, err = r.Trips.GetByIDForOwner(ctx, trip.ID, other.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound, "foreign trip must look missing")

		_, err = r.Trips.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTripRepo_ListByOwner_NewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		other := mustUser(t, r, "Bo", "bo@example.com")

		older := tripFixture(owner.ID)
		newer := tripFixture(owner.ID)
		newer.Destination = "Lisbon"
		newer.CreatedAt = base.Add(time.Hour)
		mustTrip(t, r, older)
		mustTrip(t, r, newer)
		mustTrip(t, r, tripFixture(other.ID))

		got, err := r.Trips.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Lisbon", got[0].Destination)
		assert.Equal(t, "Kyoto", got[1].Destination)

		all, err := r.Trips.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestTripRepo_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))
		viewed := base.Add(2 * time.Hour)

		got, err := r.Trips.Update(ctx, trip.ID, owner.ID, func(cur domain.Trip) (domain.Trip, error) {
			cur.Destination = "Osaka"
			cur.IsPublic = false
			cur.LastViewedAt = &viewed
			cur.UpdatedAt = viewed
			return cur, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Osaka", got.Destination)

		reloaded, err := r.Trips.GetByID(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Osaka", reloaded.Destination)
		assert.False(t, reloaded.IsPublic)
		require.NotNil(t, reloaded.LastViewedAt)
		assert.True(t, reloaded.LastViewedAt.Equal(viewed))
	})
}

func TestTripRepo_Update_ForeignOrMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		other := mustUser(t, r, "Bo", "bo@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))

		called := false
		fn := func(cur domain.Trip) (domain.Trip, error) {
			called = true
			return cur, nil
		}

		_, err := r.Trips.Update(ctx, trip.ID, other.ID, fn)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = r.Trips.Update(ctx, uuid.New(), owner.ID, fn)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, called, "updater must not run when nothing matches")
	})
}

func TestTripRepo_Update_UpdaterErrorAborts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repo.Repos) {
		ctx := context.Background()
		owner := mustUser(t, r, "Asha", "asha@example.com")
		trip := mustTrip(t, r, tripFixture(owner.ID))
		boom := errors.New("boom")

		_, err := r.Trips.Update(ctx, trip.ID, owner.ID, func(cur domain.Trip) (domain.Trip, error) {
			cur.Destination = "Nowhere"
			return cur, boom
		})
		require.ErrorIs(t, err, boom)

		reloaded, err := r.Trips.GetByID(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kyoto", reloaded.Destination)
	})
}

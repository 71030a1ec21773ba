package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/testutil"
)

// backends lists every implementation of the repository interfaces. The
// postgres entry skips itself when TEST_DATABASE_URL is unset.
var backends = []struct {
	name string
	open func(t *testing.T) repo.Repos
}{
	{"file", func(t *testing.T) repo.Repos { return repo.NewFile(testutil.NewFileStore(t)) }},
	{"postgres", func(t *testing.T) repo.Repos { return repo.NewPostgres(testutil.NewTx(t)) }},
}

// forEachBackend runs fn once per backend, each with fresh, empty storage.
func forEachBackend(t *testing.T, fn func(t *testing.T, r repo.Repos)) {
	t.Helper()
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

// base is a fixed instant with whole-second precision so timestamps survive
// both JSON and timestamptz round trips unchanged.
var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustUser(t *testing.T, r repo.Repos, name, email string) domain.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    base,
	})
	require.NoError(t, err)
	return u
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		UserID:      owner,
		Destination: "Kyoto",
		StartDate:   date(2025, 4, 1),
		EndDate:     date(2025, 4, 3),
		Budget:      "2000 USD",
		TravelType:  domain.TravelSolo,
		Notes:       "cherry blossoms",
		ItineraryDays: []domain.ItineraryDay{
			{ID: "d1", Title: "Day 1", Activities: []domain.Activity{{ID: "a1", Name: "Fushimi Inari"}}},
			{ID: "d2", Title: "Day 2", Activities: []domain.Activity{}},
		},
		IsPublic:  true,
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func mustTrip(t *testing.T, r repo.Repos, trip domain.Trip) domain.Trip {
	t.Helper()
	got, err := r.Trips.Create(context.Background(), trip)
	require.NoError(t, err)
	return got
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/events"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/service"
	"github.com/yatra-app/yatra/testutil"
)

// world is a full service graph over a fresh file store.
type world struct {
	repos     repo.Repos
	auth      *service.AuthService
	trips     *service.TripService
	social    *service.SocialService
	feed      *service.FeedService
	profiles  *service.ProfileService
	travelers *service.TravelerService
	notes     *service.NotificationService
}

func newWorld(t *testing.T, pub events.Publisher) *world {
	t.Helper()
	r := repo.NewFile(testutil.NewFileStore(t))
	fanout := service.NewFanout(r.Notifications, pub, nil)
	return &world{
		repos:     r,
		auth:      service.NewAuthService(r.Users, bcrypt.MinCost),
		trips:     service.NewTripService(r.Trips),
		social:    service.NewSocialService(r, fanout),
		feed:      service.NewFeedService(r),
		profiles:  service.NewProfileService(r.Users, r.Trips),
		travelers: service.NewTravelerService(r),
		notes:     service.NewNotificationService(r.Notifications, r.Users),
	}
}

func (w *world) signup(t *testing.T, name, email string) domain.SafeUser {
	t.Helper()
	u, err := w.auth.Signup(context.Background(), name, email, "correct horse")
	require.NoError(t, err)
	return u
}

// seedTrip stores a trip directly so tests control CreatedAt and visibility.
func (w *world) seedTrip(t *testing.T, owner uuid.UUID, destination string, createdAt time.Time, public bool) domain.Trip {
	t.Helper()
	trip, err := w.repos.Trips.Create(context.Background(), domain.Trip{
		ID:            uuid.New(),
		UserID:        owner,
		Destination:   destination,
		StartDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Budget:        "1000 USD",
		TravelType:    domain.TravelFriends,
		ItineraryDays: service.BuildItinerary("2025-04-01", "2025-04-03"),
		IsPublic:      public,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	})
	require.NoError(t, err)
	return trip
}

// recordingPublisher captures every published notification.
type recordingPublisher struct {
	published []domain.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.published = append(p.published, n)
	return p.err
}

var _ events.Publisher = (*recordingPublisher)(nil)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

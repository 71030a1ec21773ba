package events_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/events"
)

// Compile-time checks that both publishers satisfy the interface.
var (
	_ events.Publisher = events.Nop{}
	_ events.Publisher = (*events.AMQPPublisher)(nil)
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "social.like", events.RoutingKey(domain.NotificationLike))
	assert.Equal(t, "social.follow", events.RoutingKey(domain.NotificationFollow))
	assert.Equal(t, "social.comment", events.RoutingKey(domain.NotificationComment))
}

func TestNewEvent_JSONShape(t *testing.T) {
	tripID := uuid.New()
	n := domain.Notification{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      domain.NotificationComment,
		ActorID:   uuid.New(),
		TripID:    &tripID,
		CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(events.NewEvent(n))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "comment", got["type"])
	assert.Equal(t, n.UserID.String(), got["recipientId"])
	assert.Equal(t, n.ActorID.String(), got["actorId"])
	assert.Equal(t, tripID.String(), got["tripId"])
	assert.Equal(t, "2025-02-01T09:00:00Z", got["createdAt"])
}

func TestNewEvent_FollowOmitsTrip(t *testing.T) {
	raw, err := json.Marshal(events.NewEvent(domain.Notification{Type: domain.NotificationFollow}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tripId")
}

func TestNop(t *testing.T) {
	assert.NoError(t, events.Nop{}.Publish(context.Background(), domain.Notification{}))
}

// TestAMQPPublisher publishes against a real broker when TEST_AMQP_URL is set.
func TestAMQPPublisher(t *testing.T) {
	url := os.Getenv("TEST_AMQP_URL")
	if url == "" {
		t.Skip("TEST_AMQP_URL not set; skipping integration test")
	}

	p, err := events.NewAMQPPublisher(url, "yatra.test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	err = p.Publish(context.Background(), domain.Notification{
		ID: uuid.New(), UserID: uuid.New(), ActorID: uuid.New(),
		Type: domain.NotificationLike, CreatedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
}

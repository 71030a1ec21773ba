package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/events"
	"github.com/yatra-app/yatra/internal/repo"
)

// Fanout turns social actions into notifications. A notification is stored
// first and then published; a publish failure is logged and never undoes
// the stored row.
type Fanout struct {
	notifications repo.NotificationRepo
	publisher     events.Publisher
	log           *slog.Logger
	now           func() time.Time
}

// NewFanout constructs a Fanout. A nil publisher disables publishing and a
// nil logger means slog.Default().
func NewFanout(notifications repo.NotificationRepo, publisher events.Publisher, log *slog.Logger) *Fanout {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fanout{notifications: notifications, publisher: publisher, log: log, now: time.Now}
}

// Notify records that actorID did something of type typ to recipientID.
// Nothing happens when the actor is the recipient. It reports whether a
// notification was created.
func (f *Fanout) Notify(ctx context.Context, typ domain.NotificationType, recipientID, actorID uuid.UUID, tripID *uuid.UUID) (bool, error) {
	if recipientID == actorID {
		return false, nil
	}

	n, err := f.notifications.Create(ctx, domain.Notification{
		ID:        uuid.New(),
		UserID:    recipientID,
		Type:      typ,
		ActorID:   actorID,
		TripID:    tripID,
		CreatedAt: f.now().UTC(),
		Read:      false,
	})
	if err != nil {
		return false, fmt.Errorf("service.Fanout.Notify: %w", err)
	}

	if err := f.publisher.Publish(ctx, n); err != nil {
		f.log.WarnContext(ctx, "publish notification event",
			"notification_id", n.ID,
			"type", string(n.Type),
			"error", err,
		)
	}
	return true, nil
}

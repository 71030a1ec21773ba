package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/social"
)

// NotificationService reads and acknowledges a user's notifications.
type NotificationService struct {
	notifications repo.NotificationRepo
	users         repo.UserRepo
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(notifications repo.NotificationRepo, users repo.UserRepo) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

// List returns userID's notifications newest first with their actors
// resolved, plus how many are unread.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]domain.NotificationView, int, error) {
	notifications, err := s.notifications.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("service.NotificationService.List: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.NotificationService.List: %w", err)
	}
	names := social.NewNames(users)

	views := make([]domain.NotificationView, len(notifications))
	unread := 0
	for i, n := range notifications {
		views[i] = domain.NotificationView{Notification: n, Actor: names.Ref(n.ActorID)}
		if !n.Read {
			unread++
		}
	}
	return views, unread, nil
}

// MarkAllRead marks every notification of userID as read and returns how
// many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("service.NotificationService.MarkAllRead: %w", err)
	}
	return n, nil
}

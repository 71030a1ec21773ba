package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileNotificationRepo struct {
	s *store.Store
}

// NewFileNotificationRepo constructs a NotificationRepo backed by the
// notifications collection.
func NewFileNotificationRepo(s *store.Store) NotificationRepo {
	return &fileNotificationRepo{s: s}
}

func (r *fileNotificationRepo) Create(_ context.Context, n domain.Notification) (domain.Notification, error) {
	err := store.Update(r.s, store.Notifications, store.Empty[domain.Notification](), func(env *store.Envelope[domain.Notification]) (bool, error) {
		env.Items = append(env.Items, n)
		return true, nil
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("repo.fileNotificationRepo.Create: %w", err)
	}
	return n, nil
}

func (r *fileNotificationRepo) List(_ context.Context) ([]domain.Notification, error) {
	env, err := store.Read(r.s, store.Notifications, store.Empty[domain.Notification]())
	if err != nil {
		return nil, fmt.Errorf("repo.fileNotificationRepo.List: %w", err)
	}
	return env.Items, nil
}

func (r *fileNotificationRepo) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := []domain.Notification{}
	for _, n := range all {
		if n.UserID == userID {
			mine = append(mine, n)
		}
	}
	slices.SortStableFunc(mine, func(a, b domain.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return mine, nil
}

func (r *fileNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	all, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range all {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *fileNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	updated := 0
	err := store.Update(r.s, store.Notifications, store.Empty[domain.Notification](), func(env *store.Envelope[domain.Notification]) (bool, error) {
		for i := range env.Items {
			if env.Items[i].UserID == userID && !env.Items[i].Read {
				env.Items[i].Read = true
				updated++
			}
		}
		return updated > 0, nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.fileNotificationRepo.MarkAllRead: %w", err)
	}
	return updated, nil
}

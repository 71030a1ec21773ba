// Package importer copies every record from one set of repositories into
// another, keeping IDs and timestamps. yatractl uses it to move a JSON data
// directory into Postgres.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/store"
)

// Count is the outcome for one collection.
type Count struct {
	Copied  int
	Skipped int
}

// Report maps each collection to what happened to its records.
type Report map[store.Collection]Count

// Copy reads every collection from src and writes it to dst. Collections are
// copied parents first so foreign keys resolve. A record that already exists
// in dst, or that references a record dst does not have, is skipped and
// counted; any other error stops the copy.
func Copy(ctx context.Context, src, dst repo.Repos, log *slog.Logger) (Report, error) {
	if log == nil {
		log = slog.Default()
	}
	report := Report{}

	steps := []struct {
		c   store.Collection
		run func() (Count, error)
	}{
		{store.Users, func() (Count, error) {
			return copyAll(ctx, src.Users.List, func(u domain.User) (bool, error) {
				_, err := dst.Users.Create(ctx, u)
				return err == nil, err
			})
		}},
		{store.Trips, func() (Count, error) {
			return copyAll(ctx, src.Trips.ListAll, func(t domain.Trip) (bool, error) {
				_, err := dst.Trips.Create(ctx, t)
				return err == nil, err
			})
		}},
		{store.Follows, func() (Count, error) {
			return copyAll(ctx, src.Follows.List, func(f domain.Follow) (bool, error) {
				return dst.Follows.Add(ctx, f)
			})
		}},
		{store.Likes, func() (Count, error) {
			return copyAll(ctx, src.Likes.List, func(l domain.Like) (bool, error) {
				return dst.Likes.Add(ctx, l)
			})
		}},
		{store.Comments, func() (Count, error) {
			return copyAll(ctx, src.Comments.List, func(c domain.Comment) (bool, error) {
				_, err := dst.Comments.Add(ctx, c)
				return err == nil, err
			})
		}},
		{store.Notifications, func() (Count, error) {
			return copyAll(ctx, src.Notifications.List, func(n domain.Notification) (bool, error) {
				_, err := dst.Notifications.Create(ctx, n)
				return err == nil, err
			})
		}},
		{store.Contacts, func() (Count, error) {
			return copyAll(ctx, src.Contacts.List, func(m domain.ContactMessage) (bool, error) {
				_, err := dst.Contacts.Create(ctx, m)
				return err == nil, err
			})
		}},
	}

	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return report, fmt.Errorf("importer.Copy: %s: %w", step.c, err)
		}
		report[step.c] = n
		log.Info("collection imported", "collection", step.c, "copied", n.Copied, "skipped", n.Skipped)
	}
	return report, nil
}

// copyAll lists every item with list and hands each to put. put reports
// whether the item was written; a conflict or a dangling reference counts
// as skipped.
func copyAll[T any](ctx context.Context, list func(context.Context) ([]T, error), put func(T) (bool, error)) (Count, error) {
	items, err := list(ctx)
	if err != nil {
		return Count{}, err
	}
	var n Count
	for _, item := range items {
		written, err := put(item)
		switch {
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
			n.Skipped++
		case err != nil:
			return n, err
		case written:
			n.Copied++
		default:
			n.Skipped++
		}
	}
	return n, nil
}

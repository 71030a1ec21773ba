package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileFollowRepo struct {
	s *store.Store
}

// NewFileFollowRepo constructs a FollowRepo backed by the follows collection.
func NewFileFollowRepo(s *store.Store) FollowRepo {
	return &fileFollowRepo{s: s}
}

func (r *fileFollowRepo) List(_ context.Context) ([]domain.Follow, error) {
	env, err := store.Read(r.s, store.Follows, store.Empty[domain.Follow]())
	if err != nil {
		return nil, fmt.Errorf("repo.fileFollowRepo.List: %w", err)
	}
	return env.Items, nil
}

func (r *fileFollowRepo) count(ctx context.Context, match func(domain.Follow) bool) (int, error) {
	all, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range all {
		if match(f) {
			n++
		}
	}
	return n, nil
}

func (r *fileFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	n, err := r.count(ctx, func(f domain.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
	return n > 0, err
}

func (r *fileFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.count(ctx, func(f domain.Follow) bool { return f.FollowingID == userID })
}

func (r *fileFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.count(ctx, func(f domain.Follow) bool { return f.FollowerID == userID })
}

func (r *fileFollowRepo) Add(_ context.Context, follow domain.Follow) (bool, error) {
	var created bool
	err := store.Update(r.s, store.Follows, store.Empty[domain.Follow](), func(env *store.Envelope[domain.Follow]) (bool, error) {
		for _, f := range env.Items {
			if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
				return false, nil
			}
		}
		env.Items = append(env.Items, follow)
		created = true
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("repo.fileFollowRepo.Add: %w", err)
	}
	return created, nil
}

func (r *fileFollowRepo) Remove(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var removed bool
	err := store.Update(r.s, store.Follows, store.Empty[domain.Follow](), func(env *store.Envelope[domain.Follow]) (bool, error) {
		before := len(env.Items)
		env.Items = slices.DeleteFunc(env.Items, func(f domain.Follow) bool {
			return f.FollowerID == followerID && f.FollowingID == followingID
		})
		removed = len(env.Items) != before
		return removed, nil
	})
	if err != nil {
		return false, fmt.Errorf("repo.fileFollowRepo.Remove: %w", err)
	}
	return removed, nil
}

func (r *fileFollowRepo) ListByFollower(ctx context.Context, followerID uuid.UUID) ([]domain.Follow, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	follows := []domain.Follow{}
	for _, f := range all {
		if f.FollowerID == followerID {
			follows = append(follows, f)
		}
	}
	return follows, nil
}

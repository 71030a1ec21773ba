package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileLikeRepo struct {
	s *store.Store
}

// NewFileLikeRepo constructs a LikeRepo backed by the likes collection.
func NewFileLikeRepo(s *store.Store) LikeRepo {
	return &fileLikeRepo{s: s}
}

func (r *fileLikeRepo) List(_ context.Context) ([]domain.Like, error) {
	env, err := store.Read(r.s, store.Likes, store.Empty[domain.Like]())
	if err != nil {
		return nil, fmt.Errorf("repo.fileLikeRepo.List: %w", err)
	}
	return env.Items, nil
}

func (r *fileLikeRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Like, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	likes := []domain.Like{}
	for _, l := range all {
		if l.TripID == tripID {
			likes = append(likes, l)
		}
	}
	return likes, nil
}

func (r *fileLikeRepo) Exists(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(all, func(l domain.Like) bool {
		return l.TripID == tripID && l.UserID == userID
	}), nil
}

func (r *fileLikeRepo) Add(_ context.Context, like domain.Like) (bool, error) {
	var created bool
	err := store.Update(r.s, store.Likes, store.Empty[domain.Like](), func(env *store.Envelope[domain.Like]) (bool, error) {
		for _, l := range env.Items {
			if l.TripID == like.TripID && l.UserID == like.UserID {
				return false, nil
			}
		}
		env.Items = append(env.Items, like)
		created = true
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("repo.fileLikeRepo.Add: %w", err)
	}
	return created, nil
}

func (r *fileLikeRepo) Remove(_ context.Context, tripID, userID uuid.UUID) (bool, error) {
	var removed bool
	err := store.Update(r.s, store.Likes, store.Empty[domain.Like](), func(env *store.Envelope[domain.Like]) (bool, error) {
		before := len(env.Items)
		env.Items = slices.DeleteFunc(env.Items, func(l domain.Like) bool {
			return l.TripID == tripID && l.UserID == userID
		})
		removed = len(env.Items) != before
		return removed, nil
	})
	if err != nil {
		return false, fmt.Errorf("repo.fileLikeRepo.Remove: %w", err)
	}
	return removed, nil
}

package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileCommentRepo struct {
	s *store.Store
}

// NewFileCommentRepo constructs a CommentRepo backed by the comments collection.
func NewFileCommentRepo(s *store.Store) CommentRepo {
	return &fileCommentRepo{s: s}
}

func (r *fileCommentRepo) List(_ context.Context) ([]domain.Comment, error) {
	env, err := store.Read(r.s, store.Comments, store.Empty[domain.Comment]())
	if err != nil {
		return nil, fmt.Errorf("repo.fileCommentRepo.List: %w", err)
	}
	return env.Items, nil
}

func (r *fileCommentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	comments := []domain.Comment{}
	for _, c := range all {
		if c.TripID == tripID {
			comments = append(comments, c)
		}
	}
	slices.SortStableFunc(comments, func(a, b domain.Comment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return comments, nil
}

func (r *fileCommentRepo) Add(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	err := store.Update(r.s, store.Comments, store.Empty[domain.Comment](), func(env *store.Envelope[domain.Comment]) (bool, error) {
		env.Items = append(env.Items, comment)
		return true, nil
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.fileCommentRepo.Add: %w", err)
	}
	return comment, nil
}

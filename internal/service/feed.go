package service

import (
	"context"
	"fmt"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/social"
)

// DefaultFeedLimit is the page size of the latest feed when none is given.
const DefaultFeedLimit = 20

// FeedService builds the public trip feed.
type FeedService struct {
	trips    repo.TripRepo
	users    repo.UserRepo
	likes    repo.LikeRepo
	comments repo.CommentRepo
}

// NewFeedService constructs a FeedService over the given repositories.
func NewFeedService(r repo.Repos) *FeedService {
	return &FeedService{trips: r.Trips, users: r.Users, likes: r.Likes, comments: r.Comments}
}

// Feed returns public trips. The latest order is paginated; the top order
// always returns the first p.Limit trips by likes and reports page 1.
// Total is the number of public trips either way.
func (s *FeedService) Feed(ctx context.Context, order social.SortOrder, p domain.PaginationParams) (domain.Page[domain.SocialTrip], error) {
	all, err := s.snapshot(ctx)
	if err != nil {
		return domain.Page[domain.SocialTrip]{}, fmt.Errorf("service.FeedService.Feed: %w", err)
	}

	if order == social.SortTop {
		return domain.Page[domain.SocialTrip]{
			Items: social.Top(all, p.Limit),
			Page:  1,
			Limit: p.Limit,
			Total: len(all),
		}, nil
	}

	sorted := social.Sort(all, social.SortLatest)
	start, end := p.Bounds(len(sorted))
	return domain.Page[domain.SocialTrip]{
		Items: sorted[start:end],
		Page:  p.Page,
		Limit: p.Limit,
		Total: len(sorted),
	}, nil
}

func (s *FeedService) snapshot(ctx context.Context) ([]domain.SocialTrip, error) {
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.List(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	return social.BuildTrips(trips, users, likes, comments), nil
}

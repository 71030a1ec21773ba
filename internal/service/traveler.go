package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/social"
)

// TravelerService assembles the public pages about other travelers: their
// profile, who they follow, and a shared trip. viewerID is uuid.Nil for an
// anonymous visitor throughout.
type TravelerService struct {
	users    repo.UserRepo
	trips    repo.TripRepo
	likes    repo.LikeRepo
	follows  repo.FollowRepo
	comments repo.CommentRepo
}

// NewTravelerService constructs a TravelerService over the given repositories.
func NewTravelerService(r repo.Repos) *TravelerService {
	return &TravelerService{
		users:    r.Users,
		trips:    r.Trips,
		likes:    r.Likes,
		follows:  r.Follows,
		comments: r.Comments,
	}
}

// Profile returns travelerID's public profile with their public trips,
// newest first.
func (s *TravelerService) Profile(ctx context.Context, travelerID, viewerID uuid.UUID) (domain.TravelerProfile, error) {
	traveler, err := s.traveler(ctx, travelerID)
	if err != nil {
		return domain.TravelerProfile{}, err
	}

	trips, err := s.trips.ListByOwner(ctx, travelerID)
	if err != nil {
		return domain.TravelerProfile{}, fmt.Errorf("service.TravelerService.Profile: %w", err)
	}
	followers, err := s.follows.CountFollowers(ctx, travelerID)
	if err != nil {
		return domain.TravelerProfile{}, fmt.Errorf("service.TravelerService.Profile: %w", err)
	}
	following, err := s.follows.CountFollowing(ctx, travelerID)
	if err != nil {
		return domain.TravelerProfile{}, fmt.Errorf("service.TravelerService.Profile: %w", err)
	}
	isFollowing := false
	if viewerID != uuid.Nil {
		isFollowing, err = s.follows.Exists(ctx, viewerID, travelerID)
		if err != nil {
			return domain.TravelerProfile{}, fmt.Errorf("service.TravelerService.Profile: %w", err)
		}
	}

	posts := []domain.TravelerPost{}
	for _, t := range trips {
		if !t.IsPublic {
			continue
		}
		likes, err := s.likes.ListByTrip(ctx, t.ID)
		if err != nil {
			return domain.TravelerProfile{}, fmt.Errorf("service.TravelerService.Profile: %w", err)
		}
		posts = append(posts, domain.TravelerPost{ID: t.ID, Destination: t.Destination, LikesCount: len(likes)})
	}

	return domain.TravelerProfile{
		User:           traveler.Sanitize(),
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		IsOwnProfile:   viewerID != uuid.Nil && viewerID == travelerID,
		Posts:          posts,
	}, nil
}

// Following lists the users travelerID follows, sorted by name. Follows of
// users that no longer exist are skipped.
func (s *TravelerService) Following(ctx context.Context, travelerID, viewerID uuid.UUID) ([]domain.FollowingEntry, error) {
	if _, err := s.traveler(ctx, travelerID); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelerService.Following: %w", err)
	}
	follows, err := s.follows.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelerService.Following: %w", err)
	}

	byID := make(map[uuid.UUID]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	followerCounts := make(map[uuid.UUID]int)
	viewerFollows := make(map[uuid.UUID]bool)
	seen := make(map[uuid.UUID]bool)
	var followed []domain.User
	for _, f := range follows {
		followerCounts[f.FollowingID]++
		if viewerID != uuid.Nil && f.FollowerID == viewerID {
			viewerFollows[f.FollowingID] = true
		}
		if f.FollowerID != travelerID || seen[f.FollowingID] {
			continue
		}
		seen[f.FollowingID] = true
		if u, ok := byID[f.FollowingID]; ok {
			followed = append(followed, u)
		}
	}

	slices.SortStableFunc(followed, func(a, b domain.User) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	entries := make([]domain.FollowingEntry, len(followed))
	for i, u := range followed {
		entries[i] = domain.FollowingEntry{
			User:           u.Sanitize(),
			FollowersCount: followerCounts[u.ID],
			IsFollowing:    viewerFollows[u.ID],
		}
	}
	return entries, nil
}

// PublicTrip returns the shared view of a public trip. A private trip, or
// one whose owner no longer exists, is reported as not found.
func (s *TravelerService) PublicTrip(ctx context.Context, tripID, viewerID uuid.UUID) (domain.PublicTripView, error) {
	notFound := fmt.Errorf("%w: Trip not found.", domain.ErrNotFound)

	trip, err := s.trips.GetByID(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.PublicTripView{}, notFound
	}
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}
	if !trip.IsPublic {
		return domain.PublicTripView{}, notFound
	}

	owner, err := s.users.GetByID(ctx, trip.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.PublicTripView{}, notFound
	}
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}

	likes, err := s.likes.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}
	comments, err := s.comments.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}
	followers, err := s.follows.CountFollowers(ctx, owner.ID)
	if err != nil {
		return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
	}

	view := domain.PublicTripView{
		Trip:                trip,
		Owner:               domain.UserRef{ID: owner.ID, Name: owner.Name},
		LikesCount:          len(likes),
		Comments:            commentViews(comments, social.NewNames(users)),
		OwnerFollowersCount: followers,
	}
	if viewerID == uuid.Nil {
		return view, nil
	}

	for _, l := range likes {
		if l.UserID == viewerID {
			view.LikedByViewer = true
			break
		}
	}
	view.CanFollow = viewerID != owner.ID
	if view.CanFollow {
		view.IsFollowing, err = s.follows.Exists(ctx, viewerID, owner.ID)
		if err != nil {
			return domain.PublicTripView{}, fmt.Errorf("service.TravelerService.PublicTrip: %w", err)
		}
	}
	return view, nil
}

func (s *TravelerService) traveler(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: Traveler not found.", domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.TravelerService: %w", err)
	}
	return u, nil
}

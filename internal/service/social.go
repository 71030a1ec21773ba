package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/social"
)

// SocialService implements likes, follows and comments.
//
// Likes and follows are toggles: the first call creates the row, the next
// removes it. Only the creating edge notifies, so a like/unlike/like cycle
// produces two notifications and no unlike ever produces one.
type SocialService struct {
	trips    repo.TripRepo
	users    repo.UserRepo
	likes    repo.LikeRepo
	follows  repo.FollowRepo
	comments repo.CommentRepo
	fanout   *Fanout
	now      func() time.Time
}

// NewSocialService constructs a SocialService over the given repositories.
func NewSocialService(r repo.Repos, fanout *Fanout) *SocialService {
	return &SocialService{
		trips:    r.Trips,
		users:    r.Users,
		likes:    r.Likes,
		follows:  r.Follows,
		comments: r.Comments,
		fanout:   fanout,
		now:      time.Now,
	}
}

// LikeStatus returns the like count of a trip and whether viewerID liked it.
// Pass uuid.Nil for an anonymous viewer.
func (s *SocialService) LikeStatus(ctx context.Context, tripID, viewerID uuid.UUID) (domain.LikeState, error) {
	likes, err := s.likes.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("service.SocialService.LikeStatus: %w", err)
	}
	state := domain.LikeState{LikesCount: len(likes)}
	if viewerID != uuid.Nil {
		for _, l := range likes {
			if l.UserID == viewerID {
				state.Liked = true
				break
			}
		}
	}
	return state, nil
}

// ToggleLike flips actorID's like on a trip and returns the new state.
func (s *SocialService) ToggleLike(ctx context.Context, actorID, tripID uuid.UUID) (domain.LikeState, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.LikeState{}, fmt.Errorf("%w: Trip not found.", domain.ErrNotFound)
	}
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
	}

	liked, err := s.likes.Exists(ctx, tripID, actorID)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
	}

	if liked {
		if _, err := s.likes.Remove(ctx, tripID, actorID); err != nil {
			return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
		}
	} else {
		created, err := s.likes.Add(ctx, domain.Like{
			ID:        uuid.New(),
			TripID:    tripID,
			UserID:    actorID,
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
		}
		if created {
			if _, err := s.fanout.Notify(ctx, domain.NotificationLike, trip.UserID, actorID, &trip.ID); err != nil {
				return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
			}
		}
	}

	likes, err := s.likes.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("service.SocialService.ToggleLike: %w", err)
	}
	return domain.LikeState{Liked: !liked, LikesCount: len(likes)}, nil
}

// FollowStatus returns targetID's follower count and whether viewerID
// follows them. Pass uuid.Nil for an anonymous viewer.
func (s *SocialService) FollowStatus(ctx context.Context, targetID, viewerID uuid.UUID) (domain.FollowState, error) {
	count, err := s.follows.CountFollowers(ctx, targetID)
	if err != nil {
		return domain.FollowState{}, fmt.Errorf("service.SocialService.FollowStatus: %w", err)
	}
	state := domain.FollowState{FollowerCount: count}
	if viewerID != uuid.Nil {
		state.Following, err = s.follows.Exists(ctx, viewerID, targetID)
		if err != nil {
			return domain.FollowState{}, fmt.Errorf("service.SocialService.FollowStatus: %w", err)
		}
	}
	return state, nil
}

// ToggleFollow flips whether actorID follows targetID and returns the new state.
func (s *SocialService) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (domain.FollowState, error) {
	if actorID == targetID {
		return domain.FollowState{}, fmt.Errorf("%w: You cannot follow yourself.", domain.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FollowState{}, fmt.Errorf("%w: Traveler not found.", domain.ErrNotFound)
		}
		return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
	}

	following, err := s.follows.Exists(ctx, actorID, targetID)
	if err != nil {
		return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
	}

	if following {
		if _, err := s.follows.Remove(ctx, actorID, targetID); err != nil {
			return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
		}
	} else {
		created, err := s.follows.Add(ctx, domain.Follow{
			ID:          uuid.New(),
			FollowerID:  actorID,
			FollowingID: targetID,
			CreatedAt:   s.now().UTC(),
		})
		if err != nil {
			return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
		}
		if created {
			if _, err := s.fanout.Notify(ctx, domain.NotificationFollow, targetID, actorID, nil); err != nil {
				return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
			}
		}
	}

	count, err := s.follows.CountFollowers(ctx, targetID)
	if err != nil {
		return domain.FollowState{}, fmt.Errorf("service.SocialService.ToggleFollow: %w", err)
	}
	return domain.FollowState{Following: !following, FollowerCount: count}, nil
}

// ListComments returns a trip's comments newest first, each with its author.
func (s *SocialService) ListComments(ctx context.Context, tripID uuid.UUID) ([]domain.CommentView, error) {
	comments, err := s.comments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SocialService.ListComments: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SocialService.ListComments: %w", err)
	}
	return commentViews(comments, social.NewNames(users)), nil
}

// AddComment appends a comment to a trip and notifies the trip's owner.
func (s *SocialService) AddComment(ctx context.Context, actorID, tripID uuid.UUID, content string) (domain.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.CommentView{}, fmt.Errorf("%w: tripId and content are required.", domain.ErrValidation)
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return domain.CommentView{}, fmt.Errorf("%w: Comment must be 500 characters or fewer.", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CommentView{}, fmt.Errorf("%w: Trip not found.", domain.ErrNotFound)
	}
	if err != nil {
		return domain.CommentView{}, fmt.Errorf("service.SocialService.AddComment: %w", err)
	}

	comment, err := s.comments.Add(ctx, domain.Comment{
		ID:        uuid.New(),
		TripID:    tripID,
		UserID:    actorID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.CommentView{}, fmt.Errorf("service.SocialService.AddComment: %w", err)
	}

	if _, err := s.fanout.Notify(ctx, domain.NotificationComment, trip.UserID, actorID, &trip.ID); err != nil {
		return domain.CommentView{}, fmt.Errorf("service.SocialService.AddComment: %w", err)
	}

	author := domain.UserRef{ID: actorID, Name: domain.FallbackDisplayName}
	if u, err := s.users.GetByID(ctx, actorID); err == nil {
		author.Name = u.Name
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.CommentView{}, fmt.Errorf("service.SocialService.AddComment: %w", err)
	}
	return domain.CommentView{Comment: comment, User: author}, nil
}

func commentViews(comments []domain.Comment, names social.Names) []domain.CommentView {
	views := make([]domain.CommentView, len(comments))
	for i, c := range comments {
		views[i] = domain.CommentView{Comment: c, User: names.Ref(c.UserID)}
	}
	return views
}

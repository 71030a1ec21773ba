package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

// ProfileService reads and edits the signed-in user's own profile.
type ProfileService struct {
	users repo.UserRepo
	trips repo.TripRepo
}

// NewProfileService constructs a ProfileService.
func NewProfileService(users repo.UserRepo, trips repo.TripRepo) *ProfileService {
	return &ProfileService{users: users, trips: trips}
}

// Get returns the user's profile and how many trips they own.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("%w: User not found.", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	trips, err := s.trips.ListByOwner(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return domain.Profile{SafeUser: user.Sanitize(), TotalTrips: len(trips)}, nil
}

// Update applies a partial profile edit. Nil fields are untouched. The bio
// is trimmed and cut to domain.MaxBioLength characters; an image must be an
// absolute http(s) URL. A blank value clears either field.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, upd domain.ProfileUpdate) (domain.SafeUser, error) {
	var clean domain.ProfileUpdate
	if upd.Bio != nil {
		bio := truncateRunes(strings.TrimSpace(*upd.Bio), domain.MaxBioLength)
		clean.Bio = &bio
	}
	if upd.ProfileImage != nil {
		img := strings.TrimSpace(*upd.ProfileImage)
		if img != "" && !validImageURL(img) {
			return domain.SafeUser{}, fmt.Errorf("%w: Please provide a valid image URL (http or https).", domain.ErrValidation)
		}
		clean.ProfileImage = &img
	}

	user, err := s.users.UpdateProfile(ctx, userID, clean)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.SafeUser{}, fmt.Errorf("%w: User not found.", domain.ErrNotFound)
	}
	if err != nil {
		return domain.SafeUser{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}
	return user.Sanitize(), nil
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

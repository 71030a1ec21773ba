// Package service contains the business logic for the Yatra API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No storage details live here; services depend on repo interfaces, not
// implementations, so the same code runs on Postgres or the file store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

var errTripNotFound = fmt.Errorf("%w: Trip not found.", domain.ErrNotFound)

// TripService implements business logic for a user's own trips.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// Create validates the draft and persists a new public trip owned by ownerID,
// with an auto-generated itinerary covering the date range.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, d domain.TripDraft) (domain.Trip, error) {
	destination := strings.TrimSpace(d.Destination)
	budget := strings.TrimSpace(d.Budget)
	travelType := domain.TravelType(d.TravelType)

	if destination == "" || d.StartDate == "" || d.EndDate == "" || budget == "" || !travelType.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: Please fill all required fields.", domain.ErrValidation)
	}

	start, okStart := ParseDate(d.StartDate)
	end, okEnd := ParseDate(d.EndDate)
	if !okStart || !okEnd || end.Before(start) {
		return domain.Trip{}, fmt.Errorf("%w: Please provide a valid date range.", domain.ErrValidation)
	}

	now := s.now().UTC()
	trip := domain.Trip{
		ID:            uuid.New(),
		UserID:        ownerID,
		Destination:   destination,
		StartDate:     start,
		EndDate:       end,
		Budget:        budget,
		TravelType:    travelType,
		Notes:         strings.TrimSpace(d.Notes),
		ItineraryDays: BuildItinerary(d.StartDate, d.EndDate),
		IsPublic:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// List returns the owner's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Get returns one of the owner's trips and records that it was viewed.
// Returns domain.ErrNotFound for a missing trip or one owned by someone else.
func (s *TripService) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	viewedAt := s.now().UTC()
	trip, err := s.repo.Update(ctx, id, ownerID, func(t domain.Trip) (domain.Trip, error) {
		t.LastViewedAt = &viewedAt
		return t, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, errTripNotFound
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// Update applies a partial edit to one of the owner's trips. Blank
// destination or budget values are ignored. The merged date range must be
// valid; a supplied itinerary replaces the current one and a date change
// without one regenerates it.
func (s *TripService) Update(ctx context.Context, ownerID, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	updatedAt := s.now().UTC()
	trip, err := s.repo.Update(ctx, id, ownerID, func(t domain.Trip) (domain.Trip, error) {
		return applyTripUpdate(t, upd, updatedAt)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, errTripNotFound
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return trip, nil
}

func applyTripUpdate(t domain.Trip, upd domain.TripUpdate, updatedAt time.Time) (domain.Trip, error) {
	if upd.TravelType != nil {
		tt := domain.TravelType(*upd.TravelType)
		if !tt.Valid() {
			return domain.Trip{}, fmt.Errorf("%w: Invalid travel type.", domain.ErrValidation)
		}
		t.TravelType = tt
	}

	if upd.Destination != nil {
		if v := strings.TrimSpace(*upd.Destination); v != "" {
			t.Destination = v
		}
	}
	if upd.Budget != nil {
		if v := strings.TrimSpace(*upd.Budget); v != "" {
			t.Budget = v
		}
	}
	if upd.Notes != nil {
		t.Notes = strings.TrimSpace(*upd.Notes)
	}
	if upd.IsPublic != nil {
		t.IsPublic = *upd.IsPublic
	}

	startStr := t.StartDate.Format(domain.DateLayout)
	endStr := t.EndDate.Format(domain.DateLayout)
	if upd.StartDate != nil {
		startStr = *upd.StartDate
	}
	if upd.EndDate != nil {
		endStr = *upd.EndDate
	}
	start, okStart := ParseDate(startStr)
	end, okEnd := ParseDate(endStr)
	if !okStart || !okEnd || end.Before(start) {
		return domain.Trip{}, fmt.Errorf("%w: Invalid date range.", domain.ErrValidation)
	}
	t.StartDate = start
	t.EndDate = end

	switch {
	case upd.ItineraryDays != nil:
		days := NormalizeItinerary(*upd.ItineraryDays)
		if len(days) == 0 {
			return domain.Trip{}, fmt.Errorf("%w: Invalid itinerary payload.", domain.ErrValidation)
		}
		t.ItineraryDays = days
	case upd.StartDate != nil || upd.EndDate != nil:
		t.ItineraryDays = BuildItinerary(startStr, endStr)
	}

	t.UpdatedAt = updatedAt
	return t, nil
}

// Dashboard summarises the owner's trips: how many exist, how many start
// today or later (UTC), and which was viewed most recently.
func (s *TripService) Dashboard(ctx context.Context, ownerID uuid.UUID) (domain.DashboardStats, error) {
	trips, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.TripService.Dashboard: %w", err)
	}

	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	stats := domain.DashboardStats{TotalTrips: len(trips)}
	for i := range trips {
		t := trips[i]
		if !t.StartDate.Before(today) {
			stats.UpcomingTrips++
		}
		if t.LastViewedAt == nil {
			continue
		}
		if stats.RecentlyViewed == nil || t.LastViewedAt.After(*stats.RecentlyViewed.LastViewedAt) {
			stats.RecentlyViewed = &t
		}
	}
	return stats, nil
}

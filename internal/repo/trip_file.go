package repo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

// tripRecord is the on-disk shape of a trip. Dates are kept as YYYY-MM-DD
// strings and a missing isPublic means public.
type tripRecord struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"userId"`
	Destination   string                `json:"destination"`
	StartDate     string                `json:"startDate"`
	EndDate       string                `json:"endDate"`
	Budget        string                `json:"budget"`
	TravelType    domain.TravelType     `json:"travelType"`
	Notes         string                `json:"notes"`
	ItineraryDays []domain.ItineraryDay `json:"itineraryDays"`
	IsPublic      *bool                 `json:"isPublic,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	LastViewedAt  *time.Time            `json:"lastViewedAt,omitempty"`
}

func toTripRecord(t domain.Trip) tripRecord {
	public := t.IsPublic
	days := t.ItineraryDays
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	return tripRecord{
		ID:            t.ID,
		UserID:        t.UserID,
		Destination:   t.Destination,
		StartDate:     utcDate(t.StartDate).Format(domain.DateLayout),
		EndDate:       utcDate(t.EndDate).Format(domain.DateLayout),
		Budget:        t.Budget,
		TravelType:    t.TravelType,
		Notes:         t.Notes,
		ItineraryDays: days,
		IsPublic:      &public,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastViewedAt:  t.LastViewedAt,
	}
}

func (rec tripRecord) toDomain() (domain.Trip, error) {
	start, err := time.Parse(domain.DateLayout, rec.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: trip %s: startDate: %v", store.ErrCorrupt, rec.ID, err)
	}
	end, err := time.Parse(domain.DateLayout, rec.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: trip %s: endDate: %v", store.ErrCorrupt, rec.ID, err)
	}
	public := true
	if rec.IsPublic != nil {
		public = *rec.IsPublic
	}
	return domain.Trip{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Destination:   rec.Destination,
		StartDate:     start,
		EndDate:       end,
		Budget:        rec.Budget,
		TravelType:    rec.TravelType,
		Notes:         rec.Notes,
		ItineraryDays: rec.ItineraryDays,
		IsPublic:      public,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		LastViewedAt:  rec.LastViewedAt,
	}, nil
}

type fileTripRepo struct {
	s *store.Store
}

// NewFileTripRepo constructs a TripRepo backed by the trips collection.
func NewFileTripRepo(s *store.Store) TripRepo {
	return &fileTripRepo{s: s}
}

func (r *fileTripRepo) read() ([]domain.Trip, error) {
	env, err := store.Read(r.s, store.Trips, store.Empty[tripRecord]())
	if err != nil {
		return nil, err
	}
	trips := make([]domain.Trip, 0, len(env.Items))
	for _, rec := range env.Items {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *fileTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	err := store.Update(r.s, store.Trips, store.Empty[tripRecord](), func(env *store.Envelope[tripRecord]) (bool, error) {
		for _, rec := range env.Items {
			if rec.ID == trip.ID {
				return false, domain.ErrConflict
			}
		}
		env.Items = append(env.Items, toTripRecord(trip))
		return true, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.Create: %w", err)
	}
	return trip, nil
}

func (r *fileTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	trips, err := r.read()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.GetByID: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *fileTripRepo) GetByIDForOwner(_ context.Context, id, ownerID uuid.UUID) (domain.Trip, error) {
	trips, err := r.read()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.GetByIDForOwner: %w", err)
	}
	for _, t := range trips {
		if t.ID == id && t.UserID == ownerID {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.GetByIDForOwner: %w", domain.ErrNotFound)
}

func (r *fileTripRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("repo.fileTripRepo.ListByOwner: %w", err)
	}
	owned := []domain.Trip{}
	for _, t := range trips {
		if t.UserID == ownerID {
			owned = append(owned, t)
		}
	}
	slices.SortStableFunc(owned, func(a, b domain.Trip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return owned, nil
}

func (r *fileTripRepo) ListAll(_ context.Context) ([]domain.Trip, error) {
	trips, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("repo.fileTripRepo.ListAll: %w", err)
	}
	return trips, nil
}

// Update holds the trips collection lock across the whole read-modify-write.
func (r *fileTripRepo) Update(_ context.Context, id, ownerID uuid.UUID, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	var updated domain.Trip
	var fnErr error
	err := store.Update(r.s, store.Trips, store.Empty[tripRecord](), func(env *store.Envelope[tripRecord]) (bool, error) {
		for i, rec := range env.Items {
			if rec.ID != id || rec.UserID != ownerID {
				continue
			}
			current, err := rec.toDomain()
			if err != nil {
				return false, err
			}
			next, err := fn(current)
			if err != nil {
				fnErr = err
				return false, err
			}
			next.ID = current.ID
			next.UserID = current.UserID
			env.Items[i] = toTripRecord(next)
			updated = next
			return true, nil
		}
		return false, domain.ErrNotFound
	})
	if fnErr != nil {
		return domain.Trip{}, fnErr
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.fileTripRepo.Update: %w", err)
	}
	return updated, nil
}

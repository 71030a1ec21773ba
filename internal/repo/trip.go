package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete implementation,
// which allows the service to be unit-tested against either backend.
type TripRepo interface {
	// Create inserts a trip exactly as given (ID and timestamps included).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip regardless of owner.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetByIDForOwner is GetByID scoped to one owner. A trip owned by someone
	// else is reported as domain.ErrNotFound.
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error)

	// ListByOwner returns the owner's trips, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)

	// ListAll returns every trip in creation order.
	ListAll(ctx context.Context) ([]domain.Trip, error)

	// Update loads the trip matching (id, ownerID), passes it to fn and persists
	// the result atomically. Returns domain.ErrNotFound when nothing matches;
	// an error from fn aborts the update and is returned as is.
	Update(ctx context.Context, id, ownerID uuid.UUID, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, destination, start_date, end_date, budget, travel_type,
	notes, itinerary_days, is_public, created_at, updated_at, last_viewed_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, travel_type,
		                   notes, itinerary_days, is_public, created_at, updated_at, last_viewed_at)
		VALUES (@id, @user_id, @destination, @start_date, @end_date, @budget, @travel_type,
		        @notes, @itinerary_days, @is_public, @created_at, @updated_at, @last_viewed_at)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	args["created_at"] = trip.CreatedAt

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByIDForOwner: %w", mapPgError(err))
	}
	return result, nil
}

// ListByOwner returns the owner's trips ordered by created_at descending.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at, id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListAll: %w", err)
	}
	return trips, nil
}

// Update runs the read-modify-write inside a transaction, holding a row lock
// from the SELECT until the UPDATE commits.
func (r *pgTripRepo) Update(ctx context.Context, id, ownerID uuid.UUID, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id FOR UPDATE`
	current, err := scanTrip(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapPgError(err))
	}

	next, err := fn(current)
	if err != nil {
		return domain.Trip{}, err
	}
	next.ID = current.ID
	next.UserID = current.UserID

	const upd = `
		UPDATE trips
		SET destination    = @destination,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    budget         = @budget,
		    travel_type    = @travel_type,
		    notes          = @notes,
		    itinerary_days = @itinerary_days,
		    is_public      = @is_public,
		    updated_at     = @updated_at,
		    last_viewed_at = @last_viewed_at
		WHERE id = @id
		RETURNING ` + tripColumns

	args, err := tripArgs(next)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	result, err := scanTrip(tx.QueryRow(ctx, upd, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapPgError(err))
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: commit: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// tripArgs maps the mutable columns of a trip to named arguments. The
// itinerary is stored as a JSONB document.
func tripArgs(t domain.Trip) (pgx.NamedArgs, error) {
	days := t.ItineraryDays
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	itinerary, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}

	return pgx.NamedArgs{
		"id":             t.ID,
		"user_id":        t.UserID,
		"destination":    t.Destination,
		"start_date":     pgtype.Date{Time: t.StartDate, Valid: true},
		"end_date":       pgtype.Date{Time: t.EndDate, Valid: true},
		"budget":         t.Budget,
		"travel_type":    string(t.TravelType),
		"notes":          t.Notes,
		"itinerary_days": itinerary,
		"is_public":      t.IsPublic,
		"updated_at":     t.UpdatedAt,
		"last_viewed_at": t.LastViewedAt, // nil becomes NULL
	}, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id, userID pgtype.UUID
		start, end pgtype.Date
		travelType string
		itinerary  []byte
		lastViewed pgtype.Timestamptz
	)

	err := s.Scan(&id, &userID, &t.Destination, &start, &end, &t.Budget, &travelType,
		&t.Notes, &itinerary, &t.IsPublic, &t.CreatedAt, &t.UpdatedAt, &lastViewed)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	t.TravelType = domain.TravelType(travelType)
	if err := json.Unmarshal(itinerary, &t.ItineraryDays); err != nil {
		return domain.Trip{}, fmt.Errorf("decode itinerary: %w", err)
	}
	if lastViewed.Valid {
		lv := lastViewed.Time.UTC()
		t.LastViewedAt = &lv
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()

	return t, nil
}

// utcDate truncates t to midnight UTC of its calendar day.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// LikeRepo defines the persistence operations for Likes.
// Add and Remove are idempotent and report whether they changed anything.
type LikeRepo interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Like, error)
	Exists(ctx context.Context, tripID, userID uuid.UUID) (bool, error)

	// Add inserts like unless (TripID, UserID) already exists.
	Add(ctx context.Context, like domain.Like) (created bool, err error)

	// Remove deletes the like for (tripID, userID) if present.
	Remove(ctx context.Context, tripID, userID uuid.UUID) (removed bool, err error)

	List(ctx context.Context) ([]domain.Like, error)
}

type pgLikeRepo struct {
	db db
}

// NewLikeRepo constructs a LikeRepo backed by the provided db connection.
func NewLikeRepo(db db) LikeRepo {
	return &pgLikeRepo{db: db}
}

func (r *pgLikeRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Like, error) {
	const q = `
		SELECT id, trip_id, user_id, created_at
		FROM likes
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	likes, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LikeRepo.ListByTrip: %w", err)
	}
	return likes, nil
}

func (r *pgLikeRepo) Exists(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM likes WHERE trip_id = @trip_id AND user_id = @user_id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.LikeRepo.Exists: %w", err)
	}
	return exists, nil
}

// Add relies on the (trip_id, user_id) unique constraint; a duplicate is a
// no-op rather than an error.
func (r *pgLikeRepo) Add(ctx context.Context, like domain.Like) (bool, error) {
	const q = `
		INSERT INTO likes (id, trip_id, user_id, created_at)
		VALUES (@id, @trip_id, @user_id, @created_at)
		ON CONFLICT DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         like.ID,
		"trip_id":    like.TripID,
		"user_id":    like.UserID,
		"created_at": like.CreatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("repo.LikeRepo.Add: %w", mapPgError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *pgLikeRepo) Remove(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	const q = `DELETE FROM likes WHERE trip_id = @trip_id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("repo.LikeRepo.Remove: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgLikeRepo) List(ctx context.Context) ([]domain.Like, error) {
	const q = `SELECT id, trip_id, user_id, created_at FROM likes ORDER BY created_at, id`

	likes, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.LikeRepo.List: %w", err)
	}
	return likes, nil
}

func (r *pgLikeRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Like, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var (
			l                  domain.Like
			id, tripID, userID pgtype.UUID
		)
		if err := rows.Scan(&id, &tripID, &userID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		l.ID = uuid.UUID(id.Bytes)
		l.TripID = uuid.UUID(tripID.Bytes)
		l.UserID = uuid.UUID(userID.Bytes)
		l.CreatedAt = l.CreatedAt.UTC()
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return likes, nil
}

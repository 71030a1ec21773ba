package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// FollowRepo defines the persistence operations for Follows.
// Add and Remove follow the same idempotent contract as LikeRepo.
type FollowRepo interface {
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)

	// CountFollowers counts users following userID.
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)

	// CountFollowing counts users that userID follows.
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)

	Add(ctx context.Context, follow domain.Follow) (created bool, err error)
	Remove(ctx context.Context, followerID, followingID uuid.UUID) (removed bool, err error)

	// ListByFollower returns the follows created by followerID, oldest first.
	ListByFollower(ctx context.Context, followerID uuid.UUID) ([]domain.Follow, error)

	List(ctx context.Context) ([]domain.Follow, error)
}

type pgFollowRepo struct {
	db db
}

// NewFollowRepo constructs a FollowRepo backed by the provided db connection.
func NewFollowRepo(db db) FollowRepo {
	return &pgFollowRepo{db: db}
}

func (r *pgFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = @follower_id AND following_id = @following_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"follower_id": followerID, "following_id": followingID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.FollowRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM follows WHERE following_id = @user_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.FollowRepo.CountFollowers: %w", err)
	}
	return n, nil
}

func (r *pgFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM follows WHERE follower_id = @user_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.FollowRepo.CountFollowing: %w", err)
	}
	return n, nil
}

func (r *pgFollowRepo) Add(ctx context.Context, follow domain.Follow) (bool, error) {
	const q = `
		INSERT INTO follows (id, follower_id, following_id, created_at)
		VALUES (@id, @follower_id, @following_id, @created_at)
		ON CONFLICT DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":           follow.ID,
		"follower_id":  follow.FollowerID,
		"following_id": follow.FollowingID,
		"created_at":   follow.CreatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("repo.FollowRepo.Add: %w", mapPgError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *pgFollowRepo) Remove(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	const q = `DELETE FROM follows WHERE follower_id = @follower_id AND following_id = @following_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"follower_id": followerID, "following_id": followingID})
	if err != nil {
		return false, fmt.Errorf("repo.FollowRepo.Remove: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgFollowRepo) ListByFollower(ctx context.Context, followerID uuid.UUID) ([]domain.Follow, error) {
	const q = `
		SELECT id, follower_id, following_id, created_at
		FROM follows
		WHERE follower_id = @follower_id
		ORDER BY created_at, id`

	follows, err := r.query(ctx, q, pgx.NamedArgs{"follower_id": followerID})
	if err != nil {
		return nil, fmt.Errorf("repo.FollowRepo.ListByFollower: %w", err)
	}
	return follows, nil
}

func (r *pgFollowRepo) List(ctx context.Context) ([]domain.Follow, error) {
	const q = `SELECT id, follower_id, following_id, created_at FROM follows ORDER BY created_at, id`

	follows, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.FollowRepo.List: %w", err)
	}
	return follows, nil
}

func (r *pgFollowRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Follow, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	follows := []domain.Follow{}
	for rows.Next() {
		var (
			f                          domain.Follow
			id, followerID, followingID pgtype.UUID
		)
		if err := rows.Scan(&id, &followerID, &followingID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		f.ID = uuid.UUID(id.Bytes)
		f.FollowerID = uuid.UUID(followerID.Bytes)
		f.FollowingID = uuid.UUID(followingID.Bytes)
		f.CreatedAt = f.CreatedAt.UTC()
		follows = append(follows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return follows, nil
}

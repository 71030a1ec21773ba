package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// CommentRepo defines the persistence operations for Comments.
// Comments are append-only.
type CommentRepo interface {
	// ListByTrip returns the trip's comments, newest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error)

	// Add always inserts a new comment.
	Add(ctx context.Context, comment domain.Comment) (domain.Comment, error)

	List(ctx context.Context) ([]domain.Comment, error)
}

type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

func (r *pgCommentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Comment, error) {
	const q = `
		SELECT id, trip_id, user_id, content, created_at
		FROM comments
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC, id`

	comments, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByTrip: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepo) Add(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (id, trip_id, user_id, content, created_at)
		VALUES (@id, @trip_id, @user_id, @content, @created_at)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         comment.ID,
		"trip_id":    comment.TripID,
		"user_id":    comment.UserID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Add: %w", mapPgError(err))
	}
	return comment, nil
}

func (r *pgCommentRepo) List(ctx context.Context) ([]domain.Comment, error) {
	const q = `SELECT id, trip_id, user_id, content, created_at FROM comments ORDER BY created_at, id`

	comments, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.List: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var (
			c                  domain.Comment
			id, tripID, userID pgtype.UUID
		)
		if err := rows.Scan(&id, &tripID, &userID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		c.TripID = uuid.UUID(tripID.Bytes)
		c.UserID = uuid.UUID(userID.Bytes)
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return comments, nil
}

// Package repo contains all persistence logic for the Yatra API.
// Each resource has its own file with an interface and a Postgres
// implementation; the *_file.go files hold the JSON record-store
// implementations of the same interfaces. No business logic lives here,
// only queries and type mapping.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so TripRepo.Update works inside a test transaction too.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles every repository the services depend on.
type Repos struct {
	Users         UserRepo
	Trips         TripRepo
	Likes         LikeRepo
	Follows       FollowRepo
	Comments      CommentRepo
	Notifications NotificationRepo
	Contacts      ContactRepo
}

// NewPostgres builds all repositories on top of a Postgres connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgres(db db) Repos {
	return Repos{
		Users:         NewUserRepo(db),
		Trips:         NewTripRepo(db),
		Likes:         NewLikeRepo(db),
		Follows:       NewFollowRepo(db),
		Comments:      NewCommentRepo(db),
		Notifications: NewNotificationRepo(db),
		Contacts:      NewContactRepo(db),
	}
}

// NewFile builds all repositories on top of the JSON record store.
func NewFile(s *store.Store) Repos {
	return Repos{
		Users:         NewFileUserRepo(s),
		Trips:         NewFileTripRepo(s),
		Likes:         NewFileLikeRepo(s),
		Follows:       NewFileFollowRepo(s),
		Comments:      NewFileCommentRepo(s),
		Notifications: NewFileNotificationRepo(s),
		Contacts:      NewFileContactRepo(s),
	}
}

// Postgres error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError converts constraint violations into domain sentinels and
// pgx.ErrNoRows into domain.ErrNotFound. Other errors pass through unchanged.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrConflict
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		}
	}
	return err
}

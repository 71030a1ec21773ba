package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yatra-app/yatra/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a user as given. The email must already be normalised.
	// Returns domain.ErrConflict if another user has the same email.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail looks a user up case-insensitively.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile applies a partial profile edit and returns the updated user.
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error)

	// List returns every user in sign-up order.
	List(ctx context.Context) ([]domain.User, error)

	// SearchByName returns up to limit users whose name contains query,
	// compared case-insensitively, in sign-up order. A limit below 1 matches
	// nothing.
	SearchByName(ctx context.Context, query string, limit int) ([]domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, email, profile_image, bio, password_hash, created_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (id, name, email, profile_image, bio, password_hash, created_at)
		VALUES (@id, @name, @email, @profile_image, @bio, @password_hash, @created_at)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            user.ID,
		"name":          user.Name,
		"email":         domain.NormalizeEmail(user.Email),
		"profile_image": user.ProfileImage,
		"bio":           user.Bio,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": domain.NormalizeEmail(email)}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", mapPgError(err))
	}
	return result, nil
}

// UpdateProfile leaves a column alone when the matching field is nil; the
// COALESCE sees NULL and keeps the current value.
func (r *pgUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	const q = `
		UPDATE users
		SET bio           = COALESCE(@bio, bio),
		    profile_image = COALESCE(@profile_image, profile_image)
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            id,
		"bio":           upd.Bio,
		"profile_image": upd.ProfileImage,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", mapPgError(err))
	}
	return result, nil
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	users, err := r.queryUsers(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	return users, nil
}

func (r *pgUserRepo) SearchByName(ctx context.Context, query string, limit int) ([]domain.User, error) {
	if limit <= 0 {
		return []domain.User{}, nil
	}
	q := `
		SELECT ` + userColumns + `
		FROM users
		WHERE strpos(lower(name), lower(@query)) > 0
		ORDER BY created_at, id
		LIMIT @limit`

	users, err := r.queryUsers(ctx, q, pgx.NamedArgs{"query": query, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.SearchByName: %w", err)
	}
	return users, nil
}

func (r *pgUserRepo) queryUsers(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return users, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Name, &u.Email, &u.ProfileImage, &u.Bio, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileUserRepo struct {
	s *store.Store
}

// NewFileUserRepo constructs a UserRepo backed by the users collection.
func NewFileUserRepo(s *store.Store) UserRepo {
	return &fileUserRepo{s: s}
}

func (r *fileUserRepo) read() ([]domain.User, error) {
	env, err := store.Read(r.s, store.Users, store.Empty[domain.User]())
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(env.Items))
	for i, u := range env.Items {
		users[i] = normalizeUser(u)
	}
	return users, nil
}

// normalizeUser trims optional profile text so blank values read as absent.
func normalizeUser(u domain.User) domain.User {
	u.Bio = strings.TrimSpace(u.Bio)
	u.ProfileImage = strings.TrimSpace(u.ProfileImage)
	return u
}

// Create checks for a duplicate email and appends under the collection lock,
// so two concurrent sign-ups with one address cannot both succeed.
func (r *fileUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	user = normalizeUser(user)
	user.Email = domain.NormalizeEmail(user.Email)

	err := store.Update(r.s, store.Users, store.Empty[domain.User](), func(env *store.Envelope[domain.User]) (bool, error) {
		for _, u := range env.Items {
			if domain.NormalizeEmail(u.Email) == user.Email {
				return false, domain.ErrConflict
			}
		}
		env.Items = append(env.Items, user)
		return true, nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.fileUserRepo.Create: %w", err)
	}
	return user, nil
}

func (r *fileUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	users, err := r.read()
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.fileUserRepo.GetByID: %w", err)
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.fileUserRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *fileUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	users, err := r.read()
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.fileUserRepo.GetByEmail: %w", err)
	}
	want := domain.NormalizeEmail(email)
	for _, u := range users {
		if domain.NormalizeEmail(u.Email) == want {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.fileUserRepo.GetByEmail: %w", domain.ErrNotFound)
}

func (r *fileUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	var updated domain.User
	err := store.Update(r.s, store.Users, store.Empty[domain.User](), func(env *store.Envelope[domain.User]) (bool, error) {
		for i, u := range env.Items {
			if u.ID != id {
				continue
			}
			if upd.Bio != nil {
				u.Bio = *upd.Bio
			}
			if upd.ProfileImage != nil {
				u.ProfileImage = *upd.ProfileImage
			}
			updated = normalizeUser(u)
			env.Items[i] = updated
			return true, nil
		}
		return false, domain.ErrNotFound
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.fileUserRepo.UpdateProfile: %w", err)
	}
	return updated, nil
}

func (r *fileUserRepo) List(_ context.Context) ([]domain.User, error) {
	users, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("repo.fileUserRepo.List: %w", err)
	}
	return users, nil
}

func (r *fileUserRepo) SearchByName(_ context.Context, query string, limit int) ([]domain.User, error) {
	if limit <= 0 {
		return []domain.User{}, nil
	}
	users, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("repo.fileUserRepo.SearchByName: %w", err)
	}
	q := strings.ToLower(query)
	matches := []domain.User{}
	for _, u := range users {
		if len(matches) == limit {
			break
		}
		if strings.Contains(strings.ToLower(u.Name), q) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

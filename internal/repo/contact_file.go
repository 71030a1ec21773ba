package repo

import (
	"context"
	"fmt"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/store"
)

type fileContactRepo struct {
	s *store.Store
}

// NewFileContactRepo constructs a ContactRepo backed by the contacts collection.
func NewFileContactRepo(s *store.Store) ContactRepo {
	return &fileContactRepo{s: s}
}

func (r *fileContactRepo) Create(_ context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	err := store.Update(r.s, store.Contacts, store.Empty[domain.ContactMessage](), func(env *store.Envelope[domain.ContactMessage]) (bool, error) {
		env.Items = append(env.Items, msg)
		return true, nil
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("repo.fileContactRepo.Create: %w", err)
	}
	return msg, nil
}

func (r *fileContactRepo) List(_ context.Context) ([]domain.ContactMessage, error) {
	env, err := store.Read(r.s, store.Contacts, store.Empty[domain.ContactMessage]())
	if err != nil {
		return nil, fmt.Errorf("repo.fileContactRepo.List: %w", err)
	}
	return env.Items, nil
}

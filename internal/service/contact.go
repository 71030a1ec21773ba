package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

// ContactService stores messages from the public contact form.
type ContactService struct {
	contacts repo.ContactRepo
	now      func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(contacts repo.ContactRepo) *ContactService {
	return &ContactService{contacts: contacts, now: time.Now}
}

// Submit validates and stores a contact message. The email is normalised
// before it is stored.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	message = strings.TrimSpace(message)

	if name == "" || !ValidEmail(email) || utf8.RuneCountInString(message) < domain.MinContactMessageLength {
		return domain.ContactMessage{}, fmt.Errorf("%w: Provide a valid name, email, and message (minimum 10 characters).", domain.ErrValidation)
	}

	msg, err := s.contacts.Create(ctx, domain.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("service.ContactService.Submit: %w", err)
	}
	return msg, nil
}

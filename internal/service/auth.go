package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 8

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are rejected
// rather than truncated.
const MaxPasswordBytes = 72

var errPasswordTooLong = fmt.Errorf("%w: Password must be at most %d bytes.", domain.ErrValidation, MaxPasswordBytes)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// AuthService handles sign-up and credential checks.
type AuthService struct {
	users repo.UserRepo
	cost  int
	now   func() time.Time
}

// NewAuthService constructs an AuthService. cost is the bcrypt work factor;
// values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: cost, now: time.Now}
}

// Signup registers a new user and returns its sanitised form.
// Returns domain.ErrValidation for bad input and domain.ErrConflict when the
// email is already registered in any letter case.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.SafeUser, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)

	if name == "" || !ValidEmail(email) || utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.SafeUser{}, fmt.Errorf("%w: Please provide a valid name, email, and password (min 8 chars).", domain.ErrValidation)
	}
	if len(password) > MaxPasswordBytes {
		return domain.SafeUser{}, errPasswordTooLong
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.SafeUser{}, fmt.Errorf("%w: An account already exists with this email.", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.SafeUser{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.SafeUser{}, fmt.Errorf("service.AuthService.Signup: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, domain.ErrConflict) {
		// Lost a race with a concurrent sign-up for the same address.
		return domain.SafeUser{}, fmt.Errorf("%w: An account already exists with this email.", domain.ErrConflict)
	}
	if err != nil {
		return domain.SafeUser{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user.Sanitize(), nil
}

// Login checks credentials. Unknown emails and wrong passwords both return
// the same domain.ErrUnauthorized so callers cannot discover which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.SafeUser, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.SafeUser{}, fmt.Errorf("%w: Email and password are required.", domain.ErrValidation)
	}
	if len(password) > MaxPasswordBytes {
		return domain.SafeUser{}, errPasswordTooLong
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.SafeUser{}, fmt.Errorf("%w: Invalid email or password.", domain.ErrUnauthorized)
	}
	if err != nil {
		return domain.SafeUser{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.SafeUser{}, fmt.Errorf("%w: Invalid email or password.", domain.ErrUnauthorized)
	}
	return user.Sanitize(), nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

// SearchLimit caps how many users a search returns.
const SearchLimit = 10

// SearchService finds travelers by name.
type SearchService struct {
	users repo.UserRepo
}

// NewSearchService constructs a SearchService.
func NewSearchService(users repo.UserRepo) *SearchService {
	return &SearchService{users: users}
}

// Users returns up to SearchLimit users whose name contains query, ignoring
// case. A blank query matches nobody.
func (s *SearchService) Users(ctx context.Context, query string) ([]domain.SafeUser, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []domain.SafeUser{}, nil
	}

	users, err := s.users.SearchByName(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("service.SearchService.Users: %w", err)
	}
	out := make([]domain.SafeUser, len(users))
	for i, u := range users {
		out[i] = u.Sanitize()
	}
	return out, nil
}

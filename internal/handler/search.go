package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// UserSummary is a search hit.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type searchResponse struct {
	Users []UserSummary `json:"users"`
}

// SearchUsers handles GET /api/search/users?query=.
func (s *Server) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.search.Users(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]UserSummary, len(users))
	for i, u := range users {
		out[i] = UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	writeJSON(w, http.StatusOK, searchResponse{Users: out})
}

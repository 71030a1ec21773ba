package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
)

// Profile is the signed-in user's own profile.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	TotalTrips   *int      `json:"totalTrips,omitempty"`
}

type profileRequest struct {
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
}

type profileResponse struct {
	Profile Profile `json:"profile"`
}

func profileToResponse(u domain.SafeUser) Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
	}
}

// GetProfile handles GET /api/user/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := profileToResponse(p.SafeUser)
	resp.TotalTrips = &p.TotalTrips
	writeJSON(w, http.StatusOK, profileResponse{Profile: resp})
}

// UpdateProfile handles PUT /api/user/profile. The session cookie is
// re-issued so it carries the updated user.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.profiles.Update(r.Context(), currentUser(r).ID, domain.ProfileUpdate{
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.sessions.SetCookie(w, user); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: profileToResponse(user)})
}

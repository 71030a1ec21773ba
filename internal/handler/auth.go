package handler

import (
	"errors"
	"net/http"

	"github.com/yatra-app/yatra/internal/domain"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User *domain.SafeUser `json:"user"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Signup handles POST /api/auth/signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.sessions.SetCookie(w, user); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{User: &user})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.sessions.SetCookie(w, user); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: &user})
}

// Logout handles POST /api/auth/logout and its /api/user/logout alias.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	s.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// GetSession handles GET /api/auth/session. It answers {"user":null} when
// there is no valid session, clearing a cookie that failed to verify.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.FromRequest(r)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			s.sessions.ClearCookie(w)
		}
		writeJSON(w, http.StatusOK, userResponse{})
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: &user})
}

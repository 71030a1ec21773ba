package handler

import "net/http"

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SubmitContact handles POST /api/contact. No session is required.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := s.contact.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactResponse{OK: true, Message: "Thanks, your message has been received."})
}

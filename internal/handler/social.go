package handler

import (
	"net/http"

	"github.com/google/uuid"
)

type likeRequest struct {
	TripID string `json:"tripId"`
}

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type followRequest struct {
	TargetUserID string `json:"targetUserId"`
}

type followStatusResponse struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}

type followToggleResponse struct {
	Following     bool `json:"following"`
	FollowerCount int  `json:"followerCount"`
}

type commentRequest struct {
	TripID  string `json:"tripId"`
	Content string `json:"content"`
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

type commentResponse struct {
	Comment Comment `json:"comment"`
}

// parseID parses a required UUID input. It writes a 400 naming field and
// reports false when the value is missing or malformed.
func parseID(w http.ResponseWriter, raw, field string) (uuid.UUID, bool) {
	if raw == "" {
		badRequest(w, field+" is required.")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, "Invalid "+field+".")
		return uuid.Nil, false
	}
	return id, true
}

// GetLike handles GET /api/social/like?tripId=.
func (s *Server) GetLike(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r.URL.Query().Get("tripId"), "tripId")
	if !ok {
		return
	}
	state, err := s.social.LikeStatus(r.Context(), tripID, viewerID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: state.Liked, LikesCount: state.LikesCount})
}

// ToggleLike handles POST /api/social/like.
func (s *Server) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tripID, ok := parseID(w, req.TripID, "tripId")
	if !ok {
		return
	}
	state, err := s.social.ToggleLike(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: state.Liked, LikesCount: state.LikesCount})
}

// GetFollow handles GET /api/social/follow?userId=.
func (s *Server) GetFollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r.URL.Query().Get("userId"), "userId")
	if !ok {
		return
	}
	state, err := s.social.FollowStatus(r.Context(), userID, viewerID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, followStatusResponse{IsFollowing: state.Following, FollowerCount: state.FollowerCount})
}

// ToggleFollow handles POST /api/social/follow.
func (s *Server) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	var req followRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	targetID, ok := parseID(w, req.TargetUserID, "targetUserId")
	if !ok {
		return
	}
	state, err := s.social.ToggleFollow(r.Context(), currentUser(r).ID, targetID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, followToggleResponse{Following: state.Following, FollowerCount: state.FollowerCount})
}

// ListComments handles GET /api/social/comment?tripId=.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r.URL.Query().Get("tripId"), "tripId")
	if !ok {
		return
	}
	views, err := s.social.ListComments(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commentsResponse{Comments: commentsToResponse(views)})
}

// AddComment handles POST /api/social/comment.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TripID == "" {
		badRequest(w, "tripId and content are required.")
		return
	}
	tripID, ok := parseID(w, req.TripID, "tripId")
	if !ok {
		return
	}
	view, err := s.social.AddComment(r.Context(), currentUser(r).ID, tripID, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentResponse{Comment: commentToResponse(view)})
}

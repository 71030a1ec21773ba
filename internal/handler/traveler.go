package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// TravelerPost is a public trip on a traveler's profile.
type TravelerPost struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	LikesCount  int       `json:"likesCount"`
}

// Traveler is a traveler's public profile as seen by the viewer.
type Traveler struct {
	User           Profile        `json:"user"`
	FollowersCount int            `json:"followersCount"`
	FollowingCount int            `json:"followingCount"`
	IsFollowing    bool           `json:"isFollowing"`
	IsOwnProfile   bool           `json:"isOwnProfile"`
	Posts          []TravelerPost `json:"posts"`
}

// FollowingEntry is one row of a traveler's following list.
type FollowingEntry struct {
	User           Profile `json:"user"`
	FollowersCount int     `json:"followersCount"`
	IsFollowing    bool    `json:"isFollowing"`
}

// PublicTrip is the shared view of a public trip.
type PublicTrip struct {
	Trip                Trip      `json:"trip"`
	Owner               UserRef   `json:"owner"`
	LikesCount          int       `json:"likesCount"`
	LikedByViewer       bool      `json:"likedByViewer"`
	Comments            []Comment `json:"comments"`
	OwnerFollowersCount int       `json:"ownerFollowersCount"`
	CanFollow           bool      `json:"canFollow"`
	IsFollowing         bool      `json:"isFollowing"`
}

type travelerResponse struct {
	Traveler Traveler `json:"traveler"`
}

type followingResponse struct {
	Following []FollowingEntry `json:"following"`
}

// GetTraveler handles GET /api/travelers/{id}.
func (s *Server) GetTraveler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Traveler not found.")
		return
	}
	p, err := s.travelers.Profile(r.Context(), id, viewerID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	posts := make([]TravelerPost, len(p.Posts))
	for i, post := range p.Posts {
		posts[i] = TravelerPost{ID: post.ID, Destination: post.Destination, LikesCount: post.LikesCount}
	}
	writeJSON(w, http.StatusOK, travelerResponse{Traveler: Traveler{
		User:           profileToResponse(p.User),
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		IsFollowing:    p.IsFollowing,
		IsOwnProfile:   p.IsOwnProfile,
		Posts:          posts,
	}})
}

// ListFollowing handles GET /api/travelers/{id}/following.
func (s *Server) ListFollowing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Traveler not found.")
		return
	}
	entries, err := s.travelers.Following(r.Context(), id, viewerID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]FollowingEntry, len(entries))
	for i, e := range entries {
		out[i] = FollowingEntry{User: profileToResponse(e.User), FollowersCount: e.FollowersCount, IsFollowing: e.IsFollowing}
	}
	writeJSON(w, http.StatusOK, followingResponse{Following: out})
}

// GetPublicTrip handles GET /api/public/trips/{id}.
func (s *Server) GetPublicTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Trip not found.")
		return
	}
	v, err := s.travelers.PublicTrip(r.Context(), id, viewerID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PublicTrip{
		Trip:                tripToResponse(v.Trip),
		Owner:               refToResponse(v.Owner),
		LikesCount:          v.LikesCount,
		LikedByViewer:       v.LikedByViewer,
		Comments:            commentsToResponse(v.Comments),
		OwnerFollowersCount: v.OwnerFollowersCount,
		CanFollow:           v.CanFollow,
		IsFollowing:         v.IsFollowing,
	})
}

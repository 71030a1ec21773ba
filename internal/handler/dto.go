package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/session"
)

// Trip is the wire form of a trip. Dates travel as YYYY-MM-DD.
type Trip struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"userId"`
	Destination   string                `json:"destination"`
	StartDate     openapi_types.Date    `json:"startDate"`
	EndDate       openapi_types.Date    `json:"endDate"`
	Budget        string                `json:"budget"`
	TravelType    string                `json:"travelType"`
	Notes         string                `json:"notes"`
	ItineraryDays []domain.ItineraryDay `json:"itineraryDays"`
	IsPublic      bool                  `json:"isPublic"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	LastViewedAt  *time.Time            `json:"lastViewedAt"`
}

// SocialTrip is a public trip in the feed.
type SocialTrip struct {
	Trip
	UserName      string `json:"userName"`
	LikesCount    int    `json:"likesCount"`
	CommentsCount int    `json:"commentsCount"`
}

// UserRef is the minimal public identity of a user.
type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Comment is a comment with its author.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"tripId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      UserRef   `json:"user"`
}

// Notification is a notification with its actor.
type Notification struct {
	domain.Notification
	Actor UserRef `json:"actor"`
}

// Pagination describes which slice of a collection a response holds.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// tripToResponse converts a domain.Trip into its wire form.
func tripToResponse(t domain.Trip) Trip {
	days := t.ItineraryDays
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	return Trip{
		ID:            t.ID,
		UserID:        t.UserID,
		Destination:   t.Destination,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		Budget:        t.Budget,
		TravelType:    string(t.TravelType),
		Notes:         t.Notes,
		ItineraryDays: days,
		IsPublic:      t.IsPublic,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastViewedAt:  t.LastViewedAt,
	}
}

func tripsToResponse(trips []domain.Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

func refToResponse(r domain.UserRef) UserRef {
	return UserRef{ID: r.ID, Name: r.Name}
}

func commentToResponse(c domain.CommentView) Comment {
	return Comment{
		ID:        c.ID,
		TripID:    c.TripID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User:      refToResponse(c.User),
	}
}

func commentsToResponse(views []domain.CommentView) []Comment {
	out := make([]Comment, len(views))
	for i, c := range views {
		out[i] = commentToResponse(c)
	}
	return out
}

// currentUser returns the user RequireSession put in the context.
func currentUser(r *http.Request) domain.SafeUser {
	u, _ := session.UserFrom(r.Context())
	return u
}

// viewerID returns the signed-in user's ID, or uuid.Nil for an anonymous request.
func viewerID(r *http.Request) uuid.UUID {
	if u, ok := session.UserFrom(r.Context()); ok {
		return u.ID
	}
	return uuid.Nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// queryInt returns the named query parameter as an int, or nil when it is
// absent or not a number.
func queryInt(r *http.Request, name string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &v
}

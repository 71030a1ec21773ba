// Package handler implements the HTTP handlers for the Yatra API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, social.go, etc.) but all share the same Server
// struct so they can access its dependencies. Routes wires them into a chi
// router under /api.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/middleware"
	"github.com/yatra-app/yatra/internal/social"
)

// The Servicer interfaces below define the business operations the handlers
// depend on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the service layer.

type AuthServicer interface {
	Signup(ctx context.Context, name, email, password string) (domain.SafeUser, error)
	Login(ctx context.Context, email, password string) (domain.SafeUser, error)
}

type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, draft domain.TripDraft) (domain.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Dashboard(ctx context.Context, ownerID uuid.UUID) (domain.DashboardStats, error)
}

type SocialServicer interface {
	LikeStatus(ctx context.Context, tripID, viewerID uuid.UUID) (domain.LikeState, error)
	ToggleLike(ctx context.Context, actorID, tripID uuid.UUID) (domain.LikeState, error)
	FollowStatus(ctx context.Context, targetID, viewerID uuid.UUID) (domain.FollowState, error)
	ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (domain.FollowState, error)
	ListComments(ctx context.Context, tripID uuid.UUID) ([]domain.CommentView, error)
	AddComment(ctx context.Context, actorID, tripID uuid.UUID, content string) (domain.CommentView, error)
}

type NotificationServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.NotificationView, int, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

type FeedServicer interface {
	Feed(ctx context.Context, order social.SortOrder, p domain.PaginationParams) (domain.Page[domain.SocialTrip], error)
}

type ProfileServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, upd domain.ProfileUpdate) (domain.SafeUser, error)
}

type SearchServicer interface {
	Users(ctx context.Context, query string) ([]domain.SafeUser, error)
}

type ContactServicer interface {
	Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error)
}

type TravelerServicer interface {
	Profile(ctx context.Context, travelerID, viewerID uuid.UUID) (domain.TravelerProfile, error)
	Following(ctx context.Context, travelerID, viewerID uuid.UUID) ([]domain.FollowingEntry, error)
	PublicTrip(ctx context.Context, tripID, viewerID uuid.UUID) (domain.PublicTripView, error)
}

type ExportServicer interface {
	Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

// SessionManager reads and writes the session cookie.
// *session.Manager satisfies it.
type SessionManager interface {
	middleware.SessionReader
	SetCookie(w http.ResponseWriter, user domain.SafeUser) error
	ClearCookie(w http.ResponseWriter)
}

// Services bundles every service the API depends on.
// A nil field is allowed in tests that never reach its routes.
type Services struct {
	Auth          AuthServicer
	Trips         TripServicer
	Social        SocialServicer
	Notifications NotificationServicer
	Feed          FeedServicer
	Profiles      ProfileServicer
	Search        SearchServicer
	Contact       ContactServicer
	Travelers     TravelerServicer
	Export        ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	auth          AuthServicer
	trips         TripServicer
	social        SocialServicer
	notifications NotificationServicer
	feed          FeedServicer
	profiles      ProfileServicer
	search        SearchServicer
	contact       ContactServicer
	travelers     TravelerServicer
	export        ExportServicer

	sessions SessionManager
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger means slog.Default().
func NewServer(svc Services, sessions SessionManager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:          svc.Auth,
		trips:         svc.Trips,
		social:        svc.Social,
		notifications: svc.Notifications,
		feed:          svc.Feed,
		profiles:      svc.Profiles,
		search:        svc.Search,
		contact:       svc.Contact,
		travelers:     svc.Travelers,
		export:        svc.Export,
		sessions:      sessions,
		log:           log,
	}
}

// Routes returns the API router: /healthz, /openapi.yaml and everything
// under /api. Cross-cutting middleware (request IDs, logging, CORS, body
// limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		// Set here so a NotFound the caller puts on the outer router for
		// frontend pages never answers an API path.
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "Not found.")
		})

		r.Post("/auth/signup", s.Signup)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/logout", s.Logout)
		r.Post("/user/logout", s.Logout)
		r.Get("/auth/session", s.GetSession)
		r.Post("/contact", s.SubmitContact)

		// Public reads that personalise for a signed-in viewer.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalSession(s.sessions))
			r.Get("/feed", s.GetFeed)
			r.Get("/social/like", s.GetLike)
			r.Get("/social/follow", s.GetFollow)
			r.Get("/social/comment", s.ListComments)
			r.Get("/travelers/{id}", s.GetTraveler)
			r.Get("/travelers/{id}/following", s.ListFollowing)
			r.Get("/public/trips/{id}", s.GetPublicTrip)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(s.sessions))
			r.Get("/trips", s.ListTrips)
			r.Post("/trips", s.CreateTrip)
			r.Get("/trips/export", s.GetExport)
			r.Get("/trips/{id}", s.GetTrip)
			r.Put("/trips/{id}", s.UpdateTrip)
			r.Get("/dashboard", s.GetDashboard)

			r.Post("/social/like", s.ToggleLike)
			r.Post("/social/follow", s.ToggleFollow)
			r.Post("/social/comment", s.AddComment)

			r.Get("/notifications", s.ListNotifications)
			r.Put("/notifications", s.MarkNotificationsRead)

			r.Get("/search/users", s.SearchUsers)

			r.Get("/user/profile", s.GetProfile)
			r.Put("/user/profile", s.UpdateProfile)
		})
	})

	return r
}

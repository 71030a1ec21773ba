package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/handler"
	"github.com/yatra-app/yatra/internal/social"
)

// Hand-written test doubles for the Servicer interfaces.
// Each method is a function field; set only the ones your test needs.

type mockAuthServicer struct {
	signup func(ctx context.Context, name, email, password string) (domain.SafeUser, error)
	login  func(ctx context.Context, email, password string) (domain.SafeUser, error)
}

func (m *mockAuthServicer) Signup(ctx context.Context, name, email, password string) (domain.SafeUser, error) {
	return m.signup(ctx, name, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.SafeUser, error) {
	return m.login(ctx, email, password)
}

type mockTripServicer struct {
	create    func(ctx context.Context, ownerID uuid.UUID, d domain.TripDraft) (domain.Trip, error)
	list      func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	get       func(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	update    func(ctx context.Context, ownerID, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	dashboard func(ctx context.Context, ownerID uuid.UUID) (domain.DashboardStats, error)
}

func (m *mockTripServicer) Create(ctx context.Context, ownerID uuid.UUID, d domain.TripDraft) (domain.Trip, error) {
	return m.create(ctx, ownerID, d)
}
func (m *mockTripServicer) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, ownerID)
}
func (m *mockTripServicer) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, ownerID, id)
}
func (m *mockTripServicer) Update(ctx context.Context, ownerID, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, ownerID, id, upd)
}
func (m *mockTripServicer) Dashboard(ctx context.Context, ownerID uuid.UUID) (domain.DashboardStats, error) {
	return m.dashboard(ctx, ownerID)
}

type mockSocialServicer struct {
	likeStatus   func(ctx context.Context, tripID, viewerID uuid.UUID) (domain.LikeState, error)
	toggleLike   func(ctx context.Context, actorID, tripID uuid.UUID) (domain.LikeState, error)
	followStatus func(ctx context.Context, targetID, viewerID uuid.UUID) (domain.FollowState, error)
	toggleFollow func(ctx context.Context, actorID, targetID uuid.UUID) (domain.FollowState, error)
	listComments func(ctx context.Context, tripID uuid.UUID) ([]domain.CommentView, error)
	addComment   func(ctx context.Context, actorID, tripID uuid.UUID, content string) (domain.CommentView, error)
}

func (m *mockSocialServicer) LikeStatus(ctx context.Context, tripID, viewerID uuid.UUID) (domain.LikeState, error) {
	return m.likeStatus(ctx, tripID, viewerID)
}
func (m *mockSocialServicer) ToggleLike(ctx context.Context, actorID, tripID uuid.UUID) (domain.LikeState, error) {
	return m.toggleLike(ctx, actorID, tripID)
}
func (m *mockSocialServicer) FollowStatus(ctx context.Context, targetID, viewerID uuid.UUID) (domain.FollowState, error) {
	return m.followStatus(ctx, targetID, viewerID)
}
func (m *mockSocialServicer) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (domain.FollowState, error) {
	return m.toggleFollow(ctx, actorID, targetID)
}
func (m *mockSocialServicer) ListComments(ctx context.Context, tripID uuid.UUID) ([]domain.CommentView, error) {
	return m.listComments(ctx, tripID)
}
func (m *mockSocialServicer) AddComment(ctx context.Context, actorID, tripID uuid.UUID, content string) (domain.CommentView, error) {
	return m.addComment(ctx, actorID, tripID, content)
}

type mockNotificationServicer struct {
	list        func(ctx context.Context, userID uuid.UUID) ([]domain.NotificationView, int, error)
	markAllRead func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *mockNotificationServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.NotificationView, int, error) {
	return m.list(ctx, userID)
}
func (m *mockNotificationServicer) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.markAllRead(ctx, userID)
}

type mockFeedServicer struct {
	feed func(ctx context.Context, order social.SortOrder, p domain.PaginationParams) (domain.Page[domain.SocialTrip], error)
}

func (m *mockFeedServicer) Feed(ctx context.Context, order social.SortOrder, p domain.PaginationParams) (domain.Page[domain.SocialTrip], error) {
	return m.feed(ctx, order, p)
}

type mockProfileServicer struct {
	get    func(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	update func(ctx context.Context, userID uuid.UUID, upd domain.ProfileUpdate) (domain.SafeUser, error)
}

func (m *mockProfileServicer) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileServicer) Update(ctx context.Context, userID uuid.UUID, upd domain.ProfileUpdate) (domain.SafeUser, error) {
	return m.update(ctx, userID, upd)
}

type mockSearchServicer struct {
	users func(ctx context.Context, query string) ([]domain.SafeUser, error)
}

func (m *mockSearchServicer) Users(ctx context.Context, query string) ([]domain.SafeUser, error) {
	return m.users(ctx, query)
}

type mockContactServicer struct {
	submit func(ctx context.Context, name, email, message string) (domain.ContactMessage, error)
}

func (m *mockContactServicer) Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error) {
	return m.submit(ctx, name, email, message)
}

type mockTravelerServicer struct {
	profile    func(ctx context.Context, travelerID, viewerID uuid.UUID) (domain.TravelerProfile, error)
	following  func(ctx context.Context, travelerID, viewerID uuid.UUID) ([]domain.FollowingEntry, error)
	publicTrip func(ctx context.Context, tripID, viewerID uuid.UUID) (domain.PublicTripView, error)
}

func (m *mockTravelerServicer) Profile(ctx context.Context, travelerID, viewerID uuid.UUID) (domain.TravelerProfile, error) {
	return m.profile(ctx, travelerID, viewerID)
}
func (m *mockTravelerServicer) Following(ctx context.Context, travelerID, viewerID uuid.UUID) ([]domain.FollowingEntry, error) {
	return m.following(ctx, travelerID, viewerID)
}
func (m *mockTravelerServicer) PublicTrip(ctx context.Context, tripID, viewerID uuid.UUID) (domain.PublicTripView, error) {
	return m.publicTrip(ctx, tripID, viewerID)
}

type mockExportServicer struct {
	export func(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, ownerID)
}

// compile-time checks: every mock must satisfy its interface.
var (
	_ handler.AuthServicer         = (*mockAuthServicer)(nil)
	_ handler.TripServicer         = (*mockTripServicer)(nil)
	_ handler.SocialServicer       = (*mockSocialServicer)(nil)
	_ handler.NotificationServicer = (*mockNotificationServicer)(nil)
	_ handler.FeedServicer         = (*mockFeedServicer)(nil)
	_ handler.ProfileServicer      = (*mockProfileServicer)(nil)
	_ handler.SearchServicer       = (*mockSearchServicer)(nil)
	_ handler.ContactServicer      = (*mockContactServicer)(nil)
	_ handler.TravelerServicer     = (*mockTravelerServicer)(nil)
	_ handler.ExportServicer       = (*mockExportServicer)(nil)
)

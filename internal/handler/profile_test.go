package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/handler"
	"github.com/yatra-app/yatra/internal/session"
)

type profileBody struct {
	Profile handler.Profile `json:"profile"`
}

func TestGetProfile_includesTripCount(t *testing.T) {
	user := testUser()
	svc := &mockProfileServicer{
		get: func(_ context.Context, id uuid.UUID) (domain.Profile, error) {
			assert.Equal(t, user.ID, id)
			return domain.Profile{SafeUser: user, TotalTrips: 4}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	rec := serve(h, withSession(t, newRequest(t, http.MethodGet, "/api/user/profile", nil), user))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[profileBody](t, rec)
	assert.Equal(t, user.Email, body.Profile.Email)
	require.NotNil(t, body.Profile.TotalTrips)
	assert.Equal(t, 4, *body.Profile.TotalTrips)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestGetProfile_deletedUserIs404(t *testing.T) {
	svc := &mockProfileServicer{
		get: func(context.Context, uuid.UUID) (domain.Profile, error) {
			return domain.Profile{}, fmt.Errorf("%w: User not found.", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	rec := serve(h, withSession(t, newRequest(t, http.MethodGet, "/api/user/profile", nil), testUser()))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"User not found."}}`, rec.Body.String())
}

func TestUpdateProfile_reissuesCookie(t *testing.T) {
	user := testUser()
	var got domain.ProfileUpdate
	svc := &mockProfileServicer{
		update: func(_ context.Context, _ uuid.UUID, upd domain.ProfileUpdate) (domain.SafeUser, error) {
			got = upd
			updated := user
			updated.Bio = *upd.Bio
			return updated, nil
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	req := withSession(t, newRequest(t, http.MethodPut, "/api/user/profile", map[string]string{"bio": "Slow traveler."}), user)
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Bio)
	assert.Nil(t, got.ProfileImage)

	body := decode[profileBody](t, rec)
	assert.Equal(t, "Slow traveler.", body.Profile.Bio)
	assert.Nil(t, body.Profile.TotalTrips)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	parsed, err := session.NewManager(testSecret).Parse(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "Slow traveler.", parsed.Bio)
}

func TestUpdateProfile_invalidImage(t *testing.T) {
	svc := &mockProfileServicer{
		update: func(context.Context, uuid.UUID, domain.ProfileUpdate) (domain.SafeUser, error) {
			return domain.SafeUser{}, fmt.Errorf("%w: Please provide a valid image URL (http or https).", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	req := withSession(t, newRequest(t, http.MethodPut, "/api/user/profile", map[string]string{"profileImage": "ftp://x"}), testUser())
	rec := serve(h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestSearchUsers(t *testing.T) {
	user := testUser()
	hit := testUser()
	hit.Name = "Ravi"
	var gotQuery string
	svc := &mockSearchServicer{
		users: func(_ context.Context, q string) ([]domain.SafeUser, error) {
			gotQuery = q
			return []domain.SafeUser{hit}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Search: svc})

	rec := serve(h, withSession(t, newRequest(t, http.MethodGet, "/api/search/users?query=rav", nil), user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rav", gotQuery)
	body := decode[struct {
		Users []handler.UserSummary `json:"users"`
	}](t, rec)
	require.Len(t, body.Users, 1)
	assert.Equal(t, handler.UserSummary{ID: hit.ID, Name: "Ravi", Email: hit.Email}, body.Users[0])
}

func TestSubmitContact(t *testing.T) {
	t.Run("accepted without a session", func(t *testing.T) {
		svc := &mockContactServicer{
			submit: func(_ context.Context, name, email, message string) (domain.ContactMessage, error) {
				return domain.ContactMessage{ID: uuid.New(), Name: name, Email: email, Message: message}, nil
			},
		}
		h := newHTTPHandler(handler.Services{Contact: svc})

		rec := serve(h, newRequest(t, http.MethodPost, "/api/contact", map[string]string{
			"name": "Asha", "email": "asha@example.com", "message": "Please add a map view.",
		}))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"ok":true,"message":"Thanks, your message has been received."}`, rec.Body.String())
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &mockContactServicer{
			submit: func(context.Context, string, string, string) (domain.ContactMessage, error) {
				return domain.ContactMessage{}, fmt.Errorf("%w: Provide a valid name, email, and message (minimum 10 characters).", domain.ErrValidation)
			},
		}
		h := newHTTPHandler(handler.Services{Contact: svc})

		rec := serve(h, newRequest(t, http.MethodPost, "/api/contact", map[string]string{"name": "A"}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[handler.ErrorResponse](t, rec)
		assert.Equal(t, "Provide a valid name, email, and message (minimum 10 characters).", body.Error.Message)
	})
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/handler"
	"github.com/yatra-app/yatra/internal/session"
)

var _ handler.SessionManager = (*session.Manager)(nil)

const testSecret = "handler-test-secret"

// newHTTPHandler wires a Server with the given mocks into its chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return handler.NewServer(svc, session.NewManager(testSecret), logger).Routes()
}

func testUser() domain.SafeUser {
	return domain.SafeUser{
		ID:        uuid.New(),
		Name:      "Asha",
		Email:     "asha@example.com",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func tripFixture(owner uuid.UUID) domain.Trip {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:          uuid.New(),
		UserID:      owner,
		Destination: "Kyoto",
		StartDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Budget:      "2000 USD",
		TravelType:  domain.TravelSolo,
		ItineraryDays: []domain.ItineraryDay{
			{ID: "d1", Title: "Day 1", Activities: []domain.Activity{}},
		},
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// newRequest builds a request with an optional JSON body.
func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// withSession attaches a valid session cookie for user.
func withSession(t *testing.T, req *http.Request, user domain.SafeUser) *http.Request {
	t.Helper()
	token, err := session.NewManager(testSecret).Issue(user)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// sessionCookie returns the session cookie set on the response, if any.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// newRawRequest builds a request whose body is sent verbatim.
func newRawRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

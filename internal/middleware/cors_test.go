package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yatra-app/yatra/internal/middleware"
)

const frontend = "http://localhost:5173"

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestCORSHandler(t *testing.T) {
	origins := []string{frontend, "https://yatra.example.com"}

	tests := []struct {
		name        string
		method      string
		origin      string
		wantAllowed bool
	}{
		{"dev frontend", http.MethodGet, frontend, true},
		{"production frontend", http.MethodPut, "https://yatra.example.com", true},
		{"unknown origin", http.MethodGet, "http://evil.example.com", false},
		{"same-origin request", http.MethodPost, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewCORSHandler(origins)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(tc.method, "/api/social/feed", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			// The handler still runs; only the browser enforces CORS.
			assert.Equal(t, http.StatusOK, rec.Code)
			if tc.wantAllowed {
				assert.Equal(t, tc.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

// A JSON PUT with the session cookie triggers a preflight; it must succeed
// without reaching the route handler.
func TestCORSHandler_preflightForJSONUpdate(t *testing.T) {
	reached := false
	h := middleware.NewCORSHandler([]string{frontend})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/trips/abc", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	// Browsers send request header names lowercased (Fetch spec).
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, reached)
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, frontend, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestCORSHandler_preflightRejectsDelete(t *testing.T) {
	h := middleware.NewCORSHandler([]string{frontend})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/trips/abc", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

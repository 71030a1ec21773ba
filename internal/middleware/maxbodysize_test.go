package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yatra-app/yatra/internal/middleware"
)

// drain reads the whole body the way a JSON decoder would and reports
// whether the limit tripped.
func drain(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1 means streamed with no declared length
		wantStatus    int
		wantJSONError bool
	}{
		{"under limit", 10, 10, http.StatusNoContent, false},
		{"exactly at limit", limit, limit, http.StatusNoContent, false},
		{"declared too large", limit + 1, limit + 1, http.StatusRequestEntityTooLarge, true},
		{"streamed under limit", 10, -1, http.StatusNoContent, false},
		{"streamed too large", limit * 4, -1, http.StatusRequestEntityTooLarge, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(http.HandlerFunc(drain))

			// A large base64 cover image in a trip update is the usual offender.
			req := httptest.NewRequest(http.MethodPut, "/api/trips/abc",
				strings.NewReader(strings.Repeat("A", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantJSONError {
				// Rejected before the route runs, so the middleware writes the envelope itself.
				assert.JSONEq(t,
					`{"error":{"code":"request_too_large","message":"Request body is too large."}}`,
					rec.Body.String())
			}
		})
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/session"
)

// SessionReader resolves the signed-in user from a request.
// *session.Manager satisfies it.
type SessionReader interface {
	FromRequest(r *http.Request) (domain.SafeUser, error)
}

// ProtectedPages are the page prefixes RedirectToLogin guards by default.
var ProtectedPages = []string{"/dashboard", "/trips", "/profile", "/notifications"}

// RequireSession rejects requests without a valid session cookie with 401.
// On success the user is available through session.UserFrom.
func RequireSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.FromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), user)))
		})
	}
}

// OptionalSession stores the user in the context when the request carries a
// valid session and otherwise passes the request through untouched.
func OptionalSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := sessions.FromRequest(r); err == nil {
				r = r.WithContext(session.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectToLogin sends anonymous visitors of a protected page to
// /login?next=<path> with 303 See Other. A path is protected when it equals
// one of prefixes or sits below it. Other paths pass through.
func RedirectToLogin(sessions SessionReader, prefixes ...string) func(http.Handler) http.Handler {
	if len(prefixes) == 0 {
		prefixes = ProtectedPages
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !protected(r.URL.Path, prefixes) {
				next.ServeHTTP(w, r)
				return
			}
			user, err := sessions.FromRequest(r)
			if err != nil {
				target := "/login?next=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), user)))
		})
	}
}

func protected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Package session issues and verifies the signed session cookie.
//
// The cookie carries an HS256 JWT whose "user" claim is the sanitised user;
// there is no server-side session table. A token is trusted until it expires,
// so profile edits re-issue the cookie to refresh the embedded user.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yatra-app/yatra/internal/domain"
)

// CookieName is the name of the session cookie.
const CookieName = "yatra_session"

// DefaultTTL is how long a session stays valid after it is issued.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalid is returned for any token that is malformed, forged or expired.
var ErrInvalid = errors.New("invalid session")

// Claims is the JWT payload.
type Claims struct {
	User domain.SafeUser `json:"user"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens and writes the cookie.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithSecureCookie marks the cookie Secure. Enable it whenever the site is
// served over HTTPS.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager that signs with secret.
func NewManager(secret string, opts ...Option) *Manager {
	m := &Manager{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue returns a signed token for user.
func (m *Manager) Issue(user domain.SafeUser) (string, error) {
	now := m.now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session.Manager.Issue: %w", err)
	}
	return token, nil
}

// Parse verifies token and returns the user it carries.
func (m *Manager) Parse(token string) (domain.SafeUser, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return domain.SafeUser{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return claims.User, nil
}

// FromRequest reads and verifies the session cookie. It returns ErrNoCookie
// from net/http when there is no cookie, and ErrInvalid when there is one
// that does not verify.
func (m *Manager) FromRequest(r *http.Request) (domain.SafeUser, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return domain.SafeUser{}, err
	}
	if c.Value == "" {
		return domain.SafeUser{}, http.ErrNoCookie
	}
	return m.Parse(c.Value)
}

// SetCookie issues a token for user and writes it as the session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, user domain.SafeUser) error {
	token, err := m.Issue(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the signed-in user.
func WithUser(ctx context.Context, user domain.SafeUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFrom returns the signed-in user stored by WithUser.
func UserFrom(ctx context.Context) (domain.SafeUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.SafeUser)
	return u, ok
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxBioLength is the longest bio a profile may hold, in characters.
const MaxBioLength = 220

// User is a registered traveler as persisted, including the credential hash.
// Never serialise a User to a client; use Sanitize.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SafeUser is the credential-free projection of a User returned to clients
// and embedded in session tokens.
type SafeUser struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitize strips the password hash.
func (u User) Sanitize() SafeUser {
	return SafeUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
	}
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate is a partial profile edit. A nil field is left as is; a
// pointer to "" clears the field.
type ProfileUpdate struct {
	Bio          *string
	ProfileImage *string
}

// Profile is the signed-in user's own view of their account.
type Profile struct {
	SafeUser
	TotalTrips int
}

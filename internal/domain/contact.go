package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinContactMessageLength is the shortest contact message accepted.
const MinContactMessageLength = 10

// ContactMessage is a write-only submission from the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

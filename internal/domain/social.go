package domain

import (
	"time"

	"github.com/google/uuid"
)

// FallbackDisplayName is shown in place of a user that no longer resolves.
const FallbackDisplayName = "Traveler"

// MaxCommentLength is the longest comment accepted, in characters.
const MaxCommentLength = 500

// Like records that a user liked a trip. At most one exists per (TripID, UserID).
type Like struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"tripId"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Follow records that FollowerID follows FollowingID. Self-follows are rejected
// by the service layer.
type Follow struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"followerId"`
	FollowingID uuid.UUID `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment is an append-only remark on a trip.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"tripId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationType identifies which social action produced a notification.
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification tells UserID that ActorID did something. TripID is set for
// like and comment notifications.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	ActorID   uuid.UUID        `json:"actorId"`
	TripID    *uuid.UUID       `json:"tripId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}

// UserRef is the minimal public identity attached to comments and notifications.
type UserRef struct {
	ID   uuid.UUID
	Name string
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	Comment
	User UserRef
}

// NotificationView is a notification with its actor resolved.
type NotificationView struct {
	Notification
	Actor UserRef
}

// SocialTrip is a public trip enriched with its owner's name and engagement counts.
type SocialTrip struct {
	Trip
	UserName      string
	LikesCount    int
	CommentsCount int
}

// LikeState is the outcome of a like query or toggle.
type LikeState struct {
	Liked      bool
	LikesCount int
}

// FollowState is the outcome of a follow query or toggle.
type FollowState struct {
	Following     bool
	FollowerCount int
}

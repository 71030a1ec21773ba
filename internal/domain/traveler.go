package domain

import "github.com/google/uuid"

// TravelerPost is a public trip as listed on a traveler's profile.
type TravelerPost struct {
	ID          uuid.UUID
	Destination string
	LikesCount  int
}

// TravelerProfile is the public profile of a traveler as seen by a viewer.
type TravelerProfile struct {
	User           SafeUser
	FollowersCount int
	FollowingCount int
	IsFollowing    bool
	IsOwnProfile   bool
	Posts          []TravelerPost
}

// FollowingEntry is one row of a traveler's "following" list.
type FollowingEntry struct {
	User           SafeUser
	FollowersCount int
	IsFollowing    bool
}

// PublicTripView is everything the shared-trip page needs in one read.
type PublicTripView struct {
	Trip                Trip
	Owner               UserRef
	LikesCount          int
	LikedByViewer       bool
	Comments            []CommentView
	OwnerFollowersCount int
	CanFollow           bool
	IsFollowing         bool
}

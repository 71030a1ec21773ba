// Package social turns a snapshot of trips, users, likes and comments into
// the enriched public trip views used by the feed and profile pages.
// Everything here is a pure function over in-memory slices.
package social

import (
	"slices"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
)

// DefaultTopN is how many trips Top returns when asked for n <= 0.
const DefaultTopN = 10

// SortOrder selects how a feed is ordered.
type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortTop    SortOrder = "top"
)

// ParseSort maps a query value to a SortOrder. Anything but "top" is latest.
func ParseSort(s string) SortOrder {
	if s == string(SortTop) {
		return SortTop
	}
	return SortLatest
}

// Names resolves user IDs to display names. A user that does not resolve
// reads as domain.FallbackDisplayName.
type Names map[uuid.UUID]string

// NewNames indexes users by ID.
func NewNames(users []domain.User) Names {
	n := make(Names, len(users))
	for _, u := range users {
		n[u.ID] = u.Name
	}
	return n
}

// Name returns the display name for id.
func (n Names) Name(id uuid.UUID) string {
	if name, ok := n[id]; ok {
		return name
	}
	return domain.FallbackDisplayName
}

// Ref returns the public reference for id.
func (n Names) Ref(id uuid.UUID) domain.UserRef {
	return domain.UserRef{ID: id, Name: n.Name(id)}
}

// BuildTrips keeps the public trips and attaches the owner's display name
// and like and comment counts. Input order is preserved.
func BuildTrips(trips []domain.Trip, users []domain.User, likes []domain.Like, comments []domain.Comment) []domain.SocialTrip {
	names := NewNames(users)

	likeCounts := make(map[uuid.UUID]int, len(likes))
	for _, l := range likes {
		likeCounts[l.TripID]++
	}
	commentCounts := make(map[uuid.UUID]int, len(comments))
	for _, c := range comments {
		commentCounts[c.TripID]++
	}

	out := []domain.SocialTrip{}
	for _, t := range trips {
		if !t.IsPublic {
			continue
		}
		out = append(out, domain.SocialTrip{
			Trip:          t,
			UserName:      names.Name(t.UserID),
			LikesCount:    likeCounts[t.ID],
			CommentsCount: commentCounts[t.ID],
		})
	}
	return out
}

// Sort returns a sorted copy of trips. Latest orders by CreatedAt descending;
// top orders by LikesCount descending with ties broken by CreatedAt descending.
func Sort(trips []domain.SocialTrip, order SortOrder) []domain.SocialTrip {
	sorted := slices.Clone(trips)
	if order == SortTop {
		slices.SortStableFunc(sorted, compareTop)
	} else {
		slices.SortStableFunc(sorted, compareLatest)
	}
	return sorted
}

// Top returns the first n trips of the top ordering. n <= 0 means DefaultTopN.
func Top(trips []domain.SocialTrip, n int) []domain.SocialTrip {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := Sort(trips, SortTop)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func compareLatest(a, b domain.SocialTrip) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

func compareTop(a, b domain.SocialTrip) int {
	if a.LikesCount != b.LikesCount {
		return b.LikesCount - a.LikesCount
	}
	return compareLatest(a, b)
}

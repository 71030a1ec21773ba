// Package domain contains the core data types for the Yatra application.
// Apart from uuid this package has no external dependencies and is imported
// by every other internal package (store, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MaxItineraryDays caps how many days are generated automatically for a trip.
const MaxItineraryDays = 30

// TravelType categorises a trip.
type TravelType string

const (
	TravelSolo    TravelType = "Solo"
	TravelFriends TravelType = "Friends"
	TravelFamily  TravelType = "Family"
	TravelLuxury  TravelType = "Luxury"
)

// Valid reports whether t is one of the known travel types.
func (t TravelType) Valid() bool {
	switch t {
	case TravelSolo, TravelFriends, TravelFamily, TravelLuxury:
		return true
	}
	return false
}

// Trip is the top-level aggregate of the planner; itinerary days belong to a trip.
// StartDate and EndDate are calendar dates held at UTC midnight.
type Trip struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Budget        string
	TravelType    TravelType
	Notes         string
	ItineraryDays []ItineraryDay
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastViewedAt  *time.Time // nil until the owner opens the trip
}

// ItineraryDay is one day of a trip's plan. Activities keep their insertion order.
type ItineraryDay struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Activity is a single planned item within an itinerary day.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TripDraft is the raw input for a new trip. Dates are YYYY-MM-DD strings
// and TravelType is unchecked; the service validates everything.
type TripDraft struct {
	Destination string
	StartDate   string
	EndDate     string
	Budget      string
	TravelType  string
	Notes       string
}

// TripUpdate carries a partial trip edit. Nil fields are left unchanged.
// A non-nil ItineraryDays replaces the whole itinerary; when it is nil and
// either date is supplied, the itinerary is regenerated from the new range.
type TripUpdate struct {
	Destination   *string
	StartDate     *string
	EndDate       *string
	Budget        *string
	TravelType    *string
	Notes         *string
	ItineraryDays *[]ItineraryDay
	IsPublic      *bool
}

// DashboardStats summarises a user's own trips.
type DashboardStats struct {
	TotalTrips     int
	UpcomingTrips  int
	RecentlyViewed *Trip
}

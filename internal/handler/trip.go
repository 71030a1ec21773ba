package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yatra-app/yatra/internal/domain"
)

type createTripRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Budget      string `json:"budget"`
	TravelType  string `json:"travelType"`
	Notes       string `json:"notes"`
}

// updateTripRequest is a partial update. ItineraryDays stays raw so a
// payload of the wrong shape is reported as an itinerary problem rather than
// a malformed body.
type updateTripRequest struct {
	Destination   *string         `json:"destination"`
	StartDate     *string         `json:"startDate"`
	EndDate       *string         `json:"endDate"`
	Budget        *string         `json:"budget"`
	TravelType    *string         `json:"travelType"`
	Notes         *string         `json:"notes"`
	ItineraryDays json.RawMessage `json:"itineraryDays"`
	IsPublic      *bool           `json:"isPublic"`
}

type tripResponse struct {
	Trip Trip `json:"trip"`
}

type tripsResponse struct {
	Trips []Trip `json:"trips"`
}

type dashboardResponse struct {
	TotalTrips     int   `json:"totalTrips"`
	UpcomingTrips  int   `json:"upcomingTrips"`
	RecentlyViewed *Trip `json:"recentlyViewed"`
}

// ListTrips handles GET /api/trips: the caller's trips, newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: tripsToResponse(trips)})
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := s.trips.Create(r.Context(), currentUser(r).ID, domain.TripDraft{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		TravelType:  req.TravelType,
		Notes:       req.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripResponse{Trip: tripToResponse(created)})
}

// GetTrip handles GET /api/trips/{id}. Only the owner may read a trip this
// way; reading it stamps lastViewedAt.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Trip not found.")
		return
	}
	trip, err := s.trips.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripResponse{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /api/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Trip not found.")
		return
	}
	var req updateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	upd, err := req.toDomain()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	updated, err := s.trips.Update(r.Context(), currentUser(r).ID, id, upd)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripResponse{Trip: tripToResponse(updated)})
}

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trips.Dashboard(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := dashboardResponse{TotalTrips: stats.TotalTrips, UpcomingTrips: stats.UpcomingTrips}
	if stats.RecentlyViewed != nil {
		t := tripToResponse(*stats.RecentlyViewed)
		resp.RecentlyViewed = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req updateTripRequest) toDomain() (domain.TripUpdate, error) {
	upd := domain.TripUpdate{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		TravelType:  req.TravelType,
		Notes:       req.Notes,
		IsPublic:    req.IsPublic,
	}
	if len(req.ItineraryDays) > 0 && string(req.ItineraryDays) != "null" {
		var days []domain.ItineraryDay
		if err := json.Unmarshal(req.ItineraryDays, &days); err != nil {
			return domain.TripUpdate{}, fmt.Errorf("%w: Invalid itinerary payload.", domain.ErrValidation)
		}
		upd.ItineraryDays = &days
	}
	return upd, nil
}

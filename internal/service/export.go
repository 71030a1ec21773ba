package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/repo"
)

// ExportService flattens a user's itineraries into export rows.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per activity across ownerID's trips, newest
// trip first. A day with no activities contributes one row with an empty
// activity; a trip with no days contributes one row with empty day fields.
func (s *ExportService) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		base := domain.ExportRow{
			TripID:        trip.ID.String(),
			Destination:   trip.Destination,
			TripStartDate: trip.StartDate.Format(domain.DateLayout),
			TripEndDate:   trip.EndDate.Format(domain.DateLayout),
			TravelType:    string(trip.TravelType),
			Budget:        trip.Budget,
		}

		if len(trip.ItineraryDays) == 0 {
			rows = append(rows, base)
			continue
		}

		for i, day := range trip.ItineraryDays {
			row := base
			row.DayNumber = i + 1
			row.DayTitle = day.Title

			if len(day.Activities) == 0 {
				rows = append(rows, row)
				continue
			}
			for _, a := range day.Activities {
				row.Activity = a.Name
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

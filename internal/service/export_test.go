package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/service"
)

func TestExportService_Export(t *testing.T) {
	full := storedTrip()
	full.ItineraryDays = []domain.ItineraryDay{
		{ID: "d1", Title: "Temples", Activities: []domain.Activity{{ID: "a1", Name: "Kinkaku-ji"}, {ID: "a2", Name: "Ryoan-ji"}}},
		{ID: "d2", Title: "Rest", Activities: []domain.Activity{}},
	}
	bare := storedTrip()
	bare.Destination = "Osaka"
	bare.ItineraryDays = nil

	svc := service.NewExportService(&mockTripRepo{
		listByOwner: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return []domain.Trip{full, bare}, nil
		},
	})

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, full.ID.String(), rows[0].TripID)
	assert.Equal(t, "2025-04-01", rows[0].TripStartDate)
	assert.Equal(t, "2025-04-03", rows[0].TripEndDate)
	assert.Equal(t, "Solo", rows[0].TravelType)
	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, "Kinkaku-ji", rows[0].Activity)
	assert.Equal(t, "Ryoan-ji", rows[1].Activity)

	assert.Equal(t, 2, rows[2].DayNumber)
	assert.Equal(t, "Rest", rows[2].DayTitle)
	assert.Empty(t, rows[2].Activity)

	assert.Equal(t, "Osaka", rows[3].Destination)
	assert.Zero(t, rows[3].DayNumber)
	assert.Empty(t, rows[3].DayTitle)
}

func TestExportService_Export_NoTrips(t *testing.T) {
	svc := service.NewExportService(&mockTripRepo{
		listByOwner: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return nil, nil },
	})

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

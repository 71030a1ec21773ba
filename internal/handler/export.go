package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yatra-app/yatra/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "trip_start_date", "trip_end_date",
	"travel_type", "budget", "day_number", "day_title", "activity",
}

// ExportRow is the JSON form of one export row. Day fields are omitted for
// a trip without days.
type ExportRow struct {
	TripID        uuid.UUID          `json:"tripId"`
	Destination   string             `json:"destination"`
	TripStartDate openapi_types.Date `json:"tripStartDate"`
	TripEndDate   openapi_types.Date `json:"tripEndDate"`
	TravelType    string             `json:"travelType"`
	Budget        string             `json:"budget"`
	DayNumber     *int               `json:"dayNumber,omitempty"`
	DayTitle      *string            `json:"dayTitle,omitempty"`
	Activity      *string            `json:"activity,omitempty"`
}

type exportResponse struct {
	Rows []ExportRow `json:"rows"`
}

// GetExport handles GET /api/trips/export.
// It returns a flat table of every activity across the caller's trips.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, exportResponse{Rows: out})
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer.Write never returns an error.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="yatra-itineraries.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON form.
// Empty day fields become nil pointers (omitempty in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	row := ExportRow{
		TripID:        tripID,
		Destination:   r.Destination,
		TripStartDate: parseDate(r.TripStartDate),
		TripEndDate:   parseDate(r.TripEndDate),
		TravelType:    r.TravelType,
		Budget:        r.Budget,
	}
	if r.DayNumber > 0 {
		n, title, activity := r.DayNumber, r.DayTitle, r.Activity
		row.DayNumber = &n
		row.DayTitle = &title
		if activity != "" {
			row.Activity = &activity
		}
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A trip without days leaves the day columns blank.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	day := ""
	if r.DayNumber > 0 {
		day = strconv.Itoa(r.DayNumber)
	}
	return []string{
		r.TripID,
		r.Destination,
		r.TripStartDate,
		r.TripEndDate,
		r.TravelType,
		r.Budget,
		day,
		r.DayTitle,
		r.Activity,
	}
}

// parseDate parses a "2006-01-02" string into an openapi_types.Date. The
// service always formats dates this way, so a failure yields the zero date.
func parseDate(s string) openapi_types.Date {
	t, _ := time.Parse(domain.DateLayout, s)
	return openapi_types.Date{Time: t}
}

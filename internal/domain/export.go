package domain

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with trip and day
// fields repeated. A day with no activities yields one row with an empty
// Activity; a trip with no days yields one row with empty day fields.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID        string
	Destination   string
	TripStartDate string // "2006-01-02"
	TripEndDate   string
	TravelType    string
	Budget        string

	// Day and activity fields; empty when the trip or day has none.
	DayNumber int
	DayTitle  string
	Activity  string
}

package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yatra-app/yatra/internal/domain"
)

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if !dateOnly.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BuildItinerary returns one empty day per calendar day from start to end
// inclusive, capped at domain.MaxItineraryDays. An unparseable or inverted
// range yields a single day.
func BuildItinerary(start, end string) []domain.ItineraryDay {
	s, okStart := ParseDate(start)
	e, okEnd := ParseDate(end)

	n := 1
	if okStart && okEnd && !e.Before(s) {
		n = int(e.Sub(s).Hours()/24) + 1
		n = min(max(n, 1), domain.MaxItineraryDays)
	}

	days := make([]domain.ItineraryDay, n)
	for i := range days {
		days[i] = domain.ItineraryDay{
			ID:         uuid.NewString(),
			Title:      dayTitle(i),
			Activities: []domain.Activity{},
		}
	}
	return days
}

// NormalizeItinerary cleans a client-supplied itinerary: blank titles become
// "Day N", missing IDs are generated and activities with blank names are
// dropped.
func NormalizeItinerary(days []domain.ItineraryDay) []domain.ItineraryDay {
	out := make([]domain.ItineraryDay, 0, len(days))
	for i, d := range days {
		day := domain.ItineraryDay{
			ID:         d.ID,
			Title:      strings.TrimSpace(d.Title),
			Activities: []domain.Activity{},
		}
		if strings.TrimSpace(day.ID) == "" {
			day.ID = uuid.NewString()
		}
		if day.Title == "" {
			day.Title = dayTitle(i)
		}
		for _, a := range d.Activities {
			name := strings.TrimSpace(a.Name)
			if name == "" {
				continue
			}
			id := a.ID
			if strings.TrimSpace(id) == "" {
				id = uuid.NewString()
			}
			day.Activities = append(day.Activities, domain.Activity{ID: id, Name: name})
		}
		out = append(out, day)
	}
	return out
}

func dayTitle(i int) string {
	return "Day " + strconv.Itoa(i+1)
}

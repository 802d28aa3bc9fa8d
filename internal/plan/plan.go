package plan

import (
	"errors"
	"fmt"
)

// TripRequest describes the constraints a plan is built from.
type TripRequest struct {
	Destination  string   `json:"destination"`
	Budget       string   `json:"budget"`
	DurationDays int      `json:"durationDays"`
	Interests    []string `json:"interests"`
}

// Attraction is a single suggested sight within a day.
type Attraction struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Neighborhood string `json:"neighborhood"`
	Notes        string `json:"notes"`
}

// Restaurant is a single suggested place to eat within a day.
type Restaurant struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Notes   string `json:"notes"`
}

// DayPlan is one day of an itinerary. Empty attraction/restaurant lists are valid.
type DayPlan struct {
	Day         int          `json:"day"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Morning     string       `json:"morning"`
	Afternoon   string       `json:"afternoon"`
	Evening     string       `json:"evening"`
	Attractions []Attraction `json:"attractions"`
	Restaurants []Restaurant `json:"restaurants"`
	Transport   string       `json:"transport"`
}

// Plan is the full multi-day itinerary document. This is the shape persisted
// in the database and the shape generative backends are instructed to emit.
type Plan struct {
	Destination  string    `json:"destination"`
	Budget       string    `json:"budget"`
	DurationDays int       `json:"durationDays"`
	Interests    []string  `json:"interests"`
	Days         []DayPlan `json:"days"`
}

// ErrNoDays is returned by Validate when a candidate plan has no days.
var ErrNoDays = errors.New("plan has no days")

// Validate checks the structural shape of a candidate plan.
// A candidate is valid when days is non-empty and durationDays either matches
// len(days) or is zero, in which case it is derived from len(days).
// Validation is structural only; it does not judge the content of days.
func Validate(p Plan) (Plan, error) {
	if len(p.Days) == 0 {
		return Plan{}, ErrNoDays
	}
	if p.DurationDays == 0 {
		p.DurationDays = len(p.Days)
		return p, nil
	}
	if p.DurationDays != len(p.Days) {
		return Plan{}, fmt.Errorf("plan durationDays %d does not match %d days", p.DurationDays, len(p.Days))
	}
	return p, nil
}

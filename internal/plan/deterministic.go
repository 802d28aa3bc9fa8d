package plan

import (
	"fmt"
	"strings"
	"unicode"
)

// BuildPlan produces an itinerary from static pools with no external calls.
// It is pure and total: deterministic for identical inputs, never fails, and
// always returns exactly req.DurationDays days numbered from 1. It is the
// availability floor behind every generative path.
func BuildPlan(req TripRequest) Plan {
	normalized := make([]string, 0, len(req.Interests))
	for _, s := range req.Interests {
		normalized = append(normalized, strings.ToLower(s))
	}
	if len(normalized) == 0 {
		normalized = []string{fallbackInterest}
	}

	days := make([]DayPlan, 0, req.DurationDays)
	for i := 0; i < req.DurationDays; i++ {
		focus := normalized[i%len(normalized)]
		pool, ok := interestPools[focus]
		if !ok {
			pool = interestPools[fallbackInterest]
		}

		// The +1/+2 offsets rotate picks so consecutive days on the same
		// focus do not repeat the same pair.
		attractions := pickAttractions(pool.attractions, i, i+1)
		restaurants := pickRestaurants(pool.restaurants, i, i+2)

		days = append(days, DayPlan{
			Day:         i + 1,
			Title:       fmt.Sprintf("Day %d in %s: %s", i+1, req.Destination, capitalize(focus)),
			Summary:     fmt.Sprintf("Explore %s with a %s budget, focusing on %s.", req.Destination, strings.ToLower(req.Budget), capitalize(focus)),
			Morning:     "Morning walk and first site visit.",
			Afternoon:   "Afternoon activity tailored to interests.",
			Evening:     "Evening option such as show or night stroll.",
			Attractions: attractions,
			Restaurants: restaurants,
			Transport:   pool.transport,
		})
	}

	return Plan{
		Destination:  req.Destination,
		Budget:       req.Budget,
		DurationDays: req.DurationDays,
		Interests:    req.Interests,
		Days:         days,
	}
}

func pickAttractions(pool []Attraction, idxs ...int) []Attraction {
	out := make([]Attraction, 0, len(idxs))
	for _, i := range idxs {
		if len(pool) == 0 {
			continue
		}
		out = append(out, pool[i%len(pool)])
	}
	return out
}

func pickRestaurants(pool []Restaurant, idxs ...int) []Restaurant {
	out := make([]Restaurant, 0, len(idxs))
	for _, i := range idxs {
		if len(pool) == 0 {
			continue
		}
		out = append(out, pool[i%len(pool)])
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

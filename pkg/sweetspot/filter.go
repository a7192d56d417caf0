// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package sweetspot

import (
	"log"
	"math"
	"slices"
	"strings"

	"SweetspotFinder/pkg/civiltime"
	"SweetspotFinder/pkg/shared"
)

const (
	maintenanceMarker = "banunderhåll"
	fullDisplay       = "full"
)

var fullyBookedNames = map[string]bool{
	"fullbokad":  true,
	"fullbokat":  true,
	"fullbokade": true,
}

// Query holds the user's search criteria for one course and date.
type Query struct {
	MinSlots int
	// After and Before are minutes since midnight; nil means unbounded.
	After  *int
	Before *int
}

// Filter turns raw records into bookable slots sorted by local time.
// Records that are blocked, malformed or outside the query are dropped.
func Filter(r civiltime.Resolver, records []Record, q Query) []shared.TeeTimeSlot {
	slots := make([]shared.TeeTimeSlot, 0, len(records))
	for _, rec := range records {
		if blocked(rec) {
			continue
		}
		if rec.Start == "" {
			log.Printf("[Sweetspot] skipping tee time without start: %q", rec.Name)
			continue
		}
		local, err := civiltime.LocalTimeOf(r, rec.Start)
		if err != nil {
			log.Printf("[Sweetspot] skipping tee time: %v", err)
			continue
		}
		slots = append(slots, shared.TeeTimeSlot{Time: local, AvailableSpots: rec.Slots()})
	}
	return FilterSlots(slots, q)
}

// FilterSlots applies the time window and group size, then sorts by time.
// Slots with equal times keep their input order.
func FilterSlots(slots []shared.TeeTimeSlot, q Query) []shared.TeeTimeSlot {
	out := make([]shared.TeeTimeSlot, 0, len(slots))
	for _, s := range slots {
		if !inWindow(s.Time, q) {
			continue
		}
		if s.AvailableSpots < q.MinSlots {
			continue
		}
		out = append(out, s)
	}

	slices.SortStableFunc(out, func(a, b shared.TeeTimeSlot) int {
		return sortKey(a) - sortKey(b)
	})
	return out
}

// blocked reports whether the category marks the tee time as unavailable.
func blocked(rec Record) bool {
	name := normalise(rec.Name)
	switch cat := rec.Category.(type) {
	case LegacyCategory:
		return name == maintenanceMarker || normalise(cat.Raw) == maintenanceMarker
	case StructuredCategory:
		switch {
		case normalise(cat.Name) == maintenanceMarker,
			normalise(cat.CustomName) == maintenanceMarker,
			name == maintenanceMarker:
			return true
		case normalise(cat.Display) == fullDisplay:
			return true
		case fullyBookedNames[normalise(cat.CustomName)]:
			return true
		case cat.Bookable != nil && !*cat.Bookable:
			return true
		}
		return false
	default:
		return name == maintenanceMarker
	}
}

func inWindow(t civiltime.ClockTime, q Query) bool {
	if !t.Valid() {
		return false
	}
	m := t.Minutes()
	if q.After != nil && m < *q.After {
		return false
	}
	if q.Before != nil && m > *q.Before {
		return false
	}
	return true
}

func sortKey(s shared.TeeTimeSlot) int {
	if !s.Time.Valid() {
		return math.MaxInt32
	}
	return s.Time.Minutes()
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package civiltime

import (
	"log"
	"time"
)

// ZoneName is the civil timezone every tee time is expressed in.
const ZoneName = "Europe/Stockholm"

// swapped out in tests to simulate a missing timezone database
var loadLocation = time.LoadLocation

// Resolver answers which UTC offset applies in Swedish local time.
type Resolver interface {
	// OffsetHours is the offset in force for the civil day d.
	OffsetHours(d Date) int
	// In returns t as a Swedish wall clock time.
	In(t time.Time) time.Time
	// Source names the strategy, for logging.
	Source() string
}

// NewResolver probes the timezone database once. When Europe/Stockholm
// cannot be loaded it falls back to the calendar rule without reporting an
// error.
func NewResolver() Resolver {
	loc, err := loadLocation(ZoneName)
	if err != nil || loc == nil {
		log.Printf("[civiltime] timezone database unavailable (%v), using calendar DST rule", err)
		return NewCalendarResolver()
	}
	return NewZoneResolver(loc)
}

// NewZoneResolver resolves offsets from a loaded location.
func NewZoneResolver(loc *time.Location) Resolver {
	return zoneResolver{loc: loc}
}

// NewCalendarResolver resolves offsets from the last-Sunday DST rule.
func NewCalendarResolver() Resolver {
	return calendarResolver{}
}

type zoneResolver struct {
	loc *time.Location
}

// OffsetHours takes the offset at local midnight of d.
func (z zoneResolver) OffsetHours(d Date) int {
	_, secs := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, z.loc).Zone()
	return secs / 3600
}

func (z zoneResolver) In(t time.Time) time.Time { return t.In(z.loc) }

func (z zoneResolver) Source() string { return "tzdata:" + z.loc.String() }

type calendarResolver struct{}

func (calendarResolver) OffsetHours(d Date) int { return CalendarOffsetHours(d) }

// In picks the offset whose resulting local date agrees with it. Around the
// spring boundary both candidates agree and summer time wins; around the
// autumn boundary neither may agree and the UTC date decides.
func (calendarResolver) In(t time.Time) time.Time {
	t = t.UTC()
	for _, h := range []int{summerOffsetHours, winterOffsetHours} {
		wall := t.Add(time.Duration(h) * time.Hour)
		if CalendarOffsetHours(DateOf(wall)) == h {
			return t.In(fixedZone(h))
		}
	}
	return t.In(fixedZone(CalendarOffsetHours(DateOf(t))))
}

func (calendarResolver) Source() string { return "calendar" }

func fixedZone(hours int) *time.Location {
	name := "CET"
	if hours == summerOffsetHours {
		name = "CEST"
	}
	return time.FixedZone(name, hours*3600)
}

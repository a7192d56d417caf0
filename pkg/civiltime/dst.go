// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package civiltime

import "time"

const (
	winterOffsetHours = 1
	summerOffsetHours = 2
)

// DSTTransitions holds the two whole-day boundaries of Swedish summer time.
type DSTTransitions struct {
	SpringForward Date
	FallBack      Date
}

// LastSunday returns the day-of-month of the last Sunday in month.
func LastSunday(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	back := (int(last.Weekday()) - int(time.Sunday) + 7) % 7
	return last.Day() - back
}

// Transitions computes the summer time interval for year: the last Sunday
// of March to the last Sunday of October.
func Transitions(year int) DSTTransitions {
	return DSTTransitions{
		SpringForward: Date{Year: year, Month: time.March, Day: LastSunday(year, time.March)},
		FallBack:      Date{Year: year, Month: time.October, Day: LastSunday(year, time.October)},
	}
}

// Contains reports whether d falls inside the interval, both ends included.
func (t DSTTransitions) Contains(d Date) bool {
	return !d.Before(t.SpringForward) && !d.After(t.FallBack)
}

// CalendarOffsetHours approximates the UTC offset of Swedish local time on
// d without a timezone database. Transitions are whole-day boundaries and
// historical rule changes are ignored.
func CalendarOffsetHours(d Date) int {
	if Transitions(d.Year).Contains(d) {
		return summerOffsetHours
	}
	return winterOffsetHours
}

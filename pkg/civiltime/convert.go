// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package civiltime

import (
	"fmt"
	"strings"
	"time"
)

// layouts without a zone designator are read as UTC
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// ParseInstant reads an API timestamp, with or without a UTC designator.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable instant %q", s)
}

// LocalTimeOf converts an API timestamp to the Swedish wall clock.
func LocalTimeOf(r Resolver, s string) (ClockTime, error) {
	t, err := ParseInstant(s)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockOf(r.In(t)), nil
}

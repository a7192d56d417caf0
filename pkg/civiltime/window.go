// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package civiltime

import "time"

// InstantLayout is the wire format of the booking API: UTC, milliseconds.
const InstantLayout = "2006-01-02T15:04:05.000Z"

// Window is the inclusive UTC range covering one Swedish civil day.
type Window struct {
	Date  Date
	Start time.Time
	End   time.Time
}

// UTCWindow maps local midnight-to-midnight of d onto UTC. A single offset,
// the one r reports for d, is used for the whole day even when the day
// contains a DST switch.
func UTCWindow(r Resolver, d Date) Window {
	offset := time.Duration(r.OffsetHours(d)) * time.Hour
	start := d.midnightUTC().Add(-offset)
	return Window{
		Date:  d,
		Start: start,
		End:   start.Add(24*time.Hour - time.Millisecond),
	}
}

// Bounds returns the window formatted for the API query string.
func (w Window) Bounds() (after, before string) {
	return FormatInstant(w.Start), FormatInstant(w.End)
}

// FormatInstant renders t in UTC with millisecond precision.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

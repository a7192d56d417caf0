package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTCWindow(t *testing.T) {
	cases := []struct {
		date       string
		wantAfter  string
		wantBefore string
	}{
		{"2024-01-10", "2024-01-09T23:00:00.000Z", "2024-01-10T22:59:59.999Z"},
		{"2024-06-15", "2024-06-14T22:00:00.000Z", "2024-06-15T21:59:59.999Z"},
		{"2024-03-31", "2024-03-30T22:00:00.000Z", "2024-03-31T21:59:59.999Z"},
		{"2024-10-28", "2024-10-27T23:00:00.000Z", "2024-10-28T22:59:59.999Z"},
		{"2025-01-01", "2024-12-31T23:00:00.000Z", "2025-01-01T22:59:59.999Z"},
	}
	r := NewCalendarResolver()
	for _, c := range cases {
		t.Run(c.date, func(t *testing.T) {
			d, err := ParseDate(c.date)
			require.NoError(t, err)

			w := UTCWindow(r, d)
			after, before := w.Bounds()
			assert.Equal(t, c.wantAfter, after)
			assert.Equal(t, c.wantBefore, before)
			assert.Equal(t, 24*time.Hour-time.Millisecond, w.End.Sub(w.Start))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-03-31 ")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.March, 31}, d)
	assert.Equal(t, "2024-03-31", d.String())

	for _, bad := range []string{"", "31-03-2024", "2024-02-30", "2024-3-31x"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

// The window of every day converts back to 00:00 and 23:59.
func TestWindowRoundTripCalendar(t *testing.T) {
	r := NewCalendarResolver()
	dayBeforeSpring := Transitions(2024).SpringForward.AddDays(-1)

	for d := (Date{2024, time.January, 1}); d.Year == 2024; d = d.AddDays(1) {
		w := UTCWindow(r, d)

		start, err := LocalTimeOf(r, FormatInstant(w.Start))
		require.NoError(t, err)
		require.Equal(t, "00:00", start.String(), "start of %s", d)

		// the evening before spring-forward overlaps the next day's window
		if d == dayBeforeSpring {
			continue
		}
		end, err := LocalTimeOf(r, FormatInstant(w.End))
		require.NoError(t, err)
		require.Equal(t, "23:59", end.String(), "end of %s", d)
	}
}

func TestWindowRoundTripZone(t *testing.T) {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		t.Skipf("timezone database not available: %v", err)
	}
	r := NewZoneResolver(loc)
	tr := Transitions(2024)

	for d := (Date{2024, time.January, 1}); d.Year == 2024; d = d.AddDays(1) {
		w := UTCWindow(r, d)

		start, err := LocalTimeOf(r, FormatInstant(w.Start))
		require.NoError(t, err)
		require.Equal(t, "00:00", start.String(), "start of %s", d)

		// one offset per day: the end is off by an hour on switch days
		if d == tr.SpringForward || d == tr.FallBack {
			continue
		}
		end, err := LocalTimeOf(r, FormatInstant(w.End))
		require.NoError(t, err)
		require.Equal(t, "23:59", end.String(), "end of %s", d)
	}
}

package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"SweetspotFinder/pkg/civiltime"
	"SweetspotFinder/pkg/shared"
	"SweetspotFinder/pkg/sweetspot"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []searchResult {
	day := civiltime.Date{Year: 2024, Month: time.June, Day: 15}
	return []searchResult{
		{
			Job: searchJob{Course: sweetspot.Course{Name: "stannum"}, Date: day},
			Slots: []shared.TeeTimeSlot{
				{Time: civiltime.ClockTime{Hour: 7, Minute: 30}, AvailableSpots: 4},
			},
		},
		{Job: searchJob{Course: sweetspot.Course{Name: "bodaholm"}, Date: day}},
		{Job: searchJob{Course: sweetspot.Course{Name: "riksten"}, Date: day}, Err: errors.New("timeout")},
	}
}

func TestPagerLines(t *testing.T) {
	lines := pagerLines(sampleResults(), false)
	assert.Equal(t, []string{
		"Stannum:",
		"07:30  slots:4",
		"Bodaholm:",
		"no match found for Bodaholm",
		"Riksten:",
		"Error: timeout",
	}, lines)

	withDates := pagerLines(sampleResults()[:1], true)
	assert.Equal(t, "Stannum 2024-06-15:", withDates[0])
}

func TestPagerModel(t *testing.T) {
	m := newPagerModel(pagerLines(sampleResults(), false))
	view := m.View()
	assert.Contains(t, view, "  • Stannum:")
	assert.Contains(t, view, "    • 07:30  slots:4")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, "No available tee times\n", newPagerModel(nil).View())
}

func TestProgressModel(t *testing.T) {
	m := newPB(2)

	next, cmd := m.Update(pbMsg(1))
	assert.Equal(t, 1, next.(pbModel).done)
	assert.NotNil(t, cmd)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(pbModel).cancelled)
}

func TestSpinnerModel(t *testing.T) {
	want := sampleResults()[0]
	m := newSpinnerModel("Searching...", func() searchResult { return want })
	assert.True(t, strings.Contains(m.View(), "Searching..."))

	next, cmd := m.Update(searchDoneMsg{result: want})
	sm := next.(spinModel)
	assert.True(t, sm.done)
	assert.Equal(t, want, sm.result)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPickCourse(t *testing.T) {
	courses := sweetspot.DefaultCourses()
	got := pickCourse(courses, "Lindö Park")
	require.Len(t, got, 1)
	assert.Equal(t, "lindö park", got[0].Name)

	assert.Len(t, pickCourse(courses, "Nowhere"), len(courses))
}

package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SweetspotFinder/pkg/civiltime"
	"SweetspotFinder/pkg/sweetspot"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores the search flags after a test changes them.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := []any{players, specifiedDate, courseName, afterTime, beforeTime, interactive}
	players, specifiedDate, courseName, afterTime, beforeTime, interactive = 1, "", "", "", "", false
	t.Cleanup(func() {
		players = saved[0].(int)
		specifiedDate = saved[1].(string)
		courseName = saved[2].(string)
		afterTime = saved[3].(string)
		beforeTime = saved[4].(string)
		interactive = saved[5].(bool)
	})
}

type fakeFetcher struct {
	records map[string][]sweetspot.Record
	errs    map[string]error
	windows []civiltime.Window
}

func (f *fakeFetcher) FetchTeeTimes(courseID string, w civiltime.Window) ([]sweetspot.Record, error) {
	f.windows = append(f.windows, w)
	if err := f.errs[courseID]; err != nil {
		return nil, err
	}
	return f.records[courseID], nil
}

func teeTime(from string, slots string) sweetspot.Record {
	return sweetspot.Record{Start: from, AvailableSlots: []byte(slots), Category: sweetspot.StructuredCategory{}}
}

func TestParseDates(t *testing.T) {
	today := civiltime.Date{Year: 2024, Month: time.June, Day: 15}

	t.Run("Default is today", func(t *testing.T) {
		dates, err := parseDates("", today)
		require.NoError(t, err)
		assert.Equal(t, []civiltime.Date{today}, dates)
	})

	t.Run("Comma separated list", func(t *testing.T) {
		dates, err := parseDates(" 2024-06-15, ,2024-06-16 ", today)
		require.NoError(t, err)
		require.Len(t, dates, 2)
		assert.Equal(t, "2024-06-16", dates[1].String())
	})

	t.Run("Invalid date", func(t *testing.T) {
		_, err := parseDates("2024-06-15,15-06", today)
		assert.Error(t, err)
	})
}

func TestParseTimeFlag(t *testing.T) {
	t.Run("Test Valid times", func(t *testing.T) {
		m, err := parseTimeFlag("after", "09:30")
		require.NoError(t, err)
		require.NotNil(t, m)
		// 09:30 -> 9*60 + 30 = 570
		assert.Equal(t, 570, *m)
	})

	t.Run("Test Empty time", func(t *testing.T) {
		m, err := parseTimeFlag("after", " ")
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("Test Invalid times", func(t *testing.T) {
		m, err := parseTimeFlag("before", "25:99")
		assert.Error(t, err, "should return an error for invalid time format")
		assert.Contains(t, err.Error(), "--before")
		assert.Nil(t, m)
	})
}

func TestBuildRequest(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	r := civiltime.NewCalendarResolver()

	t.Run("Defaults", func(t *testing.T) {
		resetFlags(t)
		req, err := buildRequest(r, DefaultConfig(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, req.Query.MinSlots)
		assert.Nil(t, req.Query.After)
		assert.Equal(t, []civiltime.Date{{Year: 2024, Month: time.June, Day: 15}}, req.Dates)
		assert.Len(t, req.Courses, len(sweetspot.DefaultCourses()))
	})

	t.Run("Today follows Swedish midnight", func(t *testing.T) {
		resetFlags(t)
		late := time.Date(2024, time.June, 15, 22, 30, 0, 0, time.UTC)
		req, err := buildRequest(r, DefaultConfig(), late)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-16", req.Dates[0].String())
	})

	t.Run("Single course and window", func(t *testing.T) {
		resetFlags(t)
		players, courseName, afterTime, beforeTime = 3, "stannum", "07:00", "10:30"
		req, err := buildRequest(r, DefaultConfig(), now)
		require.NoError(t, err)
		require.Len(t, req.Courses, 1)
		assert.Equal(t, "c4d2c938-43d7-4b07-9ddc-c679c769d28c", req.Courses[0].ID)
		assert.Equal(t, 3, req.Query.MinSlots)
		assert.Equal(t, 420, *req.Query.After)
		assert.Equal(t, 630, *req.Query.Before)
	})

	t.Run("Blacklisted courses are skipped", func(t *testing.T) {
		resetFlags(t)
		cfg := DefaultConfig()
		cfg.Courses[0].Blacklisted = true
		req, err := buildRequest(r, cfg, now)
		require.NoError(t, err)
		assert.Len(t, req.Courses, len(cfg.Courses)-1)
		assert.NotEqual(t, cfg.Courses[0].ID, req.Courses[0].ID)
	})

	t.Run("Invalid group size", func(t *testing.T) {
		resetFlags(t)
		players = 5
		_, err := buildRequest(r, DefaultConfig(), now)
		assert.Error(t, err)
	})

	t.Run("Unknown course", func(t *testing.T) {
		resetFlags(t)
		courseName = "augusta"
		_, err := buildRequest(r, DefaultConfig(), now)
		var unknown *sweetspot.UnknownCourseError
		assert.True(t, errors.As(err, &unknown))
	})
}

func TestRunSearch(t *testing.T) {
	resetFlags(t)
	specifiedDate = "2024-06-15"
	players = 2

	cfg := &Config{Courses: []CourseInfo{
		{Name: "stannum", ID: "c4d2c938-43d7-4b07-9ddc-c679c769d28c"},
		{Name: "kings course", ID: "c006a958-4c27-4a58-9442-627a7aebc843"},
		{Name: "lindö äng", ID: "6ec41746-b529-46bc-ac81-514095105d54"},
	}}
	cfg.Normalize()

	fetcher := &fakeFetcher{
		records: map[string][]sweetspot.Record{
			"c4d2c938-43d7-4b07-9ddc-c679c769d28c": {
				teeTime("2024-06-15T08:00:00.000Z", `4`),
				teeTime("2024-06-15T06:10:00.000Z", `"2"`),
				teeTime("2024-06-15T07:00:00.000Z", `1`),
			},
		},
		errs: map[string]error{
			"c006a958-4c27-4a58-9442-627a7aebc843": errors.New("tee-times request failed with status 503"),
		},
	}

	var out bytes.Buffer
	err := runSearch(&out, fetcher, civiltime.NewCalendarResolver(), cfg)
	require.NoError(t, err, "a failing course must not abort the run")

	got := out.String()
	assert.Contains(t, got, "Stannum\n  08:10  slots:2\n  10:00  slots:4\n")
	assert.NotContains(t, got, "09:00")
	assert.Contains(t, got, "Kings Course\nError: tee-times request failed with status 503")
	assert.Contains(t, got, "Lindö Äng\nno match found for Lindö Äng")

	// courses are printed in table order
	assert.Less(t, strings.Index(got, "Stannum"), strings.Index(got, "Kings Course"))
	assert.Less(t, strings.Index(got, "Kings Course"), strings.Index(got, "Lindö Äng"))

	require.Len(t, fetcher.windows, 3)
	after, before := fetcher.windows[0].Bounds()
	assert.Equal(t, "2024-06-14T22:00:00.000Z", after)
	assert.Equal(t, "2024-06-15T21:59:59.999Z", before)
}

func TestRunSearch_MultipleDates(t *testing.T) {
	resetFlags(t)
	specifiedDate = "2024-06-15,2024-06-16"
	courseName = "bodaholm"

	fetcher := &fakeFetcher{}
	var out bytes.Buffer
	require.NoError(t, runSearch(&out, fetcher, civiltime.NewCalendarResolver(), DefaultConfig()))

	got := out.String()
	assert.Equal(t, 2, strings.Count(got, "no match found for Bodaholm"))
	assert.Less(t, strings.Index(got, "2024-06-15"), strings.Index(got, "2024-06-16"))
	require.Len(t, fetcher.windows, 2)
	assert.Equal(t, "2024-06-16", fetcher.windows[1].Date.String())
}

func TestRootCommand_Offline(t *testing.T) {
	resetFlags(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tee-times" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"from":"2024-06-15T07:00:00.000Z","available_slots":4,"category":{"name":"Greenfee"}},
			{"from":"2024-06-15T06:00:00.000Z","available_slots":4,"category":{"display":"full"}}
		]}`))
	}))
	defer server.Close()

	original := configPath
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	defer func() { configPath = original }()

	cfg := &Config{
		APIOrigin: server.URL,
		Courses:   []CourseInfo{{Name: "riksten", ID: "19ceb886-66ed-4489-9ddd-6e86642a22be"}},
	}
	cfg.Normalize()
	require.NoError(t, saveConfig(cfg))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"-d", "2024-06-15", "-m", "2", "-a", "08:00", "-b", "09:00"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Riksten\n  09:00  slots:4\n")
	assert.NotContains(t, out.String(), "08:00  slots")
}

func TestMain(m *testing.M) {
	// keep the real config directory out of test runs
	configPath = filepath.Join(os.TempDir(), "SweetspotFinder_test", "config.yaml")
	// plain output regardless of the terminal running the tests
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

package cmd

import (
	"fmt"
	"io"

	"SweetspotFinder/pkg/civiltime"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Swedish)

func courseTitle(name string) string {
	return titleCaser.String(name)
}

func slotLine(r searchResult, i int) string {
	s := r.Slots[i]
	return fmt.Sprintf("%s  slots:%d", s.Time, s.AvailableSpots)
}

func noMatchLine(title string) string {
	return "no match found for " + title
}

func printDateHeader(out io.Writer, d civiltime.Date) {
	fmt.Fprintf(out, "\n%s\n", successStyle.Render(d.String()))
}

// printResult writes the course title followed by its slots, a no-match
// line or the error for that course.
func printResult(out io.Writer, r searchResult) {
	title := courseTitle(r.Job.Course.Name)
	fmt.Fprintf(out, "\n%s\n", titleStyle.Render(title))

	switch {
	case r.Err != nil:
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error: %v", r.Err)))
	case len(r.Slots) == 0:
		fmt.Fprintln(out, noMatchLine(title))
	default:
		for i := range r.Slots {
			fmt.Fprintln(out, "  "+slotLine(r, i))
		}
	}
}

// pagerLines flattens results for the pager; headers end with ':'.
func pagerLines(results []searchResult, multiDate bool) []string {
	var lines []string
	for _, r := range results {
		title := courseTitle(r.Job.Course.Name)
		if multiDate {
			title += " " + r.Job.Date.String()
		}
		lines = append(lines, title+":")

		switch {
		case r.Err != nil:
			lines = append(lines, errorStyle.Render(fmt.Sprintf("Error: %v", r.Err)))
		case len(r.Slots) == 0:
			lines = append(lines, noMatchLine(courseTitle(r.Job.Course.Name)))
		default:
			for i := range r.Slots {
				lines = append(lines, slotLine(r, i))
			}
		}
	}
	return lines
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"SweetspotFinder/pkg/civiltime"
	"SweetspotFinder/pkg/sweetspot"

	tea "github.com/charmbracelet/bubbletea"
)

const allCourses = "All courses"

// runInteractive lets the user pick a course when none was given, shows
// progress while searching and pages through the results.
func runInteractive(out io.Writer, fetcher teeTimeFetcher, resolver civiltime.Resolver, req searchRequest) error {
	if strings.TrimSpace(courseName) == "" {
		options := []string{allCourses}
		for _, c := range req.Courses {
			options = append(options, courseTitle(c.Name))
		}

		choice, ok, err := selectFromList("Select a course", options)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Exiting SweetspotFinder... Goodbye!")
			return nil
		}
		if choice != allCourses {
			req.Courses = pickCourse(req.Courses, choice)
		}
	}

	jobs := req.Jobs()
	run := func(j searchJob) searchResult { return search(fetcher, resolver, j, req.Query) }

	var (
		results   []searchResult
		cancelled bool
		err       error
	)
	if len(jobs) == 1 {
		results, cancelled, err = runWithSpinner(jobs[0], run)
	} else {
		results, cancelled, err = runWithProgress(jobs, run)
	}
	if err != nil {
		return err
	}
	if cancelled {
		fmt.Fprintln(out, "Search cancelled.")
		return nil
	}

	_, err = tea.NewProgram(newPagerModel(pagerLines(results, len(req.Dates) > 1))).Run()
	return err
}

func pickCourse(courses []sweetspot.Course, title string) []sweetspot.Course {
	for _, c := range courses {
		if courseTitle(c.Name) == title {
			return []sweetspot.Course{c}
		}
	}
	return courses
}

func runWithSpinner(job searchJob, run func(searchJob) searchResult) ([]searchResult, bool, error) {
	msg := fmt.Sprintf("Searching %s on %s...", courseTitle(job.Course.Name), job.Date)
	res, err := tea.NewProgram(newSpinnerModel(msg, func() searchResult { return run(job) })).Run()
	if err != nil {
		return nil, false, err
	}

	m := res.(spinModel)
	if m.cancelled {
		return nil, true, nil
	}
	return []searchResult{m.result}, false, nil
}

func runWithProgress(jobs []searchJob, run func(searchJob) searchResult) ([]searchResult, bool, error) {
	results := make([]searchResult, len(jobs))
	p := tea.NewProgram(newPB(len(jobs)))

	go func() {
		for i, j := range jobs {
			results[i] = run(j)
			p.Send(pbMsg(i + 1))
		}
	}()

	res, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	if res.(pbModel).cancelled {
		return nil, true, nil
	}
	return results, false, nil
}

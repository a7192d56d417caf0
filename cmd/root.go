package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"SweetspotFinder/pkg/civiltime"
	"SweetspotFinder/pkg/shared"
	"SweetspotFinder/pkg/sweetspot"

	"github.com/spf13/cobra"
)

// Global variables
var (
	players       int
	specifiedDate string
	courseName    string
	afterTime     string
	beforeTime    string
	interactive   bool
)

var logFile *os.File

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "SweetspotFinder",
	Short: "A CLI tool for finding golf tee times on Sweetspot",
	Long: `SweetspotFinder looks up open tee times on Sweetspot courses for one or
more dates and prints the times that fit your group and time window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		f, err := setupLogging()
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		logFile = f
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		resolver := civiltime.NewResolver()
		log.Printf("timezone source: %s", resolver.Source())
		return runSearch(cmd.OutOrStdout(), cfg.newClient(), resolver, cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Write a debug log next to the config file")

	rootCmd.Flags().IntVarP(&players, "players", "m", 1, "Group size (1-4)")
	rootCmd.Flags().StringVarP(&specifiedDate, "dates", "d", "", "Comma-separated dates YYYY-MM-DD (default: today)")
	rootCmd.Flags().StringVarP(&courseName, "course", "c", "", "Single course name or UUID (default: all courses)")
	rootCmd.Flags().StringVarP(&afterTime, "after", "a", "", "Earliest time HH:MM to include")
	rootCmd.Flags().StringVarP(&beforeTime, "before", "b", "", "Latest time HH:MM to include")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a course from a list and page through the results")

	rootCmd.AddCommand(versionCmd(os.Stdout))
}

// teeTimeFetcher is satisfied by *sweetspot.Client.
type teeTimeFetcher interface {
	FetchTeeTimes(courseID string, w civiltime.Window) ([]sweetspot.Record, error)
}

type searchJob struct {
	Course sweetspot.Course
	Date   civiltime.Date
}

type searchResult struct {
	Job   searchJob
	Slots []shared.TeeTimeSlot
	Err   error
}

type searchRequest struct {
	Dates   []civiltime.Date
	Courses []sweetspot.Course
	Query   sweetspot.Query
}

// Jobs lists every course for the first date, then every course for the next.
func (r searchRequest) Jobs() []searchJob {
	jobs := make([]searchJob, 0, len(r.Dates)*len(r.Courses))
	for _, d := range r.Dates {
		for _, c := range r.Courses {
			jobs = append(jobs, searchJob{Course: c, Date: d})
		}
	}
	return jobs
}

func runSearch(out io.Writer, fetcher teeTimeFetcher, resolver civiltime.Resolver, cfg *Config) error {
	req, err := buildRequest(resolver, cfg, time.Now())
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(out, fetcher, resolver, req)
	}

	multiDate := len(req.Dates) > 1
	var lastDate civiltime.Date
	for _, job := range req.Jobs() {
		if multiDate && job.Date != lastDate {
			printDateHeader(out, job.Date)
			lastDate = job.Date
		}
		printResult(out, search(fetcher, resolver, job, req.Query))
	}
	return nil
}

// search handles one course and date. Errors stay with the result so the
// remaining pairs still run.
func search(fetcher teeTimeFetcher, resolver civiltime.Resolver, job searchJob, q sweetspot.Query) searchResult {
	w := civiltime.UTCWindow(resolver, job.Date)
	records, err := fetcher.FetchTeeTimes(job.Course.ID, w)
	if err != nil {
		log.Printf("fetch %s on %s failed: %v", job.Course.Name, job.Date, err)
		return searchResult{Job: job, Err: err}
	}

	slots := sweetspot.Filter(resolver, records, q)
	log.Printf("%s on %s: %d records, %d matching", job.Course.Name, job.Date, len(records), len(slots))
	return searchResult{Job: job, Slots: slots}
}

func buildRequest(resolver civiltime.Resolver, cfg *Config, now time.Time) (searchRequest, error) {
	var req searchRequest

	if players < 1 || players > 4 {
		return req, fmt.Errorf("invalid group size %d: choose 1-4 players", players)
	}
	req.Query.MinSlots = players

	after, err := parseTimeFlag("after", afterTime)
	if err != nil {
		return req, err
	}
	before, err := parseTimeFlag("before", beforeTime)
	if err != nil {
		return req, err
	}
	req.Query.After, req.Query.Before = after, before

	req.Dates, err = parseDates(specifiedDate, civiltime.DateOf(resolver.In(now)))
	if err != nil {
		return req, err
	}

	if strings.TrimSpace(courseName) != "" {
		course, err := cfg.CourseTable().Resolve(courseName)
		if err != nil {
			return req, err
		}
		req.Courses = []sweetspot.Course{course}
	} else {
		req.Courses = cfg.ActiveCourses()
		if len(req.Courses) == 0 {
			return req, fmt.Errorf("every course is blacklisted; run `SweetspotFinder config blacklist` to enable some")
		}
	}

	return req, nil
}

// parseDates splits a comma-separated list; an empty list means today.
func parseDates(list string, today civiltime.Date) ([]civiltime.Date, error) {
	var dates []civiltime.Date
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := civiltime.ParseDate(part)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		dates = append(dates, today)
	}
	return dates, nil
}

// parseTimeFlag converts HH:MM into minutes since midnight; empty means unset.
func parseTimeFlag(name, value string) (*int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	c, err := civiltime.ParseClock(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	m := c.Minutes()
	return &m, nil
}

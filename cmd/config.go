/*
Sets up the SweetspotFinder config file for the user.
Holds:
- Sweetspot API origin and request timeout
- Golf course names and their Sweetspot UUIDs
- Blacklisted courses that are skipped when searching all courses
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"SweetspotFinder/pkg/sweetspot"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type CourseInfo struct {
	Name        string `yaml:"name"`
	ID          string `yaml:"id"`
	Blacklisted bool   `yaml:"blacklisted,omitempty"`
}

type Config struct {
	APIOrigin       string       `yaml:"api_origin"`
	TimeoutSeconds  int          `yaml:"timeout_seconds"`
	CacheTTLSeconds int          `yaml:"cache_ttl_seconds"`
	Courses         []CourseInfo `yaml:"courses"`
}

const (
	defaultTimeoutSeconds  = 20
	defaultCacheTTLSeconds = 300
)

var configPath = filepath.Join(os.Getenv("HOME"), ".config", "SweetspotFinder", "config.yaml")
var overwrite bool

// DefaultConfig holds the built-in course table.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values so older or hand-edited files still work.
func (c *Config) Normalize() {
	if c.APIOrigin == "" {
		c.APIOrigin = sweetspot.DefaultOrigin
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = defaultCacheTTLSeconds
	}
	if len(c.Courses) == 0 {
		for _, course := range sweetspot.DefaultCourses() {
			c.Courses = append(c.Courses, CourseInfo{Name: course.Name, ID: course.ID})
		}
	}
}

// CourseTable includes blacklisted courses so they can still be searched by name.
func (c *Config) CourseTable() *sweetspot.CourseTable {
	courses := make([]sweetspot.Course, len(c.Courses))
	for i, ci := range c.Courses {
		courses[i] = sweetspot.Course{Name: ci.Name, ID: ci.ID}
	}
	return sweetspot.NewCourseTable(courses)
}

// ActiveCourses are the courses searched when no course is given.
func (c *Config) ActiveCourses() []sweetspot.Course {
	var out []sweetspot.Course
	for _, ci := range c.Courses {
		if !ci.Blacklisted {
			out = append(out, sweetspot.Course{Name: ci.Name, ID: ci.ID})
		}
	}
	return out
}

func (c *Config) newClient() *sweetspot.Client {
	return sweetspot.NewClient(
		sweetspot.WithOrigin(c.APIOrigin),
		sweetspot.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second),
		sweetspot.WithCache(time.Duration(c.CacheTTLSeconds)*time.Second),
	)
}

// Checks if the config file exists
func ConfigExists() bool {
	_, err := os.Stat(configPath)
	return err == nil
}

// Creates the .config/SweetspotFinder directory if it doesn't exist
func CreateDir() bool {
	dir := filepath.Dir(configPath)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0o755)
		if err != nil {
			fmt.Printf("Failed to create directory: %s\n", err)
			return false
		}
	}
	return true
}

// loadConfig reads the config file, falling back to defaults when there is none.
func loadConfig() (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// saveConfig overwrites the entire config file
func saveConfig(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Add golf courses to SweetspotFinder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addCourses(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func addCourses(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	cfg := &Config{}
	if !overwrite {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	existing := make(map[string]bool)
	for _, c := range cfg.Courses {
		existing[strings.ToLower(c.ID)] = true
	}

	var added []CourseInfo
	fmt.Fprintln(out, "Please provide the golf course details.")
	for {
		fmt.Fprint(out, "Enter the name of the course (or 'done' to finish): ")
		name, err := readLine(reader)
		if strings.EqualFold(name, "done") || (name == "" && err != nil) {
			break
		}

		fmt.Fprint(out, "Enter the Sweetspot course UUID: ")
		id, _ := readLine(reader)

		if name == "" || id == "" {
			fmt.Fprintln(out, "Course name or UUID cannot be empty. Please try again.")
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			fmt.Fprintf(out, "%q is not a valid UUID. Please try again.\n", id)
			continue
		}
		if existing[strings.ToLower(id)] {
			fmt.Fprintln(out, "Golf course already exists, skipping.")
			continue
		}

		course := CourseInfo{Name: strings.ToLower(name), ID: strings.ToLower(id)}
		added = append(added, course)
		existing[course.ID] = true
		fmt.Fprintf(out, "%s has been added.\n", name)
	}

	if len(added) == 0 {
		fmt.Fprintln(out, "No courses were added.")
		return nil
	}

	if overwrite {
		cfg.Courses = added
	} else {
		cfg.Courses = append(cfg.Courses, added...)
	}
	cfg.Normalize()

	if !CreateDir() {
		return fmt.Errorf("could not create %s", filepath.Dir(configPath))
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save to config file: %w", err)
	}

	fmt.Fprintln(out, "Configuration saved!")
	return nil
}

// Command to show the config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configured golf courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !ConfigExists() {
			fmt.Fprintln(out, "No config file found, using the built-in course list.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "API: %s (timeout %ds)\n", cfg.APIOrigin, cfg.TimeoutSeconds)
		fmt.Fprintln(out, "Configured Golf Courses:")
		for i, c := range cfg.Courses {
			status := " "
			if c.Blacklisted {
				status = "X"
			}
			fmt.Fprintf(out, "%2d) [%s] %s - %s\n", i+1, status, c.Name, c.ID)
		}
		return nil
	},
}

// Command to blacklist a course from the search
var configBlacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Mark courses as blacklisted so they're skipped in searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return blacklistCourses(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func blacklistCourses(in io.Reader, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Courses in config:")
	for i, c := range cfg.Courses {
		status := " "
		if c.Blacklisted {
			status = "X"
		}
		fmt.Fprintf(out, "%2d) [%s] %s\n", i+1, status, c.Name)
	}

	fmt.Fprintln(out, "Enter the numbers of the courses to toggle (comma-separated), or just press Enter to skip.")
	fmt.Fprint(out, "Your choice: ")
	choice, _ := readLine(bufio.NewReader(in))
	if choice == "" {
		fmt.Fprintln(out, "No changes made.")
		return nil
	}

	for _, idxStr := range strings.Split(choice, ",") {
		idxStr = strings.TrimSpace(idxStr)
		i, err := strconv.Atoi(idxStr)
		if err != nil {
			fmt.Fprintf(out, "Invalid input '%s', skipping.\n", idxStr)
			continue
		}
		if i < 1 || i > len(cfg.Courses) {
			fmt.Fprintf(out, "Index '%d' out of range, skipping.\n", i)
			continue
		}
		cfg.Courses[i-1].Blacklisted = !cfg.Courses[i-1].Blacklisted
	}

	if !CreateDir() {
		return fmt.Errorf("could not create %s", filepath.Dir(configPath))
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save updated blacklist: %w", err)
	}
	fmt.Fprintln(out, "Blacklist updated successfully!")
	return nil
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in course list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !CreateDir() {
			return fmt.Errorf("could not create %s", filepath.Dir(configPath))
		}
		if err := saveConfig(DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset.")
		return nil
	},
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	return strings.TrimSpace(line), err
}

// Initialises the command and adds the -overwrite flag
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "Replace the configured courses instead of adding to them")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configBlacklistCmd)
	configCmd.AddCommand(configResetCmd)
}

package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

var verboseMode bool

// setupLogging turns on Bubble Tea’s file logger when the -v/--verbose flag
// is present. Without it log output is discarded to keep stdout clean.
// The returned *os.File must be closed by the caller.
func setupLogging() (*os.File, error) {
	if !verboseMode {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	// ~/.config/SweetspotFinder/debug.log  (mkdir -p if necessary)
	logDir := filepath.Dir(configPath)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, err
	}
	logPath := filepath.Join(logDir, "debug.log")

	// Write “SweetspotFinder ” in front of every line
	return tea.LogToFile(logPath, "SweetspotFinder")
}

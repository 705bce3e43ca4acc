// Package app wires the logwatch CLI commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for logwatch.
	RootCmd = &cobra.Command{
		Use:   "logwatch",
		Short: "Polling log file watcher with rotation detection",
		Long: `logwatch continuously monitors the files in a directory, detects file
rotation (truncation, rename, recreation), and streams newly appended lines
to the terminal without ever dropping or re-delivering a line.

It polls instead of using kernel events, so it behaves the same on any
filesystem, including network and container mounts.

Examples:
  # Follow every *.log file in /var/log
  logwatch watch

  # Follow a single file, seeded with its last 20 lines
  logwatch watch --file syslog --tail 20

  # Print the last 10 lines of a file
  logwatch tail /var/log/syslog

  # Wait for a USB mass-storage insertion to show up in syslog
  logwatch usb

  # Review when files entered and left the watch set
  logwatch events`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "event journal path (default: ~/.logwatch/logwatch.db)")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(tailCmd)
	RootCmd.AddCommand(eventsCmd)
	RootCmd.AddCommand(usbCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// logwatchDir returns ~/.logwatch, creating it if needed.
func logwatchDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".logwatch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create logwatch directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the journal path, using the flag value or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := logwatchDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logwatch.db"), nil
}

// getDefaultPIDFile returns the default daemon PID file path.
func getDefaultPIDFile() (string, error) {
	dir, err := logwatchDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default daemon log file path.
func getDefaultLogFile() (string, error) {
	dir, err := logwatchDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}

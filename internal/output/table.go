// Package output provides terminal output utilities for logwatch.
//
// Table rendering uses plain ASCII with box-drawing rules; color and
// animation degrade cleanly when stdout is not a TTY or NO_COLOR is set.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/logwatch/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is unset.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderEventTable renders journaled watcher events, most recent first.
func RenderEventTable(events []*store.Event) string {
	if len(events) == 0 {
		return "No events recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-10s %-30s %-25s %s\n",
		"Event", "Path", "Detail", "When"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, e := range events {
		// Pad before colorizing so ANSI codes do not skew the columns.
		sb.WriteString(fmt.Sprintf("%s %-30s %-25s %s\n",
			colorizeEventType(fmt.Sprintf("%-10s", e.Type)),
			truncate(e.Path, 30),
			truncate(e.Detail, 25),
			formatRelativeTime(e.Timestamp)))
	}

	return sb.String()
}

// colorizeEventType colors the event type when the terminal supports it:
// green for watch, yellow for unwatch, cyan for rotate, red for detect.
func colorizeEventType(eventType string) string {
	if !IsColorEnabled() {
		return eventType
	}
	switch strings.TrimSpace(eventType) {
	case store.EventWatch:
		return colorGreen + eventType + colorReset
	case store.EventUnwatch:
		return colorYellow + eventType + colorReset
	case store.EventRotate:
		return colorCyan + eventType + colorReset
	case store.EventDetect:
		return colorRed + eventType + colorReset
	}
	return eventType
}

// formatRelativeTime renders t relative to now ("3m ago", "2d ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncate shortens s to max characters, ellipsizing the tail.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

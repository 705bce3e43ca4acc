package store

import "time"

// Event types journaled by the watch commands.
const (
	// EventWatch records a file entering the watch table.
	EventWatch = "watch"
	// EventUnwatch records a file being drained and removed (deleted,
	// rotated, or filtered away).
	EventUnwatch = "unwatch"
	// EventRotate records the content under a watched path being replaced,
	// by a new file or by in-place truncation.
	EventRotate = "rotate"
	// EventDetect records the bundled USB detector firing.
	EventDetect = "detect"
)

// Event is one journaled watcher lifecycle event.
type Event struct {
	ID        int64
	Type      string
	Path      string
	Detail    string
	Timestamp time.Time
}

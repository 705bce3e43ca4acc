package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/blackwell-systems/logwatch/internal/tail"
)

const (
	// DefaultInterval is the sleep between polling ticks.
	DefaultInterval = time.Second
	// DefaultChunkSize is the read size hint for incremental reads.
	DefaultChunkSize = 64 * 1024
)

// Callback receives the lines newly appended to a watched file. Lines are in
// on-disk order, stripped of their trailing newline, and batches for the
// same file arrive in increasing offset order with no repeats. A non-nil
// error aborts the current tick and propagates to the Run or Poll caller.
type Callback func(path string, lines [][]byte) error

// Transition identifies a watch-set change reported through Notify.
type Transition int

const (
	// TransitionWatch fires when a file enters the watch table.
	TransitionWatch Transition = iota
	// TransitionUnwatch fires when a file is drained and removed (deleted
	// or filtered away).
	TransitionUnwatch
	// TransitionRotate fires when the content under a watched path is
	// replaced: a different file takes over the path, or the file is
	// truncated in place.
	TransitionRotate
)

func (tr Transition) String() string {
	switch tr {
	case TransitionWatch:
		return "watching"
	case TransitionUnwatch:
		return "un-watching"
	case TransitionRotate:
		return "rotated"
	}
	return "unknown"
}

// NotifyFunc receives watch-set transitions. It is a side channel, not part
// of the data contract.
type NotifyFunc func(transition Transition, path string)

// Config describes a Watcher. Folder and OnLines are required; the rest
// default as documented.
type Config struct {
	// Folder is the directory to scan. It must exist and be a directory.
	Folder string

	// OnLines is the consumer callback.
	OnLines Callback

	// Extensions is the allow-list of file extensions to watch, e.g.
	// []string{"log"}. Empty means every regular file. Ignored when File
	// is set.
	Extensions []string

	// File pins the watcher to a single filename inside Folder, overriding
	// Extensions entirely.
	File string

	// TailLines seeds the callback with the last N lines of every file
	// present at construction. 0 disables the history pass.
	TailLines int

	// ChunkSize is the read size hint for incremental reads. Defaults to
	// DefaultChunkSize.
	ChunkSize int

	// Interval is the sleep between ticks. Defaults to DefaultInterval.
	Interval time.Duration

	// Notify is invoked on every watch-set transition: a file entering or
	// leaving the table, or rotating under its path. Defaults to printing
	// the transition.
	Notify NotifyFunc
}

// Watcher polls a directory for appended log lines. It is not safe for
// concurrent use: Poll, Run and Close must all be called from one goroutine.
type Watcher struct {
	cfg   Config
	table *watchTable
}

// New validates cfg, runs the startup tail pass, and opens a watch on every
// matching file, positioned at EOF so existing content is never replayed.
// Misconfiguration fails here, not later.
func New(cfg Config) (*Watcher, error) {
	fi, err := os.Stat(cfg.Folder)
	if err != nil {
		return nil, fmt.Errorf("folder %s: %w", cfg.Folder, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("folder %s: not a directory", cfg.Folder)
	}
	if cfg.OnLines == nil {
		return nil, errors.New("callback must not be nil")
	}
	if cfg.TailLines < 0 {
		return nil, fmt.Errorf("tail lines must not be negative, got %d", cfg.TailLines)
	}
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must not be negative, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Notify == nil {
		cfg.Notify = func(tr Transition, path string) { fmt.Printf("%s %s\n", tr, path) }
	}

	w := &Watcher{
		cfg:   cfg,
		table: newWatchTable(cfg.ChunkSize, cfg.OnLines, cfg.Notify),
	}
	if err := w.startupPass(); err != nil {
		w.table.closeAll()
		return nil, err
	}
	return w, nil
}

// startupPass delivers historical context, then opens the initial watches.
// Each file's tail is delivered before the file is positioned at EOF, so the
// first incremental batch starts exactly where the history ended.
func (w *Watcher) startupPass() error {
	paths, err := listFiles(w.cfg.Folder, w.cfg.File, w.cfg.Extensions)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if w.cfg.TailLines > 0 {
			lines, err := tail.Lines(path, w.cfg.TailLines)
			if errors.Is(err, fs.ErrNotExist) {
				continue // vanished between listing and tail
			}
			if err != nil {
				return err
			}
			if len(lines) > 0 {
				if err := w.cfg.OnLines(path, lines); err != nil {
					return err
				}
			}
		}
		if err := w.table.watch(path); err != nil {
			return err
		}
	}
	return nil
}

// Poll runs one tick: rescan the folder, reconcile the watch table, then
// read every watched file to EOF, delivering lines as they are assembled.
// The callback may run several times per file when more than one chunk is
// available.
func (w *Watcher) Poll() error {
	paths, err := listFiles(w.cfg.Folder, w.cfg.File, w.cfg.Extensions)
	if err != nil {
		return err
	}
	if err := w.table.reconcile(paths); err != nil {
		return err
	}
	for _, wf := range w.table.entries() {
		if err := w.table.readAvailable(wf); err != nil {
			return err
		}
	}
	return nil
}

// Run polls until ctx is cancelled or a tick fails. The watcher has no
// internal stop condition; termination policy belongs to the caller. All
// handles are closed before Run returns, on every exit path.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		if err := w.Poll(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
		}
	}
}

// WatchedPaths returns the paths currently held open, in stable order.
func (w *Watcher) WatchedPaths() []string {
	entries := w.table.entries()
	paths := make([]string, len(entries))
	for i, wf := range entries {
		paths[i] = wf.path
	}
	return paths
}

// Close releases every open handle without draining. Safe to call more
// than once.
func (w *Watcher) Close() error {
	return w.table.closeAll()
}

// Package watcher implements a polling log-file watcher with rotation
// detection.
//
// The watcher rescans a single directory on every tick, keeps one open
// handle per underlying file (keyed by device+inode identity, not by path),
// and delivers newly appended lines to a consumer callback. Rotation is
// detected two ways: the identity under a watched path changing (rename or
// recreate), and the file shrinking below the read cursor (truncated in
// place). A replaced incarnation is always drained to EOF and delivered
// before the replacement is opened; a truncated file is re-read from the
// start.
//
// Key properties:
//   - Pure polling, no kernel event integration
//   - Exactly-once delivery of appended bytes across rotation
//   - No persisted read state (a restart re-tails, never resumes an offset)
//   - Single-goroutine loop, cancellable between ticks via context
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//		Folder: "/var/log",
//		File:   "syslog",
//		OnLines: func(path string, lines [][]byte) error {
//			for _, line := range lines {
//				fmt.Printf("%s: %s\n", path, line)
//			}
//			return nil
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
//		log.Fatal(err)
//	}
package watcher

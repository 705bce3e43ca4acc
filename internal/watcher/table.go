package watcher

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
)

// watchedFile is one open, positioned handle in the table. The table owns
// the handle outright; nothing else reads from or closes it. pending holds
// the bytes after the last newline of the most recent read, waiting for the
// rest of the line to arrive.
type watchedFile struct {
	id      FileIdentity
	path    string
	file    *os.File
	pending []byte
}

// watchTable maps file identity to the open handle tracking that file.
// At most one handle exists per identity; all mutation happens on the
// single polling goroutine.
type watchTable struct {
	files     map[FileIdentity]*watchedFile
	chunkSize int
	deliver   Callback
	notify    NotifyFunc
}

func newWatchTable(chunkSize int, deliver Callback, notify NotifyFunc) *watchTable {
	return &watchTable{
		files:     make(map[FileIdentity]*watchedFile),
		chunkSize: chunkSize,
		deliver:   deliver,
		notify:    notify,
	}
}

// reconcile brings the table in line with the directory scan. Entries whose
// file is gone are drained and dropped; entries whose path now backs a
// different file (rotation completed) are drained and dropped so the
// replacement can be opened fresh; entries whose file shrank below the read
// cursor (truncated in place) are reset to read the new content from the
// start. Drains always finish before any new watch is opened, so no byte of
// an old incarnation is lost and none of a new one is delivered early.
func (t *watchTable) reconcile(candidates []string) error {
	seen := make(map[FileIdentity]string, len(candidates))
	for _, path := range candidates {
		fi, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue // vanished between listing and stat
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		seen[identityOf(fi)] = path
	}

	for id, wf := range t.files {
		fi, err := os.Stat(wf.path)
		switch {
		case os.IsNotExist(err):
			if err := t.unwatch(wf); err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("stat %s: %w", wf.path, err)
		case identityOf(fi) != id:
			// Path reused by a new file: rotation completed.
			t.notify(TransitionRotate, wf.path)
			if err := t.unwatch(wf); err != nil {
				return err
			}
		default:
			if _, ok := seen[id]; !ok {
				// Still on disk but no longer a listing candidate,
				// e.g. renamed to a name the filter excludes.
				if err := t.unwatch(wf); err != nil {
					return err
				}
				continue
			}
			offset, err := wf.file.Seek(0, io.SeekCurrent)
			if err != nil {
				return fmt.Errorf("seek %s: %w", wf.path, err)
			}
			if fi.Size() < offset {
				// Same inode but the file shrank below the cursor:
				// truncated in place.
				if err := t.resetTruncated(wf); err != nil {
					return err
				}
			}
		}
	}

	for id, path := range seen {
		if _, ok := t.files[id]; ok {
			continue
		}
		if err := t.watch(path); err != nil {
			return err
		}
	}
	return nil
}

// watch opens path for reading, positions it at EOF, and inserts it into the
// table. The identity is computed from the opened handle so the key always
// names the file the handle actually reads, even if the path was swapped
// between stat and open.
func (t *watchTable) watch(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil // vanished between stat and open
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", path, err)
	}
	id := identityOf(fi)
	if _, ok := t.files[id]; ok {
		// Hard link to a file already watched.
		f.Close()
		return nil
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return fmt.Errorf("seek %s: %w", path, err)
	}
	t.files[id] = &watchedFile{id: id, path: path, file: f}
	t.notify(TransitionWatch, path)
	return nil
}

// resetTruncated handles a file truncated in place. The inode is unchanged,
// so the handle stays; the cursor moves back to the start so the new
// incarnation is read in full. Any held partial line belonged to the old
// incarnation and is flushed as its own record first.
func (t *watchTable) resetTruncated(wf *watchedFile) error {
	if len(wf.pending) > 0 {
		line := wf.pending
		wf.pending = nil
		if err := t.deliver(wf.path, [][]byte{line}); err != nil {
			return err
		}
	}
	if _, err := wf.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", wf.path, err)
	}
	t.notify(TransitionRotate, wf.path)
	return nil
}

// unwatch drains any unread bytes, delivers them, then closes the handle and
// removes the entry. The handle is closed and the entry dropped even when
// the drain fails; a rotation storm must never leak descriptors.
func (t *watchTable) unwatch(wf *watchedFile) error {
	drainErr := t.readAvailable(wf)
	if drainErr == nil && len(wf.pending) > 0 {
		// Flush the unterminated final line as its own record.
		line := wf.pending
		wf.pending = nil
		drainErr = t.deliver(wf.path, [][]byte{line})
	}
	closeErr := wf.file.Close()
	delete(t.files, wf.id)
	t.notify(TransitionUnwatch, wf.path)
	if drainErr != nil {
		return drainErr
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", wf.path, closeErr)
	}
	return nil
}

// readAvailable reads until a read returns no data, folding each chunk into
// the line assembly and delivering complete lines immediately. A short read
// is not EOF; only a zero-byte read or io.EOF ends the loop for this tick.
func (t *watchTable) readAvailable(wf *watchedFile) error {
	buf := make([]byte, t.chunkSize)
	for {
		n, err := wf.file.Read(buf)
		if n > 0 {
			if derr := t.appendChunk(wf, buf[:n]); derr != nil {
				return derr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", wf.path, err)
		}
		if n == 0 {
			return nil
		}
	}
}

// appendChunk folds chunk into wf's pending buffer and delivers every
// complete line. Bytes after the last newline wait in pending until the rest
// of the line arrives or the file is drained. Delivered lines are backed by
// a fresh buffer, so the consumer may retain them.
func (t *watchTable) appendChunk(wf *watchedFile, chunk []byte) error {
	buffered := make([]byte, 0, len(wf.pending)+len(chunk))
	buffered = append(buffered, wf.pending...)
	buffered = append(buffered, chunk...)

	lines, rest := splitLines(buffered)
	wf.pending = append([]byte(nil), rest...)
	if len(lines) == 0 {
		return nil
	}
	return t.deliver(wf.path, lines)
}

// splitLines cuts data at every newline, returning the complete lines
// (without their newline byte) and the remainder after the last newline.
func splitLines(data []byte) (lines [][]byte, rest []byte) {
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return lines, data
		}
		lines = append(lines, data[:idx])
		data = data[idx+1:]
	}
}

// entries returns the watched files in stable path order.
func (t *watchTable) entries() []*watchedFile {
	out := make([]*watchedFile, 0, len(t.files))
	for _, wf := range t.files {
		out = append(out, wf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// closeAll closes every handle without draining and empties the table.
// Used on shutdown; safe to call more than once.
func (t *watchTable) closeAll() error {
	var firstErr error
	for id, wf := range t.files {
		if err := wf.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", wf.path, err)
		}
		delete(t.files, id)
	}
	return firstErr
}

// Package tail reads the last N lines of a file by scanning backward from
// EOF in fixed-size blocks, so large files never need a full forward scan.
package tail

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// blockSize is the step of the backward scan. Each iteration pulls one more
// block off the end of the file until enough newlines have been seen.
const blockSize = 1024

// Lines returns the last n lines of the file at path, oldest first, without
// their newline terminators. Fewer lines are returned when the file holds
// fewer than n. n must be positive.
func Lines(path string, n int) ([][]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("tail: line count must be positive, got %d", n)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}
	defer f.Close()
	return lastLines(f, blockSize, n)
}

// lastLines scans f backward from EOF in blocks of block bytes, growing a
// prefix buffer until it delimits at least n complete lines or the scan
// reaches the start of the file. The final block is trimmed to exactly the
// remaining bytes, so no region is read twice.
func lastLines(f *os.File, block int64, n int) ([][]byte, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("tail: seek: %w", err)
	}

	var data []byte
	remaining := size
	for remaining > 0 && completeLines(data) < n {
		step := block
		if step > remaining {
			step = remaining
		}
		remaining -= step
		chunk := make([]byte, step)
		if _, err := f.ReadAt(chunk, remaining); err != nil {
			return nil, fmt.Errorf("tail: read at offset %d: %w", remaining, err)
		}
		data = append(chunk, data...)
	}

	data = bytes.TrimSuffix(data, []byte{'\n'})
	if len(data) == 0 {
		return nil, nil
	}
	lines := bytes.Split(data, []byte{'\n'})
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// completeLines counts the lines in data that are certainly complete: the
// buffer starts mid-file, so the segment before its first newline may be a
// line fragment and is never counted, and neither is the unterminated tail.
func completeLines(data []byte) int {
	count := bytes.Count(data, []byte{'\n'})
	if bytes.HasSuffix(data, []byte{'\n'}) {
		count--
	}
	return count
}

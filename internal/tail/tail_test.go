package tail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func assertLines(t *testing.T, got [][]byte, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLines_LastN(t *testing.T) {
	path := writeTemp(t, "a\nb\nc\nd\ne\n")

	lines, err := Lines(path, 3)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	assertLines(t, lines, []string{"c", "d", "e"})
}

func TestLines_MoreThanFileHolds(t *testing.T) {
	path := writeTemp(t, "a\nb\nc\nd\ne\n")

	lines, err := Lines(path, 100)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	assertLines(t, lines, []string{"a", "b", "c", "d", "e"})
}

func TestLines_NonPositiveCount(t *testing.T) {
	path := writeTemp(t, "a\n")

	for _, n := range []int{0, -1} {
		if _, err := Lines(path, n); err == nil {
			t.Errorf("Lines(n=%d) expected validation error, got nil", n)
		}
	}
}

func TestLines_MissingFile(t *testing.T) {
	_, err := Lines(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLines_EmptyFile(t *testing.T) {
	path := writeTemp(t, "")

	lines, err := Lines(path, 3)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %q, want no lines for empty file", lines)
	}
}

func TestLines_NoTrailingNewline(t *testing.T) {
	path := writeTemp(t, "a\nb\nc")

	lines, err := Lines(path, 2)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	assertLines(t, lines, []string{"b", "c"})
}

// ── backward block scan ──────────────────────────────────────────────────────

// Small block sizes force lines to straddle block boundaries; the requested
// lines must come back intact regardless.
func TestLastLines_LinesStraddleBlocks(t *testing.T) {
	path := writeTemp(t, "aa\nbb\ncc\ndd\n")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	for _, block := range []int64{1, 2, 3, 4, 5, 1024} {
		if _, err := f.Seek(0, 0); err != nil {
			t.Fatalf("rewind: %v", err)
		}
		lines, err := lastLines(f, block, 3)
		if err != nil {
			t.Fatalf("lastLines(block=%d): %v", block, err)
		}
		assertLines(t, lines, []string{"bb", "cc", "dd"})
	}
}

func TestLastLines_LongLines(t *testing.T) {
	long := strings.Repeat("x", 5000)
	path := writeTemp(t, "first\n"+long+"\nlast\n")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	lines, err := lastLines(f, 1024, 2)
	if err != nil {
		t.Fatalf("lastLines: %v", err)
	}
	assertLines(t, lines, []string{long, "last"})
}

func TestLastLines_SingleUnterminatedLine(t *testing.T) {
	path := writeTemp(t, "only")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	lines, err := lastLines(f, 2, 3)
	if err != nil {
		t.Fatalf("lastLines: %v", err)
	}
	assertLines(t, lines, []string{"only"})
}

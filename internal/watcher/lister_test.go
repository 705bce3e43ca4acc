package watcher

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func assertPaths(t *testing.T, got []string, want ...string) {
	t.Helper()
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("listed %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("listed %q, want %q", got, want)
		}
	}
}

func TestListFiles_ExactNameOverridesExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "syslog"), "")

	got, err := listFiles(dir, "syslog", []string{"log"})
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, filepath.Join(dir, "syslog"))
}

func TestListFiles_ExactNameAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")

	got, err := listFiles(dir, "syslog", nil)
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("listed %q, want empty for absent exact name", got)
	}
}

func TestListFiles_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "noext"), "")

	got, err := listFiles(dir, "", []string{"log"})
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, filepath.Join(dir, "a.log"))
}

func TestListFiles_ExtensionWithLeadingDot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")

	got, err := listFiles(dir, "", []string{".log"})
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, filepath.Join(dir, "a.log"))
}

func TestListFiles_EmptyFilterListsAllRegular(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")
	writeFile(t, filepath.Join(dir, "b.txt"), "")

	got, err := listFiles(dir, "", nil)
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, filepath.Join(dir, "a.log"), filepath.Join(dir, "b.txt"))
}

func TestListFiles_ExcludesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.log"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub.log"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := listFiles(dir, "", []string{"log"})
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, filepath.Join(dir, "a.log"))
}

func TestListFiles_ExactNameDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "syslog"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := listFiles(dir, "syslog", nil)
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("listed %q, want empty when exact name is a directory", got)
	}
}

func TestListFiles_FollowsSymlinkToRegularFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.log")
	writeFile(t, target, "")
	link := filepath.Join(dir, "link.log")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := listFiles(dir, "", []string{"log"})
	if err != nil {
		t.Fatalf("listFiles: %v", err)
	}
	assertPaths(t, got, target, link)
}

func TestListFiles_MissingFolder(t *testing.T) {
	_, err := listFiles(filepath.Join(t.TempDir(), "nope"), "", nil)
	if err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name string
		exts []string
		want bool
	}{
		{"a.log", []string{"log"}, true},
		{"a.log", []string{"txt"}, false},
		{"a.log.1", []string{"log"}, false},
		{"noext", []string{"log"}, false},
		{"a.LOG", []string{"log"}, false},
		{"a.log", []string{".log"}, true},
	}
	for _, tt := range tests {
		if got := hasExtension(tt.name, tt.exts); got != tt.want {
			t.Errorf("hasExtension(%q, %q) = %v, want %v", tt.name, tt.exts, got, tt.want)
		}
	}
}

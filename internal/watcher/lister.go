package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// listFiles enumerates the regular files in folder that pass the configured
// filter. An exact filename wins outright: the result is that single file if
// present, empty otherwise, and the extension allow-list is ignored. With
// only an extension allow-list, a file qualifies when the suffix after its
// last dot is in the list; an empty list admits every regular file.
//
// Symlinks are followed, so a link to a regular file qualifies while a link
// to a directory or socket does not. Entries that vanish between the
// directory read and the stat are treated as not present.
func listFiles(folder, exactName string, extensions []string) ([]string, error) {
	if exactName != "" {
		path := filepath.Join(folder, exactName)
		fi, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !fi.Mode().IsRegular() {
			return nil, nil
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", folder, err)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(folder, entry.Name())
		fi, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue // vanished between ReadDir and stat
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		if len(extensions) > 0 && !hasExtension(entry.Name(), extensions) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// hasExtension reports whether name's suffix after the last dot is in exts.
// A name with no dot never matches. Allow-list entries may be given with or
// without the leading dot.
func hasExtension(name string, exts []string) bool {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return false
	}
	ext := name[idx+1:]
	for _, e := range exts {
		if ext == strings.TrimPrefix(e, ".") {
			return true
		}
	}
	return false
}

// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
)

// FindManifestDirs returns the immediate subdirectories of rootPath that
// contain a file named manifestName. The result is sorted by path so
// discovery order is stable across runs. Enumeration is deliberately
// non-recursive: a workspace is always a direct child of a configured root.
func FindManifestDirs(rootPath string, manifestName string) ([]string, error) {
	if manifestName == "" {
		panic("manifestName must not be empty")
	}

	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(rootPath, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, manifestName)); err != nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	return dirs, nil
}

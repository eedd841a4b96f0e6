package shim

import (
	"os"
	"path/filepath"
)

// maxDepth and maxEntries bound any recursive directory traversal a shim
// performs while expanding a directory target into candidate files,
// degrading gracefully on permission errors instead of failing outright.
const (
	maxDepth   = 50
	maxEntries = 10000
)

// ExpandTarget returns the files a shim must check for path: path itself if
// it is a regular file (or doesn't exist, e.g. a target about to be
// created), or every file beneath it if it is a directory, capped at
// maxDepth/maxEntries.
func ExpandTarget(path string) []string {
	info, err := os.Lstat(path)
	if err != nil {
		return []string{path}
	}
	if !info.IsDir() {
		return []string{path}
	}

	var out []string
	_ = walkCapped(path, 0, &out)
	if len(out) == 0 {
		return []string{path}
	}
	return out
}

func walkCapped(dir string, depth int, out *[]string) error {
	if depth > maxDepth || len(*out) >= maxEntries {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // permission errors: skip, don't fail the shim
	}
	for _, e := range entries {
		if len(*out) >= maxEntries {
			return nil
		}
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := walkCapped(full, depth+1, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, full)
	}
	return nil
}

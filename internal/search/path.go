package search

import (
	"path/filepath"
	"strings"
)

// canonicalize resolves symlinks and relative components when possible.
// On failure (permission error, race with deletion) the original path is
// returned unmodified rather than failing the search.
func canonicalize(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return resolved
	}
	return abs
}

// cleanPath strips the Windows extended-length prefix and normalizes
// separators to forward slashes so consumers never branch on platform.
func cleanPath(path string) string {
	path = strings.TrimPrefix(path, `\\?\`)
	return filepath.ToSlash(path)
}

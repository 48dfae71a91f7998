package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	FILE_TXT  = "txt"
	FILE_CSV  = "csv"
	FILE_JSON = "json"
)

// FileExt returns the lower-cased extension of path without the dot.
func FileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

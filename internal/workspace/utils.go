package workspace

import (
	"path/filepath"
	"strings"
)

var fileNameSanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	"\x00", "_",
)

// SafeFileName sanitizes a document title so it is safe to use as a file
// name: path separators and null bytes become underscores, leading and
// trailing dots and spaces are stripped.
func SafeFileName(name string) string {
	name = fileNameSanitizer.Replace(name)
	name = strings.Trim(name, ". ")
	if name == "" {
		return "_"
	}
	return name
}

// NormPath normalizes a path by cleaning it, replacing backslashes with slashes, and trimming leading slashes
func NormPath(path string) string {
	path = filepath.Clean(path)
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimLeft(path, "/")
	return path
}

package storage

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces a user-supplied filename to a filesystem-safe
// form: path components are dropped, anything outside [A-Za-z0-9_.-] becomes
// an underscore, and leading/trailing dots and underscores are stripped so
// the result can never be a hidden file or a traversal.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

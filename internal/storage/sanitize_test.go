package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces", "easter sermon notes.txt", "easter_sermon_notes.txt"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"absolute path", "/var/www/upload.txt", "upload.txt"},
		{"special characters", "budget (final)!.xlsx", "budget__final_.xlsx"},
		{"hidden file", ".htaccess", "htaccess"},
		{"leading dots and underscores", "__..config.yaml", "config.yaml"},
		{"trailing dot", "archive.", "archive"},
		{"unicode", "café menu.txt", "caf_menu.txt"},
		{"surrounding whitespace", "  notes.txt  ", "notes.txt"},
		{"nothing usable", "...", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

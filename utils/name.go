package utils

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredName builds a collision-resistant blob name for an uploaded file:
// a timestamp prefix plus a random suffix, keeping the original extension.
func StoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return time.Now().Format("20060102T150405") + "_" + uuid.NewString() + ext
}

// FileExtension returns the lowercase extension without the leading dot.
func FileExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return strings.TrimPrefix(ext, ".")
}

// ParseTags splits a comma-separated tag field, trimming whitespace and
// dropping empty entries. Order is preserved.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}

// SanitizeHeaderFilename removes characters that can break headers.
func SanitizeHeaderFilename(name string) string {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "download"
	}
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.ReplaceAll(clean, "\n", "")
	clean = strings.ReplaceAll(clean, "\"", "")
	return clean
}

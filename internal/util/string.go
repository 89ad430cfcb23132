package util

import (
	"strings"
)

// CollapseSpaces trims s and replaces every run of whitespace with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slugify converts a name to the hyphenated form used in source URLs.
func Slugify(name string) string {
	name = strings.ToLower(CollapseSpaces(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, ".", "")
	return name
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// TrailingID returns the numeric identifier after the last '-' of the final
// path segment, e.g. ".../asun/cfid-22" -> "22".
func TrailingID(url string) string {
	url = strings.TrimSpace(strings.TrimRight(url, "/"))
	if url == "" {
		return ""
	}
	segment := url[strings.LastIndex(url, "/")+1:]
	return segment[strings.LastIndex(segment, "-")+1:]
}

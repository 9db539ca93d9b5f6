package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	safeExt  = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// FromName lowercases s and collapses everything that is not [a-z0-9] into
// single dashes. An empty result becomes fallback.
func FromName(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}

// FileName slugs the base name of an uploaded file and keeps its extension.
func FileName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return FromName(base, "file") + ext
}

package note

import (
	"path/filepath"
	"regexp"
	"strings"
)

// filenameDatePrefix matches the conventional YYYY-MM-DD- prefix of post
// filenames, including the trailing separator.
var filenameDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Slugify converts a title to a URL- and filename-safe slug: lowercase
// alphanumeric runs joined by single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Stem returns the filename without directory or .md extension. This is
// the string date inference runs against, date prefix and all.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// TitleFromFilename derives a human-readable fallback title from a post
// path: the stem with any date prefix removed and separators spaced out.
func TitleFromFilename(path string) string {
	stem := Stem(path)
	stem = filenameDatePrefix.ReplaceAllString(stem, "")
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}

// Package infer derives frontmatter values for new posts: a display title
// from the note's own text and a creation date from its filename.
package infer

import (
	"regexp"
	"strings"
	"time"
)

// Clock supplies the current time for the date fallback. Pass nil to use
// the system clock.
type Clock func() time.Time

// Matching rules. Kept as named package-level patterns so the edge-case
// policies (single-# exclusivity, start-of-string anchoring) can be read
// and tested in one place.
var (
	// levelOneHeading matches a line consisting of a single '#' marker
	// followed by at least one whitespace character; group 1 captures the
	// heading text. Two or more markers ("## ...") and hashtag-like tokens
	// ("#foo") do not match.
	levelOneHeading = regexp.MustCompile(`^#\s+(.*)$`)

	// datePrefix matches a YYYY-MM-DD prefix anchored to the start of the
	// string. The match is purely lexical, month and day ranges are not
	// validated.
	datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Title scans lines in order and returns the text of the first level-1
// heading, with the marker and the whitespace after it stripped. When no
// line matches, the fallback is returned unchanged.
//
// A bare marker line ("# ") is a match and yields an empty title, not the
// fallback.
func Title(lines []string, fallback string) string {
	for _, line := range lines {
		if m := levelOneHeading.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return fallback
}

// TitleFromText is Title over a raw document: it splits text into lines
// first. A trailing carriage return is dropped from each line so CRLF
// documents infer the same title as LF ones.
func TitleFromText(text, fallback string) string {
	return Title(SplitLines(text), fallback)
}

// SplitLines splits text on newlines, trimming a trailing '\r' per line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Date returns the YYYY-MM-DD prefix of fallback verbatim when one is
// present at the start of the string. Otherwise it returns the current
// date from clock, formatted as YYYY-MM-DD.
//
// Only the fallback branch reads the clock; a date embedded later in the
// string ("arcface-2023-06-22") does not count as a prefix.
func Date(fallback string, clock Clock) string {
	if m := datePrefix.FindString(fallback); m != "" {
		return m
	}
	if clock == nil {
		clock = time.Now
	}
	return clock().Format("2006-01-02")
}

package note

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	tagWhitespace = regexp.MustCompile(`\s+`)
	tagHyphenRuns = regexp.MustCompile(`-+`)
)

// NormalizeTag normalizes a tag to the blog's conventions.
// Normalization steps:
// 1. Lowercase
// 2. Strip a leading # if present
// 3. Trim leading/trailing whitespace
// 4. Replace & with "and"
// 5. Convert whitespace runs to a single hyphen
// 6. Collapse repeated hyphens and trim them from the ends
// 7. Return empty string if nothing remains
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.TrimSpace(tag)

	if tag == "" {
		return ""
	}

	tag = strings.ToLower(tag)
	tag = strings.ReplaceAll(tag, "&", "and")
	tag = tagWhitespace.ReplaceAllString(tag, "-")
	tag = tagHyphenRuns.ReplaceAllString(tag, "-")
	tag = strings.Trim(tag, "-")

	return tag
}

// NormalizeTags normalizes a slice of tags, removing empty results.
// Returns a sorted, deduplicated slice.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if normalized != "" && !seen[normalized] {
			seen[normalized] = true
			result = append(result, normalized)
		}
	}

	sort.Strings(result)
	return result
}

// TagSet collects tags with automatic normalization and deduplication.
type TagSet struct {
	tags map[string]bool
}

// NewTagSet creates a new TagSet.
func NewTagSet() *TagSet {
	return &TagSet{
		tags: make(map[string]bool),
	}
}

// Add adds a tag to the set after normalization.
// Empty tags and duplicates are filtered.
func (ts *TagSet) Add(tag string) {
	normalized := NormalizeTag(tag)
	if normalized != "" {
		ts.tags[normalized] = true
	}
}

// AddIf conditionally adds a tag if the condition is true.
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// AddFormat adds a formatted tag (like fmt.Sprintf).
func (ts *TagSet) AddFormat(format string, args ...any) {
	ts.Add(fmt.Sprintf(format, args...))
}

// GetSorted returns all tags as a sorted slice.
func (ts *TagSet) GetSorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// MergeTags combines two tag slices, normalizes them, and returns a
// sorted, deduplicated result.
func MergeTags(existing, added []string) []string {
	seen := make(map[string]bool)

	for _, tag := range existing {
		if normalized := NormalizeTag(tag); normalized != "" {
			seen[normalized] = true
		}
	}
	for _, tag := range added {
		if normalized := NormalizeTag(tag); normalized != "" {
			seen[normalized] = true
		}
	}

	result := make([]string, 0, len(seen))
	for tag := range seen {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// TagsFromAny safely extracts a string slice from a polymorphic YAML value.
// YAML unmarshaling can produce []any or []string, this handles both.
func TagsFromAny(val any) []string {
	if val == nil {
		return []string{}
	}

	if strSlice, ok := val.([]string); ok {
		result := make([]string, 0, len(strSlice))
		for _, s := range strSlice {
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}

	if ifaceSlice, ok := val.([]any); ok {
		result := make([]string, 0, len(ifaceSlice))
		for _, item := range ifaceSlice {
			if str, ok := item.(string); ok && str != "" {
				result = append(result, str)
			}
		}
		return result
	}

	return []string{}
}

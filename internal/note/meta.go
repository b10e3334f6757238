package note

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// Meta is the typed, read-only view of a post's frontmatter used by scans
// that never rewrite the file.
type Meta struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Draft   bool     `yaml:"draft"`
	Summary string   `yaml:"summary"`
}

// ParseMeta extracts typed frontmatter and the body from a post document.
// A document without frontmatter yields a zero Meta and the full content
// as body; malformed YAML is an error.
func ParseMeta(content []byte) (Meta, string, error) {
	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(string(content)), &meta)
	if err != nil {
		return Meta{}, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return meta, string(body), nil
}

// ParseMetaFile is ParseMeta over a file on disk.
func ParseMetaFile(path string) (Meta, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, "", fmt.Errorf("failed to read file: %w", err)
	}
	return ParseMeta(content)
}

// WordCount counts whitespace-separated words in a body. Used by the
// inventory export; close enough for reading-time style stats.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

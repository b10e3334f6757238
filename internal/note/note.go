// Package note models a blog post as parsed YAML frontmatter plus a
// markdown body, and serializes it back without disturbing the author's
// field order.
package note

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// dateScalar matches the YYYY-MM-DD values written to date fields.
var dateScalar = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Note represents a complete markdown document with YAML frontmatter and body content.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Frontmatter provides typed access to YAML frontmatter. Keys keep their
// document order; new keys append at the end, so a rewritten post diffs
// only where it changed.
type Frontmatter struct {
	fields map[string]any
	keys   []string
}

// NewFrontmatter creates a new empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{
		fields: make(map[string]any),
		keys:   []string{},
	}
}

// ParseMarkdown parses a markdown document with YAML frontmatter.
// Missing frontmatter is valid and yields an empty Frontmatter with the
// whole document as body.
func ParseMarkdown(content []byte) (*Note, error) {
	contentStr := string(content)

	if !strings.HasPrefix(contentStr, "---\n") && !strings.HasPrefix(contentStr, "---\r\n") {
		return &Note{
			Frontmatter: NewFrontmatter(),
			Body:        contentStr,
		}, nil
	}

	// Find the closing delimiter after the opening "---"
	afterFirst := contentStr[3:]
	endIdx := strings.Index(afterFirst, "\n---\n")
	if endIdx == -1 {
		endIdx = strings.Index(afterFirst, "\r\n---\r\n")
		if endIdx == -1 {
			// No closing delimiter, treat as no frontmatter
			return &Note{
				Frontmatter: NewFrontmatter(),
				Body:        contentStr,
			}, nil
		}
		endIdx += 4
	}

	frontmatterStr := afterFirst[:endIdx]
	bodyStartIdx := 3 + len(frontmatterStr) + 5 // "---" + frontmatter + "\n---\n"
	if bodyStartIdx > len(contentStr) {
		bodyStartIdx = len(contentStr)
	}
	body := strings.TrimPrefix(contentStr[bodyStartIdx:], "\n")

	fm, err := parseFrontmatter([]byte(frontmatterStr))
	if err != nil {
		return nil, err
	}

	return &Note{
		Frontmatter: fm,
		Body:        body,
	}, nil
}

// parseFrontmatter decodes YAML into a Frontmatter, walking the mapping
// node directly so the document's key order survives.
func parseFrontmatter(data []byte) (*Frontmatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fm := NewFrontmatter()
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fm, nil
	}

	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]

		// YAML resolves plain 2024-01-15 scalars as timestamps, which
		// would decode to time.Time and re-serialize as RFC3339. Keep
		// date-shaped values as their verbatim string.
		if valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!timestamp" {
			fm.Set(keyNode.Value, valNode.Value)
			continue
		}

		var val any
		if err := valNode.Decode(&val); err != nil {
			return nil, fmt.Errorf("failed to decode frontmatter field %q: %w", keyNode.Value, err)
		}
		fm.Set(keyNode.Value, val)
	}

	return fm, nil
}

// Build serializes the Note back to markdown with YAML frontmatter.
// Tags are always written in flow-style format: [a, b, c].
// Keys are written in their stored order.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if len(n.Frontmatter.keys) > 0 {
		buf.WriteString("---\n")

		frontmatterBytes, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}

		buf.Write(frontmatterBytes)
		buf.WriteString("---\n")
	}

	buf.WriteString(n.Body)

	return buf.Bytes(), nil
}

// Get retrieves a value from frontmatter.
func (f *Frontmatter) Get(key string) (any, bool) {
	val, ok := f.fields[key]
	return val, ok
}

// Has reports whether the key exists, regardless of its value.
func (f *Frontmatter) Has(key string) bool {
	_, ok := f.fields[key]
	return ok
}

// Set sets a value in frontmatter. New keys append at the end of the
// key order; existing keys keep their position.
func (f *Frontmatter) Set(key string, value any) {
	_, exists := f.fields[key]
	f.fields[key] = value

	if !exists {
		f.keys = append(f.keys, key)
	}
}

// Delete removes a key from frontmatter.
func (f *Frontmatter) Delete(key string) {
	delete(f.fields, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// GetString retrieves a string value, returning empty string if not found or wrong type.
func (f *Frontmatter) GetString(key string) string {
	val, ok := f.fields[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// GetInt retrieves an int value, returning 0 if not found or not numeric.
func (f *Frontmatter) GetInt(key string) int {
	val, ok := f.fields[key]
	if !ok {
		return 0
	}
	return intFromAny(val)
}

// GetBool retrieves a bool value, returning false if not found or wrong type.
func (f *Frontmatter) GetBool(key string) bool {
	val, ok := f.fields[key]
	if !ok {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

// GetTags retrieves a string slice value, returning an empty slice if not
// found or wrong type. YAML decoding can yield []any or []string; both work.
func (f *Frontmatter) GetTags(key string) []string {
	val, ok := f.fields[key]
	if !ok {
		return []string{}
	}
	return TagsFromAny(val)
}

// Keys returns a copy of the frontmatter keys in document order.
func (f *Frontmatter) Keys() []string {
	result := make([]string, len(f.keys))
	copy(result, f.keys)
	return result
}

// intFromAny coerces the numeric types YAML decoding can produce.
func intFromAny(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// MarshalYAML implements custom YAML marshaling with ordered keys and flow-style tags.
func (f *Frontmatter) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(f.keys)*2),
	}

	for _, key := range f.keys {
		val := f.fields[key]

		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: key,
		}

		var valueNode *yaml.Node
		if key == "tags" {
			// Flow-style sequence: [a, b, c]
			tags := TagsFromAny(val)
			valueNode = &yaml.Node{
				Kind:  yaml.SequenceNode,
				Style: yaml.FlowStyle,
			}
			for _, tag := range tags {
				valueNode.Content = append(valueNode.Content, &yaml.Node{
					Kind:  yaml.ScalarNode,
					Tag:   "!!str",
					Value: tag,
				})
			}
		} else if s, ok := val.(string); ok && dateScalar.MatchString(s) {
			// Plain scalar, no quoting. Encode would quote date-shaped
			// strings to keep them strings on re-parse; parseFrontmatter
			// already reads timestamps back verbatim.
			valueNode = &yaml.Node{
				Kind:  yaml.ScalarNode,
				Value: s,
			}
		} else {
			valueNode = &yaml.Node{}
			if err := valueNode.Encode(val); err != nil {
				return nil, err
			}
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

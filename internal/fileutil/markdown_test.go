package fileutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostBuilder(t *testing.T) {
	// Basic builder test
	builder := NewPostBuilder()

	doc := builder.
		AddTitle("Test Title").
		AddDate("2024-01-15").
		AddAuthor("Riku").
		AddDraft(true).
		AddField("link", "https://example.com/article").
		AddField("words", 120).
		AddTags("golang", "testing").
		AddHeading("Test Title").
		AddParagraph("This is a test paragraph.").
		AddImage("images/test-cover.jpg").
		AddQuote("A quoted excerpt.").
		AddExternalLink("Read the original", "https://example.com/article").
		Build()

	// Check that frontmatter exists
	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.True(t, strings.Contains(doc, "---\n\n"))

	// Check frontmatter fields
	assert.Contains(t, doc, "title: \"Test Title\"")
	assert.Contains(t, doc, "date: 2024-01-15")
	assert.Contains(t, doc, "author: \"Riku\"")
	assert.Contains(t, doc, "draft: true")
	assert.Contains(t, doc, "link: \"https://example.com/article\"")
	assert.Contains(t, doc, "words: 120")

	// Check tags
	assert.Contains(t, doc, "tags:")
	assert.Contains(t, doc, "  - golang")
	assert.Contains(t, doc, "  - testing")

	// Check content
	assert.Contains(t, doc, "# Test Title\n\n")
	assert.Contains(t, doc, "This is a test paragraph.")
	assert.Contains(t, doc, "![](images/test-cover.jpg)")
	assert.Contains(t, doc, "> A quoted excerpt.")
	assert.Contains(t, doc, "[Read the original](https://example.com/article)")
}

func TestPostBuilderSkipsEmptyValues(t *testing.T) {
	doc := NewPostBuilder().
		AddTitle("Only Title").
		AddDate("").
		AddAuthor("").
		AddDraft(false).
		AddField("link", "").
		AddTags().
		AddHeading("").
		AddParagraph("").
		Build()

	assert.Contains(t, doc, "title: \"Only Title\"")
	assert.NotContains(t, doc, "date:")
	assert.NotContains(t, doc, "author:")
	assert.NotContains(t, doc, "draft:")
	assert.NotContains(t, doc, "link:")
	assert.NotContains(t, doc, "tags:")
	assert.NotContains(t, doc, "#")
}

func TestPostBuilderRawContent(t *testing.T) {
	doc := NewPostBuilder().
		AddTitle("Imported").
		AddRawContent("# Imported\n\nBody from an existing file.").
		Build()

	assert.Contains(t, doc, "# Imported\n\nBody from an existing file.\n")
	assert.True(t, strings.HasSuffix(doc, "\n"))
}

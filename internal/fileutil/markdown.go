package fileutil

import (
	"fmt"
	"strings"
)

// PostBuilder helps construct post documents with frontmatter
type PostBuilder struct {
	frontmatter    strings.Builder
	content        strings.Builder
	hasFrontmatter bool
}

// NewPostBuilder creates a new post builder
func NewPostBuilder() *PostBuilder {
	pb := &PostBuilder{}
	pb.frontmatter.WriteString("---\n")
	pb.hasFrontmatter = true
	return pb
}

// AddTitle adds a title field to the frontmatter
func (pb *PostBuilder) AddTitle(title string) *PostBuilder {
	fmt.Fprintf(&pb.frontmatter, "title: \"%s\"\n", title)
	return pb
}

// AddDate adds a date field to the frontmatter
func (pb *PostBuilder) AddDate(date string) *PostBuilder {
	if date != "" {
		fmt.Fprintf(&pb.frontmatter, "date: %s\n", date)
	}
	return pb
}

// AddAuthor adds an author field to the frontmatter
func (pb *PostBuilder) AddAuthor(author string) *PostBuilder {
	if author != "" {
		fmt.Fprintf(&pb.frontmatter, "author: \"%s\"\n", author)
	}
	return pb
}

// AddDraft adds a draft field to the frontmatter
func (pb *PostBuilder) AddDraft(draft bool) *PostBuilder {
	if draft {
		fmt.Fprintf(&pb.frontmatter, "draft: %t\n", draft)
	}
	return pb
}

// AddField adds a simple key-value field to the frontmatter
func (pb *PostBuilder) AddField(key string, value interface{}) *PostBuilder {
	switch v := value.(type) {
	case string:
		if v != "" {
			fmt.Fprintf(&pb.frontmatter, "%s: \"%s\"\n", key, v)
		}
	case int:
		if v != 0 {
			fmt.Fprintf(&pb.frontmatter, "%s: %d\n", key, v)
		}
	case float64:
		if v > 0 {
			fmt.Fprintf(&pb.frontmatter, "%s: %.1f\n", key, v)
		}
	case bool:
		fmt.Fprintf(&pb.frontmatter, "%s: %t\n", key, v)
	}
	return pb
}

// AddTags adds a list of tags to the frontmatter
func (pb *PostBuilder) AddTags(tags ...string) *PostBuilder {
	if len(tags) == 0 {
		return pb
	}

	pb.frontmatter.WriteString("tags:\n")
	for _, tag := range tags {
		if tag != "" {
			fmt.Fprintf(&pb.frontmatter, "  - %s\n", tag)
		}
	}
	return pb
}

// AddHeading adds a level-1 heading to the content
func (pb *PostBuilder) AddHeading(text string) *PostBuilder {
	if text == "" {
		return pb
	}

	fmt.Fprintf(&pb.content, "# %s\n\n", text)
	return pb
}

// AddParagraph adds a paragraph of text to the content
func (pb *PostBuilder) AddParagraph(text string) *PostBuilder {
	if text == "" {
		return pb
	}

	pb.content.WriteString(text)
	pb.content.WriteString("\n\n")
	return pb
}

// AddImage adds an image to the content
func (pb *PostBuilder) AddImage(imageURL string) *PostBuilder {
	if imageURL == "" {
		return pb
	}

	fmt.Fprintf(&pb.content, "![](%s)\n\n", imageURL)
	return pb
}

// AddExternalLink adds an external link to the content
func (pb *PostBuilder) AddExternalLink(title, url string) *PostBuilder {
	if url == "" {
		return pb
	}

	fmt.Fprintf(&pb.content, "[%s](%s)\n\n", title, url)
	return pb
}

// AddQuote adds a blockquote to the content
func (pb *PostBuilder) AddQuote(text string) *PostBuilder {
	if text == "" {
		return pb
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		fmt.Fprintf(&pb.content, "> %s\n", line)
	}
	pb.content.WriteString("\n")
	return pb
}

// AddRawContent appends preformatted markdown to the content
func (pb *PostBuilder) AddRawContent(text string) *PostBuilder {
	if text == "" {
		return pb
	}

	pb.content.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		pb.content.WriteString("\n")
	}
	return pb
}

// Build returns the complete post document as a string
func (pb *PostBuilder) Build() string {
	if !pb.hasFrontmatter {
		return pb.content.String()
	}

	var doc strings.Builder
	doc.WriteString(pb.frontmatter.String())
	doc.WriteString("---\n\n")
	doc.WriteString(pb.content.String())

	return doc.String()
}

// Package post creates new blog posts from a title, an existing draft file
// or a remote page.
package post

import (
	"log/slog"

	"github.com/quill-md/quill/internal/errors"
)

// NewCmd represents the new command
type NewCmd struct {
	Title       string   `arg:"" optional:"" help:"Title of the new post"`
	From        string   `help:"Seed the post from an existing markdown file"`
	FromURL     string   `help:"Create a link post from a page URL"`
	Render      bool     `help:"Render the page in headless Chrome before reading its metadata" default:"false"`
	Cover       bool     `help:"Download the page's cover image next to the post" default:"false"`
	Template    string   `help:"Post template: post, link or til"`
	Interactive bool     `short:"i" help:"Pick the template from an interactive list" default:"false"`
	Draft       bool     `help:"Write the post into the drafts directory" default:"false"`
	Tags        []string `short:"t" help:"Tags to add to the frontmatter (can specify multiple)"`
	Dir         string   `help:"Write into this directory instead of the configured one"`
}

func (n *NewCmd) Run() error {
	opts := Options{
		Title:       n.Title,
		FromFile:    n.From,
		FromURL:     n.FromURL,
		Render:      n.Render,
		Cover:       n.Cover,
		Template:    n.Template,
		Interactive: n.Interactive,
		Draft:       n.Draft,
		Tags:        n.Tags,
		Dir:         n.Dir,
	}

	err := CreatePostFunc(opts)
	if err != nil && errors.IsStopProcessingError(err) {
		slog.Info("Post creation cancelled")
		return nil
	}
	return err
}

var CreatePostFunc = CreatePost

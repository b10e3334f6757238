package post

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quill-md/quill/internal/config"
	"github.com/quill-md/quill/internal/errors"
	"github.com/quill-md/quill/internal/fileutil"
	"github.com/quill-md/quill/internal/infer"
	"github.com/quill-md/quill/internal/note"
	"github.com/quill-md/quill/internal/ratelimit"
	"github.com/quill-md/quill/internal/tui"
	"github.com/quill-md/quill/internal/webpage"
)

// Options holds configuration for the new command.
type Options struct {
	// Title is the explicit post title; wins over inferred ones
	Title string
	// FromFile seeds title, date, tags and body from an existing markdown file
	FromFile string
	// FromURL builds a link post from a page's metadata
	FromURL string
	// Render runs the page through headless Chrome before extraction
	Render bool
	// Cover downloads the page's image next to the post
	Cover bool
	// Template selects the post shape; empty means post, or link when
	// FromURL is set
	Template string
	// Interactive opens the template picker when no template was given
	Interactive bool
	// Draft writes into the drafts directory
	Draft bool
	// Tags are added to the frontmatter
	Tags []string
	// Dir overrides the configured output directory
	Dir string
	// Clock supplies today's date when no other date source applies.
	// Nil means the system clock.
	Clock infer.Clock
}

// postSeed is the resolved raw material for a new post before the template
// shapes it into a document.
type postSeed struct {
	Title string
	Date  string
	Slug  string
	Tags  []string
	Body  string
	Page  *webpage.Page
}

var (
	selectTemplateFunc = tui.SelectTemplate
	fetchPageFunc      = fetchPage
)

// CreatePost builds and writes a new post document.
func CreatePost(opts Options) error {
	ctx := context.Background()

	if opts.Title == "" && opts.FromFile == "" && opts.FromURL == "" {
		return fmt.Errorf("a title, --from file or --from-url is required")
	}

	tmpl, err := resolveTemplate(opts)
	if err != nil {
		return err
	}

	var page *webpage.Page
	if opts.FromURL != "" {
		page, err = fetchPageFunc(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to read page metadata: %w", err)
		}
	}

	seed, err := buildSeed(opts, page)
	if err != nil {
		return err
	}

	outputDir := opts.Dir
	if outputDir == "" {
		outputDir = config.ContentDir
		if opts.Draft {
			outputDir = config.DraftsDir
		}
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	doc := renderTemplate(ctx, tmpl, seed, opts, outputDir)

	outPath := fileutil.PostPath(outputDir, seed.Date, seed.Slug)
	written, err := fileutil.WriteFileWithOverwrite(outPath, []byte(doc), 0644, config.OverwriteFiles)
	if err != nil {
		return fmt.Errorf("failed to write post: %w", err)
	}
	if !written {
		slog.Info("Post already exists, skipping", "path", outPath)
		return nil
	}

	slog.Info("Created post", "path", outPath, "template", tmpl)
	return nil
}

// resolveTemplate picks the template for the new post: an explicit
// --template wins, then the interactive picker when requested, then the
// default (link for URL posts, post otherwise).
func resolveTemplate(opts Options) (string, error) {
	if opts.Template != "" {
		if _, ok := templateByKey(opts.Template); !ok {
			return "", fmt.Errorf("unknown template %q; valid templates are: %s",
				opts.Template, strings.Join(templateKeys(), ", "))
		}
		return opts.Template, nil
	}

	fallback := "post"
	if opts.FromURL != "" {
		fallback = "link"
	}

	if !opts.Interactive {
		return fallback, nil
	}

	result, err := selectTemplateFunc(displayTitle(opts), Templates)
	if err != nil {
		return "", fmt.Errorf("template selection failed: %w", err)
	}

	switch result.Action {
	case tui.ActionSelected:
		return result.Selection.Key, nil
	case tui.ActionStopped:
		return "", errors.NewStopProcessingError("template selection stopped by user")
	default:
		slog.Debug("Template selection skipped, using default", "template", fallback)
		return fallback, nil
	}
}

// displayTitle is what the template picker shows as the post being created.
func displayTitle(opts Options) string {
	switch {
	case opts.Title != "":
		return opts.Title
	case opts.FromFile != "":
		return filepath.Base(opts.FromFile)
	default:
		return opts.FromURL
	}
}

// fetchPage reads the page's metadata, through the render path when asked.
func fetchPage(ctx context.Context, opts Options) (*webpage.Page, error) {
	rps := viper.GetInt("webpage.ratelimit")
	if rps <= 0 {
		rps = 2
	}
	client := webpage.NewClient(webpage.WithRateLimiter(ratelimit.New("webpage", rps)))

	if opts.Render {
		renderOpts := webpage.RenderOptions{Headless: !viper.GetBool("webpage.headful")}
		html, fromCache, err := client.CachedRender(ctx, opts.FromURL, renderOpts)
		if err != nil {
			return nil, err
		}
		slog.Debug("Rendered page", "url", opts.FromURL, "from_cache", fromCache)
		return webpage.ExtractMetadata(opts.FromURL, html), nil
	}

	page, fromCache, err := client.CachedFetch(ctx, opts.FromURL)
	if err != nil {
		return nil, err
	}
	slog.Debug("Fetched page metadata", "url", opts.FromURL, "from_cache", fromCache)
	return page, nil
}

// buildSeed resolves the title, date, tags and body for the new post.
// An explicit title wins; a seed file contributes its frontmatter and body
// with inference filling the gaps; a page contributes its title. The date
// comes from the seed filename's date prefix when there is one, otherwise
// from the clock.
func buildSeed(opts Options, page *webpage.Page) (postSeed, error) {
	seed := postSeed{
		Title: opts.Title,
		Tags:  note.NormalizeTags(opts.Tags),
		Page:  page,
	}

	switch {
	case opts.FromFile != "":
		content, err := os.ReadFile(opts.FromFile)
		if err != nil {
			return postSeed{}, fmt.Errorf("failed to read seed file: %w", err)
		}
		meta, body, err := note.ParseMeta(content)
		if err != nil {
			return postSeed{}, fmt.Errorf("failed to parse seed file: %w", err)
		}

		seed.Body = body
		if seed.Title == "" && strings.TrimSpace(meta.Title) != "" {
			seed.Title = meta.Title
		}
		if seed.Title == "" {
			seed.Title = infer.TitleFromText(body, note.TitleFromFilename(opts.FromFile))
		}

		seed.Date = strings.TrimSpace(meta.Date)
		if seed.Date == "" {
			seed.Date = infer.Date(note.Stem(opts.FromFile), opts.Clock)
		}

		seed.Tags = note.MergeTags(note.NormalizeTags(meta.Tags), seed.Tags)

	case page != nil:
		if seed.Title == "" {
			seed.Title = page.Title
		}
		if seed.Title == "" {
			seed.Title = opts.FromURL
		}
		seed.Date = infer.Date("", opts.Clock)

	default:
		seed.Date = infer.Date("", opts.Clock)
	}

	seed.Slug = note.Slugify(seed.Title)
	if seed.Slug == "" {
		// An inferred title can legitimately be empty; the filename
		// still needs a slug.
		seed.Slug = "untitled"
	}

	return seed, nil
}

// renderTemplate shapes the seed into a markdown document.
func renderTemplate(ctx context.Context, tmpl string, seed postSeed, opts Options, outputDir string) string {
	pb := fileutil.NewPostBuilder()
	pb.AddTitle(seed.Title)
	pb.AddDate(seed.Date)
	pb.AddAuthor(config.SiteAuthor)
	pb.AddDraft(opts.Draft)

	tags := seed.Tags
	if tmpl == "til" {
		tags = note.MergeTags(tags, []string{"til"})
	}
	pb.AddTags(tags...)

	if tmpl == "link" && seed.Page != nil {
		link := seed.Page.Canonical
		if link == "" {
			link = seed.Page.URL
		}
		pb.AddField("link", link)

		if opts.Cover {
			fileutil.AddCoverToPost(ctx, pb, fileutil.AddCoverOptions{
				URL:          seed.Page.Image,
				Slug:         seed.Slug,
				Directory:    outputDir,
				MaxWidth:     viper.GetInt("covers.maxwidth"),
				UpdateCovers: config.OverwriteFiles,
			})
		}

		pb.AddQuote(seed.Page.Description)
		pb.AddExternalLink(seed.Title, link)
	}

	pb.AddRawContent(seed.Body)

	return pb.Build()
}

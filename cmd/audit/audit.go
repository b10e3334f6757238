package audit

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/quill-md/quill/internal/fileutil"
	"github.com/quill-md/quill/internal/infer"
	"github.com/quill-md/quill/internal/note"
)

// Options holds configuration for the audit command.
type Options struct {
	// InputDir is the directory containing markdown posts to audit
	InputDir string
	// Recursive determines whether to scan subdirectories
	Recursive bool
	// Fix writes inferred values back instead of only reporting
	Fix bool
	// DryRun shows what would be fixed without making changes
	DryRun bool
	// Clock supplies today's date for posts whose filename carries no
	// date prefix. Nil means the system clock.
	Clock infer.Clock
}

// Finding describes the frontmatter gaps of a single post.
type Finding struct {
	Path         string
	MissingTitle bool
	MissingDate  bool
}

// Complete reports whether the post needs no repair.
func (f *Finding) Complete() bool {
	return !f.MissingTitle && !f.MissingDate
}

// InspectFile reports which of a post's title and date frontmatter fields
// are missing or empty.
func InspectFile(path string) (*Finding, error) {
	meta, _, err := note.ParseMetaFile(path)
	if err != nil {
		return nil, err
	}

	return &Finding{
		Path:         path,
		MissingTitle: strings.TrimSpace(meta.Title) == "",
		MissingDate:  strings.TrimSpace(meta.Date) == "",
	}, nil
}

// FixFile fills in missing title and date frontmatter on a single post.
// The title comes from the first level-1 heading of the body, falling back
// to a filename-derived title; the date comes from the filename's date
// prefix, falling back to the clock. Existing frontmatter keys keep their
// order and the body is written back byte for byte.
//
// The returned flag reports whether the file was rewritten.
func FixFile(path string, clock infer.Clock) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	n, err := note.ParseMarkdown(content)
	if err != nil {
		return false, fmt.Errorf("failed to parse post: %w", err)
	}

	changed := false

	if strings.TrimSpace(n.Frontmatter.GetString("title")) == "" {
		fallback := note.TitleFromFilename(path)
		n.Frontmatter.Set("title", infer.TitleFromText(n.Body, fallback))
		changed = true
	}

	if strings.TrimSpace(n.Frontmatter.GetString("date")) == "" {
		n.Frontmatter.Set("date", infer.Date(note.Stem(path), clock))
		changed = true
	}

	if !changed {
		return false, nil
	}

	rebuilt, err := n.Build()
	if err != nil {
		return false, fmt.Errorf("failed to rebuild post: %w", err)
	}

	if err := os.WriteFile(path, rebuilt, 0644); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}

	return true, nil
}

// AuditNotes scans a directory of markdown posts and reports or repairs
// missing frontmatter.
func AuditNotes(opts Options) error {
	slog.Info("Starting audit", "dir", opts.InputDir, "recursive", opts.Recursive)

	files, err := fileutil.FindMarkdownFiles(opts.InputDir, opts.Recursive)
	if err != nil {
		return fmt.Errorf("failed to find markdown files: %w", err)
	}

	if len(files) == 0 {
		slog.Info("No markdown files found in directory")
		return nil
	}

	slog.Info("Found markdown files to audit", "count", len(files))

	flaggedCount := 0
	fixedCount := 0
	errorCount := 0

	for _, file := range files {
		slog.Debug("Auditing file", "path", file)

		finding, err := InspectFile(file)
		if err != nil {
			slog.Warn("Failed to parse file", "path", file, "error", err)
			errorCount++
			continue
		}

		if finding.Complete() {
			continue
		}

		flaggedCount++
		slog.Info("Post is missing frontmatter", "path", file,
			"missing_title", finding.MissingTitle, "missing_date", finding.MissingDate)

		if opts.DryRun {
			slog.Info("Would fix", "path", file)
			fixedCount++
			continue
		}

		if !opts.Fix {
			continue
		}

		changed, err := FixFile(file, opts.Clock)
		if err != nil {
			slog.Warn("Failed to fix file", "path", file, "error", err)
			errorCount++
			continue
		}
		if changed {
			fixedCount++
		}
	}

	slog.Info("Audit complete", "total", len(files),
		"flagged", flaggedCount, "fixed", fixedCount, "errors", errorCount)
	return nil
}

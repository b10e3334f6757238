package fileutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const defaultCoverMaxWidth = 1200

// CoverDownloadOptions holds options for downloading cover images.
type CoverDownloadOptions struct {
	// URL is the source URL of the cover image
	URL string
	// OutputDir is the directory of the post the cover belongs to
	OutputDir string
	// Filename is the name of the cover file (e.g., "my-post-cover.jpg")
	Filename string
	// MaxWidth caps the stored image width in pixels
	MaxWidth int
	// UpdateCovers forces re-downloading even if cover exists
	UpdateCovers bool
}

// CoverDownloadResult holds the result of a cover download operation.
type CoverDownloadResult struct {
	// Downloaded indicates if a new file was downloaded
	Downloaded bool
	// LocalPath is the full path to the downloaded cover
	LocalPath string
	// RelativePath is the path relative to the post (e.g., "images/my-post-cover.jpg")
	RelativePath string
	// Filename is just the filename
	Filename string
}

// DownloadCover downloads a cover image into the images directory next to the
// post, resizing it down to MaxWidth if the source is wider. It skips
// downloading if the file already exists and UpdateCovers is false.
func DownloadCover(ctx context.Context, opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = defaultCoverMaxWidth
	}

	imagesDir := filepath.Join(opts.OutputDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	localPath := filepath.Join(imagesDir, opts.Filename)
	relativePath := filepath.Join("images", opts.Filename)

	result := &CoverDownloadResult{
		LocalPath:    localPath,
		RelativePath: relativePath,
		Filename:     opts.Filename,
	}

	// Check if file already exists
	if FileExists(localPath) && !opts.UpdateCovers {
		slog.Debug("Cover already exists, skipping download", "path", localPath)
		return result, nil
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover: %w", err)
	}

	width := img.Bounds().Dx()
	if width > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, localPath, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to write cover file: %w", err)
	}

	slog.Info("Downloaded cover", "path", localPath, "width", img.Bounds().Dx())
	result.Downloaded = true

	return result, nil
}

// BuildCoverFilename creates a standard cover filename from a post slug.
// Returns: "my-post-cover.jpg"
func BuildCoverFilename(slug string) string {
	return slug + "-cover.jpg"
}

// AddCoverOptions holds options for adding a cover to a post.
type AddCoverOptions struct {
	// URL is the remote cover image URL
	URL string
	// Slug is the post slug, used for the local filename
	Slug string
	// Directory is the post output directory
	Directory string
	// MaxWidth caps the stored image width in pixels
	MaxWidth int
	// UpdateCovers forces re-downloading even if cover exists
	UpdateCovers bool
}

// AddCoverToPost downloads the cover and writes the cover frontmatter field
// plus a leading image into the post. Falls back to referencing the remote
// URL when the download fails.
func AddCoverToPost(ctx context.Context, pb *PostBuilder, opts AddCoverOptions) {
	if opts.URL == "" {
		return
	}

	result, err := DownloadCover(ctx, CoverDownloadOptions{
		URL:          opts.URL,
		OutputDir:    opts.Directory,
		Filename:     BuildCoverFilename(opts.Slug),
		MaxWidth:     opts.MaxWidth,
		UpdateCovers: opts.UpdateCovers,
	})
	if err != nil || result == nil {
		if err != nil {
			slog.Warn("Cover download failed, linking remote URL", "url", opts.URL, "error", err)
		}
		pb.AddField("cover", opts.URL)
		pb.AddImage(opts.URL)
		return
	}

	pb.AddField("cover", filepath.ToSlash(result.RelativePath))
	pb.AddImage(filepath.ToSlash(result.RelativePath))
}

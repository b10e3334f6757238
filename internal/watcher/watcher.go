// Package watcher monitors content directories for markdown changes and
// triggers frontmatter checks on modified posts.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 2 * time.Second

// Options configures a watch session.
type Options struct {
	// Dirs are the root directories to watch, recursively.
	Dirs []string
	// Debounce is how long to collect changes before handing them off.
	Debounce time.Duration
	// Handler receives batches of changed markdown files.
	Handler func(paths []string)
}

// Watch blocks watching the given directories for markdown changes until
// the context is done or an unrecoverable error occurs. Changes are
// debounced so a burst of editor saves results in a single handler call.
func Watch(ctx context.Context, opts Options) error {
	if len(opts.Dirs) == 0 {
		return errors.New("no directories to watch")
	}
	if opts.Handler == nil {
		return errors.New("watch handler is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	var watched int
	for _, root := range opts.Dirs {
		for _, d := range walkDirs(root) {
			if err := w.Add(d); err != nil {
				slog.Warn("Could not watch directory", "dir", d, "error", err)
				continue
			}
			watched++
		}
	}
	if watched == 0 {
		return errors.New("no directories could be watched")
	}

	slog.Info("Watching for markdown changes", "directories", watched)

	// Debounce: collect changed files over a window before flushing
	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
	)

	flush := func() {
		mu.Lock()
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		pending = make(map[string]bool)
		mu.Unlock()

		if len(paths) == 0 {
			return
		}
		sort.Strings(paths)

		slog.Debug("Flushing changed files", "count", len(paths))
		opts.Handler(paths)
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !strings.HasSuffix(event.Name, ".md") {
				// New directories need to be added to the watch set
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(filepath.Base(event.Name)) {
						if err := w.Add(event.Name); err != nil {
							slog.Warn("Could not watch new directory", "dir", event.Name, "error", err)
						} else {
							slog.Debug("Watching new directory", "dir", event.Name)
						}
					}
				}
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				mu.Lock()
				pending[event.Name] = true
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(opts.Debounce, flush)
				mu.Unlock()
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Debug("Post removed or renamed", "path", event.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watch error", "error", err)
		}
	}
}

// walkDirs collects root and all non-hidden subdirectories.
func walkDirs(root string) []string {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Package watch monitors the drafts directories and fills in missing
// frontmatter as posts change on disk.
package watch

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quill-md/quill/cmd/audit"
	"github.com/quill-md/quill/internal/config"
	"github.com/quill-md/quill/internal/watcher"
)

// WatchCmd represents the watch command
type WatchCmd struct {
	Dirs     []string      `short:"d" help:"Directories to watch (defaults to the configured drafts dir)"`
	Debounce time.Duration `help:"How long to wait after the last change before checking a post" default:"2s"`
}

func (w *WatchCmd) Run() error {
	dirs := w.Dirs
	if len(dirs) == 0 {
		dirs = []string{config.DraftsDir}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchFunc(ctx, watcher.Options{
		Dirs:     dirs,
		Debounce: w.Debounce,
		Handler:  handleChanged,
	})
}

var (
	watchFunc   = watcher.Watch
	fixFileFunc = audit.FixFile
)

// handleChanged fills in missing frontmatter on each changed post. A fixed
// post triggers one more watch event for its own rewrite; the second pass
// finds nothing missing and writes nothing, so the cycle ends there.
func handleChanged(paths []string) {
	for _, path := range paths {
		changed, err := fixFileFunc(path, nil)
		if err != nil {
			slog.Warn("Failed to check post", "path", path, "error", err)
			continue
		}
		if changed {
			slog.Info("Filled in missing frontmatter", "path", path)
		}
	}
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-md/quill/internal/testutil"
)

func startWatch(t *testing.T, dirs []string) (<-chan []string, context.CancelFunc) {
	t.Helper()

	batches := make(chan []string, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{
			Dirs:     dirs,
			Debounce: 50 * time.Millisecond,
			Handler: func(paths []string) {
				batches <- paths
			},
		})
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not shut down")
		}
	})

	// Give the watcher a moment to register the directories
	time.Sleep(100 * time.Millisecond)

	return batches, cancel
}

func waitForBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-batches:
		return paths
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for changed files")
		return nil
	}
}

func TestWatchDetectsMarkdownChanges(t *testing.T) {
	env := testutil.NewTestEnv(t)
	batches, _ := startWatch(t, []string{env.RootDir()})

	postPath := env.Path("2024-01-15-new-draft.md")
	require.NoError(t, os.WriteFile(postPath, []byte("# New Draft\n"), 0644))

	paths := waitForBatch(t, batches)
	assert.Contains(t, paths, postPath)
}

func TestWatchIgnoresNonMarkdownFiles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	batches, _ := startWatch(t, []string{env.RootDir()})

	require.NoError(t, os.WriteFile(env.Path("notes.txt"), []byte("not a post"), 0644))

	select {
	case paths := <-batches:
		t.Fatalf("expected no batch for non-markdown file, got %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchBatchesBurstsOfChanges(t *testing.T) {
	env := testutil.NewTestEnv(t)
	batches, _ := startWatch(t, []string{env.RootDir()})

	first := env.Path("first.md")
	second := env.Path("second.md")
	require.NoError(t, os.WriteFile(first, []byte("# First\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("# Second\n"), 0644))

	paths := waitForBatch(t, batches)
	assert.Contains(t, paths, first)
	assert.Contains(t, paths, second)
}

func TestWatchPicksUpNewDirectories(t *testing.T) {
	env := testutil.NewTestEnv(t)
	batches, _ := startWatch(t, []string{env.RootDir()})

	subDir := env.Path("series")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	// Give the watcher time to add the new directory
	time.Sleep(200 * time.Millisecond)

	nested := filepath.Join(subDir, "part-one.md")
	require.NoError(t, os.WriteFile(nested, []byte("# Part One\n"), 0644))

	paths := waitForBatch(t, batches)
	assert.Contains(t, paths, nested)
}

func TestWatchRequiresDirsAndHandler(t *testing.T) {
	err := Watch(context.Background(), Options{Handler: func([]string) {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no directories")

	err = Watch(context.Background(), Options{Dirs: []string{"somewhere"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler")
}

func TestWatchFailsWhenNothingWatchable(t *testing.T) {
	err := Watch(context.Background(), Options{
		Dirs:    []string{filepath.Join(os.TempDir(), "quill-definitely-missing-dir")},
		Handler: func([]string) {},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could be watched")
}

func TestWalkDirsSkipsHidden(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.MkdirAll("posts")
	env.MkdirAll(".obsidian")
	env.MkdirAll(filepath.Join(".obsidian", "plugins"))

	dirs := walkDirs(env.RootDir())

	assert.Contains(t, dirs, env.RootDir())
	assert.Contains(t, dirs, env.Path("posts"))
	assert.NotContains(t, dirs, env.Path(".obsidian"))
	assert.NotContains(t, dirs, env.Path(".obsidian", "plugins"))
}

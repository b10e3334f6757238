package watch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/quill-md/quill/internal/config"
	"github.com/quill-md/quill/internal/infer"
	"github.com/quill-md/quill/internal/testutil"
	"github.com/quill-md/quill/internal/watcher"
	"github.com/stretchr/testify/require"
)

func stubWatch(t *testing.T, fn func(ctx context.Context, opts watcher.Options) error) {
	t.Helper()
	orig := watchFunc
	watchFunc = fn
	t.Cleanup(func() { watchFunc = orig })
}

func TestWatchCmdRunDefaultsToDraftsDir(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	var gotOpts watcher.Options
	stubWatch(t, func(ctx context.Context, opts watcher.Options) error {
		gotOpts = opts
		return nil
	})

	cmd := WatchCmd{Debounce: 500 * time.Millisecond}
	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, []string{config.DraftsDir}, gotOpts.Dirs)
	assert.Equal(t, 500*time.Millisecond, gotOpts.Debounce)
	assert.True(t, gotOpts.Handler != nil)
}

func TestWatchCmdRunExplicitDirs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	var gotOpts watcher.Options
	stubWatch(t, func(ctx context.Context, opts watcher.Options) error {
		gotOpts = opts
		return nil
	})

	dirs := []string{env.Path("a"), env.Path("b")}
	cmd := WatchCmd{Dirs: dirs}
	err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, dirs, gotOpts.Dirs)
}

func TestWatchCmdRunPropagatesError(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	expectedErr := fmt.Errorf("mock error from watcher")
	stubWatch(t, func(ctx context.Context, opts watcher.Options) error {
		return expectedErr
	})

	cmd := WatchCmd{}
	err := cmd.Run()
	require.Error(t, err)
	assert.Equal(t, expectedErr, err)
}

func TestHandleChangedFixesPosts(t *testing.T) {
	env := testutil.NewTestEnv(t)

	env.WriteFileString("2024-03-09-drafted.md", "# Drafted Post\n\nBody\n")

	handleChanged([]string{env.Path("2024-03-09-drafted.md")})

	got := env.ReadFileString("2024-03-09-drafted.md")
	assert.Contains(t, got, "title: Drafted Post")
	assert.Contains(t, got, "date: 2024-03-09")
}

func TestHandleChangedSecondPassWritesNothing(t *testing.T) {
	env := testutil.NewTestEnv(t)

	env.WriteFileString("2024-03-09-drafted.md", "# Drafted Post\n\nBody\n")
	path := env.Path("2024-03-09-drafted.md")

	handleChanged([]string{path})
	fixed := env.ReadFileString("2024-03-09-drafted.md")

	handleChanged([]string{path})
	assert.Equal(t, fixed, env.ReadFileString("2024-03-09-drafted.md"))
}

func TestHandleChangedContinuesPastErrors(t *testing.T) {
	var calls []string
	orig := fixFileFunc
	fixFileFunc = func(path string, clock infer.Clock) (bool, error) {
		calls = append(calls, path)
		if len(calls) == 1 {
			return false, fmt.Errorf("mock fix error")
		}
		return true, nil
	}
	t.Cleanup(func() { fixFileFunc = orig })

	handleChanged([]string{"/one.md", "/two.md"})
	assert.Equal(t, []string{"/one.md", "/two.md"}, calls)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *Watcher) *atomic.Int32 {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var calls atomic.Int32
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(context.Context) { calls.Add(1) })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return &calls
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	calls := startWatcher(t, w)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.h"), []byte(strings.Repeat("x", i+1)), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoredPaths(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.h")
	w, err := New([]string{dir},
		WithDebounce(20*time.Millisecond),
		WithIgnore(func(path string) bool { return path == out }),
	)
	require.NoError(t, err)
	calls := startWatcher(t, w)

	require.NoError(t, os.WriteFile(out, []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.h"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	calls := startWatcher(t, w)

	sub := filepath.Join(dir, "ghost")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.h"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "failed to watch")
}

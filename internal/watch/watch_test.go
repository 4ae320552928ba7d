package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leapcube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dirs []string, match func(string) bool) <-chan []string {
	t.Helper()

	w, err := New(dirs, Options{
		Debounce: 100 * time.Millisecond,
		Match:    match,
		Logger:   testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	batches := make(chan []string, 16)
	go func() {
		_ = w.Run(ctx, func(paths []string) { batches <- paths })
	}()
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-batches:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_ReportsMatchingWrites(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, []string{dir}, func(p string) bool {
		return strings.HasSuffix(p, ".yaml")
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	target := filepath.Join(dir, "orders.yaml")
	require.NoError(t, os.WriteFile(target, []byte("cubes: []\n"), 0600))

	assert.Equal(t, []string{target}, waitBatch(t, batches))
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, []string{dir}, nil)

	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(a, []byte("a"), 0600))
		require.NoError(t, os.WriteFile(b, []byte("b"), 0600))
	}

	got := waitBatch(t, batches)
	assert.Equal(t, []string{a, b}, got)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, []string{dir}, func(p string) bool {
		return strings.HasSuffix(p, ".yaml")
	})

	sub := filepath.Join(dir, "sales")
	require.NoError(t, os.Mkdir(sub, 0750))
	// Give the watcher time to register the new directory.
	time.Sleep(200 * time.Millisecond)

	target := filepath.Join(sub, "orders.yaml")
	require.NoError(t, os.WriteFile(target, []byte("cubes: []\n"), 0600))

	assert.Contains(t, waitBatch(t, batches), target)
}

func TestNew_SkipsMissingDirectories(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "missing")}, Options{})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

package bones

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceFile writes data next to path and renames it over path, the way
// editors save, so the watcher sees one complete file.
func replaceFile(t *testing.T, path string, data string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  time_scale: 1\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.Equal(t, path, w.Path())

	replaceFile(t, path, "clock:\n  time_scale: 2\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Configs:
			if cfg.Clock.TimeScale == 2 {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatchConfigDeliversContentsAfterTruncate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  time_scale: 1\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// In-place saves truncate first; the reload must wait for the write.
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	time.Sleep(watchDebounce / 4)
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  time_scale: 2\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		assert.InDelta(t, 2, cfg.Clock.TimeScale, 1e-9)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	time.Sleep(3 * watchDebounce)
	_, ok := w.Poll()
	assert.False(t, ok, "one burst of writes reloads once")
}

func TestWatchConfigReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  time_scale: 1\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	replaceFile(t, path, "clock:\n  delta_policy: sometimes\n")

	select {
	case err := <-w.Errors:
		assert.Error(t, err)
	case cfg := <-w.Configs:
		t.Fatalf("unexpected config %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for parse error")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("{}\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	_, ok := w.Poll()
	assert.False(t, ok)
}

func TestConfigWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	w, err := WatchConfig(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Configs
	assert.False(t, ok)
}

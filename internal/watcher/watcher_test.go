package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/feeds/items.yaml", false},
		{"/feeds/items.yaml.lock", true},
		{"/feeds/items.yaml.tmp", true},
		{"/feeds/.items.yaml.swp", true},
		{"/feeds/items.yaml~", true},
		{"/feeds/.#items.yaml", true},
		{"/feeds/.DS_Store", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldIgnore(tt.path))
		})
	}
}

func TestRelevant(t *testing.T) {
	write := fsnotify.Event{Name: "/feeds/items.yaml", Op: fsnotify.Write}
	assert.True(t, relevant(write, "items.yaml"))
	assert.True(t, relevant(write, ""))
	assert.False(t, relevant(write, "history.yaml"))
	assert.False(t, relevant(fsnotify.Event{Name: "/feeds/items.yaml", Op: fsnotify.Chmod}, "items.yaml"))
	assert.False(t, relevant(fsnotify.Event{Name: "/feeds/items.yaml.lock", Op: fsnotify.Create}, ""))
}

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "feed.json")
	require.NoError(t, os.WriteFile(feed, []byte(`{}`), 0o644))

	ch, stop, err := Watch(feed, 10*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(feed, []byte(`{"items": []}`), 0o644))

	select {
	case _, ok := <-ch:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no event after writing the feed")
	}
}

func TestWatchMissingTarget(t *testing.T) {
	_, _, err := Watch(filepath.Join(t.TempDir(), "missing.json"), time.Millisecond)
	assert.Error(t, err)
}

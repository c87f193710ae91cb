// Package watcher monitors the backend feed file and notifies the panel to
// refresh. The feed's directory is watched rather than the file itself:
// writers commonly replace the feed by renaming a temp file over it, which
// drops a watch placed on the old inode.
package watcher

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the feed changed.
type Event struct{}

// Watch monitors target, a feed file or a directory of feeds, and sends an
// Event on the returned channel after each burst of changes settles for
// debounce. Call the returned stop function to tear down the watcher.
func Watch(target string, debounce time.Duration) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("watch %s: %w", target, err)
	}

	dir, file := abs, ""
	if !info.IsDir() {
		dir, file = filepath.Dir(abs), filepath.Base(abs)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads reloads when several panels watch the same feed.
	jitterRange := int64(debounce / 2)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev, file) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(jitterRange))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// relevant reports whether ev concerns the watched feed. An empty file
// accepts every non-ignored entry of the directory.
func relevant(ev fsnotify.Event, file string) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if shouldIgnore(ev.Name) {
		return false
	}
	return file == "" || filepath.Base(ev.Name) == file
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for paths that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Writers hold a lock while the feed is half-written.
	if strings.HasSuffix(base, ".lock") || strings.HasSuffix(base, ".tmp") {
		return true
	}

	// Editor swap and backup files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}

	return base == ".DS_Store"
}

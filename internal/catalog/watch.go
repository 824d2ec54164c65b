package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle before
// invalidating the catalog.
const DefaultDebounce = 250 * time.Millisecond

// Watch invalidates the store whenever something under the content root
// changes. The root and its immediate subdirectories are watched; new
// subdirectories are picked up as they appear. Watch returns once the
// watcher is running and stops it when ctx is done.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.root, err)
	}

	log := s.opts.logger()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to read %s: %w", s.root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := filepath.Join(s.root, entry.Name())
		if err := watcher.Add(p); err != nil {
			log.Warn("failed to add watch", "path", p, "error", err)
		}
	}

	go s.processEvents(ctx, watcher, debounce)
	return nil
}

func (s *Store) processEvents(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration) {
	log := s.opts.logger()
	defer watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, s.Invalidate)
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
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			// Only the root's direct children are units, so only they get watches
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(s.root) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("failed to add watch", "path", event.Name, "error", err)
					}
				}
			}
			log.Debug("content changed", "path", event.Name, "op", event.Op.String())
			schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("content watcher error", "error", err)
		}
	}
}

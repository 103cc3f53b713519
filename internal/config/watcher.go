package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDuration coalesces the burst of events editors produce on save.
const debounceDuration = 500 * time.Millisecond

// Watcher watches the configuration file and publishes each successfully
// reloaded Config. Consumers read Updates; only the latest config is kept.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	watcherDone chan struct{}
	path        string
	updates     chan Config
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors which save by rename are still noticed.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Printf("INFO: Watching %s for config changes (auto-reload enabled)", path)

	cw := &Watcher{
		watcher:     watcher,
		watcherDone: make(chan struct{}),
		path:        filepath.Clean(path),
		updates:     make(chan Config, 1),
	}
	go cw.watchLoop(watcher)
	return cw, nil
}

// Updates delivers reloaded configurations.
func (cw *Watcher) Updates() <-chan Config {
	return cw.updates
}

// Stop stops the watcher. It is safe to call more than once.
func (cw *Watcher) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.watcher == nil {
		return
	}
	close(cw.watcherDone)
	cw.watcher.Close()
	cw.watcher = nil
	log.Printf("INFO: Configuration file watcher stopped")
}

func (cw *Watcher) watchLoop(w *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, cw.reload)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("ERROR: Config file watcher error: %v", err)

		case <-cw.watcherDone:
			return
		}
	}
}

func (cw *Watcher) reload() {
	log.Printf("INFO: Config file change detected: %s", cw.path)

	cfg, err := Load(cw.path)
	if err != nil {
		log.Printf("ERROR: Failed to reload %s: %v", cw.path, err)
		return
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.watcher == nil {
		return
	}
	// Replace any update the consumer has not picked up yet.
	select {
	case <-cw.updates:
	default:
	}
	cw.updates <- cfg
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sambeau/fern/config"
	"github.com/sambeau/fern/pkg/fern/fern"
)

// watcher re-checks source files whenever they change
type watcher struct {
	watcher *fsnotify.Watcher
	cfg     *config.Config
	logger  fern.Logger

	// Track last change time to debounce rapid changes
	mu         sync.Mutex
	lastChange time.Time
}

// watchFiles checks the given files/directories once, then blocks watching
// them for changes, re-checking on each change.
func watchFiles(paths []string, cfg *config.Config) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	w := &watcher{
		watcher: fsWatcher,
		cfg:     cfg,
		logger:  fern.WriterLogger(os.Stderr),
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := w.watchDirRecursive(path); err != nil {
				return err
			}
		} else {
			if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
				return err
			}
		}
		w.logger.LogLine(fmt.Sprintf("watching: %s", path))
	}

	// Initial pass before waiting for changes
	for _, path := range paths {
		w.checkPath(path)
	}

	w.eventLoop()
	return nil
}

// watchDirRecursive adds a directory and its subdirectories to the watch list
func (w *watcher) watchDirRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

// eventLoop processes file system events until the watcher is closed
func (w *watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only handle write and create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.watchedExtension(event.Name) {
				continue
			}

			// Debounce rapid changes
			w.mu.Lock()
			if time.Since(w.lastChange) < w.cfg.Watch.Debounce.Std() {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			w.checkPath(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.LogLine(fmt.Sprintf("watcher error: %v", err))
		}
	}
}

func (w *watcher) watchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.cfg.Watch.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// checkPath lexes one file, or every watched file under a directory, and
// reports diagnostics
func (w *watcher) checkPath(path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.LogLine(fmt.Sprintf("error: %v", err))
		return
	}
	if info.IsDir() {
		filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil || fi.IsDir() || !w.watchedExtension(p) {
				return nil
			}
			w.checkFile(p)
			return nil
		})
		return
	}
	w.checkFile(path)
}

func (w *watcher) checkFile(path string) {
	_, lexErrors, err := fern.TokenizeFile(path)
	if err != nil {
		w.logger.LogLine(fmt.Sprintf("error: %v", err))
		return
	}
	if len(lexErrors) == 0 {
		w.logger.LogLine(fmt.Sprintf("%s: OK", path))
		return
	}
	printErrors(lexErrors, w.cfg)
}

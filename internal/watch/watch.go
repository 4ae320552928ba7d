// Package watch reports batches of file changes under a set of directories.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a batch
// is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration
	// Match filters events by path. Nil accepts every file.
	Match func(path string) bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watcher watches directory trees and a few single files.
type Watcher struct {
	fs       *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	match    func(string) bool
	logger   *slog.Logger
}

// New creates a watcher over the trees rooted at dirs. Missing directories
// are skipped; they are picked up when created under a watched parent.
func New(dirs []string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		debounce: opts.Debounce,
		match:    opts.Match,
		logger:   opts.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}

	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		w.roots = append(w.roots, dir)
		if err := w.addTree(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// AddDir watches a single directory without its subdirectories.
func (w *Watcher) AddDir(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// addTree recursively adds a directory to the watcher.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("watch directory missing", "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// tracked reports whether path lies in one of the watched trees.
func (w *Watcher) tracked(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run delivers batches of changed paths to fn until ctx is done. Batches
// are sorted and deduplicated, and fn is never called concurrently.
func (w *Watcher) Run(ctx context.Context, fn func(paths []string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			name := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 && w.tracked(name) {
				if info, err := os.Stat(name); err == nil && info.IsDir() {
					if err := w.addTree(name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", name, "error", err)
					}
					continue
				}
			}
			if w.match != nil && !w.match(name) {
				continue
			}

			pending[name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			w.logger.Debug("change detected", "files", len(paths))
			fn(paths)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

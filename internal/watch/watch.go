// Package watch rebuilds the site when files under the source directories change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one rebuild. Errors are logged and watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher watches directory trees and runs a RebuildFunc after changes settle.
// Rebuilds never overlap; events during a rebuild queue at most one more.
type Watcher struct {
	dirs     []string
	ignore   []string
	debounce time.Duration
	rebuild  RebuildFunc
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithIgnore skips events for paths under any of dirs, such as an output root
// nested inside a watched tree. A dir that contains a watched tree is dropped:
// the default output root "." holds the source directories.
func WithIgnore(dirs ...string) Option {
	return func(w *Watcher) {
		for _, d := range dirs {
			if abs, err := filepath.Abs(d); err == nil {
				w.ignore = append(w.ignore, abs)
			}
		}
	}
}

// New returns a Watcher for dirs.
func New(dirs []string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{dirs: dirs, debounce: DefaultDebounce, rebuild: rebuild}
	for _, opt := range opts {
		opt(w)
	}
	w.ignore = w.nestedIgnores()
	return w
}

// nestedIgnores keeps the ignore entries that do not contain a watched dir.
func (w *Watcher) nestedIgnores() []string {
	kept := w.ignore[:0]
	for _, ign := range w.ignore {
		contains := false
		for _, dir := range w.dirs {
			abs, err := filepath.Abs(dir)
			if err == nil && within(abs, ign) {
				contains = true
				break
			}
		}
		if contains {
			slog.Debug("Ignore directory contains a watched tree, not ignoring", logfields.Path(ign))
			continue
		}
		kept = append(kept, ign)
	}
	return kept
}

// Run watches until ctx is done. It returns an error only when the watcher
// cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	for _, dir := range w.dirs {
		if err := addDirsRecursive(fw, dir); err != nil {
			return err
		}
		slog.Info("Watching for changes", logfields.Path(dir))
	}

	rebuildReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, rebuildReq)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			t0 := time.Now()
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuild complete", logfields.DurationMS(time.Since(t0)))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.ignored(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if within(abs, dir) {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

// newDebouncer returns a channel that receives once per quiet period after
// trigger calls, the trigger function and a stop function.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports editor swap, backup and lock files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, ".#"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == ".DS_Store", base == "Thumbs.db":
		return true
	}
	return false
}

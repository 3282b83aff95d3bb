// Package watch monitors a project tree and re-runs checks as files change.
//
// It wraps fsnotify with recursive directory registration, hidden-path and
// glob ignores, and per-file debouncing so a burst of editor writes produces
// a single check run.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// defaultIgnore lists basenames and patterns that never trigger checks.
// Hidden paths (any segment starting with ".") are always skipped.
var defaultIgnore = []string{"node_modules", "vendor", "__pycache__", "*.tmp", "*.swp"}

// Handler is invoked once per settled file change.
type Handler func(ctx context.Context, path string)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long a file must stay quiet before its handler
	// fires. Zero means the default of 500ms.
	Debounce time.Duration
	// Ignore holds extra basename globs to skip, on top of the defaults.
	Ignore []string
}

// Watcher watches a directory tree and calls a handler for changed files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	ignore   []string
	handler  Handler
	fires    chan string

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

// New builds a Watcher over root and registers every non-ignored directory.
// Call Run to start delivering events and Close to release the watcher.
func New(root string, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch: handler is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		fsw:      fsw,
		root:     root,
		debounce: debounce,
		ignore:   append(append([]string{}, defaultIgnore...), opts.Ignore...),
		handler:  handler,
		fires:    make(chan string, 64),
		pending:  make(map[string]*time.Timer),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers debounced file changes to the handler until ctx is canceled
// or the watcher is closed. Handlers run one at a time, in settle order.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-w.fires:
			w.handler(ctx, path)
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

// Close stops pending timers and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

// addRecursive registers dir and all non-ignored subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// New directories are watched immediately so files created inside
	// them are seen. Editors that write via a temp dir depend on this.
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.ignored(ev.Name) {
				if err := w.addRecursive(ev.Name); err != nil {
					log.Printf("watch: %v", err)
				}
			}
			return
		}
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if w.ignored(ev.Name) {
		return
	}
	w.schedule(ev.Name)
}

// schedule arms (or re-arms) the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		select {
		case w.fires <- path:
		default:
			log.Printf("watch: dropping change for %s, handler backlog full", path)
		}
	})
}

// ignored reports whether path sits under a hidden directory, is itself
// hidden, or matches an ignore pattern by basename.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	base := filepath.Base(path)
	for _, pat := range w.ignore {
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Package watch reports debounced batches of changed Go source files.
package watch

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors directory trees for Go file changes using fsnotify.
type Watcher struct {
	// Batches receives the sorted set of files changed during one burst.
	Batches <-chan []string

	batches  chan []string
	stop     chan struct{}
	done     chan struct{}
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	ignore   []string
}

// New creates a watcher. Files below any of the ignore directories are never
// reported.
func New(logger *slog.Logger, debounce time.Duration, ignore ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs := make([]string, 0, len(ignore))
	for _, dir := range ignore {
		if a, err := filepath.Abs(dir); err == nil {
			abs = append(abs, a)
		}
	}
	ch := make(chan []string, 4)
	return &Watcher{
		Batches:  ch,
		batches:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
		logger:   logger,
		debounce: debounce,
		ignore:   abs,
	}, nil
}

// AddTree watches root and every directory below it except hidden
// directories, testdata, vendor and the ignored directories.
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		w.logger.Debug("Watching directory", "dir", path)
		return w.watcher.Add(path)
	})
}

// Start begins watching for changes.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop closes the watcher and the Batches channel. Batches nobody received
// are dropped.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done
	close(w.batches)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := map[string]bool{}
	var last time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for f := range pending {
			batch = append(batch, f)
		}
		sort.Strings(batch)
		clear(pending)
		select {
		case w.batches <- batch:
		case <-w.stop:
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				flush()
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.AddTree(event.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = true
				last = time.Now()
			}

		case <-ticker.C:
			if len(pending) > 0 && time.Since(last) >= w.debounce {
				flush()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(name string) bool {
	if !strings.HasSuffix(name, ".go") {
		return false
	}
	return !w.ignored(name)
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mkove/routegen/internal/diag"
	"github.com/mkove/routegen/internal/routes"
)

// debounce window for bursty editor writes.
const fileDebounce = 200 * time.Millisecond

// File delivers the route table parsed from a file on disk, re-delivering
// whenever the file changes. It also implements the watch-exclusion request
// consumed by the emitter: excluded paths never trigger a delivery, which
// breaks write-triggered reload loops when the generated file lives next to
// the route table.
type File struct {
	path     string
	reporter *diag.Reporter
	handler  Handler

	mu           sync.Mutex
	excluded     map[string]bool
	lastDelivery time.Time
}

// NewFile creates a source reading the route table from path. The format is
// chosen by extension: .json is parsed as JSON, anything else as YAML.
func NewFile(path string, reporter *diag.Reporter) *File {
	return &File{
		path:     path,
		reporter: reporter,
		excluded: make(map[string]bool),
	}
}

func (f *File) Subscribe(h Handler) {
	f.handler = h
}

// Exclude stops change events for path from triggering deliveries. Best
// effort by contract; it never fails.
func (f *File) Exclude(path string) error {
	abs, err := filepath.Abs(strings.TrimPrefix(path, "file://"))
	if err != nil {
		abs = path
	}
	f.mu.Lock()
	f.excluded[abs] = true
	f.mu.Unlock()
	return nil
}

// Start delivers the current table once, then watches the route table file
// and re-delivers on every change until ctx is done.
func (f *File) Start(ctx context.Context) error {
	f.deliver()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directory; editors replace files on save and a
	// watch on the file itself is lost with the old inode.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.path), err)
	}

	target, err := filepath.Abs(f.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", f.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			// Exclusions are checked before the target filter so they
			// still apply when the generated file is the watched route
			// table file itself.
			if f.isExcluded(name) {
				continue
			}
			if name != target {
				continue
			}
			if !f.debounced() {
				continue
			}
			f.reporter.Debugf("%s changed, regenerating", filepath.Base(name))
			f.deliver()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.reporter.Warnf("file watcher error: %v", err)
		}
	}
}

func (f *File) isExcluded(abs string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.excluded[abs]
}

func (f *File) debounced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if time.Since(f.lastDelivery) < fileDebounce {
		return false
	}
	f.lastDelivery = time.Now()
	return true
}

func (f *File) deliver() {
	table, err := f.Load()
	if err != nil {
		f.reporter.Errorf("failed to load route table: %v", err)
		return
	}
	if f.handler != nil {
		f.handler(table)
	}
}

// Load reads and parses the route table file once.
func (f *File) Load() ([]routes.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if strings.EqualFold(filepath.Ext(f.path), ".json") {
		return routes.DecodeJSON(data)
	}
	return routes.DecodeYAML(data)
}

// Package watch regenerates on schema or template changes.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher watches a schema file plus any override template directory and
// invokes a callback when either changes.
type Watcher struct {
	schemaFile string
	dirs       []string
	callback   func() error
	watcher    *fsnotify.Watcher
	done       chan bool
}

// NewWatcher watches schemaFile and, when non-empty, templatesDir.
func NewWatcher(schemaFile, templatesDir string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absSchema, err := filepath.Abs(schemaFile)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// fsnotify on some platforms drops the watch when an editor replaces
	// the file, so watch the containing directories instead.
	dirs := []string{filepath.Dir(absSchema)}
	if templatesDir != "" {
		absTemplates, err := filepath.Abs(templatesDir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		dirs = append(dirs, absTemplates)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		schemaFile: absSchema,
		dirs:       dirs,
		callback:   callback,
		watcher:    watcher,
		done:       make(chan bool),
	}, nil
}

// Start begins watching. Events are debounced so editor save bursts trigger
// a single regeneration.
func (w *Watcher) Start() error {
	go func() {
		debounceTimer := time.NewTimer(debounce)
		debounceTimer.Stop()
		var debounceCh <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && w.relevant(event.Name) {
					debounceTimer.Reset(debounce)
					debounceCh = debounceTimer.C
				}

			case <-debounceCh:
				if err := w.callback(); err != nil {
					fmt.Fprintf(os.Stderr, "Watch callback error: %v\n", err)
				}
				debounceCh = nil

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// relevant reports whether an event path is the schema file or a template.
func (w *Watcher) relevant(name string) bool {
	path, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if path == w.schemaFile {
		return true
	}
	if len(w.dirs) > 1 && filepath.Dir(path) == w.dirs[1] && filepath.Ext(path) == ".tmpl" {
		return true
	}
	return false
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

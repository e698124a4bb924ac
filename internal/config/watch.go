package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the new
// value to a callback. Invalid edits are logged and skipped, so the last good
// config stays in effect.
type Watcher struct {
	path     string
	onChange func(*Config)
	watcher  *fsnotify.Watcher

	debounceMu sync.Mutex
	debounce   *time.Timer
	stopped    bool
}

// NewWatcher creates a watcher for path (resolved like Load). Call Start to
// begin watching.
func NewWatcher(path string, onChange func(*Config)) *Watcher {
	return &Watcher{
		path:     ResolvePath(path),
		onChange: onChange,
	}
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching the directory that holds the config file. The
// directory must exist; the file itself may be created later.
func (w *Watcher) Start() error {
	if w.path == "" {
		return errors.New("no config path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Editors replace files by rename, so watch the parent directory
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	go w.watchLoop()
	slog.Info("watching config for changes", "path", w.path)
	return nil
}

// Stop ends watching and drops any pending reload
func (w *Watcher) Stop() {
	w.debounceMu.Lock()
	w.stopped = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounceMu.Unlock()

	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) watchLoop() {
	name := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.stopped {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	if w.isStopped() {
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("ignoring invalid config change", "path", w.path, "error", err)
		return
	}
	if w.isStopped() {
		return
	}
	slog.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) isStopped() bool {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	return w.stopped
}

package settings

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/fsnotify.v1"

	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/logging"
	"github.com/naineshmehta/DNN-News-Articles-Url-Extension-Provider/pkg/options"
)

// Reconfigurer receives each new configuration. *rewrite.Provider is one.
type Reconfigurer interface {
	Reconfigure(config *options.Configuration)
}

// Watcher keeps a Reconfigurer in step with one settings file.
type Watcher struct {
	path   string
	target Reconfigurer
	logger *zap.Logger

	mu          sync.Mutex
	fingerprint string
	onChange    func(event string, settings *Settings)

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	done     chan struct{}
}

// WatcherOption configures a watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logging.OrNop(logger)
	}
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, target Reconfigurer, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:   filepath.Clean(path),
		target: target,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetOnChange sets a callback run after every applied reload.
func (w *Watcher) SetOnChange(fn func(event string, settings *Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Reload reads the file and hands a new configuration to the target when
// the attributes changed. It reports whether the target was reconfigured.
// A file that fails to load or configure leaves the target untouched.
func (w *Watcher) Reload() (bool, error) {
	return w.reload("load")
}

func (w *Watcher) reload(event string) (bool, error) {
	settings, err := Load(w.path)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if settings.Fingerprint == w.fingerprint {
		w.logger.Debug("settings unchanged", zap.String("path", w.path))
		return false, nil
	}
	config, err := settings.Configuration()
	if err != nil {
		return false, fmt.Errorf("%s: %w", w.path, err)
	}

	w.target.Reconfigure(config)
	w.fingerprint = settings.Fingerprint
	w.logger.Info("settings applied",
		zap.String("path", w.path),
		zap.String("event", event),
		zap.String("fingerprint", settings.Fingerprint[:12]))
	if w.onChange != nil {
		w.onChange(event, settings)
	}
	return true, nil
}

// Watch starts watching the settings file for changes. The directory is
// watched so that editors replacing the file are noticed.
func (w *Watcher) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	go w.watchLoop()
	return nil
}

// watchLoop handles file system events.
func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				w.handleFileChange("create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				w.handleFileChange("modify")
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.logger.Warn("settings file removed, keeping current configuration", zap.String("path", w.path))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

// handleFileChange handles file creation or modification.
func (w *Watcher) handleFileChange(event string) {
	if _, err := w.reload(event); err != nil {
		w.logger.Warn("settings reload failed, keeping current configuration",
			zap.String("path", w.path),
			zap.Error(err))
	}
}

// StopWatch stops watching and waits for the watch loop to exit.
func (w *Watcher) StopWatch() {
	if w.stopChan == nil {
		return
	}
	close(w.stopChan)
	w.watcher.Close()
	<-w.done
	w.stopChan = nil
}

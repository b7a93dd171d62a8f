package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when its file changes and passes the
// new configuration to registered callbacks. A file that fails to load
// or validate keeps the previous configuration.
type Watcher struct {
	path string

	mu        sync.RWMutex
	callbacks []func(*Config)
	onError   []func(error)
	current   *Config

	fsw      *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// ErrNoConfigFile is returned when there is no file to watch.
var ErrNoConfigFile = errors.New("no config file to watch")

// NewWatcher creates a watcher for cfgFile, or for the file Load would
// find when cfgFile is empty.
func NewWatcher(cfgFile string) (*Watcher, error) {
	if cfgFile == "" {
		cfgFile = ConfigFileUsed()
	}
	if cfgFile == "" {
		return nil, ErrNoConfigFile
	}

	path, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:    path,
		current: cfg,
		done:    make(chan struct{}),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// OnChange registers a callback to be called when configuration changes.
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// OnError registers a callback for reload failures.
func (w *Watcher) OnError(callback func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, callback)
}

// Start begins watching. The directory is watched rather than the file
// so that editors replacing the file by rename are noticed.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.fsw = fsw

	go w.loop()
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.fsw == nil {
			close(w.done)
			return
		}
		w.fsw.Close()
		<-w.done
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	errs := w.fsw.Errors
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				_ = w.Reload()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.fail(err)
		}
	}
}

// Reload loads the file now and notifies callbacks on success.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return err
	}

	w.mu.Lock()
	w.current = cfg
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	return nil
}

func (w *Watcher) fail(err error) {
	w.mu.RLock()
	callbacks := make([]func(error), len(w.onError))
	copy(callbacks, w.onError)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(err)
	}
}

// Current returns the last successfully loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

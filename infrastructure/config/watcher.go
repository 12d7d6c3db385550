package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ruvnet/arcadia-goap/domain/config"
)

// defaultDebounce coalesces the burst of filesystem events an editor
// emits for a single save.
const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk. It watches
// the file's directory rather than the file itself so that rename-and-replace
// saves keep working.
type Watcher struct {
	path     string
	loader   *Loader
	onChange func(*config.EngineConfig)
	onError  func(error)
	debounce time.Duration

	fw   *fsnotify.Watcher
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a change triggers a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLoader sets the loader used to reload the file.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		w.loader = l
	}
}

// WithOnError sets a callback for reload and watch errors. Without it,
// errors are dropped and the previous configuration stays active.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher for the given configuration file. The
// onChange callback receives each successfully reloaded configuration.
// Call Start to begin watching and Close to stop.
func NewWatcher(path string, onChange func(*config.EngineConfig), opts ...WatcherOption) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("config watcher: onChange callback is required")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		loader:   NewLoader(),
		onChange: onChange,
		debounce: defaultDebounce,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w.fw = fw

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watch()
}

// Close stops watching and waits for the background goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	// Pending reload, armed by the last relevant event.
	var reload <-chan time.Time

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			reload = time.After(w.debounce)

		case <-reload:
			reload = nil
			w.reload()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.LoadFile(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.onChange(cfg)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

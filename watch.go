package bones

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long the file must stay quiet before it is reloaded.
const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file whenever it changes. Parsed configs
// arrive on Configs; read and parse failures arrive on Errors. Apply configs
// from the update loop with Factory.ApplyConfig.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path. The containing directory is watched so
// editors that replace the file on save are still seen.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		Configs: make(chan Config, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Path returns the absolute path being watched.
func (w *ConfigWatcher) Path() string { return w.path }

// Close stops the watcher and closes both channels. Safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

// Poll returns the newest pending config without blocking. Older pending
// configs are discarded and pending errors are logged in debug mode.
func (w *ConfigWatcher) Poll() (Config, bool) {
	var (
		cfg Config
		ok  bool
	)
	for {
		select {
		case c, open := <-w.Configs:
			if !open {
				return cfg, ok
			}
			cfg, ok = c, true
		case err, open := <-w.Errors:
			if !open {
				return cfg, ok
			}
			debugf("config watch: %v", err)
		default:
			return cfg, ok
		}
	}
}

func (w *ConfigWatcher) run() {
	defer close(w.done)
	// The reload fires once the file has been quiet for watchDebounce, so an
	// editor that truncates and then writes delivers the final contents.
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers without blocking past Close.
func (w *ConfigWatcher) send(cfg *Config, err error) {
	if cfg != nil {
		select {
		case w.Configs <- *cfg:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}

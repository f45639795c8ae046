package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk and notifies
// subscribers with the new value. Subscribers never see a Config that failed
// to load or validate; the previous value stays current instead.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	onError func(error)

	mu      sync.RWMutex
	current Config
	nextID  int
	subs    map[int]func(Config)

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch loads the config at path and starts watching it. onError receives
// reload and watcher errors; it may be nil.
func Watch(path string, onError func(error)) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	// Editors often replace the file instead of writing it in place, so the
	// directory is watched and events are filtered by name.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	if onError == nil {
		onError = func(error) {}
	}

	w := &Watcher{
		path:    path,
		fsw:     fsw,
		onError: onError,
		current: cfg,
		subs:    make(map[int]func(Config)),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Current returns the most recently loaded config.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe registers fn to be called with every successfully reloaded
// config. The returned func removes the subscription.
func (w *Watcher) Subscribe(fn func(Config)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	target := filepath.Clean(w.path)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onError(fmt.Errorf("config watcher: %w", err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.onError(fmt.Errorf("reload config: %w", err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	subs := make([]func(Config), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
}

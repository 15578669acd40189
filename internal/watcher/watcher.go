// Package watcher provides file system watching with debouncing for the
// document database.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
)

// Watcher monitors the document database and publishes pubsub.DBChanged
// with the changed file name as payload.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	debounce  time.Duration
	broker    *pubsub.Broker[string]
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a new database watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dbPath:    cfg.DBPath,
		debounce:  cfg.DebounceDur,
		// A single slot coalesces bursts a slow subscriber has not drained yet.
		broker: pubsub.NewBrokerWithBuffer[string](1),
		done:   make(chan struct{}),
	}, nil
}

// Subscribe streams change notifications until ctx is done or the watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return w.broker.Subscribe(ctx)
}

// Start begins watching the database directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching database", "dir", dir, "debounce", w.debounce)

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources. It is safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending string
	)

	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			pending = filepath.Base(event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timerC():
			if pending != "" {
				log.Debug(log.CatWatcher, "Database changed", "file", pending)
				w.broker.Publish(pubsub.DBChanged, pending)
				pending = ""
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether the event touched the database or its WAL.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	// The WAL file may be created fresh, so creates count as well as writes.
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	db := filepath.Base(w.dbPath)
	return base == db || base == db+"-wal"
}

package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/watcher"
)

func startWatcher(t *testing.T, dbPath string) <-chan pubsub.Event[string] {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		DBPath:      dbPath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := w.Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	return ch
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inkwell.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("test"), 0644))

	ch := startWatcher(t, dbPath)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("test%d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-ch:
		assert.Equal(t, pubsub.DBChanged, ev.Type)
		assert.Equal(t, "inkwell.db", ev.Payload)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-ch:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inkwell.db")
	otherPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0644))
	// Pre-create the other file so writes to it are just Write events
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))

	ch := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0644))

	select {
	case <-ch:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_Stop(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inkwell.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("test"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	ch := w.Subscribe(context.Background())
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		assert.NoError(t, w.Stop(), "second Stop is a no-op")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}

	_, ok := <-ch
	assert.False(t, ok, "subscriptions close on Stop")
}

func TestWatcher_WatchesWALFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inkwell.db")
	walPath := filepath.Join(dir, "inkwell.db-wal")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0644))

	ch := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(walPath, []byte("wal data"), 0644))

	select {
	case ev := <-ch:
		assert.Equal(t, "inkwell.db-wal", ev.Payload)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for WAL file write")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "nope", "inkwell.db")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/test/inkwell.db")

	assert.Equal(t, "/test/inkwell.db", cfg.DBPath)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDur)
}

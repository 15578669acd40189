// Package log is inkwell's debug logger.
// Lines are written to a file opened through tea.LogToFile, kept in a small
// ring buffer for the in-app log overlay, and published on a broker.
// Logging is off until Init is called (--debug or INKWELL_DEBUG).
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatEditor  Category = "editor"  // Engine transactions and command chains
	CatToolbar Category = "toolbar" // Bubble menu visibility and actions
	CatDB      Category = "db"      // Document repository
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatUI      Category = "ui"      // UI component updates
	CatCache   Category = "cache"   // Derived state memo
	CatTrace   Category = "trace"   // Tracing provider
)

const bufferSize = 500

// Logger writes formatted lines to a writer and a ring buffer.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	closer   io.Closer
	minLevel Level
	recent   []string
	next     int
	full     bool
	broker   *pubsub.Broker[string]
}

var (
	stdMu sync.RWMutex
	std   *Logger
)

// Init opens path via tea.LogToFile and installs the global logger.
// The returned func closes the file and disables logging.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	l := newLogger(f)
	l.closer = f
	install(l)
	return func() {
		install(nil)
		_ = f.Close()
	}, nil
}

// InitWriter installs a logger that writes to w. Used by tests.
func InitWriter(w io.Writer) func() {
	install(newLogger(w))
	return func() { install(nil) }
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		minLevel: LevelDebug,
		recent:   make([]string, bufferSize),
		broker:   pubsub.NewBroker[string](),
	}
}

func install(l *Logger) {
	stdMu.Lock()
	prev := std
	std = l
	stdMu.Unlock()
	if prev != nil && prev != l {
		prev.broker.Close()
	}
}

func current() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// Enabled reports whether a logger is installed.
func Enabled() bool {
	return current() != nil
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs msg with err attached as the error field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

// Format renders one entry without the trailing newline:
//
//	2026-01-02T15:04:05 [INFO] [db] saved doc id=42 rev=7
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	if level < l.minLevel {
		l.mu.Unlock()
		return
	}
	entry := Format(time.Now(), level, cat, msg, fields...)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}
	l.recent[l.next] = entry
	l.next = (l.next + 1) % len(l.recent)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	l.broker.Publish(pubsub.LogWritten, entry)
}

// Recent returns up to n buffered entries, oldest first.
func Recent(n int) []string {
	l := current()
	if l == nil || n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var ordered []string
	if l.full {
		ordered = append(ordered, l.recent[l.next:]...)
	}
	ordered = append(ordered, l.recent[:l.next]...)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// ClearBuffer empties the ring buffer. The log file is untouched.
func ClearBuffer() {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	clear(l.recent)
	l.next = 0
	l.full = false
	l.mu.Unlock()
}

// Event is a published log line.
type Event = pubsub.Event[string]

// NewListener subscribes to log lines until ctx is done.
// Returns nil when logging is disabled.
func NewListener(ctx context.Context) *pubsub.Listener[string] {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}

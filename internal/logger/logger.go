// Package logger provides the process-wide file logger for scholar.
//
// The TUI owns stdout, so everything goes to a log file through a log/slog
// text handler. Callers never log bare strings: they take a logger scoped to
// a component or a conversation and attach key/value pairs.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

var (
	mu       sync.Mutex
	base     *slog.Logger
	logFile  *os.File
	logPath  string
	initDone bool
	level    = new(slog.LevelVar)
)

// DefaultLogPath is used when Init is never called.
var DefaultLogPath = filepath.Join(os.TempDir(), "scholar-debug.log")

// SetDebug switches between debug and info level. It may be called before
// or after the log file is opened.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Init opens the log file at path. Later calls are no-ops until Reset. If it
// is never called, DefaultLogPath is opened on first use.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logPath = path
	logFile = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	initDone = true

	base.Info("logger initialized", "path", path, "level", level.Level())
	return nil
}

func ensureInitLocked() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Don't retry on every call
		initDone = true
	}
}

// Path returns the path of the open log file, or "" if none is open.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file. Loggers obtained afterwards discard.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = nil
}

// Reset closes the log file and forgets all state so Init can run again.
// Tests use it to point the logger at a temporary file.
func Reset() {
	Close()

	mu.Lock()
	defer mu.Unlock()
	initDone = false
	logPath = ""
	level.Set(slog.LevelInfo)
}

// ComponentLogger returns a logger tagged with the component name.
//
//	log := logger.ComponentLogger("store")
//	log.Info("conversation created", "id", id)
func ComponentLogger(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithConversation returns a logger tagged with a conversation id.
func WithConversation(conversationID string) *slog.Logger {
	return with(slog.String("conversationID", conversationID))
}

// ForError returns a component logger carrying the error's kind and, when
// the error names one, its conversation id.
func ForError(component string, err error) *slog.Logger {
	attrs := []any{
		slog.String("component", component),
		slog.String("kind", pkgerrors.GetKind(err).String()),
	}
	if id := pkgerrors.ConversationOf(err); id != "" {
		attrs = append(attrs, slog.String("conversationID", id))
	}
	return with(attrs...)
}

func with(attrs ...any) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()

	if base == nil {
		return slog.New(slog.DiscardHandler)
	}
	return base.With(attrs...)
}

// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/logger"
)

// Backend is the system clipboard. It is swapped out in tests.
type Backend interface {
	Init() error
	WriteText(text string) error
}

type systemBackend struct{}

func (systemBackend) Init() error {
	return clipboard.Init()
}

func (systemBackend) WriteText(text string) error {
	// Write returns a channel closed when the content is overwritten; the
	// write itself is synchronous.
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

var (
	mu          sync.Mutex
	backend     Backend = systemBackend{}
	initialized bool
)

// SetBackend replaces the clipboard backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	backend = b
	initialized = false
}

// ResetBackend restores the system clipboard.
func ResetBackend() {
	SetBackend(systemBackend{})
}

// Init initializes the clipboard. It is safe to call more than once; a
// failed initialization is retried on the next call.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := backend.Init(); err != nil {
		logger.ComponentLogger("clipboard").Warn("failed to initialize", "error", err)
		return pkgerrors.ClipboardUnavailable(err)
	}
	initialized = true
	logger.ComponentLogger("clipboard").Debug("initialized")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	if err := backend.WriteText(text); err != nil {
		return pkgerrors.ClipboardWriteFailed(err)
	}
	logger.ComponentLogger("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

// setupTestLogger points the logger at a fresh temp file.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "scholar.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)

	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit(t *testing.T) {
	logPath := setupTestLogger(t)

	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}
	if err := Init(filepath.Join(t.TempDir(), "other.log")); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if got := Path(); got != logPath {
		t.Errorf("second Init moved the log to %q", got)
	}
	if !strings.Contains(readLog(t, logPath), "logger initialized") {
		t.Error("expected the startup line")
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}

func TestSetDebug(t *testing.T) {
	logPath := setupTestLogger(t)

	ComponentLogger("store").Debug("hidden")
	SetDebug(true)
	ComponentLogger("store").Debug("visible")
	SetDebug(false)
	ComponentLogger("store").Debug("hidden again")

	out := readLog(t, logPath)
	if strings.Contains(out, "hidden") {
		t.Error("debug lines should be dropped at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("debug line missing after SetDebug(true)")
	}
}

func TestScopedLoggers(t *testing.T) {
	logPath := setupTestLogger(t)

	ComponentLogger("list").Info("filtered", "matches", 2)
	WithConversation("conv-7").Info("renamed")

	out := readLog(t, logPath)
	for _, want := range []string{"component=list", "matches=2", "conversationID=conv-7"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log:\n%s", want, out)
		}
	}
}

func TestForError(t *testing.T) {
	logPath := setupTestLogger(t)

	err := pkgerrors.AssistantReplyFailed("conv-3", errors.New("rate limited"))
	ForError("app", err).Error("reply failed", "error", err)
	ForError("app", errors.New("plain")).Warn("plain failure")

	out := readLog(t, logPath)
	for _, want := range []string{`kind="assistant error"`, "conversationID=conv-3", `kind="unknown error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log:\n%s", want, out)
		}
	}
	if strings.Count(out, "conversationID=") != 1 {
		t.Error("errors without a conversation should not carry one")
	}
}

func TestClose_Discards(t *testing.T) {
	logPath := setupTestLogger(t)

	Close()
	ComponentLogger("ui").Info("after-close")

	if strings.Contains(readLog(t, logPath), "after-close") {
		t.Error("no messages should be written after Close")
	}
}

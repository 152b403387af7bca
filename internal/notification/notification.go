// Package notification sends desktop notifications through beeep when the
// assistant answers while the terminal is in the background.
package notification

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/gen2brain/beeep"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
)

// AppName prefixes every notification title.
const AppName = "Scholar"

// previewWidth bounds the reply excerpt shown in the notification body.
const previewWidth = 100

// Notifier sends one notification. icon follows beeep.Notify.
type Notifier func(title, message string, icon any) error

var (
	mu     sync.Mutex
	notify Notifier = beeep.Notify
)

// SetNotifier replaces the notification backend.
func SetNotifier(n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notify = n
}

// ResetNotifier restores beeep.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	n := notify
	mu.Unlock()

	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title)
	// Empty icon: beeep picks the platform default
	err := n(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// ReplyReady announces reply in the named conversation.
func ReplyReady(conversationTitle string, reply conversation.Message) error {
	return Send(AppName+": "+conversationTitle, Summary(reply))
}

// Summary condenses a reply to its first non-empty line, truncated, plus a
// reference count.
func Summary(reply conversation.Message) string {
	var first string
	for line := range strings.Lines(reply.Content) {
		if line = strings.TrimSpace(line); line != "" {
			first = line
			break
		}
	}
	if first == "" {
		first = "New reply"
	}
	first = ansi.Truncate(first, previewWidth, "…")

	switch n := len(reply.References); n {
	case 0:
		return first
	case 1:
		return first + " (1 reference)"
	default:
		return fmt.Sprintf("%s (%d references)", first, n)
	}
}

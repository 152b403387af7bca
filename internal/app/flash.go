package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// HasFlash reports whether the footer is showing a flash message.
func (m *Model) HasFlash() bool {
	return m.footer.HasFlash()
}

// SetClock replaces the time source behind flash expiry and card ages.
// Recordings use it to run on scripted time.
func (m *Model) SetClock(now func() time.Time) {
	m.footer.SetClock(now)
	m.list.SetClock(now)
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// flashForError picks the footer text for err by its kind.
func (m *Model) flashForError(err error) tea.Cmd {
	switch pkgerrors.GetKind(err) {
	case pkgerrors.KindAssistant:
		return m.ShowFlashError("The assistant could not answer. Try again.")
	case pkgerrors.KindClipboard:
		return m.ShowFlashWarning("Clipboard unavailable")
	case pkgerrors.KindConfig, pkgerrors.KindIO:
		return m.ShowFlashError("Failed to save settings: " + err.Error())
	case pkgerrors.KindNotFound:
		return m.ShowFlashError("Conversation no longer exists")
	default:
		return m.ShowFlashError(err.Error())
	}
}

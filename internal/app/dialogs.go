package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/clipboard"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
)

// answeredDialogs implements conversation.Dialogs with answers a modal has
// already collected. The store's prompt-driven operations then run without
// blocking the event loop.
type answeredDialogs struct {
	title     string
	titleOK   bool
	confirmed bool
}

func (d answeredDialogs) PromptTitle(prompt, current string) (string, bool) {
	return d.title, d.titleOK
}

func (d answeredDialogs) Confirm(prompt string) bool {
	return d.confirmed
}

// renameConversation renames id through the dialog flow. The open
// conversation goes through Store.RenameActive; any other is renamed
// directly with the same answers.
func (m *Model) renameConversation(id string, d conversation.Dialogs) bool {
	snap := m.store.Snapshot()
	if id == snap.ActiveID() {
		return m.store.RenameActive(d)
	}
	c, ok := snap.Find(id)
	if !ok {
		return false
	}
	title, ok := d.PromptTitle(conversation.RenamePrompt, c.Title)
	if !ok {
		return false
	}
	return m.store.Rename(id, title)
}

// deleteConversation deletes id after confirmation, mirroring
// renameConversation.
func (m *Model) deleteConversation(id string, d conversation.Dialogs) bool {
	if id == m.store.Snapshot().ActiveID() {
		return m.store.DeleteActive(d)
	}
	if !d.Confirm(conversation.DeletePrompt) {
		return false
	}
	return m.store.Delete(id)
}

// copyLatestReference copies the newest reference URL of the open
// conversation. The system clipboard is tried first; the terminal's OSC 52
// clipboard is the fallback.
func (m *Model) copyLatestReference() tea.Cmd {
	active := m.snapshot.Active()
	if active == nil {
		return nil
	}
	ref, ok := active.LastReference()
	if !ok {
		return m.ShowFlashInfo("No reference to copy yet")
	}

	if err := clipboard.WriteText(ref.URL); err != nil {
		logger.WithConversation(active.ID).Warn("system clipboard failed, using terminal", "error", err)
		return tea.Batch(tea.SetClipboard(ref.URL), m.ShowFlashWarning("Sent link to the terminal clipboard"))
	}
	return m.ShowFlashSuccess("Copied " + ref.URL)
}

package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/ui"
	"github.com/zhubert/scholar/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConversationMenuState:
		return m.handleConversationMenuModal(key, msg, s)
	case *modals.RenameConversationState:
		return m.handleRenameModal(key, msg, s)
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// forwardToModal passes a key the handler did not consume to the modal.
func (m *Model) forwardToModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConversationMenuModal handles the overflow menu of the open conversation.
func (m *Model) handleConversationMenuModal(key string, msg tea.KeyPressMsg, state *modals.ConversationMenuState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		c, ok := m.snapshot.Find(state.ConversationID)
		if !ok {
			m.modal.Hide()
			return m, m.ShowFlashError("Conversation no longer exists")
		}
		switch state.GetAction() {
		case modals.MenuActionRename:
			m.modal.Show(modals.NewRenameConversationState(c.ID, conversation.RenamePrompt, c.Title))
		case modals.MenuActionDelete:
			m.modal.Show(modals.NewConfirmDeleteState(c.ID, conversation.DeletePrompt, c.Title))
		case modals.MenuActionCopy:
			m.modal.Hide()
			return m, m.copyLatestReference()
		default:
			m.modal.Hide()
		}
		return m, nil
	}
	return m.forwardToModal(msg)
}

// handleRenameModal applies or cancels a rename.
func (m *Model) handleRenameModal(key string, msg tea.KeyPressMsg, state *modals.RenameConversationState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		// Cancelled: the title stays as it was
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if state.IsBlank() {
			m.modal.SetError("Title cannot be empty")
			return m, nil
		}
		d := answeredDialogs{title: state.GetNewTitle(), titleOK: true}
		if !m.renameConversation(state.ConversationID, d) {
			m.modal.Hide()
			return m, tea.Batch(m.resync(), m.ShowFlashError("Conversation no longer exists"))
		}
		m.modal.Hide()
		logger.WithConversation(state.ConversationID).Info("renamed from modal")
		return m, tea.Batch(m.resync(), m.ShowFlashSuccess("Renamed to "+state.GetNewTitle()))
	}
	return m.forwardToModal(msg)
}

// handleConfirmDeleteModal deletes the conversation when Delete is chosen.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		if !m.deleteConversation(state.ConversationID, answeredDialogs{confirmed: true}) {
			return m, tea.Batch(m.resync(), m.ShowFlashError("Conversation no longer exists"))
		}
		if m.pending != nil && m.pending.conversationID == state.ConversationID {
			m.pending.cancel()
		}
		return m, tea.Batch(m.resync(), m.ShowFlashInfo("Deleted "+state.Name))
	}
	return m.forwardToModal(msg)
}

// handleSettingsModal handles key events for the global Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		v := state.Values
		m.config.SetNotificationsEnabled(v.Notifications)
		m.config.SetSidebarCollapsed(v.SidebarCollapsed)
		m.config.SetAssistantMode(v.AssistantMode)
		if state.ThemeChanged() {
			ui.SetTheme(ui.ThemeName(v.Theme))
			m.config.SetTheme(v.Theme)
			m.chat.RefreshStyles()
		}
		if err := m.config.Save(); err != nil {
			logger.ForError("app", err).Error("failed to save settings", "error", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, nil
		}
		m.modal.Hide()
		if state.AssistantChanged() {
			return m, m.ShowFlashInfo("Settings saved. Assistant mode applies on next start")
		}
		return m, m.ShowFlashSuccess("Settings saved")
	}
	return m.forwardToModal(msg)
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut != nil {
			m.modal.Hide()
			return m, func() tea.Msg {
				return modals.HelpShortcutTriggeredMsg{Key: shortcut.Key}
			}
		}
		return m, nil
	}
	return m.forwardToModal(msg)
}

// handleHelpShortcutTrigger handles shortcuts triggered from the help modal.
func (m *Model) handleHelpShortcutTrigger(key string) (tea.Model, tea.Cmd) {
	normalizedKey := normalizeHelpDisplayKey(key)
	if normalizedKey == "" {
		return m, nil
	}
	result, cmd, _ := m.ExecuteShortcut(normalizedKey)
	return result, cmd
}

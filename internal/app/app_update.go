package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/notification"
	"github.com/zhubert/scholar/internal/ui"
	"github.com/zhubert/scholar/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	log := logger.ComponentLogger("app")

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyboardEnhancementsMsg:
		m.kittyKeyboard = msg.SupportsKeyDisambiguation()
		m.footer.SetKittyKeyboard(m.kittyKeyboard)
		log.Debug("keyboard enhancements", "disambiguation", m.kittyKeyboard)

	case tea.FocusMsg:
		m.windowFocused = true

	case tea.BlurMsg:
		m.windowFocused = false

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Not handled, falls through to the focused panel

	case StoreChangedMsg:
		cmds = append(cmds, m.syncSnapshot(msg.Snapshot), m.listenForStoreChanges())
		return m, tea.Batch(cmds...)

	case ReplyMsg:
		return m.handleReply(msg)

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}

	// Tick messages are handled regardless of focus
	if cmd, handled := m.handleTickMessages(msg); handled {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.updatePanels(msg))
	return m, tea.Batch(cmds...)
}

// updatePanels forwards msg to the views on screen. Keys only reach the
// focused one.
func (m *Model) updatePanels(msg tea.Msg) tea.Cmd {
	if !m.ChatMode() {
		list, cmd := m.list.Update(msg)
		m.list = list
		return cmd
	}

	if _, isKey := msg.(tea.KeyPressMsg); isKey && m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		return cmd
	}
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return cmd
}

// handleTickMessages handles the flash and stopwatch timers.
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg.(type) {
	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return nil, true
		}
		if m.footer.HasFlash() {
			return ui.FlashTick(), true
		}
		return nil, true

	case ui.StopwatchTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true
	}
	return nil, false
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.ComponentLogger("app").Debug("key pressed",
		"key", key, "chatMode", m.ChatMode(), "focus", m.focus, "modal", m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if key == keys.Escape {
		if result, cmd, handled := m.handleEscapeKey(); handled {
			return result, cmd
		}
	}

	// ctrl+c always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if key == keys.Enter {
		return m.handleEnterKey()
	}

	return nil, nil
}

// handleEscapeKey clears the list filter, cancels a pending reply, or
// leaves the open conversation, in that order.
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	if !m.ChatMode() {
		if m.list.IsFiltering() || m.list.FilterQuery() != "" {
			m.list.ClearFilter()
			return m, nil, true
		}
		return m, nil, false
	}

	if m.pending != nil && m.pending.conversationID == m.snapshot.ActiveID() {
		logger.WithConversation(m.pending.conversationID).Info("cancelling reply")
		m.pending.cancel()
		return m, nil, true
	}

	m.store.Close()
	return m, m.resync(), true
}

// handleEnterKey opens the highlighted conversation or sends the composer
// text, depending on what has focus. It returns (nil, nil) when the key
// belongs to the list filter.
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	if !m.ChatMode() {
		if m.list.IsFiltering() {
			return nil, nil
		}
		if c := m.list.SelectedConversation(); c != nil {
			return m, m.openConversation(c.ID)
		}
		return m, nil
	}

	if m.focus == FocusSidebar {
		if c := m.sidebar.SelectedConversation(); c != nil {
			cmd := m.openConversation(c.ID)
			return m, tea.Batch(cmd, m.setFocus(FocusChat))
		}
		return m, nil
	}

	return m, m.sendMessage()
}

// openConversation makes id the active conversation.
func (m *Model) openConversation(id string) tea.Cmd {
	if !m.store.Open(id) {
		return m.ShowFlashError("Conversation no longer exists")
	}
	return m.resync()
}

// sendMessage submits the composer text to the open conversation. Only one
// reply may be pending at a time.
func (m *Model) sendMessage() tea.Cmd {
	active := m.snapshot.Active()
	if active == nil {
		return nil
	}
	text := m.chat.GetInput()
	if text == "" {
		return nil
	}
	if m.pending != nil {
		return m.ShowFlashWarning("Still waiting for the previous reply")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.pending = &pendingReply{conversationID: active.ID, cancel: cancel}
	m.chat.ClearInput()
	m.syncWaiting()

	logger.WithConversation(active.ID).Debug("submitting message", "length", len(text))
	return tea.Batch(m.submit(ctx, active.ID, text), ui.StopwatchTick())
}

// handleReply finishes a pending reply.
func (m *Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if m.pending != nil && m.pending.conversationID == msg.ConversationID {
		m.pending.cancel()
		m.pending = nil
	}
	cmds := []tea.Cmd{m.resync()}

	if msg.Err != nil {
		m.logReplyError(msg.ConversationID, msg.Err)
		if pkgerrors.Cancelled(msg.Err) {
			cmds = append(cmds, m.ShowFlashInfo("Reply cancelled"))
		} else {
			cmds = append(cmds, m.flashForError(msg.Err))
		}
		return m, tea.Batch(cmds...)
	}
	if !msg.Sent {
		return m, tea.Batch(cmds...)
	}

	conv, ok := m.snapshot.Find(msg.ConversationID)
	if !ok {
		return m, tea.Batch(cmds...)
	}
	if msg.ConversationID != m.snapshot.ActiveID() {
		cmds = append(cmds, m.ShowFlashInfo("New reply in "+conv.Title))
	}
	if m.config.GetNotificationsEnabled() && !m.windowFocused && len(conv.Messages) > 0 {
		reply := conv.Messages[len(conv.Messages)-1]
		go func() { _ = notification.ReplyReady(conv.Title, reply) }()
	}
	return m, tea.Batch(cmds...)
}

// toggleSidebar shows or hides the sidebar for this run. The startup
// default lives in settings.
func (m *Model) toggleSidebar() tea.Cmd {
	collapsed := !m.sidebar.IsCollapsed()
	m.sidebar.SetCollapsed(collapsed)
	var cmd tea.Cmd
	if collapsed && m.focus == FocusSidebar {
		cmd = m.setFocus(FocusChat)
	}
	m.updateSizes()
	if active := m.snapshot.Active(); active != nil {
		m.header.SetContext(true, active.Title, collapsed)
	}
	return cmd
}

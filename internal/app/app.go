// Package app is the root of the TUI. Model owns the conversation store,
// mirrors its latest snapshot into the views, and decides between list mode
// (no conversation open) and chat mode.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/config"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/ui"
)

// Focus represents which panel is focused in chat mode.
type Focus int

const (
	FocusChat Focus = iota
	FocusSidebar
)

func (f Focus) String() string {
	if f == FocusSidebar {
		return "sidebar"
	}
	return "chat"
}

// StoreChangedMsg carries a snapshot published by the store.
type StoreChangedMsg struct {
	Snapshot conversation.Snapshot
}

// ReplyMsg is sent when a submitted message has been answered (or failed).
type ReplyMsg struct {
	ConversationID string
	Sent           bool
	Err            error
}

// pendingReply tracks the one message waiting for an answer.
type pendingReply struct {
	conversationID string
	cancel         context.CancelFunc
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	store   *conversation.Store
	version string

	header  *ui.Header
	footer  *ui.Footer
	list    *ui.ConversationList
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Latest snapshot rendered by the views. Never mutated.
	snapshot conversation.Snapshot
	synced   bool

	storeCh     chan conversation.Snapshot
	unsubscribe func()

	pending *pendingReply

	windowFocused bool
	kittyKeyboard bool
}

// New creates the app model around store. The store is owned by the caller
// and outlives the model; Close detaches from it.
func New(cfg *config.Config, store *conversation.Store, version string) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:        cfg,
		store:         store,
		version:       version,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		list:          ui.NewConversationList(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		storeCh:       make(chan conversation.Snapshot, 1),
		windowFocused: true,
	}
	m.sidebar.SetCollapsed(cfg.GetSidebarCollapsed())
	m.unsubscribe = store.Subscribe(m.publishSnapshot)
	m.syncSnapshot(store.Snapshot())

	logger.ComponentLogger("app").Info("app created",
		"conversations", m.snapshot.Len(),
		"active", m.snapshot.ActiveID(),
		"version", version)
	return m
}

// Init starts listening for store changes.
func (m *Model) Init() tea.Cmd {
	return m.listenForStoreChanges()
}

// Close cancels any pending reply and detaches from the store.
func (m *Model) Close() {
	if m.pending != nil {
		m.pending.cancel()
		m.pending = nil
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Snapshot returns the snapshot currently on screen.
func (m *Model) Snapshot() conversation.Snapshot {
	return m.snapshot
}

// ChatMode reports whether a conversation is open.
func (m *Model) ChatMode() bool {
	return m.snapshot.Active() != nil
}

// Focus returns the focused panel. Only meaningful in chat mode.
func (m *Model) Focus() Focus {
	return m.focus
}

// HasPendingReply reports whether a message is waiting for an answer.
func (m *Model) HasPendingReply() bool {
	return m.pending != nil
}

// ModalVisible reports whether a modal is open.
func (m *Model) ModalVisible() bool {
	return m.modal.IsVisible()
}

// syncSnapshot renders snap unless a newer snapshot is already on screen.
// It returns the command produced by any focus change.
func (m *Model) syncSnapshot(snap conversation.Snapshot) tea.Cmd {
	if m.synced && snap.Version() < m.snapshot.Version() {
		return nil
	}
	wasChat := m.synced && m.ChatMode()
	m.snapshot = snap
	m.synced = true

	convs := snap.Conversations()
	active := snap.Active()

	m.list.SetConversations(convs)
	m.sidebar.SetConversations(convs, snap.ActiveID())

	var cmd tea.Cmd
	if active != nil {
		m.list.Select(active.ID)
		m.chat.SetConversation(*active)
		m.header.SetContext(true, active.Title, m.sidebar.IsCollapsed())
		if !wasChat {
			m.updateSizes()
			cmd = m.setFocus(FocusChat)
		}
	} else {
		if m.chat.ConversationID() != "" {
			m.chat.ClearConversation()
		}
		m.header.SetContext(false, "", m.sidebar.IsCollapsed())
		if wasChat {
			m.sidebar.SetFocused(false)
			m.chat.SetFocused(false)
			m.updateSizes()
		}
	}
	m.syncWaiting()
	return cmd
}

// resync renders the store's current snapshot.
func (m *Model) resync() tea.Cmd {
	return m.syncSnapshot(m.store.Snapshot())
}

// syncWaiting shows the waiting indicator only on the conversation that
// has a pending reply.
func (m *Model) syncWaiting() {
	want := m.pending != nil && m.pending.conversationID == m.chat.ConversationID()
	if want != m.chat.IsWaiting() {
		m.chat.SetWaiting(want)
	}
}

// setFocus moves focus between the sidebar and the composer. A collapsed
// sidebar cannot take focus.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusSidebar && m.sidebar.IsCollapsed() {
		f = FocusChat
	}
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	return m.chat.SetFocused(f == FocusChat)
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusChat {
		return m.setFocus(FocusSidebar)
	}
	return m.setFocus(FocusChat)
}

package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/config"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/logger"
	"github.com/zhubert/scholar/internal/ui"
	"github.com/zhubert/scholar/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key                  string                              // The key binding (e.g., "n", "ctrl+e")
	DisplayKey           string                              // Display name in help (e.g., "ctrl-e"); defaults to Key
	Description          string                              // Human-readable description
	Category             string                              // Section for help modal grouping
	RequiresConversation bool                                // A conversation must be open
	RequiresList         bool                                // Only on the conversation list
	RequiresNavigation   bool                                // Not while typing in the composer or the filter
	Handler              func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition            func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryChat          = "Chat"
	CategoryConfiguration = "Configuration"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryConversations,
	CategoryChat,
	CategoryConfiguration,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:                  keys.Tab,
		DisplayKey:           "Tab",
		Description:          "Switch between sidebar and composer",
		Category:             CategoryNavigation,
		RequiresConversation: true,
		Handler:              shortcutToggleFocus,
		Condition:            func(m *Model) bool { return !m.sidebar.IsCollapsed() },
	},
	{
		Key:                "/",
		Description:        "Filter conversations by title",
		Category:           CategoryNavigation,
		RequiresList:       true,
		RequiresNavigation: true,
		Handler:            shortcutFilter,
	},

	// Conversations
	{
		Key:                "n",
		Description:        "New research chat",
		Category:           CategoryConversations,
		RequiresNavigation: true,
		Handler:            shortcutNewConversation,
	},
	{
		Key:         keys.CtrlN,
		DisplayKey:  "ctrl-n",
		Description: "New research chat (while typing)",
		Category:    CategoryConversations,
		Handler:     shortcutNewConversation,
	},
	{
		Key:                "p",
		Description:        "Pin or unpin selected conversation",
		Category:           CategoryConversations,
		RequiresNavigation: true,
		Handler:            shortcutTogglePin,
		Condition:          func(m *Model) bool { return m.selectedConversation() != nil },
	},
	{
		Key:                "r",
		Description:        "Rename selected conversation",
		Category:           CategoryConversations,
		RequiresNavigation: true,
		Handler:            shortcutRename,
		Condition:          func(m *Model) bool { return m.selectedConversation() != nil },
	},
	{
		Key:                "d",
		Description:        "Delete selected conversation",
		Category:           CategoryConversations,
		RequiresNavigation: true,
		Handler:            shortcutDelete,
		Condition:          func(m *Model) bool { return m.selectedConversation() != nil },
	},

	// Chat
	{
		Key:                  keys.CtrlE,
		DisplayKey:           "ctrl-e",
		Description:          "Conversation menu",
		Category:             CategoryChat,
		RequiresConversation: true,
		Handler:              shortcutMenu,
	},
	{
		Key:                  keys.CtrlY,
		DisplayKey:           "ctrl-y",
		Description:          "Copy latest reference link",
		Category:             CategoryChat,
		RequiresConversation: true,
		Handler:              shortcutCopyReference,
		Condition:            func(m *Model) bool { return m.hasReference() },
	},
	{
		Key:                  keys.CtrlB,
		DisplayKey:           "ctrl-b",
		Description:          "Show or hide the sidebar",
		Category:             CategoryChat,
		RequiresConversation: true,
		Handler:              shortcutToggleSidebar,
	},

	// Configuration
	{
		Key:                ",",
		Description:        "Settings",
		Category:           CategoryConfiguration,
		RequiresNavigation: true,
		Handler:            shortcutSettings,
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:                "q",
		Description:        "Quit application",
		Category:           CategoryGeneral,
		RequiresNavigation: true,
		Handler:            shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:                "?",
	Description:        "Show this help",
	Category:           CategoryGeneral,
	RequiresNavigation: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "←↑↓→ or hjkl", Description: "Move between cards", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open conversation / Send message", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Clear filter / Cancel reply / Back to list", Category: CategoryNavigation},

	{DisplayKey: "shift+enter", Description: "New line (opt+enter without kitty keyboard)", Category: CategoryChat},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the transcript", Category: CategoryChat},
}

// isTyping reports whether keys are going into a text field.
func (m *Model) isTyping() bool {
	if m.ChatMode() {
		return m.focus == FocusChat
	}
	return m.list.IsFiltering()
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	return m.guardFailure(s) == ""
}

// guardFailure names the first guard s fails, or "" when it may run.
func (m *Model) guardFailure(s Shortcut) string {
	switch {
	case s.RequiresNavigation && m.isTyping():
		return "typing"
	case s.RequiresConversation && !m.ChatMode():
		return "no conversation open"
	case s.RequiresList && m.ChatMode():
		return "not on the list"
	case s.Condition != nil && !s.Condition(m):
		return "condition"
	}
	return ""
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed,
// so the key can reach the focused panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	log := logger.ComponentLogger("shortcuts")

	// Handle help shortcut specially (defined outside registry to avoid init cycle)
	if key == helpShortcut.Key {
		if m.guardFailure(helpShortcut) != "" {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if reason := m.guardFailure(s); reason != "" {
			log.Debug("guard failed", "key", key, "reason", reason)
			return m, nil, false
		}
		log.Debug("executing", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	// Chat display-only entries only make sense with a conversation open
	for _, s := range displayOnly {
		if s.Category == CategoryChat && !m.ChatMode() {
			continue
		}
		add(s)
	}
	add(helpShortcut)

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// selectedConversation is the target of p, r and d: the highlighted card
// in list mode, the sidebar cursor when the sidebar has focus, otherwise
// the open conversation.
func (m *Model) selectedConversation() *conversation.Conversation {
	if !m.ChatMode() {
		return m.list.SelectedConversation()
	}
	if m.focus == FocusSidebar {
		return m.sidebar.SelectedConversation()
	}
	return m.snapshot.Active()
}

func (m *Model) hasReference() bool {
	active := m.snapshot.Active()
	if active == nil {
		return false
	}
	_, ok := active.LastReference()
	return ok
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFocus()
}

func shortcutFilter(m *Model) (tea.Model, tea.Cmd) {
	return m, m.list.StartFilter()
}

func shortcutNewConversation(m *Model) (tea.Model, tea.Cmd) {
	c := m.store.Create()
	logger.WithConversation(c.ID).Info("new conversation from shortcut")
	m.list.ClearFilter()
	cmd := m.resync()
	return m, tea.Batch(cmd, m.setFocus(FocusChat))
}

func shortcutTogglePin(m *Model) (tea.Model, tea.Cmd) {
	c := m.selectedConversation()
	if !m.store.TogglePin(c.ID) {
		return m, m.ShowFlashError("Conversation no longer exists")
	}
	return m, m.resync()
}

func shortcutRename(m *Model) (tea.Model, tea.Cmd) {
	c := m.selectedConversation()
	m.modal.Show(modals.NewRenameConversationState(c.ID, conversation.RenamePrompt, c.Title))
	return m, nil
}

func shortcutDelete(m *Model) (tea.Model, tea.Cmd) {
	c := m.selectedConversation()
	m.modal.Show(modals.NewConfirmDeleteState(c.ID, conversation.DeletePrompt, c.Title))
	return m, nil
}

func shortcutMenu(m *Model) (tea.Model, tea.Cmd) {
	active := m.snapshot.Active()
	m.modal.Show(modals.NewConversationMenuState(active.ID, active.Title, m.hasReference()))
	return m, nil
}

func shortcutCopyReference(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyLatestReference()
}

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleSidebar()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names, labels := ui.ThemeNameStrings(), ui.ThemeDisplayNames()
	themes := make([]modals.Choice, len(names))
	for i := range names {
		themes[i] = modals.Choice{Key: names[i], Name: labels[i]}
	}
	m.modal.Show(modals.NewSettingsState(themes, assistantModes, modals.Settings{
		Theme:            string(ui.CurrentThemeName()),
		Notifications:    m.config.GetNotificationsEnabled(),
		SidebarCollapsed: m.config.GetSidebarCollapsed(),
		AssistantMode:    m.config.GetAssistantMode(),
	}))
	return m, nil
}

var assistantModes = []modals.Choice{
	{Key: config.AssistantPlaceholder, Name: "Placeholder answer"},
	{Key: config.AssistantCatalog, Name: "Match references from the library"},
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// normalizeHelpDisplayKey maps a help entry back to the key that runs it.
// Display-only entries map to "".
func normalizeHelpDisplayKey(displayKey string) string {
	for _, s := range DisplayOnlyShortcuts {
		if s.DisplayKey == displayKey {
			return ""
		}
	}
	for _, s := range ShortcutRegistry {
		if s.DisplayKey != "" && s.DisplayKey == displayKey {
			return s.Key
		}
	}
	return strings.ToLower(displayKey)
}

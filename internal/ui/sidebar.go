package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
)

// Sidebar is the narrow conversation list shown next to an open chat.
type Sidebar struct {
	conversations []conversation.Conversation
	activeID      string
	selectedIdx   int
	width         int
	height        int
	focused       bool
	collapsed     bool
	scrollOffset  int
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetCollapsed hides or shows the sidebar.
func (s *Sidebar) SetCollapsed(collapsed bool) {
	s.collapsed = collapsed
	if collapsed {
		s.focused = false
	}
}

// IsCollapsed returns whether the sidebar is hidden.
func (s *Sidebar) IsCollapsed() bool {
	return s.collapsed
}

// SetConversations replaces the list. The selection follows the active
// conversation.
func (s *Sidebar) SetConversations(convs []conversation.Conversation, activeID string) {
	s.conversations = convs
	if activeID != s.activeID {
		s.activeID = activeID
		s.SelectConversation(activeID)
	}
	if s.selectedIdx >= len(convs) {
		s.selectedIdx = max(0, len(convs)-1)
	}
}

// SelectConversation moves the cursor to id.
func (s *Sidebar) SelectConversation(id string) {
	for i, c := range s.conversations {
		if c.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// SelectedConversation returns the conversation under the cursor, or nil.
func (s *Sidebar) SelectedConversation() *conversation.Conversation {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.conversations) {
		return nil
	}
	c := s.conversations[s.selectedIdx]
	return &c
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused || s.collapsed {
		return s, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < len(s.conversations)-1 {
			s.selectedIdx++
		}
	case keys.Home:
		s.selectedIdx = 0
	case keys.End:
		s.selectedIdx = max(0, len(s.conversations)-1)
	}
	return s, nil
}

// View renders the sidebar. A collapsed sidebar renders nothing.
func (s *Sidebar) View() string {
	if s.collapsed || s.width == 0 {
		return ""
	}
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)
	itemsVisible := max(1, (innerHeight-TitleHeight)/SidebarItemHeight)

	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	} else if s.selectedIdx >= s.scrollOffset+itemsVisible {
		s.scrollOffset = s.selectedIdx - itemsVisible + 1
	}

	lines := []string{PanelTitleStyle.Render(SidebarTitle)}
	if len(s.conversations) == 0 {
		lines = append(lines, EmptyStateStyle.Render(" No chats yet."))
	}
	for i := s.scrollOffset; i < len(s.conversations) && i < s.scrollOffset+itemsVisible; i++ {
		lines = append(lines, s.renderItem(s.conversations[i], i, innerWidth))
	}

	return style.
		Width(s.width).
		Height(s.height).
		Render(strings.Join(lines, "\n"))
}

// renderItem draws the pin marker and title over the creation date.
func (s *Sidebar) renderItem(c conversation.Conversation, idx, width int) string {
	prefix := "  "
	if c.Pinned {
		prefix = "★ "
	}
	// the item style pads one cell on each side
	room := width - 2 - runewidth.StringWidth(prefix)
	label := prefix + runewidth.Truncate(c.Title, room, "…") + "\n" +
		"  " + runewidth.Truncate(c.CreatedAt.Format(SidebarDateFormat), room, "…")

	itemStyle := SidebarItemStyle
	switch {
	case s.focused && idx == s.selectedIdx:
		itemStyle = SidebarSelectedStyle
	case c.ID == s.activeID:
		itemStyle = SidebarActiveStyle
	}
	return itemStyle.Width(width).MaxHeight(SidebarItemHeight).Render(label)
}

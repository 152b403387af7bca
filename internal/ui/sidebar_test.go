package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func newTestSidebar() *Sidebar {
	s := NewSidebar()
	s.SetSize(30, 20)
	s.SetConversations(testConversations(), "c2")
	return s
}

func TestSidebar_SelectionFollowsActive(t *testing.T) {
	s := newTestSidebar()

	if got := s.SelectedConversation().ID; got != "c2" {
		t.Errorf("Expected c2 selected, got %s", got)
	}

	s.SetConversations(testConversations(), "c3")
	if got := s.SelectedConversation().ID; got != "c3" {
		t.Errorf("Expected selection to follow active c3, got %s", got)
	}
}

func TestSidebar_NavigationRequiresFocus(t *testing.T) {
	s := newTestSidebar()

	s, _ = s.Update(key(tea.KeyDown))
	if got := s.SelectedConversation().ID; got != "c2" {
		t.Errorf("Unfocused sidebar should ignore keys, got %s", got)
	}

	s.SetFocused(true)
	s, _ = s.Update(key(tea.KeyDown))
	if got := s.SelectedConversation().ID; got != "c3" {
		t.Errorf("Expected c3 after down, got %s", got)
	}

	s, _ = s.Update(key(tea.KeyDown))
	if got := s.SelectedConversation().ID; got != "c3" {
		t.Errorf("Down at the end should stay on c3, got %s", got)
	}

	s, _ = s.Update(key(tea.KeyHome))
	if got := s.SelectedConversation().ID; got != "c1" {
		t.Errorf("Expected c1 after home, got %s", got)
	}
}

func TestSidebar_SelectionClampedOnShrink(t *testing.T) {
	s := newTestSidebar()
	s.SetFocused(true)
	s.SelectConversation("c3")

	s.SetConversations(testConversations()[:1], "c2")

	if got := s.SelectedConversation(); got == nil || got.ID != "c1" {
		t.Errorf("Expected selection clamped to c1, got %v", got)
	}
}

func TestSidebar_Collapse(t *testing.T) {
	s := newTestSidebar()
	s.SetFocused(true)

	s.SetCollapsed(true)

	if !s.IsCollapsed() {
		t.Error("Expected sidebar to be collapsed")
	}
	if s.IsFocused() {
		t.Error("Collapsing should drop focus")
	}
	if s.View() != "" {
		t.Error("Collapsed sidebar should render nothing")
	}
}

func TestSidebar_View(t *testing.T) {
	s := newTestSidebar()

	view := ansi.Strip(s.View())

	if !strings.Contains(view, SidebarTitle) {
		t.Error("Expected sidebar title")
	}
	if !strings.Contains(view, "★ Quantum") {
		t.Errorf("Expected pinned marker before pinned title:\n%s", view)
	}
	if !strings.Contains(view, "CRISPR") {
		t.Error("Expected unpinned conversation in view")
	}
	if !strings.Contains(view, "Feb 27, 2025") {
		t.Errorf("Expected creation date under the title:\n%s", view)
	}
}

func TestSidebar_View_ScrollsByEntry(t *testing.T) {
	s := NewSidebar()
	// Room for the title and two entries of SidebarItemHeight lines
	s.SetSize(30, BorderSize+TitleHeight+2*SidebarItemHeight)
	s.SetConversations(testConversations(), "c1")
	s.SetFocused(true)

	s, _ = s.Update(key(tea.KeyEnd))
	view := ansi.Strip(s.View())

	if !strings.Contains(view, "Climate Models") {
		t.Errorf("Expected the selected entry to scroll into view:\n%s", view)
	}
	if strings.Contains(view, "Quantum") {
		t.Errorf("Expected the first entry to scroll out of view:\n%s", view)
	}
}

func TestSidebar_View_Empty(t *testing.T) {
	s := NewSidebar()
	s.SetSize(30, 10)

	if !strings.Contains(ansi.Strip(s.View()), "No chats yet.") {
		t.Error("Expected empty text")
	}
}

package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/scholar/internal/conversation"
)

func newTestList(width int) *ConversationList {
	l := NewConversationList()
	l.SetClock(func() time.Time { return testEpoch })
	l.SetSize(width, 30)
	l.SetConversations(testConversations())
	return l
}

func TestConversationList_EmptyState(t *testing.T) {
	l := NewConversationList()
	l.SetSize(100, 20)

	if l.SelectedConversation() != nil {
		t.Error("Expected no selection on an empty list")
	}

	view := ansi.Strip(l.View())
	if !strings.Contains(view, EmptyListText) {
		t.Errorf("Expected empty state text in view:\n%s", view)
	}
	if !strings.Contains(view, Tagline) {
		t.Error("Expected tagline in view")
	}
}

func TestConversationList_RendersCards(t *testing.T) {
	l := newTestList(120)

	view := ansi.Strip(l.View())
	for _, title := range []string{"Quantum Computing Basics", "CRISPR Gene Editing", "Climate Models"} {
		if !strings.Contains(view, title) {
			t.Errorf("Expected %q in view", title)
		}
	}
	if !strings.Contains(view, "★ pinned") {
		t.Error("Expected pinned marker on the pinned card")
	}
	if !strings.Contains(view, "2 days ago") {
		t.Errorf("Expected relative age in view:\n%s", view)
	}
	if !strings.Contains(view, "Feb 27, 2025 12:00") {
		t.Errorf("Expected creation time in view:\n%s", view)
	}
}

func TestConversationList_LongTitleFitsCard(t *testing.T) {
	l := NewConversationList()
	l.SetClock(func() time.Time { return testEpoch })
	l.SetSize(120, 30)
	l.SetConversations([]conversation.Conversation{
		{ID: "c1", Title: "Deep learning for protein folding", CreatedAt: testEpoch},
		{ID: "c2", Title: strings.Repeat("metagenomics ", 6), CreatedAt: testEpoch},
	})

	view := ansi.Strip(l.View())
	if !strings.Contains(view, "Deep learning for protein folding") {
		t.Errorf("Expected the full title on its card:\n%s", view)
	}
	if !strings.Contains(view, "…") {
		t.Errorf("Expected an over-long title to be truncated:\n%s", view)
	}
}

func TestConversationList_FitsWidth(t *testing.T) {
	widest := func(view string) int {
		w := 0
		for _, line := range strings.Split(view, "\n") {
			w = max(w, ansi.StringWidth(line))
		}
		return w
	}

	t.Run("empty", func(t *testing.T) {
		l := NewConversationList()
		l.SetSize(100, 20)
		if w := widest(l.View()); w > 100 {
			t.Errorf("widest line is %d cells, terminal is 100", w)
		}
	})

	// Widths where the grid exactly fills the row, and one cell short
	exact := 3*CardWidth + 2*CardGap + ListPaddingWidth
	for _, width := range []int{exact, exact - 1, 2*CardWidth + CardGap + ListPaddingWidth} {
		l := newTestList(width)
		if w := widest(l.View()); w > width {
			t.Errorf("width %d: widest line is %d cells", width, w)
		}
	}
}

func TestConversationList_GridNavigation(t *testing.T) {
	// Two cards per row at this width
	l := newTestList(2*CardWidth + CardGap + ListPaddingWidth)

	if got := l.SelectedConversation().ID; got != "c1" {
		t.Fatalf("Expected c1 selected, got %s", got)
	}

	l, _ = l.Update(key(tea.KeyRight))
	if got := l.SelectedConversation().ID; got != "c2" {
		t.Errorf("After right expected c2, got %s", got)
	}

	l, _ = l.Update(key(tea.KeyLeft))
	l, _ = l.Update(key(tea.KeyDown))
	if got := l.SelectedConversation().ID; got != "c3" {
		t.Errorf("After down expected c3, got %s", got)
	}

	// Moving past the end is a no-op
	l, _ = l.Update(key(tea.KeyDown))
	if got := l.SelectedConversation().ID; got != "c3" {
		t.Errorf("Down past the end should stay on c3, got %s", got)
	}

	l, _ = l.Update(key(tea.KeyHome))
	if got := l.SelectedConversation().ID; got != "c1" {
		t.Errorf("Home should select c1, got %s", got)
	}
}

func TestConversationList_SelectionFollowsID(t *testing.T) {
	l := newTestList(120)
	l.Select("c3")

	// Reordered snapshot: c3 moves to the front
	convs := testConversations()
	reordered := []conversation.Conversation{convs[2], convs[0], convs[1]}
	l.SetConversations(reordered)

	if got := l.SelectedConversation().ID; got != "c3" {
		t.Errorf("Expected selection to stay on c3, got %s", got)
	}
}

func TestConversationList_SelectionAfterDelete(t *testing.T) {
	l := newTestList(120)
	l.Select("c2")

	convs := testConversations()
	l.SetConversations([]conversation.Conversation{convs[0], convs[2]})

	if l.SelectedConversation() == nil {
		t.Fatal("Expected a selection after the selected conversation was removed")
	}
	if l.Len() != 2 {
		t.Errorf("Expected 2 cards, got %d", l.Len())
	}
}

func TestConversationList_Filter(t *testing.T) {
	l := newTestList(120)

	l.StartFilter()
	if !l.IsFiltering() {
		t.Fatal("Expected filter mode")
	}

	for _, r := range "crspr" {
		l, _ = l.Update(char(r))
	}

	if l.FilterQuery() != "crspr" {
		t.Errorf("Expected query 'crspr', got %q", l.FilterQuery())
	}
	if l.Len() != 1 {
		t.Fatalf("Expected 1 match, got %d", l.Len())
	}
	if got := l.SelectedConversation().ID; got != "c2" {
		t.Errorf("Expected c2 selected, got %s", got)
	}

	// Enter keeps the filter but leaves edit mode
	l, _ = l.Update(key(tea.KeyEnter))
	if l.IsFiltering() {
		t.Error("Enter should leave filter editing")
	}
	if l.Len() != 1 {
		t.Error("Enter should keep the filter applied")
	}
}

func TestConversationList_FilterNoMatches(t *testing.T) {
	l := newTestList(120)
	l.StartFilter()
	for _, r := range "zzzz" {
		l, _ = l.Update(char(r))
	}

	if l.SelectedConversation() != nil {
		t.Error("Expected no selection without matches")
	}
	if !strings.Contains(ansi.Strip(l.View()), "No conversations match.") {
		t.Error("Expected no-match text in view")
	}
}

func TestConversationList_EscapeClearsFilter(t *testing.T) {
	l := newTestList(120)
	l.StartFilter()
	l, _ = l.Update(char('q'))

	l, _ = l.Update(key(tea.KeyEscape))

	if l.IsFiltering() {
		t.Error("Escape should leave filter mode")
	}
	if l.FilterQuery() != "" {
		t.Errorf("Escape should clear the query, got %q", l.FilterQuery())
	}
	if l.Len() != 3 {
		t.Errorf("Expected all 3 cards after clearing, got %d", l.Len())
	}
}

func TestPluralize(t *testing.T) {
	if pluralize(1, "message") != "message" {
		t.Error("Expected singular for 1")
	}
	if pluralize(0, "message") != "messages" {
		t.Error("Expected plural for 0")
	}
}

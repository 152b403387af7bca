package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
)

// FilterCharLimit bounds the list filter query.
const FilterCharLimit = 64

// ConversationList renders the conversation collection as a grid of cards.
// It holds only the selection and filter; the conversations come from the
// latest store snapshot.
type ConversationList struct {
	conversations []conversation.Conversation
	visible       []int // indexes into conversations, after filtering
	selectedID    string
	selectedIdx   int // index into visible
	width         int
	height        int
	scrollRow     int
	now           func() time.Time

	filtering   bool
	filterInput textinput.Model
}

// NewConversationList creates an empty list.
func NewConversationList() *ConversationList {
	ti := textinput.New()
	ti.Placeholder = "filter by title..."
	ti.CharLimit = FilterCharLimit
	ti.Prompt = ""

	return &ConversationList{
		now:         time.Now,
		filterInput: ti,
	}
}

// SetClock overrides the time source used for relative ages.
func (l *ConversationList) SetClock(now func() time.Time) {
	l.now = now
}

// SetSize sets the list dimensions
func (l *ConversationList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.filterInput.SetWidth(max(10, width-4))
}

// SetConversations replaces the rendered collection, keeping the selection
// on the same conversation when it still exists.
func (l *ConversationList) SetConversations(convs []conversation.Conversation) {
	l.conversations = convs
	l.applyFilter()
}

// Len returns the number of visible cards.
func (l *ConversationList) Len() int {
	return len(l.visible)
}

// SelectedConversation returns the highlighted conversation, or nil.
func (l *ConversationList) SelectedConversation() *conversation.Conversation {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.visible) {
		return nil
	}
	c := l.conversations[l.visible[l.selectedIdx]]
	return &c
}

// Select highlights the conversation with id, if visible.
func (l *ConversationList) Select(id string) {
	for i, idx := range l.visible {
		if l.conversations[idx].ID == id {
			l.selectedIdx = i
			l.selectedID = id
			return
		}
	}
}

// IsFiltering returns whether the filter input has focus.
func (l *ConversationList) IsFiltering() bool {
	return l.filtering
}

// FilterQuery returns the active filter text.
func (l *ConversationList) FilterQuery() string {
	return l.filterInput.Value()
}

// StartFilter focuses the filter input.
func (l *ConversationList) StartFilter() tea.Cmd {
	l.filtering = true
	return l.filterInput.Focus()
}

// ClearFilter drops the filter and shows every conversation.
func (l *ConversationList) ClearFilter() {
	l.filtering = false
	l.filterInput.Blur()
	l.filterInput.SetValue("")
	l.applyFilter()
}

// titleSource adapts conversations for fuzzy.FindFrom.
type titleSource []conversation.Conversation

func (t titleSource) String(i int) string { return t[i].Title }
func (t titleSource) Len() int            { return len(t) }

// applyFilter recomputes the visible cards. Without a query the store's
// order is kept; with one, cards are ranked by fuzzy match score.
func (l *ConversationList) applyFilter() {
	query := strings.TrimSpace(l.filterInput.Value())
	l.visible = l.visible[:0]

	if query == "" {
		for i := range l.conversations {
			l.visible = append(l.visible, i)
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, titleSource(l.conversations)) {
			l.visible = append(l.visible, m.Index)
		}
	}

	l.selectedIdx = 0
	for i, idx := range l.visible {
		if l.conversations[idx].ID == l.selectedID {
			l.selectedIdx = i
			break
		}
	}
	l.syncSelectedID()
}

func (l *ConversationList) syncSelectedID() {
	if l.selectedIdx >= 0 && l.selectedIdx < len(l.visible) {
		l.selectedID = l.conversations[l.visible[l.selectedIdx]].ID
	}
}

// contentWidth is the width left for cards once the list padding is taken.
func (l *ConversationList) contentWidth() int {
	return max(0, l.width-ListPaddingWidth)
}

// columns returns how many cards fit side by side.
func (l *ConversationList) columns() int {
	return GridColumns(l.contentWidth(), CardWidth, CardGap)
}

func (l *ConversationList) move(delta int) {
	next := l.selectedIdx + delta
	if next < 0 || next >= len(l.visible) {
		return
	}
	l.selectedIdx = next
	l.syncSelectedID()
}

// Update handles navigation and filter editing.
func (l *ConversationList) Update(msg tea.Msg) (*ConversationList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	if l.filtering {
		switch keyMsg.String() {
		case keys.Escape:
			l.ClearFilter()
			return l, nil
		case keys.Enter:
			l.filtering = false
			l.filterInput.Blur()
			return l, nil
		case keys.Up, keys.Down, keys.Left, keys.Right:
			// fall through to navigation
		default:
			var cmd tea.Cmd
			l.filterInput, cmd = l.filterInput.Update(msg)
			l.applyFilter()
			return l, cmd
		}
	}

	cols := l.columns()
	switch keyMsg.String() {
	case keys.Left, "h":
		l.move(-1)
	case keys.Right, "l":
		l.move(1)
	case keys.Up, "k":
		l.move(-cols)
	case keys.Down, "j":
		l.move(cols)
	case keys.Home:
		l.selectedIdx = 0
		l.syncSelectedID()
	case keys.End:
		if len(l.visible) > 0 {
			l.selectedIdx = len(l.visible) - 1
			l.syncSelectedID()
		}
	}
	return l, nil
}

// View renders the grid, the filter line and the tagline.
func (l *ConversationList) View() string {
	var sections []string

	if l.filtering || l.filterInput.Value() != "" {
		sections = append(sections, FilterPromptStyle.Render("/ ")+l.filterInput.View())
	}

	switch {
	case len(l.conversations) == 0:
		sections = append(sections, lipgloss.Place(l.contentWidth(), max(1, l.height-3),
			lipgloss.Center, lipgloss.Center, EmptyStateStyle.Render(EmptyListText)))
	case len(l.visible) == 0:
		sections = append(sections, EmptyStateStyle.Render("No conversations match."))
	default:
		sections = append(sections, l.renderGrid(l.height-len(sections)-2))
	}

	sections = append(sections, "", TaglineStyle.Render(Tagline))
	return lipgloss.NewStyle().Padding(0, ListPaddingWidth/2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderGrid lays out the visible cards, scrolling so the selected row
// stays on screen.
func (l *ConversationList) renderGrid(height int) string {
	cols := l.columns()
	rowsVisible := max(1, height/CardHeight)
	selRow := l.selectedIdx / cols
	if selRow < l.scrollRow {
		l.scrollRow = selRow
	} else if selRow >= l.scrollRow+rowsVisible {
		l.scrollRow = selRow - rowsVisible + 1
	}

	var rows []string
	for start := l.scrollRow * cols; start < len(l.visible) && len(rows) < rowsVisible; start += cols {
		var cards []string
		for i := start; i < min(start+cols, len(l.visible)); i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", CardGap))
			}
			cards = append(cards, l.renderCard(l.conversations[l.visible[i]], i == l.selectedIdx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard shows the title, creation time, age and pin state of one
// conversation.
func (l *ConversationList) renderCard(c conversation.Conversation, selected bool) string {
	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	inner := CardWidth - BorderSize - InputPaddingWidth
	meta := func(s string) string {
		return CardMetaStyle.Render(runewidth.Truncate(s, inner, "…"))
	}

	pin := CardMetaStyle.Render("☆ pin")
	if c.Pinned {
		pin = PinStyle.Render("★ pinned")
	}

	title := CardTitleStyle.Render(runewidth.Truncate(c.Title, inner, "…"))
	created := meta(c.CreatedAt.Format(CardTimeFormat))
	age := meta(humanize.RelTime(c.CreatedAt, l.now(), "ago", "from now"))
	count := meta(humanize.Comma(int64(len(c.Messages))) + " " + pluralize(len(c.Messages), "message"))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, created, age, count, pin))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/ui/modals"
)

// StopwatchTickMsg is sent to update the waiting indicator
type StopwatchTickMsg time.Time

// searchingVerbs cycle in the waiting indicator while a reply is pending
var searchingVerbs = []string{
	"Searching the literature",
	"Reading abstracts",
	"Cross-referencing citations",
	"Reviewing papers",
	"Consulting the archives",
	"Checking references",
	"Skimming journals",
	"Gathering sources",
}

func randomSearchingVerb() string {
	return searchingVerbs[rand.Intn(len(searchingVerbs))]
}

// Chat is the conversation window: the message transcript in a scrolling
// viewport above a multi-line composer.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	conversationID string
	title          string
	messages       []conversation.Message
	hasSession     bool

	waiting       bool
	waitStartTime time.Time
	waitingVerb   string

	// What the viewport last showed, to tell new content from a redraw
	shownID      string
	shownCount   int
	shownWaiting bool
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	modals.ApplyTextareaStyles(&ti)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// RefreshStyles reapplies theme colors to the composer.
func (c *Chat) RefreshStyles() {
	modals.ApplyTextareaStyles(&c.input)
	c.updateContent()
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(max(1, ctx.InnerHeight(chatPanelHeight)))

	// Input width accounts for its own border and padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetConversation shows conv. Switching to a different conversation clears
// the composer; a refresh of the same one keeps the draft.
func (c *Chat) SetConversation(conv conversation.Conversation) {
	if conv.ID != c.conversationID {
		c.input.Reset()
	}
	c.conversationID = conv.ID
	c.title = conv.Title
	c.messages = conv.Messages
	c.hasSession = true
	c.updateContent()
}

// ClearConversation returns to the no-conversation state.
func (c *Chat) ClearConversation() {
	c.conversationID = ""
	c.title = ""
	c.messages = nil
	c.hasSession = false
	c.waiting = false
	c.input.Reset()
	c.updateContent()
}

// ConversationID returns the id of the conversation on screen.
func (c *Chat) ConversationID() string {
	return c.conversationID
}

// MessageCount returns the number of messages on screen.
func (c *Chat) MessageCount() int {
	return len(c.messages)
}

// GetInput returns the composer text without surrounding whitespace
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertNewline adds a line break at the cursor.
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// SetWaiting toggles the waiting indicator shown while a reply is pending.
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomSearchingVerb()
	}
	c.updateContent()
}

// IsWaiting returns whether a reply is pending
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// renderNoConversationMessage renders the placeholder when nothing is open
func (c *Chat) renderNoConversationMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No conversation open"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a new chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("esc"))
	sb.WriteString(msgStyle.Render(" to browse your conversations"))
	return sb.String()
}

// updateContent re-renders the transcript. It scrolls to the newest message
// when the transcript changed or the reader was already at the bottom;
// redraws alone leave a scrolled-up viewport where it is.
func (c *Chat) updateContent() {
	width := c.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var sb strings.Builder
	switch {
	case !c.hasSession:
		sb.WriteString(c.renderNoConversationMessage())
	case len(c.messages) == 0 && !c.waiting:
		sb.WriteString(ChatEmptyStyle.Render(EmptyChatText))
	default:
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderMessage(msg, width))
		}
		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			stopwatch := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatAssistantStyle.Render("Assistant"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render(c.waitingVerb + "... "))
			sb.WriteString(stopwatch.Render(formatElapsed(time.Since(c.waitStartTime))))
		}
	}

	changed := c.conversationID != c.shownID ||
		len(c.messages) != c.shownCount ||
		c.waiting != c.shownWaiting
	follow := changed || c.viewport.AtBottom()

	c.viewport.SetContent(sb.String())
	if follow {
		c.viewport.GotoBottom()
	}
	c.shownID, c.shownCount, c.shownWaiting = c.conversationID, len(c.messages), c.waiting
}

// Update handles messages. Enter is left to the caller, which decides
// whether to send; shift+enter and alt+enter insert a line break.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(StopwatchTickMsg); ok {
		if c.waiting {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused && c.hasSession {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.ShiftEnter, keys.AltEnter:
				c.InsertNewline()
				return c, nil
			case keys.Enter:
				return c, nil
			case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD, "ctrl+up", "ctrl+down":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasSession {
		return panelStyle.Width(c.width).Height(c.height).Render(c.renderNoConversationMessage())
	}

	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}

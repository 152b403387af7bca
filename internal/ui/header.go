package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Header represents the top header bar. It shows the page title, the
// new-chat action and, in chat mode, the sidebar toggle.
type Header struct {
	width            int
	chatMode         bool
	conversation     string
	sidebarCollapsed bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetContext switches between list and chat mode. conversation is the
// open conversation's title, shown after the page title in chat mode.
func (h *Header) SetContext(chatMode bool, conversation string, sidebarCollapsed bool) {
	h.chatMode = chatMode
	h.conversation = conversation
	h.sidebarCollapsed = sidebarCollapsed
}

// Title returns the page title for the current mode.
func (h *Header) Title() string {
	if h.chatMode {
		return ChatTitle
	}
	return ListTitle
}

// hints returns the right-hand action hints.
func (h *Header) hints() string {
	parts := []string{"n: New Chat"}
	if h.chatMode {
		label := "Hide Sidebar"
		if h.sidebarCollapsed {
			label = "Show Sidebar"
		}
		parts = append(parts, "ctrl+b: "+label)
	}
	return strings.Join(parts, "  ")
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + h.Title()
	if h.chatMode && h.conversation != "" {
		titleText += " · " + h.conversation
	}
	rightText := h.hints() + " "

	// Drop the conversation name before the hints when space runs out
	avail := h.width - runewidth.StringWidth(rightText) - 1
	if avail > 0 && runewidth.StringWidth(titleText) > avail {
		titleText = runewidth.Truncate(titleText, avail, "…")
	}

	paddingLen := max(0, h.width-runewidth.StringWidth(titleText)-runewidth.StringWidth(rightText))
	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent,
		uniseg.GraphemeClusterCount(h.Title())+1,
		uniseg.GraphemeClusterCount(fullContent)-uniseg.GraphemeClusterCount(rightText))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content on a background fading from the theme's
// primary color to its background. It steps per grapheme cluster so accented
// and emoji titles keep their combining marks. Clusters before boldEnd are
// bold and clusters from mutedStart on use the muted text color.
func (h *Header) renderGradient(content string, boldEnd, mutedStart int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	width := uniseg.GraphemeClusterCount(content)
	var result strings.Builder

	gr := uniseg.NewGraphemes(content)
	for i := 0; gr.Next(); i++ {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < boldEnd)

		if i >= mutedStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(gr.Str()))
	}

	return result.String()
}

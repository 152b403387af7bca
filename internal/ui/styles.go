package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, replaced wholesale by regenerateStyles on theme change
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorBgCard      color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorPin         color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorLink        color.Color
)

// Header and footer styles
var (
	HeaderHintStyle lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
	FooterSepStyle  lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Conversation list styles
var (
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	CardTitleStyle    lipgloss.Style
	CardMetaStyle     lipgloss.Style
	PinStyle          lipgloss.Style
	EmptyStateStyle   lipgloss.Style
	TaglineStyle      lipgloss.Style
	FilterPromptStyle lipgloss.Style
)

// Sidebar styles
var (
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	SidebarActiveStyle   lipgloss.Style
)

// Chat styles
var (
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatUserBubble        lipgloss.Style
	ChatAssistantBubble   lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	ChatEmptyStyle        lipgloss.Style
)

// Reference card and code styles
var (
	ReferenceCardStyle   lipgloss.Style
	ReferenceTitleStyle  lipgloss.Style
	ReferenceMetaStyle   lipgloss.Style
	ReferenceURLStyle    lipgloss.Style
	ReferenceHeaderStyle lipgloss.Style
	InlineCodeStyle      lipgloss.Style
	CodeBlockStyle       lipgloss.Style
)

// Modal and status styles
var (
	ModalStyle         lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusLoadingStyle lipgloss.Style
)

func init() {
	regenerateStyles()
}

// buildStyles derives every style from the palette of t.
func buildStyles(t Theme) {
	bgSelected := lipgloss.Color(t.GetBgSelected())

	HeaderHintStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	FooterSepStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Background(ColorBgCard).
		Padding(0, 1).
		Width(CardWidth).
		Height(CardHeight)
	CardSelectedStyle = CardStyle.
		BorderForeground(ColorBorderFocus).
		BorderStyle(lipgloss.ThickBorder())
	CardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)
	CardMetaStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	PinStyle = lipgloss.NewStyle().
		Foreground(ColorPin).
		Bold(true)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
	TaglineStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	SidebarItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)
	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(bgSelected).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)
	SidebarActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	ChatUserBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorUser).
		Foreground(ColorText).
		Padding(0, 1)
	ChatAssistantBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAssistant).
		Foreground(ColorText).
		Padding(0, 1)
	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)
	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)
	ChatEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ReferenceCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(ReferenceCardWidth)
	ReferenceTitleStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	ReferenceMetaStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	ReferenceURLStyle = lipgloss.NewStyle().
		Foreground(ColorLink).
		Underline(true)
	ReferenceHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)
	InlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))
	CodeBlockStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.MarkdownCodeBg)).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
}

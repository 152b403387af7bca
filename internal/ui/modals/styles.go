package modals

import (
	"image/color"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
)

// Modal dimensions
var (
	ModalWidth          = 60
	ModalWidthWide      = 80
	ModalInputWidth     = 50
	ModalInputCharLimit = 120
	HelpModalMaxVisible = 16
)

// Style variables - these are set by the parent ui package via SetStyles
var (
	ModalTitleStyle       lipgloss.Style
	ModalHelpStyle        lipgloss.Style
	ItemStyle             lipgloss.Style
	ItemSelectedStyle     lipgloss.Style
	StatusErrorStyle      lipgloss.Style
	DangerSelectedStyle   lipgloss.Style
	ConversationNameStyle lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorBorder      color.Color
	ColorError       color.Color
	ColorWarning     color.Color
	ColorSelected    color.Color
)

// Colors is the palette handed down from the active theme.
type Colors struct {
	Primary     color.Color
	Secondary   color.Color
	Text        color.Color
	TextMuted   color.Color
	TextInverse color.Color
	Border      color.Color
	Error       color.Color
	Warning     color.Color
	Selected    color.Color
}

// SetStyles sets the palette and rebuilds the modal styles from it.
// This must be called before rendering any modals.
func SetStyles(c Colors) {
	ColorPrimary = c.Primary
	ColorSecondary = c.Secondary
	ColorText = c.Text
	ColorTextMuted = c.TextMuted
	ColorTextInverse = c.TextInverse
	ColorBorder = c.Border
	ColorError = c.Error
	ColorWarning = c.Warning
	ColorSelected = c.Selected

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1)

	ItemStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ItemSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorSelected).
		Bold(true)

	DangerSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorError).
		Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ConversationNameStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1)
}

// ApplyTextareaStyles configures a textarea with transparent background styles.
// This ensures the textarea background matches the terminal background instead
// of using the default black background.
func ApplyTextareaStyles(ta *textarea.Model) {
	styles := ta.Styles()

	baseStyle := lipgloss.NewStyle()
	textStyle := lipgloss.NewStyle().Foreground(ColorText)
	placeholderStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)

	styles.Focused.Base = baseStyle
	styles.Focused.Text = textStyle
	styles.Focused.Placeholder = placeholderStyle
	styles.Focused.CursorLine = textStyle
	styles.Focused.Prompt = textStyle

	styles.Blurred.Base = baseStyle
	styles.Blurred.Text = textStyle
	styles.Blurred.Placeholder = placeholderStyle
	styles.Blurred.CursorLine = textStyle
	styles.Blurred.Prompt = textStyle

	ta.SetStyles(styles)
}

// ApplyTextinputStyles gives a single-line input the modal palette.
func ApplyTextinputStyles(ti *textinput.Model) {
	styles := ti.Styles()
	styles.Focused.Text = lipgloss.NewStyle().Foreground(ColorText)
	styles.Focused.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
	styles.Focused.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
	styles.Blurred = styles.Focused
	ti.SetStyles(styles)
}

package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/scholar/internal/keys"
)

// formTone picks the accent of a huh form.
type formTone int

const (
	toneNormal formTone = iota
	// toneDanger accents irreversible actions such as deleting a conversation.
	toneDanger
)

// newForm builds a themed huh form of the given width and initializes it so
// the first render is complete. Every huh-backed modal goes through here.
func newForm(tone formTone, width int, groups ...*huh.Group) *huh.Form {
	theme := ModalTheme()
	if tone == toneDanger {
		theme = DangerTheme()
	}
	form := huh.NewForm(groups...).
		WithTheme(theme).
		WithShowHelp(false).
		WithWidth(width)
	form.Init()
	return form
}

// huhFormUpdate forwards msg to the form, except Enter and Escape which the
// app-level modal handlers own.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	return m.(*huh.Form), cmd
}

// ModalTheme returns a huh theme built from the current modal palette. It is
// evaluated per form so theme switches apply to the next modal opened.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		return formStyles(isDark, ColorPrimary)
	})
}

// DangerTheme is ModalTheme with the error color as accent.
func DangerTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		return formStyles(isDark, ColorError)
	})
}

func formStyles(isDark bool, accent color.Color) *huh.Styles {
	t := huh.ThemeBase(isDark)
	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	f := &t.Focused
	f.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(accent)
	f.Card = f.Base
	f.Title = fg(ColorText).Bold(true)
	f.Description = fg(ColorTextMuted).Italic(true)
	f.ErrorIndicator = fg(ColorWarning).SetString(" *")
	f.ErrorMessage = fg(ColorWarning)

	f.SelectSelector = fg(accent).SetString("> ")
	f.NextIndicator = fg(accent).MarginLeft(1).SetString("→")
	f.PrevIndicator = fg(accent).MarginRight(1).SetString("←")
	f.Option = fg(ColorText)

	f.MultiSelectSelector = fg(accent).SetString("> ")
	f.SelectedOption = fg(ColorSecondary)
	f.SelectedPrefix = fg(ColorSecondary).SetString("[x] ")
	f.UnselectedOption = fg(ColorText)
	f.UnselectedPrefix = fg(ColorTextMuted).SetString("[ ] ")

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	f.FocusedButton = button.Foreground(ColorTextInverse).Background(accent)
	f.BlurredButton = button.Foreground(ColorTextMuted)

	f.TextInput.Cursor = fg(accent)
	f.TextInput.Placeholder = fg(ColorTextMuted)
	f.TextInput.Prompt = fg(accent)
	f.TextInput.Text = fg(ColorText)

	// Blurred fields drop the border but keep its width
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = fg(ColorSecondary).Bold(true)
	t.Group.Description = fg(ColorTextMuted)
	t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
	t.Help = help.New().Styles

	return t
}

package modals

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const (
	optionNotifications    = "notifications"
	optionSidebarCollapsed = "sidebar-collapsed"
)

// Choice is one entry of a settings select: the stored key and the label
// shown for it.
type Choice struct {
	Key  string
	Name string
}

// Settings are the values the settings modal edits.
type Settings struct {
	Theme            string
	Notifications    bool
	SidebarCollapsed bool
	AssistantMode    string
}

// SettingsState edits Settings. Values is bound to the form; the app reads
// it when the user presses Enter.
type SettingsState struct {
	Values   Settings
	original Settings

	toggles []string
	form    *huh.Form

	availableWidth int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Space: toggle  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.Values.Notifications = slices.Contains(s.toggles, optionNotifications)
	s.Values.SidebarCollapsed = slices.Contains(s.toggles, optionSidebarCollapsed)
	return s, cmd
}

// ThemeChanged reports whether a different theme was picked.
func (s *SettingsState) ThemeChanged() bool {
	return s.Values.Theme != s.original.Theme
}

// AssistantChanged reports whether a different reply mode was picked.
func (s *SettingsState) AssistantChanged() bool {
	return s.Values.AssistantMode != s.original.AssistantMode
}

func choiceOptions(choices []Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Name, c.Key)
	}
	return opts
}

// NewSettingsState opens the settings form on the current values.
func NewSettingsState(themes, assistantModes []Choice, current Settings) *SettingsState {
	s := &SettingsState{
		Values:         current,
		original:       current,
		availableWidth: ModalWidthWide,
	}

	toggleOpts := []huh.Option[string]{
		huh.NewOption("Desktop notification when a reply arrives", optionNotifications).
			Selected(current.Notifications),
		huh.NewOption("Start with the sidebar collapsed", optionSidebarCollapsed).
			Selected(current.SidebarCollapsed),
	}
	if current.Notifications {
		s.toggles = append(s.toggles, optionNotifications)
	}
	if current.SidebarCollapsed {
		s.toggles = append(s.toggles, optionSidebarCollapsed)
	}

	s.form = newForm(toneNormal, s.contentWidth(),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(choiceOptions(themes)...).
				Value(&s.Values.Theme),
			huh.NewSelect[string]().
				Title("Assistant").
				Description("Takes effect on next start").
				Options(choiceOptions(assistantModes)...).
				Value(&s.Values.AssistantMode),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(toggleOpts...).
				Height(len(toggleOpts)).
				Value(&s.toggles),
		),
	).WithLayout(huh.LayoutStack)
	return s
}

package modals

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// Conversation menu actions.
const (
	MenuActionRename = "rename"
	MenuActionDelete = "delete"
	MenuActionCopy   = "copy"
)

// =============================================================================
// ConversationMenuState - overflow menu for the open conversation
// =============================================================================

type ConversationMenuState struct {
	ConversationID string
	Name           string
	action         string
	form           *huh.Form
}

func (*ConversationMenuState) modalState() {}

func (s *ConversationMenuState) Title() string { return "Conversation" }

func (s *ConversationMenuState) Help() string {
	return "up/down: select  Enter: choose  Esc: cancel"
}

func (s *ConversationMenuState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	name := ConversationNameStyle.Render(TruncateString(s.Name, ModalInputWidth))
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, name, s.form.View(), help)
}

func (s *ConversationMenuState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetAction returns the highlighted menu action.
func (s *ConversationMenuState) GetAction() string {
	return s.action
}

// NewConversationMenuState creates the overflow menu. The copy entry is
// only offered when the conversation has a reference to copy.
func NewConversationMenuState(conversationID, name string, canCopy bool) *ConversationMenuState {
	s := &ConversationMenuState{
		ConversationID: conversationID,
		Name:           name,
		action:         MenuActionRename,
	}

	options := []huh.Option[string]{
		huh.NewOption("Rename", MenuActionRename),
		huh.NewOption("Delete", MenuActionDelete),
	}
	if canCopy {
		options = append(options, huh.NewOption("Copy last reference link", MenuActionCopy))
	}

	s.form = newForm(toneNormal, ModalWidth-10,
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(options...).
				Value(&s.action),
		),
	)
	return s
}

// =============================================================================
// RenameConversationState - State for the Rename modal
// =============================================================================

type RenameConversationState struct {
	ConversationID string
	CurrentTitle   string
	Prompt         string
	Input          textinput.Model
}

func (*RenameConversationState) modalState() {}

func (s *RenameConversationState) Title() string { return "Rename Conversation" }

func (s *RenameConversationState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *RenameConversationState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Current title:")

	current := ConversationNameStyle.Render("  " + TruncateString(s.CurrentTitle, ModalInputWidth))

	promptLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(s.Prompt)

	inputView := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1).
		Render(s.Input.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		currentLabel,
		current,
		promptLabel,
		inputView,
		help,
	)
}

func (s *RenameConversationState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetNewTitle returns the entered title exactly as typed.
func (s *RenameConversationState) GetNewTitle() string {
	return s.Input.Value()
}

// IsBlank reports whether the entered title has no visible characters.
func (s *RenameConversationState) IsBlank() bool {
	return strings.TrimSpace(s.Input.Value()) == ""
}

// NewRenameConversationState creates the rename modal pre-filled with the
// current title.
func NewRenameConversationState(conversationID, prompt, currentTitle string) *RenameConversationState {
	input := textinput.New()
	input.Placeholder = "conversation title"
	input.CharLimit = ModalInputCharLimit
	input.SetWidth(ModalInputWidth)
	input.SetValue(currentTitle)
	ApplyTextinputStyles(&input)
	input.Focus()

	return &RenameConversationState{
		ConversationID: conversationID,
		CurrentTitle:   currentTitle,
		Prompt:         prompt,
		Input:          input,
	}
}

// =============================================================================
// ConfirmDeleteState - State for the Confirm Delete modal
// =============================================================================

type ConfirmDeleteState struct {
	ConversationID string
	Name           string
	Prompt         string
	confirmed      bool
	form           *huh.Form
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation?" }

func (s *ConfirmDeleteState) Help() string {
	return "left/right: choose  Enter: confirm  Esc: cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	name := ConversationNameStyle.Render(TruncateString(s.Name, ModalInputWidth))
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, name, s.form.View(), help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether Delete is selected.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.confirmed
}

// NewConfirmDeleteState creates a delete confirmation that defaults to Cancel.
func NewConfirmDeleteState(conversationID, prompt, name string) *ConfirmDeleteState {
	s := &ConfirmDeleteState{
		ConversationID: conversationID,
		Name:           name,
		Prompt:         prompt,
	}

	s.form = newForm(toneDanger, ModalWidth-10,
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Description("This removes the conversation and its messages.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&s.confirmed),
		),
	)
	return s
}

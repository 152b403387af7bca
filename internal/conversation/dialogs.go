package conversation

// Prompts shown by Dialogs implementations.
const (
	RenamePrompt = "Rename conversation:"
	DeletePrompt = "Delete this conversation?"
)

// Dialogs collects answers from the user on the store's behalf.
type Dialogs interface {
	// PromptTitle asks for a new title, starting from current. ok is false
	// when the user cancelled.
	PromptTitle(prompt, current string) (title string, ok bool)
	// Confirm asks a yes/no question.
	Confirm(prompt string) bool
}

// RenameActive asks d for a new title for the active conversation and
// applies it. Cancelling, or answering with an empty title, changes nothing.
func (s *Store) RenameActive(d Dialogs) bool {
	active := s.Snapshot().Active()
	if active == nil {
		return false
	}
	title, ok := d.PromptTitle(RenamePrompt, active.Title)
	if !ok {
		return false
	}
	return s.Rename(active.ID, title)
}

// DeleteActive deletes the active conversation once d confirms it.
func (s *Store) DeleteActive(d Dialogs) bool {
	active := s.Snapshot().Active()
	if active == nil {
		return false
	}
	if !d.Confirm(DeletePrompt) {
		return false
	}
	return s.Delete(active.ID)
}

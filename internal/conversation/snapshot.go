package conversation

// Snapshot is an immutable view of the library at one point in time.
// Accessors return copies, so callers may modify what they get back.
type Snapshot struct {
	version       uint64
	conversations []Conversation
	activeID      string
}

// Version increases by one with every change to the store.
func (s Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of conversations.
func (s Snapshot) Len() int {
	return len(s.conversations)
}

// Conversations returns all conversations in display order.
func (s Snapshot) Conversations() []Conversation {
	out := make([]Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.clone()
	}
	return out
}

// At returns the conversation at display position i.
func (s Snapshot) At(i int) (Conversation, bool) {
	if i < 0 || i >= len(s.conversations) {
		return Conversation{}, false
	}
	return s.conversations[i].clone(), true
}

// Find returns the conversation with the given id.
func (s Snapshot) Find(id string) (Conversation, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Conversation{}, false
	}
	return s.conversations[i].clone(), true
}

// ActiveID returns the active conversation id, or "" when none is active.
func (s Snapshot) ActiveID() string {
	return s.activeID
}

// Active returns the active conversation, or nil in list mode.
func (s Snapshot) Active() *Conversation {
	if s.activeID == "" {
		return nil
	}
	c, ok := s.Find(s.activeID)
	if !ok {
		return nil
	}
	return &c
}

func (s Snapshot) indexOf(id string) int {
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

package conversation

import (
	"slices"
	"time"
)

// DefaultTitle is the title given to newly created conversations.
const DefaultTitle = "New Research Chat"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Reference is a citation attached to an assistant message.
type Reference struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Year   int    `yaml:"year"`
	URL    string `yaml:"url"`
}

// Message is a single entry in a conversation transcript.
// References are only ever set on assistant messages.
type Message struct {
	ID         string      `yaml:"id"`
	Role       Role        `yaml:"role"`
	Content    string      `yaml:"content"`
	References []Reference `yaml:"references,omitempty"`
}

// Conversation is a titled thread of messages.
type Conversation struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	CreatedAt time.Time `yaml:"created_at"`
	Pinned    bool      `yaml:"pinned,omitempty"`
	Messages  []Message `yaml:"messages,omitempty"`
}

// LastReference returns the most recent reference in the transcript, if any.
func (c Conversation) LastReference() (Reference, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		refs := c.Messages[i].References
		if len(refs) > 0 {
			return refs[len(refs)-1], true
		}
	}
	return Reference{}, false
}

// clone returns a copy of c whose slices do not alias the original.
func (c Conversation) clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		m.References = slices.Clone(m.References)
		out.Messages[i] = m
	}
	return out
}

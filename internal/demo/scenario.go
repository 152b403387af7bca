// Package demo generates deterministic recordings of Scholar. A scenario
// seeds the conversation store, replays key presses against the real app
// model and answers questions from a script instead of an assistant.
package demo

import (
	"fmt"
	"slices"
	"time"

	"github.com/zhubert/scholar/internal/config"
	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/ui"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepAnswer queues the next scripted assistant answer.
	StepAnswer
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
	// StepFlash shows a footer flash message.
	StepFlash
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText
	Text string

	// For StepWait
	Duration time.Duration

	// For StepAnswer
	Answer conversation.Answer

	// For StepAnnotate
	Annotation string

	// For StepFlash
	FlashText string
	FlashType ui.FlashType
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// Conversations to seed the store with, most recent first
	Conversations []conversation.Conversation

	// ActiveID opens a conversation at startup; empty starts on the list
	ActiveID string

	// SidebarCollapsed hides the sidebar in chat mode
	SidebarCollapsed bool
}

// DefaultSetup seeds a single conversation and starts on the list.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Conversations: []conversation.Conversation{
			{
				ID:        "demo-conversation-1",
				Title:     "Transformer attention mechanisms",
				CreatedAt: time.Now().Add(-2 * time.Hour),
			},
		},
	}
}

// Validate fills in defaults and checks the setup and every step. Seeded
// conversations must satisfy the same invariants as a seed library, and
// every queued answer must be followed by a key press that sends it.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}

	if err := config.ValidateSeed(s.Setup.Conversations); err != nil {
		return &ValidationError{Field: "Setup.Conversations", Message: err.Error()}
	}
	if id := s.Setup.ActiveID; id != "" {
		if !slices.ContainsFunc(s.Setup.Conversations, func(c conversation.Conversation) bool { return c.ID == id }) {
			return &ValidationError{Field: "Setup.ActiveID", Message: "no seeded conversation with id " + id}
		}
	}

	unsent := -1
	for i, step := range s.Steps {
		if msg := step.problem(); msg != "" {
			return &ValidationError{Field: fmt.Sprintf("Steps[%d]", i), Message: msg}
		}
		switch {
		case step.Type == StepAnswer:
			if unsent >= 0 {
				return &ValidationError{Field: fmt.Sprintf("Steps[%d]", i), Message: fmt.Sprintf("answer queued while Steps[%d] is still unsent", unsent)}
			}
			unsent = i
		case step.Type == StepKey && step.Key == keys.Enter:
			unsent = -1
		}
	}
	if unsent >= 0 {
		return &ValidationError{Field: fmt.Sprintf("Steps[%d]", unsent), Message: "answer is never sent"}
	}
	return nil
}

// problem describes what is wrong with a single step, or returns "".
func (st Step) problem() string {
	switch st.Type {
	case StepWait:
		if st.Duration < 0 {
			return "negative wait"
		}
	case StepKey:
		if st.Key == "" {
			return "key step without a key"
		}
	case StepTypeText:
		if st.Text == "" {
			return "type step without text"
		}
	case StepAnswer:
		if st.Answer.Content == "" {
			return "answer without content"
		}
	case StepFlash:
		if st.FlashText == "" {
			return "flash without text"
		}
	}
	return ""
}

// ValidationError reports the scenario field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Describe returns a copy of the step carrying a human-readable description.
func (st Step) Describe(description string) Step {
	st.Description = description
	return st
}

// Wait pauses for d.
func Wait(d time.Duration) Step {
	return Step{Type: StepWait, Duration: d}
}

// Key presses a single key, named as in the keys package.
func Key(key string) Step {
	return Step{Type: StepKey, Key: key}
}

// Type types text one character at a time.
func Type(text string) Step {
	return Step{Type: StepTypeText, Text: text}
}

// Answer queues the assistant's next answer. It must come before the key
// press that sends the question.
func Answer(content string, refs ...conversation.Reference) Step {
	return Step{
		Type:   StepAnswer,
		Answer: conversation.Answer{Content: content, References: refs},
	}
}

// Annotate captions the next captured frame.
func Annotate(text string) Step {
	return Step{Type: StepAnnotate, Annotation: text}
}

// Capture records the current screen.
func Capture() Step {
	return Step{Type: StepCapture}
}

// Flash shows a footer flash without going through a shortcut.
func Flash(text string, flashType ui.FlashType) Step {
	return Step{Type: StepFlash, FlashText: text, FlashType: flashType}
}

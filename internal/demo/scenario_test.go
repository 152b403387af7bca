package demo

import (
	"testing"
	"time"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/ui"
)

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name      string
		scenario  *Scenario
		wantErr   bool
		errField  string
		wantWidth int
	}{
		{
			name: "valid scenario",
			scenario: &Scenario{
				Name:        "test",
				Description: "Test scenario",
				Width:       100,
				Height:      30,
				Setup:       DefaultSetup(),
			},
			wantErr:   false,
			wantWidth: 100,
		},
		{
			name: "missing name",
			scenario: &Scenario{
				Description: "Test scenario",
			},
			wantErr:  true,
			errField: "Name",
		},
		{
			name: "default width and height",
			scenario: &Scenario{
				Name:        "test",
				Description: "Test scenario",
			},
			wantErr:   false,
			wantWidth: 120, // Default
		},
		{
			name: "default setup",
			scenario: &Scenario{
				Name: "test",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil {
				if ve, ok := err.(*ValidationError); ok {
					if ve.Field != tt.errField {
						t.Errorf("Validate() error field = %v, want %v", ve.Field, tt.errField)
					}
				}
			}
			if !tt.wantErr && tt.wantWidth > 0 {
				if tt.scenario.Width != tt.wantWidth {
					t.Errorf("Width = %v, want %v", tt.scenario.Width, tt.wantWidth)
				}
			}
		})
	}
}

func TestStepBuilders(t *testing.T) {
	t.Run("Wait", func(t *testing.T) {
		step := Wait(500 * time.Millisecond)
		if step.Type != StepWait {
			t.Errorf("Type = %v, want StepWait", step.Type)
		}
		if step.Duration != 500*time.Millisecond {
			t.Errorf("Duration = %v, want 500ms", step.Duration)
		}
	})

	t.Run("Key", func(t *testing.T) {
		step := Key("enter")
		if step.Type != StepKey {
			t.Errorf("Type = %v, want StepKey", step.Type)
		}
		if step.Key != "enter" {
			t.Errorf("Key = %v, want enter", step.Key)
		}
	})

	t.Run("Describe", func(t *testing.T) {
		base := Key("enter")
		step := base.Describe("Send the question")
		if step.Type != StepKey || step.Key != "enter" {
			t.Errorf("Describe changed the step: %+v", step)
		}
		if step.Description != "Send the question" {
			t.Errorf("Description = %q", step.Description)
		}
		if base.Description != "" {
			t.Error("Describe should not modify the original step")
		}
	})

	t.Run("Type", func(t *testing.T) {
		step := Type("hello world")
		if step.Type != StepTypeText {
			t.Errorf("Type = %v, want StepTypeText", step.Type)
		}
		if step.Text != "hello world" {
			t.Errorf("Text = %v, want 'hello world'", step.Text)
		}
	})

	t.Run("Answer", func(t *testing.T) {
		ref := conversation.Reference{Title: "Attention Is All You Need", Year: 2017, URL: "https://arxiv.org/abs/1706.03762"}
		step := Answer("Self-attention weighs every token.", ref)
		if step.Type != StepAnswer {
			t.Errorf("Type = %v, want StepAnswer", step.Type)
		}
		if step.Answer.Content != "Self-attention weighs every token." {
			t.Errorf("Content = %q", step.Answer.Content)
		}
		if len(step.Answer.References) != 1 || step.Answer.References[0] != ref {
			t.Errorf("References = %+v, want [%+v]", step.Answer.References, ref)
		}
	})

	t.Run("Flash", func(t *testing.T) {
		step := Flash("Saved", ui.FlashSuccess)
		if step.Type != StepFlash || step.FlashText != "Saved" || step.FlashType != ui.FlashSuccess {
			t.Errorf("unexpected flash step: %+v", step)
		}
	})
}

func TestDefaultSetup(t *testing.T) {
	setup := DefaultSetup()

	if len(setup.Conversations) != 1 {
		t.Errorf("Conversations length = %v, want 1", len(setup.Conversations))
	}

	if setup.ActiveID != "" {
		t.Errorf("ActiveID = %q, want the list view", setup.ActiveID)
	}
}

func TestScenarioValidate_UnknownActiveID(t *testing.T) {
	s := &Scenario{Name: "bad", Setup: &ScenarioSetup{ActiveID: "missing"}}

	err := s.Validate()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if ve.Field != "Setup.ActiveID" {
		t.Errorf("Field = %q, want Setup.ActiveID", ve.Field)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "Name",
		Message: "is required",
	}

	expected := "validation error: Name: is required"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestScenarioValidate_Steps(t *testing.T) {
	ref := conversation.Reference{Title: "Attention Is All You Need", Year: 2017}
	tests := []struct {
		name      string
		steps     []Step
		wantField string
	}{
		{"answer then send", []Step{Answer("ok", ref), Type("why?"), Key("enter")}, ""},
		{"plain navigation", []Step{Key("right"), Key("enter"), Wait(0)}, ""},
		{"empty key", []Step{Key("")}, "Steps[0]"},
		{"empty text", []Step{Key("n"), Type("")}, "Steps[1]"},
		{"negative wait", []Step{Wait(-time.Second)}, "Steps[0]"},
		{"empty answer", []Step{Answer("")}, "Steps[0]"},
		{"empty flash", []Step{Flash("", ui.FlashInfo)}, "Steps[0]"},
		{"answer never sent", []Step{Key("enter"), Answer("ok"), Type("why?")}, "Steps[1]"},
		{"two answers for one send", []Step{Answer("a"), Answer("b"), Key("enter")}, "Steps[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scenario{Name: "steps", Steps: tt.steps}
			err := s.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected a ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (%s)", ve.Field, tt.wantField, ve.Message)
			}
		})
	}
}

func TestScenarioValidate_SeedInvariants(t *testing.T) {
	s := &Scenario{Name: "dupes", Setup: &ScenarioSetup{
		Conversations: []conversation.Conversation{
			{ID: "same", Title: "First"},
			{ID: "same", Title: "Second"},
		},
	}}

	err := s.Validate()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if ve.Field != "Setup.Conversations" {
		t.Errorf("Field = %q, want Setup.Conversations", ve.Field)
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/scholar/internal/conversation"
	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

// Library is the on-disk form of a seed conversation library.
type Library struct {
	Conversations []conversation.Conversation `yaml:"conversations"`
}

// DefaultSeed returns the built-in mock conversations. Creation times are
// relative to now so the list always shows a recent and a day-old chat.
func DefaultSeed(now time.Time) []conversation.Conversation {
	return []conversation.Conversation{
		{
			ID:        "1",
			Title:     "CRISPR gene editing basics",
			CreatedAt: now,
			Pinned:    true,
			Messages: []conversation.Message{
				{ID: "m1", Role: conversation.RoleUser, Content: "What is CRISPR and how does it work?"},
				{
					ID:      "m2",
					Role:    conversation.RoleAssistant,
					Content: "CRISPR-Cas9 is a genome editing tool that uses a guide RNA to direct the Cas9 nuclease to a specific DNA sequence, enabling targeted modifications.",
					References: []conversation.Reference{
						{Title: "CRISPR-Cas Systems", Author: "Jinek et al.", Year: 2012, URL: "https://doi.org/10.1126/science.1225829"},
						{Title: "Genome Editing with CRISPR-Cas9", Author: "Doudna & Charpentier", Year: 2014, URL: "https://doi.org/10.1126/science.1258096"},
					},
				},
			},
		},
		{
			ID:        "2",
			Title:     "Deep learning for protein folding",
			CreatedAt: now.Add(-24 * time.Hour),
			Messages: []conversation.Message{
				{ID: "m3", Role: conversation.RoleUser, Content: "How did AlphaFold improve protein structure prediction?"},
				{
					ID:      "m4",
					Role:    conversation.RoleAssistant,
					Content: "AlphaFold leverages attention-based deep learning to infer 3D structures from sequences with high accuracy using evolutionary covariation.",
					References: []conversation.Reference{
						{Title: "Highly accurate protein structure prediction with AlphaFold", Author: "Jumper et al.", Year: 2021, URL: "https://www.nature.com/articles/s41586-021-03819-2"},
					},
				},
			},
		},
	}
}

// LoadSeed returns the conversation library at path, or DefaultSeed(now)
// when path is empty.
func LoadSeed(path string, now time.Time) ([]conversation.Conversation, error) {
	if path == "" {
		return DefaultSeed(now), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.SeedLoadFailed(path, err)
	}
	convs, err := ParseSeed(data)
	if err != nil {
		return nil, pkgerrors.SeedLoadFailed(path, err)
	}
	return convs, nil
}

// ParseSeed decodes and validates a YAML library.
func ParseSeed(data []byte) ([]conversation.Conversation, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, err
	}
	if err := ValidateSeed(lib.Conversations); err != nil {
		return nil, err
	}
	return lib.Conversations, nil
}

// MarshalSeed encodes convs in the format ParseSeed reads.
func MarshalSeed(convs []conversation.Conversation) ([]byte, error) {
	return yaml.Marshal(Library{Conversations: convs})
}

// ValidateSeed checks the library invariants: conversation ids are present
// and unique, message ids are unique within their conversation, roles are
// known and references only appear on assistant messages.
func ValidateSeed(convs []conversation.Conversation) error {
	seenConvs := make(map[string]bool)
	for _, c := range convs {
		if c.ID == "" {
			return pkgerrors.SeedInvalid("", fmt.Sprintf("conversation %q has empty ID", c.Title))
		}
		if seenConvs[c.ID] {
			return pkgerrors.SeedInvalid(c.ID, "duplicate conversation ID")
		}
		seenConvs[c.ID] = true

		seenMsgs := make(map[string]bool)
		for _, m := range c.Messages {
			if m.ID == "" {
				return pkgerrors.SeedInvalid(c.ID, "message with empty ID")
			}
			if seenMsgs[m.ID] {
				return pkgerrors.SeedInvalid(c.ID, "duplicate message ID "+m.ID)
			}
			seenMsgs[m.ID] = true

			if !m.Role.Valid() {
				return pkgerrors.SeedInvalid(c.ID, fmt.Sprintf("message %s has unknown role %q", m.ID, m.Role))
			}
			if m.Role != conversation.RoleAssistant && len(m.References) > 0 {
				return pkgerrors.SeedInvalid(c.ID, fmt.Sprintf("references on %s message %s", m.Role, m.ID))
			}
		}
	}
	return nil
}

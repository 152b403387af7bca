package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/scholar/internal/conversation"
	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

var seedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDefaultSeed(t *testing.T) {
	convs := DefaultSeed(seedNow)

	require.Len(t, convs, 2)
	assert.Equal(t, "CRISPR gene editing basics", convs[0].Title)
	assert.True(t, convs[0].Pinned)
	assert.Equal(t, seedNow, convs[0].CreatedAt)
	assert.Equal(t, "Deep learning for protein folding", convs[1].Title)
	assert.False(t, convs[1].Pinned)
	assert.Equal(t, seedNow.Add(-24*time.Hour), convs[1].CreatedAt)
	assert.Len(t, convs[0].Messages[1].References, 2)
	assert.NoError(t, ValidateSeed(convs))
}

func TestLoadSeed_EmptyPathUsesDefault(t *testing.T) {
	convs, err := LoadSeed("", seedNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed(seedNow), convs)
}

func TestLoadSeed_RoundTripsThroughFile(t *testing.T) {
	data, err := MarshalSeed(DefaultSeed(seedNow))
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "library.yaml", string(data))

	convs, err := LoadSeed(path, time.Time{})
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "1", convs[0].ID)
	assert.True(t, convs[0].CreatedAt.Equal(seedNow))
	assert.Equal(t, "https://doi.org/10.1126/science.1258096", convs[0].Messages[1].References[1].URL)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"), seedNow)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindIO))
}

func TestParseSeed(t *testing.T) {
	convs, err := ParseSeed([]byte(`
conversations:
  - id: a
    title: Gravitational waves
    created_at: 2024-02-11T10:00:00Z
    messages:
      - id: q1
        role: user
        content: What did LIGO detect?
      - id: a1
        role: assistant
        content: A binary black hole merger.
        references:
          - title: Observation of Gravitational Waves from a Binary Black Hole Merger
            author: Abbott et al.
            year: 2016
            url: https://doi.org/10.1103/PhysRevLett.116.061102
`))
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, conversation.RoleAssistant, convs[0].Messages[1].Role)
	assert.Equal(t, 2016, convs[0].Messages[1].References[0].Year)
}

func TestValidateSeed(t *testing.T) {
	ref := []conversation.Reference{{Title: "T"}}
	tests := []struct {
		name  string
		convs []conversation.Conversation
	}{
		{"empty conversation id", []conversation.Conversation{{Title: "x"}}},
		{"duplicate conversation id", []conversation.Conversation{{ID: "a"}, {ID: "a"}}},
		{"empty message id", []conversation.Conversation{{ID: "a", Messages: []conversation.Message{{Role: conversation.RoleUser}}}}},
		{"duplicate message id", []conversation.Conversation{{ID: "a", Messages: []conversation.Message{
			{ID: "m", Role: conversation.RoleUser}, {ID: "m", Role: conversation.RoleAssistant},
		}}}},
		{"unknown role", []conversation.Conversation{{ID: "a", Messages: []conversation.Message{{ID: "m", Role: "system"}}}}},
		{"references on user message", []conversation.Conversation{{ID: "a", Messages: []conversation.Message{
			{ID: "m", Role: conversation.RoleUser, References: ref},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.convs)
			require.Error(t, err)
			assert.True(t, pkgerrors.Is(err, pkgerrors.KindInvalid))
		})
	}
}

func TestValidateSeed_SameMessageIDAcrossConversations(t *testing.T) {
	convs := []conversation.Conversation{
		{ID: "a", Messages: []conversation.Message{{ID: "m1", Role: conversation.RoleUser}}},
		{ID: "b", Messages: []conversation.Message{{ID: "m1", Role: conversation.RoleUser}}},
	}
	assert.NoError(t, ValidateSeed(convs))
}

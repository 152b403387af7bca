// Package scenarios contains built-in demo scenarios for Scholar.
package scenarios

import (
	"time"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/demo"
)

// library is the conversation history every scenario starts from.
func library() []conversation.Conversation {
	now := time.Now()
	return []conversation.Conversation{
		{
			ID:        "conv-crispr",
			Title:     "CRISPR off-target effects",
			CreatedAt: now.Add(-3 * time.Hour),
			Pinned:    true,
			Messages: []conversation.Message{
				{ID: "m1", Role: conversation.RoleUser, Content: "How common are off-target edits with SpCas9?"},
				{ID: "m2", Role: conversation.RoleAssistant, Content: "Rates vary widely with guide design; high-fidelity variants reduce them substantially.", References: []conversation.Reference{
					{Title: "High-fidelity CRISPR-Cas9 nucleases with no detectable genome-wide off-target effects", Author: "Kleinstiver et al.", Year: 2016, URL: "https://doi.org/10.1038/nature16526"},
				}},
			},
		},
		{
			ID:        "conv-folding",
			Title:     "Protein structure prediction",
			CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:        "conv-climate",
			Title:     "Ocean heat content trends",
			CreatedAt: now.Add(-72 * time.Hour),
			Messages: []conversation.Message{
				{ID: "m3", Role: conversation.RoleUser, Content: "Is ocean heat uptake accelerating?"},
				{ID: "m4", Role: conversation.RoleAssistant, Content: "Yes. Multiple reanalyses agree the upper 2000 m has warmed faster since the 1990s.", References: []conversation.Reference{
					{Title: "Improved estimates of ocean heat content from 1960 to 2015", Author: "Cheng et al.", Year: 2017, URL: "https://doi.org/10.1126/sciadv.1601545"},
				}},
			},
		},
		{
			ID:        "conv-gnn",
			Title:     "Graph neural networks for molecules",
			CreatedAt: now.Add(-9 * 24 * time.Hour),
		},
	}
}

// Basic walks through the core loop: open a conversation from the list,
// ask a question, read the referenced answer and go back to the list.
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Open a conversation, ask a question, read the references",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Conversations: library(),
	},
	Steps: []demo.Step{
		// The library of past conversations
		demo.Annotate("Your research conversations"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Open the protein folding card
		demo.Key("right").Describe("Select protein structure prediction"),
		demo.Wait(400 * time.Millisecond),
		demo.Key("enter").Describe("Open it"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// Ask a question
		demo.Answer(
			"AlphaFold 2 combines multiple sequence alignments with an attention-based network "+
				"that reasons jointly about residue pairs and 3D geometry, reaching near-experimental accuracy.",
			conversation.Reference{
				Title:  "Highly accurate protein structure prediction with AlphaFold",
				Author: "Jumper et al.",
				Year:   2021,
				URL:    "https://doi.org/10.1038/s41586-021-03819-2",
			},
			conversation.Reference{
				Title:  "Accurate prediction of protein structures and interactions using a three-track neural network",
				Author: "Baek et al.",
				Year:   2021,
				URL:    "https://doi.org/10.1126/science.abj8754",
			},
		),
		demo.Type("How does AlphaFold predict protein structures?").Describe("Type a question"),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),
		demo.Annotate("Searching the literature"),
		demo.Key("enter").Describe("Send"),
		demo.Wait(1500 * time.Millisecond),

		// Copy the newest reference link
		demo.Key("ctrl+y").Describe("Copy the latest reference"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Back to the list
		demo.Key("esc").Describe("Back to the list"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Final pause
		demo.Wait(3 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Comprehensive,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}

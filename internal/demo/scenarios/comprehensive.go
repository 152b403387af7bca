package scenarios

import (
	"time"

	"github.com/zhubert/scholar/internal/conversation"
	"github.com/zhubert/scholar/internal/demo"
)

// Comprehensive tours library management: filtering, pinning, starting a
// chat, switching from the sidebar, renaming and deleting.
var Comprehensive = &demo.Scenario{
	Name:        "comprehensive",
	Description: "Filter, pin, new chat, sidebar switching, rename and delete",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Conversations: library(),
	},
	Steps: []demo.Step{
		// === The library ===
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// === Filter by title ===
		demo.Annotate("Filter the library"),
		demo.Key("/").Describe("Start filtering"),
		demo.Type("ocean"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),
		demo.Key("esc"),
		demo.Wait(300 * time.Millisecond),

		// === Pin a conversation ===
		demo.Key("right"),
		demo.Key("right"),
		demo.Key("p").Describe("Pin ocean heat content"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		// === Start a new chat ===
		demo.Annotate("Start a new research chat"),
		demo.Key("n").Describe("New chat"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		demo.Answer(
			"Message-passing networks learn atom and bond embeddings directly from the molecular graph, "+
				"matching or beating hand-crafted fingerprints on property prediction.",
			conversation.Reference{
				Title:  "Neural Message Passing for Quantum Chemistry",
				Author: "Gilmer et al.",
				Year:   2017,
				URL:    "https://arxiv.org/abs/1704.01212",
			},
		),
		demo.Type("Do graph neural networks beat fingerprints for molecular property prediction?"),
		demo.Wait(300 * time.Millisecond),
		demo.Key("enter"),
		demo.Wait(1 * time.Second),

		// A follow-up with a line break
		demo.Type("Which benchmarks"),
		demo.Key("shift+enter"),
		demo.Type("compare them?"),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter"),
		demo.Wait(1 * time.Second),

		// === Rename it from the menu ===
		demo.Annotate("Rename from the conversation menu"),
		demo.Key("ctrl+e").Describe("Open the menu"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter"),
		demo.Key("ctrl+u"),
		demo.Type("GNNs vs fingerprints"),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// === Switch conversations from the sidebar ===
		demo.Annotate("Jump between conversations"),
		demo.Key("tab").Describe("Focus the sidebar"),
		demo.Key("down"),
		demo.Wait(400 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter").Describe("Open the CRISPR conversation"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// === Hide the sidebar ===
		demo.Key("ctrl+b").Describe("Collapse the sidebar"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),
		demo.Key("ctrl+b"),

		// === Delete a conversation ===
		demo.Annotate("Delete with confirmation"),
		demo.Key("tab"),
		demo.Key("down"),
		demo.Key("d").Describe("Delete the highlighted conversation"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),
		demo.Key("left"),
		demo.Key("enter"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// === Back to the list ===
		demo.Key("tab"),
		demo.Key("esc"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Final pause
		demo.Wait(2 * time.Second),
	},
}

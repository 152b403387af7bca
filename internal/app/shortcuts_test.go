package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/ui/modals"
)

func TestShortcutRegistry_UniqueKeys(t *testing.T) {
	seen := map[string]bool{helpShortcut.Key: true}
	for _, s := range ShortcutRegistry {
		if seen[s.Key] {
			t.Errorf("duplicate shortcut key %q", s.Key)
		}
		seen[s.Key] = true
		if s.Handler == nil {
			t.Errorf("shortcut %q has no handler", s.Key)
		}
		if s.Description == "" {
			t.Errorf("shortcut %q has no description", s.Key)
		}
	}
}

func TestGuardFailure(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) *Model
		key    string
		reason string
	}{
		{"filter on list", func(t *testing.T) *Model { return testModelWithSize(t, 120, 40) }, "/", ""},
		{"filter in chat", func(t *testing.T) *Model { return testChatModel(t, "c1") }, "/", "typing"},
		{"menu on list", func(t *testing.T) *Model { return testModelWithSize(t, 120, 40) }, keys.CtrlE, "no conversation open"},
		{"menu in chat", func(t *testing.T) *Model { return testChatModel(t, "c1") }, keys.CtrlE, ""},
		{"copy without reference", func(t *testing.T) *Model { return testChatModel(t, "c2") }, keys.CtrlY, "condition"},
		{"new chat while typing", func(t *testing.T) *Model { return testChatModel(t, "c1") }, keys.CtrlN, ""},
		{"quit while typing", func(t *testing.T) *Model { return testChatModel(t, "c1") }, "q", "typing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup(t)
			var found bool
			for _, s := range ShortcutRegistry {
				if s.Key == tt.key {
					found = true
					if got := m.guardFailure(s); got != tt.reason {
						t.Errorf("guardFailure(%q) = %q, want %q", tt.key, got, tt.reason)
					}
				}
			}
			if !found {
				t.Fatalf("no shortcut for %q", tt.key)
			}
		})
	}
}

func TestShortcut_TabNeedsSidebar(t *testing.T) {
	m := testChatModel(t, "c1")
	m.toggleSidebar()

	if _, _, handled := m.ExecuteShortcut(keys.Tab); handled {
		t.Error("tab should not run with the sidebar collapsed")
	}
}

func TestShortcut_CtrlNWhileTyping(t *testing.T) {
	m := testChatModel(t, "c1")

	sendKeys(m, keys.CtrlN)

	if m.Snapshot().Len() != 3 {
		t.Fatal("ctrl+n should create a conversation from the composer")
	}
	if m.chat.ConversationID() != m.Snapshot().ActiveID() {
		t.Error("chat should show the new conversation")
	}
}

func TestHelpSections_DependOnMode(t *testing.T) {
	list := testModelWithSize(t, 120, 40)
	chat := testChatModel(t, "c1")
	chat.setFocus(FocusSidebar)

	listKeys := helpKeys(list.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts))
	chatKeys := helpKeys(chat.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts))

	if !listKeys["/"] || listKeys["ctrl-e"] {
		t.Errorf("list help should offer filter and not the menu: %v", listKeys)
	}
	if chatKeys["/"] || !chatKeys["ctrl-e"] || !chatKeys["Tab"] {
		t.Errorf("chat help should offer menu and tab and not filter: %v", chatKeys)
	}
	if listKeys["PgUp/PgDn"] || !chatKeys["PgUp/PgDn"] {
		t.Error("scroll help belongs to chat mode only")
	}
	if !listKeys["?"] || !chatKeys["?"] {
		t.Error("help should always list itself")
	}
}

func helpKeys(sections []modals.HelpSection) map[string]bool {
	out := map[string]bool{}
	for _, sec := range sections {
		for _, s := range sec.Shortcuts {
			out[s.Key] = true
		}
	}
	return out
}

func TestNormalizeHelpDisplayKey(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"ctrl-e", keys.CtrlE},
		{"Tab", keys.Tab},
		{"n", "n"},
		{"?", "?"},
		{"Enter", ""},
		{"PgUp/PgDn", ""},
	}
	for _, tt := range tests {
		if got := normalizeHelpDisplayKey(tt.display); got != tt.want {
			t.Errorf("normalizeHelpDisplayKey(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestFlashForError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{pkgerrors.AssistantReplyFailed("c1", errors.New("boom")), "could not answer"},
		{pkgerrors.ClipboardUnavailable(errors.New("no display")), "Clipboard unavailable"},
		{pkgerrors.E(pkgerrors.KindNotFound, "gone"), "no longer exists"},
		{errors.New("plain failure"), "plain failure"},
	}
	for _, tt := range tests {
		m := testModelWithSize(t, 120, 40)
		m.flashForError(tt.err)
		if view := ansi.Strip(m.RenderToString()); !strings.Contains(view, tt.want) {
			t.Errorf("flash for %v should contain %q", tt.err, tt.want)
		}
	}
}

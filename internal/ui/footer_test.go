package ui

import (
	"strings"
	"testing"
	"time"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if footer == nil {
		t.Fatal("NewFooter() returned nil")
	}

	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
}

func TestFooter_SetWidth(t *testing.T) {
	footer := NewFooter()

	footer.SetWidth(120)

	if footer.width != 120 {
		t.Errorf("Expected width 120, got %d", footer.width)
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test error message", FlashError)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Test error message" {
		t.Errorf("Expected text 'Test error message', got %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Type != FlashError {
		t.Errorf("Expected type FlashError, got %v", footer.flashMessage.Type)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_SetFlashWithDuration(t *testing.T) {
	footer := NewFooter()
	customDuration := 10 * time.Second

	footer.SetFlashWithDuration("Custom", FlashInfo, customDuration)

	if footer.flashMessage.Duration != customDuration {
		t.Errorf("Expected duration %v, got %v", customDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	footer.SetFlashWithDuration("Fresh", FlashInfo, time.Hour)
	if footer.ClearIfExpired() {
		t.Error("Fresh flash should not be cleared")
	}

	footer.SetFlashWithDuration("Stale", FlashInfo, time.Nanosecond)
	footer.flashMessage.CreatedAt = time.Now().Add(-time.Second)
	if !footer.ClearIfExpired() {
		t.Error("Expired flash should be cleared")
	}
	if footer.HasFlash() {
		t.Error("Expected no flash after clearing")
	}
}

func TestFooter_ClearIfExpired_UsesClock(t *testing.T) {
	now := testEpoch
	footer := NewFooter()
	footer.SetClock(func() time.Time { return now })

	footer.SetFlash("Deleted Climate Models", FlashInfo)
	now = now.Add(DefaultFlashDuration)
	if footer.ClearIfExpired() {
		t.Error("Flash should survive until its full duration has passed")
	}

	now = now.Add(time.Millisecond)
	if !footer.ClearIfExpired() {
		t.Error("Flash should clear once the clock passes its duration")
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Message", FlashWarning)

	footer.ClearFlash()

	if footer.HasFlash() {
		t.Error("Expected flash to be cleared")
	}
}

func TestFooter_View_FlashReplacesBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetContext(false, false, false, true)

	footer.SetFlash("Copied link", FlashSuccess)
	view := footer.View()

	if !strings.Contains(view, "Copied link") {
		t.Error("View should contain the flash text")
	}
	if !strings.Contains(view, "✓") {
		t.Error("Success flash should show a check mark")
	}
	if strings.Contains(view, "filter") {
		t.Error("Bindings should be hidden while a flash is showing")
	}
}

func bindingKeys(bindings []KeyBinding) []string {
	var out []string
	for _, b := range bindings {
		out = append(out, b.Key)
	}
	return out
}

func TestFooter_Bindings_Context(t *testing.T) {
	tests := []struct {
		name             string
		chatMode         bool
		sidebarFocused   bool
		filtering        bool
		hasConversations bool
		want             string
		notWant          string
	}{
		{"empty list", false, false, false, false, "n", "p"},
		{"list", false, false, false, true, "p", "ctrl+e"},
		{"filtering", false, false, true, true, "esc", "p"},
		{"chat", true, false, false, true, "ctrl+e", "p"},
		{"sidebar focused", true, true, false, true, "r", "ctrl+e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetContext(tt.chatMode, tt.sidebarFocused, tt.filtering, tt.hasConversations)
			got := bindingKeys(footer.Bindings())

			joined := "|" + strings.Join(got, "|") + "|"
			if !strings.Contains(joined, "|"+tt.want+"|") {
				t.Errorf("Expected binding %q in %v", tt.want, got)
			}
			if strings.Contains(joined, "|"+tt.notWant+"|") {
				t.Errorf("Did not expect binding %q in %v", tt.notWant, got)
			}
		})
	}
}

func TestFooter_NewlineKeyFollowsKeyboard(t *testing.T) {
	footer := NewFooter()
	footer.SetContext(true, false, false, true)

	keys := bindingKeys(footer.Bindings())
	if !strings.Contains(strings.Join(keys, " "), "opt+enter") {
		t.Errorf("Expected opt+enter without keyboard enhancements, got %v", keys)
	}

	footer.SetKittyKeyboard(true)
	keys = bindingKeys(footer.Bindings())
	if !strings.Contains(strings.Join(keys, " "), "shift+enter") {
		t.Errorf("Expected shift+enter with keyboard enhancements, got %v", keys)
	}
}

package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultFlashDuration is how long a flash message stays in the footer.
const DefaultFlashDuration = 3 * time.Second

// flashTickInterval is how often expiry is checked.
const flashTickInterval = 500 * time.Millisecond

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient status line that replaces the keybindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration at now.
func (f *FlashMessage) IsExpired(now time.Time) bool {
	return now.Sub(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg after a short delay.
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width            int
	chatMode         bool // A conversation is open
	sidebarFocused   bool // The sidebar has focus in chat mode
	filtering        bool // The list filter is being edited
	hasConversations bool
	kittyKeyboard    bool // Terminal reports shift+enter distinctly
	flashMessage     *FlashMessage
	now              func() time.Time
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{now: time.Now}
}

// SetClock overrides the time source used for flash expiry.
func (f *Footer) SetClock(now func() time.Time) {
	f.now = now
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(chatMode, sidebarFocused, filtering, hasConversations bool) {
	f.chatMode = chatMode
	f.sidebarFocused = sidebarFocused
	f.filtering = filtering
	f.hasConversations = hasConversations
}

// SetKittyKeyboard records whether the terminal disambiguates shift+enter.
func (f *Footer) SetKittyKeyboard(supported bool) {
	f.kittyKeyboard = supported
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: f.now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired(f.now()) {
		f.flashMessage = nil
		return true
	}
	return false
}

// newlineKey is the chord that inserts a line break in the composer.
func (f *Footer) newlineKey() string {
	if f.kittyKeyboard {
		return "shift+enter"
	}
	return "opt+enter"
}

// Bindings returns the keybindings shown for the current context.
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case f.filtering:
		return []KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear filter"},
		}
	case f.chatMode && f.sidebarFocused:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "r", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "tab", Desc: "composer"},
			{Key: "?", Desc: "help"},
		}
	case f.chatMode:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: f.newlineKey(), Desc: "newline"},
			{Key: "ctrl+e", Desc: "menu"},
			{Key: "tab", Desc: "sidebar"},
			{Key: "esc", Desc: "back"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case !f.hasConversations:
		return []KeyBinding{
			{Key: "n", Desc: "new chat"},
			{Key: ",", Desc: "settings"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	default:
		return []KeyBinding{
			{Key: "←↑↓→", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "p", Desc: "pin"},
			{Key: "n", Desc: "new chat"},
			{Key: "/", Desc: "filter"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	content := strings.Join(parts, "  "+FooterSepStyle.Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	style := FooterDescStyle
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", style.Foreground(ColorError)
	case FlashWarning:
		icon, style = "⚠", style.Foreground(ColorWarning)
	case FlashSuccess:
		icon, style = "✓", style.Foreground(ColorSuccess)
	default:
		icon, style = "ℹ", style.Foreground(ColorInfo)
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}

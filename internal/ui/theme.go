package ui

import (
	"slices"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/scholar/internal/ui/modals"
)

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for assistant messages, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)
	BgCard     string // Conversation and reference card background

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User message bubbles
	Assistant string // Assistant message bubbles
	Pin       string // Pinned marker
	Warning   string // Warnings
	Error     string // Error messages
	Info      string // Information
	Success   string // Success flashes

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownCode   string // Inline code
	MarkdownCodeBg string // Code background
	MarkdownLink   string // Links and reference URLs
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeScholarBlue ThemeName = "scholar-blue"
	ThemeDarkPurple  ThemeName = "dark-purple"
	ThemeNord        ThemeName = "nord"
	ThemeDracula     ThemeName = "dracula"
	ThemeGruvbox     ThemeName = "gruvbox"
	ThemeTokyoNight  ThemeName = "tokyo-night"
	ThemeCatppuccin  ThemeName = "catppuccin"
	ThemeLight       ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeScholarBlue

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeScholarBlue: {
		Name:           "Scholar Blue",
		Primary:        "#2563EB",
		Secondary:      "#4F46E5",
		Bg:             "#0F172A",
		BgSelected:     "#1E3A8A",
		BgCard:         "#1E293B",
		Text:           "#F8FAFC",
		TextMuted:      "#94A3B8",
		TextInverse:    "#0F172A",
		User:           "#3B82F6",
		Assistant:      "#334155",
		Pin:            "#FBBF24",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Info:           "#38BDF8",
		Success:        "#22C55E",
		Border:         "#334155",
		BorderFocus:    "#60A5FA",
		MarkdownCode:   "#7DD3FC",
		MarkdownCodeBg: "#111827",
		MarkdownLink:   "#93C5FD",
	},
	ThemeDarkPurple: {
		Name:           "Dark Purple",
		Primary:        "#7C3AED",
		Secondary:      "#06B6D4",
		Bg:             "#1F2937",
		BgCard:         "#273244",
		Text:           "#F9FAFB",
		TextMuted:      "#9CA3AF",
		TextInverse:    "#1F2937",
		User:           "#A78BFA",
		Assistant:      "#22D3EE",
		Pin:            "#FBBF24",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Info:           "#06B6D4",
		Success:        "#10B981",
		Border:         "#374151",
		MarkdownCode:   "#67E8F9",
		MarkdownCodeBg: "#1E1E2E",
		MarkdownLink:   "#67E8F9",
	},
	ThemeNord: {
		Name:           "Nord",
		Primary:        "#88C0D0",
		Secondary:      "#81A1C1",
		Bg:             "#2E3440",
		BgCard:         "#3B4252",
		Text:           "#ECEFF4",
		TextMuted:      "#D8DEE9",
		TextInverse:    "#2E3440",
		User:           "#A3BE8C",
		Assistant:      "#88C0D0",
		Pin:            "#EBCB8B",
		Warning:        "#EBCB8B",
		Error:          "#BF616A",
		Info:           "#81A1C1",
		Success:        "#A3BE8C",
		Border:         "#4C566A",
		MarkdownCode:   "#A3BE8C",
		MarkdownCodeBg: "#242933",
		MarkdownLink:   "#88C0D0",
	},
	ThemeDracula: {
		Name:           "Dracula",
		Primary:        "#BD93F9",
		Secondary:      "#8BE9FD",
		Bg:             "#282A36",
		BgCard:         "#343746",
		Text:           "#F8F8F2",
		TextMuted:      "#6272A4",
		TextInverse:    "#282A36",
		User:           "#FF79C6",
		Assistant:      "#8BE9FD",
		Pin:            "#F1FA8C",
		Warning:        "#FFB86C",
		Error:          "#FF5555",
		Info:           "#8BE9FD",
		Success:        "#50FA7B",
		Border:         "#44475A",
		MarkdownCode:   "#50FA7B",
		MarkdownCodeBg: "#21222C",
		MarkdownLink:   "#8BE9FD",
	},
	ThemeGruvbox: {
		Name:           "Gruvbox Dark",
		Primary:        "#FE8019",
		Secondary:      "#83A598",
		Bg:             "#282828",
		BgCard:         "#3C3836",
		Text:           "#EBDBB2",
		TextMuted:      "#A89984",
		TextInverse:    "#282828",
		User:           "#FABD2F",
		Assistant:      "#83A598",
		Pin:            "#FABD2F",
		Warning:        "#FE8019",
		Error:          "#FB4934",
		Info:           "#83A598",
		Success:        "#B8BB26",
		Border:         "#504945",
		MarkdownCode:   "#B8BB26",
		MarkdownCodeBg: "#1D2021",
		MarkdownLink:   "#83A598",
	},
	ThemeTokyoNight: {
		Name:           "Tokyo Night",
		Primary:        "#7AA2F7",
		Secondary:      "#BB9AF7",
		Bg:             "#1A1B26",
		BgCard:         "#24283B",
		Text:           "#C0CAF5",
		TextMuted:      "#565F89",
		TextInverse:    "#1A1B26",
		User:           "#9ECE6A",
		Assistant:      "#7AA2F7",
		Pin:            "#E0AF68",
		Warning:        "#E0AF68",
		Error:          "#F7768E",
		Info:           "#7DCFFF",
		Success:        "#9ECE6A",
		Border:         "#3B4261",
		MarkdownCode:   "#9ECE6A",
		MarkdownCodeBg: "#16161E",
		MarkdownLink:   "#7DCFFF",
	},
	ThemeCatppuccin: {
		Name:           "Catppuccin Mocha",
		Primary:        "#CBA6F7",
		Secondary:      "#89DCEB",
		Bg:             "#1E1E2E",
		BgCard:         "#313244",
		Text:           "#CDD6F4",
		TextMuted:      "#6C7086",
		TextInverse:    "#1E1E2E",
		User:           "#F5C2E7",
		Assistant:      "#89DCEB",
		Pin:            "#F9E2AF",
		Warning:        "#FAB387",
		Error:          "#F38BA8",
		Info:           "#89DCEB",
		Success:        "#A6E3A1",
		Border:         "#313244",
		MarkdownCode:   "#A6E3A1",
		MarkdownCodeBg: "#181825",
		MarkdownLink:   "#89DCEB",
	},
	ThemeLight: {
		Name:           "Light",
		Primary:        "#2563EB",
		Secondary:      "#4F46E5",
		Bg:             "#FFFFFF",
		BgSelected:     "#DBEAFE",
		BgCard:         "#F1F5F9",
		Text:           "#1F2937",
		TextMuted:      "#6B7280",
		TextInverse:    "#FFFFFF",
		User:           "#2563EB",
		Assistant:      "#E2E8F0",
		Pin:            "#D97706",
		Warning:        "#D97706",
		Error:          "#DC2626",
		Info:           "#0891B2",
		Success:        "#16A34A",
		Border:         "#D1D5DB",
		BorderFocus:    "#2563EB",
		MarkdownCode:   "#059669",
		MarkdownCodeBg: "#F3F4F6",
		MarkdownLink:   "#1D4ED8",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeScholarBlue,
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// ThemeNameStrings returns ThemeNames as plain strings, for config validation.
func ThemeNameStrings() []string {
	names := ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

// ThemeDisplayNames returns the display name of each theme, in ThemeNames order.
func ThemeDisplayNames() []string {
	names := ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = BuiltinThemes[n].Name
	}
	return out
}

// IsThemeName reports whether name is a built-in theme.
func IsThemeName(name string) bool {
	return slices.Contains(ThemeNames(), ThemeName(name))
}

// GetTheme returns a theme by name, defaulting to DefaultTheme if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	// Update color variables
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgCard = lipgloss.Color(t.BgCard)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorPin = lipgloss.Color(t.Pin)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorLink = lipgloss.Color(t.MarkdownLink)

	buildStyles(t)

	modals.SetStyles(modals.Colors{
		Primary:     ColorPrimary,
		Secondary:   ColorSecondary,
		Text:        ColorText,
		TextMuted:   ColorTextMuted,
		TextInverse: ColorTextInverse,
		Border:      ColorBorder,
		Error:       ColorError,
		Warning:     ColorWarning,
		Selected:    lipgloss.Color(t.GetBgSelected()),
	})
}

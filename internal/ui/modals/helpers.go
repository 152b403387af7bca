package modals

import (
	"github.com/charmbracelet/x/ansi"
)

// TruncateString truncates s to maxWidth terminal cells, ending in an ellipsis.
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// clearScreen homes the cursor and clears the terminal before each frame.
const clearScreen = "\x1b[H\x1b[2J"

// castHeader is the first line of an asciicast v2 file.
type castHeader struct {
	Version int    `json:"version"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Title   string `json:"title,omitempty"`
}

// GenerateASCIICast writes frames as an asciicast v2 recording. Each frame
// redraws the whole screen after its delay; annotations become markers.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int, title string) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(castHeader{Version: 2, Width: width, Height: height, Title: title}); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var elapsed float64
	for i, f := range frames {
		elapsed += f.Delay.Seconds()
		if f.Annotation != "" {
			if err := enc.Encode([]any{elapsed, "m", f.Annotation}); err != nil {
				return fmt.Errorf("writing marker %d: %w", i, err)
			}
		}
		// Terminals in raw mode need explicit carriage returns
		screen := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{elapsed, "o", screen}); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	return nil
}

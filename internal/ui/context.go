package ui

import (
	"sync"

	"github.com/zhubert/scholar/internal/logger"
)

// ViewContext is the single place layout is computed. The app updates it on
// every resize; list, sidebar and chat read their sizes and grid shapes
// from it.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int

	// Chat mode split. SidebarWidth is 0 when collapsed.
	SidebarWidth int
	ChatWidth    int

	// Cards per row on the conversation list.
	ListColumns int

	mu sync.Mutex
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the process-wide ViewContext.
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
			ListColumns:  1,
		}
	})
	return ctx
}

// UpdateTerminalSize recalculates the layout for a terminal of the given
// size, clamped to the minimum supported size.
func (v *ViewContext) UpdateTerminalSize(width, height int, sidebarCollapsed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.SidebarWidth = 0
	if !sidebarCollapsed {
		v.SidebarWidth = max(width/SidebarWidthRatio, min(SidebarMinWidth, width/2))
	}
	v.ChatWidth = width - v.SidebarWidth
	v.ListColumns = GridColumns(width-ListPaddingWidth, CardWidth, CardGap)

	logger.ComponentLogger("ui").Debug("layout updated",
		"width", width,
		"height", height,
		"sidebarWidth", v.SidebarWidth,
		"listColumns", v.ListColumns,
	)
}

// ReferenceColumns returns how many reference cards fit in a transcript of
// the given width.
func (v *ViewContext) ReferenceColumns(transcriptWidth int) int {
	return GridColumns(transcriptWidth, ReferenceCardWidth, ReferenceCardGap)
}

// InnerWidth returns the usable width inside a bordered panel.
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a bordered panel.
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}

// GridColumns returns how many cells of cellWidth, separated by gap, fit in
// width. At least one always fits.
func GridColumns(width, cellWidth, gap int) int {
	if cellWidth <= 0 {
		return 1
	}
	return max(1, (width+gap)/(cellWidth+gap))
}

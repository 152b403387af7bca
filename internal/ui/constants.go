// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// SidebarMinWidth keeps titles readable on narrow terminals
	SidebarMinWidth = 24

	// TextareaHeight is the number of lines for the chat composer
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// SidebarItemHeight is the number of lines per sidebar entry: title and date
	SidebarItemHeight = 2

	// SidebarDateFormat is how a sidebar entry shows its creation date
	SidebarDateFormat = "Jan 2, 2006"

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Conversation list layout
const (
	// CardWidth is the outer width of one conversation card, borders included
	CardWidth = 38

	// CardHeight is the outer height of one conversation card
	CardHeight = 7

	// CardTimeFormat is how a card shows when its conversation was created
	CardTimeFormat = "Jan 2, 2006 15:04"

	// ListPaddingWidth is the horizontal padding around the list (1 left + 1 right)
	ListPaddingWidth = 2

	// CardGap is the horizontal space between cards
	CardGap = 2

	// BubbleWidthPercent is the share of the chat width a message bubble may use
	BubbleWidthPercent = 80

	// ReferenceCardWidth is the outer width of one reference card
	ReferenceCardWidth = 36

	// ReferenceCardGap is the space between reference cards in a row
	ReferenceCardGap = 1
)

// User-facing copy
const (
	ListTitle        = "My Conversations"
	ChatTitle        = "Chat Session"
	SidebarTitle     = "Conversations"
	EmptyListText    = "No chats yet. Start exploring scientific knowledge now!"
	Tagline          = "Powered by RAG AI - Scientific Literature Search Assistant."
	InputPlaceholder = "Type your question about scientific literature..."
	EmptyChatText    = "Ask a question to start this conversation."
)

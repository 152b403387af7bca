// Package ui provides the view components of the Scholar TUI.
//
// # Overview
//
// The ui package renders the conversation store using Bubble Tea and
// Lipgloss. Components hold only view state (selection, scroll, focus,
// composer text); the conversations they draw come from store snapshots
// handed to them by the app model.
//
// # Layout System
//
// With no conversation open the list view fills the screen:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│  ┌────────┐  ┌────────┐  ┌────────┐                 │
//	│  │ card   │  │ card   │  │ card   │   List grid     │
//	│  └────────┘  └────────┘  └────────┘                 │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// With a conversation open the chat view shows the sidebar and window:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────┬───────────────────────────────────────┤
//	│             │                                       │
//	│   Sidebar   │         Chat window                   │
//	│   (1/4)     │         (transcript + composer)       │
//	│             │                                       │
//	├─────────────┴───────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The sidebar can be collapsed, in which case the chat window takes the
// full width.
//
// # Components
//
// ViewContext: Singleton holding the terminal size and derived layout.
// All size calculations should go through ViewContext.
//
// Header: Application title, the open conversation's title, and hints.
//
// Footer: Context-aware key bindings, replaced by flash messages.
//
// ConversationList: Card grid with fuzzy title filtering.
//
// Sidebar: Compact conversation list next to the chat window.
//
// Chat: Transcript viewport with message bubbles and reference cards,
// plus the composer.
//
// Modal: Container for the dialogs defined in the modals subpackage.
//
// # Styles
//
// Styles are rebuilt from the current Theme whenever SetTheme is called.
package ui

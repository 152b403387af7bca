// Package conversation holds the in-memory conversation library.
//
// # Overview
//
// A Store owns the ordered collection of conversations and the single
// active conversation id. Views never touch the collection directly: they
// read a Snapshot, render it, and call back into the Store. Every mutation
// replaces the collection with a new Snapshot carrying a higher Version, so
// a snapshot handed out earlier never changes underneath its holder.
//
// # Operations
//
// Create: Prepends an empty, unpinned conversation titled "New Research
// Chat" and makes it active.
//
// Open / Close: Set or clear the active id. Opening an unknown id is ignored.
//
// TogglePin: Flips the pinned flag in place. Order never changes.
//
// Rename: Replaces the title unless the new title is blank. RenameActive
// asks a Dialogs implementation for the title first.
//
// Delete: Removes a conversation and clears the active id if it pointed at
// it. DeleteActive asks a Dialogs implementation for confirmation first.
//
// SendMessage: Appends the user's message to the active conversation, asks
// the Responder for an answer and appends it as an assistant message.
//
// # Collaborators
//
// The Store never generates ids or reads the wall clock itself. Both come in
// through options (WithIDGenerator, WithClock) so demos and tests are
// deterministic. Replies come from a Responder; the assistant package ships
// the implementations.
package conversation

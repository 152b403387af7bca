// Package errors provides structured error types for scholar.
//
// An Error records the operation that failed, a coarse Kind the UI uses to
// pick its wording, and optionally the conversation it concerns so log lines
// and flashes can name it.
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Op describes an operation, usually as "package.function".
type Op string

// ConversationID marks an E argument as the conversation an error concerns.
type ConversationID string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindAssistant
	KindCancelled
	KindClipboard
)

var kindNames = map[Kind]string{
	KindNotFound:  "not found",
	KindInvalid:   "invalid",
	KindIO:        "I/O error",
	KindConfig:    "configuration error",
	KindAssistant: "assistant error",
	KindCancelled: "cancelled",
	KindClipboard: "clipboard error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Error is the structured error type for scholar.
type Error struct {
	Op           Op
	Kind         Kind
	Conversation ConversationID
	Context      string
	Err          error
}

// Error joins the non-empty parts as "op: [conversation] context: cause".
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}
	if e.Conversation != "" {
		fmt.Fprintf(&b, "[%s] ", e.Conversation)
	}
	if e.Context != "" {
		b.WriteString(e.Context)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error from any of Op, Kind, ConversationID, a string
// context and an underlying error, in any order. With no underlying error
// the context becomes the cause.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case ConversationID:
			e.Conversation = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the Kind of the outermost Error in err's chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ConversationOf returns the first conversation id recorded in err's chain.
func ConversationOf(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Conversation != "" {
			return string(e.Conversation)
		}
		err = e.Err
	}
	return ""
}

// Cancelled reports whether err stems from an interrupted request.
func Cancelled(err error) bool {
	return Is(err, KindCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// ConfigSaveFailed is KindIO when the file system refused the write and
// KindConfig otherwise.
func ConfigSaveFailed(path string, err error) error {
	kind := KindConfig
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		kind = KindIO
	}
	if path == "" {
		return E(Op("config.Save"), kind, err)
	}
	return E(Op("config.Save"), kind, "writing "+path, err)
}

// Seed library errors

func SeedLoadFailed(path string, err error) error {
	return E(Op("config.LoadSeed"), KindIO, fmt.Sprintf("failed to load seed library from %s", path), err)
}

// SeedInvalid reports a broken library invariant. conversationID is empty
// when the offending conversation has no id.
func SeedInvalid(conversationID, reason string) error {
	return E(Op("config.ValidateSeed"), KindInvalid, ConversationID(conversationID), reason)
}

// Assistant errors

// AssistantReplyFailed wraps a Responder failure. Context cancellation is
// classified as KindCancelled so the UI can treat it as a user action.
func AssistantReplyFailed(conversationID string, err error) error {
	kind := KindAssistant
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = KindCancelled
	}
	return E(Op("assistant.Submit"), kind, ConversationID(conversationID), "no reply", err)
}

// Clipboard errors

func ClipboardUnavailable(err error) error {
	return E(Op("clipboard.Init"), KindClipboard, "system clipboard unavailable", err)
}

func ClipboardWriteFailed(err error) error {
	return E(Op("clipboard.Write"), KindClipboard, "failed to write to clipboard", err)
}

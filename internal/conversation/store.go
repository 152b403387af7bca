package conversation

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/logger"
)

// Question is what the store hands to a Responder.
type Question struct {
	ConversationID string
	Text           string
	// History is the transcript before Text was appended.
	History []Message
}

// Answer is a Responder's reply.
type Answer struct {
	Content    string
	References []Reference
}

// Responder produces the assistant's reply to a question.
type Responder interface {
	Submit(ctx context.Context, q Question) (Answer, error)
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the id source. Defaults to UUIDGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the time source used for CreatedAt. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithActive opens the given conversation once the store is built.
func WithActive(id string) Option {
	return func(s *Store) { s.initialActive = id }
}

// Store owns the conversation collection and the active id.
type Store struct {
	mu        sync.Mutex
	snap      Snapshot
	ids       IDGenerator
	now       func() time.Time
	responder Responder
	listeners []func(Snapshot)
	log       *slog.Logger

	initialActive string
}

// NewStore builds a store seeded with conversations, in display order.
// The seed is copied; later changes to it have no effect on the store.
func NewStore(seed []Conversation, responder Responder, opts ...Option) *Store {
	s := &Store{
		ids:       UUIDGenerator{},
		now:       time.Now,
		responder: responder,
		log:       logger.ComponentLogger("store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	convs := make([]Conversation, len(seed))
	for i, c := range seed {
		convs[i] = c.clone()
	}
	s.snap = Snapshot{conversations: convs}
	if s.snap.indexOf(s.initialActive) >= 0 {
		s.snap.activeID = s.initialActive
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers fn to be called with the new snapshot after every
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// commit installs a new collection and active id, bumps the version and
// notifies subscribers. Callers hold s.mu; it is released before listeners run.
func (s *Store) commit(convs []Conversation, activeID string) {
	s.snap = Snapshot{
		version:       s.snap.version + 1,
		conversations: convs,
		activeID:      activeID,
	}
	snap := s.snap
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		if fn != nil {
			fn(snap)
		}
	}
	s.mu.Lock()
}

// Create prepends a new empty conversation and makes it active.
func (s *Store) Create() Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Conversation{
		ID:        s.ids.NewID(),
		Title:     DefaultTitle,
		CreatedAt: s.now(),
	}
	convs := make([]Conversation, 0, len(s.snap.conversations)+1)
	convs = append(convs, c)
	convs = append(convs, s.snap.conversations...)

	s.log.Info("conversation created", "id", c.ID)
	s.commit(convs, c.ID)
	return c.clone()
}

// Open makes id the active conversation. Unknown ids are ignored.
func (s *Store) Open(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.indexOf(id) < 0 {
		s.log.Debug("open ignored, unknown id", "id", id)
		return false
	}
	if s.snap.activeID == id {
		return true
	}
	s.commit(s.snap.conversations, id)
	return true
}

// Close clears the active conversation, returning to list mode.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.activeID == "" {
		return
	}
	s.commit(s.snap.conversations, "")
}

// TogglePin flips the pinned flag of id. Unknown ids are ignored.
func (s *Store) TogglePin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.snap.indexOf(id)
	if i < 0 {
		return false
	}
	convs := slices.Clone(s.snap.conversations)
	convs[i].Pinned = !convs[i].Pinned

	s.log.Info("pin toggled", "id", id, "pinned", convs[i].Pinned)
	s.commit(convs, s.snap.activeID)
	return true
}

// Rename replaces the title of id. An empty title leaves the conversation
// untouched and reports false. Any other title, whitespace included, is
// stored exactly as given.
func (s *Store) Rename(id, title string) bool {
	if title == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.snap.indexOf(id)
	if i < 0 {
		return false
	}
	convs := slices.Clone(s.snap.conversations)
	convs[i].Title = title

	logger.WithConversation(id).Info("conversation renamed", "title", title)
	s.commit(convs, s.snap.activeID)
	return true
}

// Delete removes id. If it was active, no conversation is active afterwards.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.snap.indexOf(id)
	if i < 0 {
		return false
	}
	convs := slices.Delete(slices.Clone(s.snap.conversations), i, i+1)
	active := s.snap.activeID
	if active == id {
		active = ""
	}

	s.log.Info("conversation deleted", "id", id)
	s.commit(convs, active)
	return true
}

// SendMessage appends text as a user message to the active conversation and
// then appends the Responder's answer as an assistant message.
//
// It does nothing and reports false when text is blank or no conversation is
// active. If the Responder fails, the user message is kept and the error is
// returned.
func (s *Store) SendMessage(ctx context.Context, text string) (bool, error) {
	return s.SendTo(ctx, s.Snapshot().ActiveID(), text)
}

// SendTo is SendMessage for conversation id, whether or not it is active.
// The app resolves the id when the message is submitted so that a reply is
// never redirected by a later selection change.
func (s *Store) SendTo(ctx context.Context, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" || id == "" {
		return false, nil
	}

	s.mu.Lock()
	i := s.snap.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	history := s.snap.conversations[i].clone().Messages
	userMsg := Message{ID: s.ids.NewID(), Role: RoleUser, Content: text}
	s.appendLocked(id, userMsg)
	s.mu.Unlock()

	log := logger.WithConversation(id)
	log.Debug("message sent", "messageID", userMsg.ID, "length", len(text))

	if s.responder == nil {
		return true, pkgerrors.AssistantReplyFailed(id, pkgerrors.E(pkgerrors.KindInvalid, "no responder configured"))
	}
	answer, err := s.responder.Submit(ctx, Question{ConversationID: id, Text: text, History: history})
	if err != nil {
		log.Error("assistant reply failed", "error", err)
		return true, pkgerrors.AssistantReplyFailed(id, err)
	}

	reply := Message{
		ID:         s.ids.NewID(),
		Role:       RoleAssistant,
		Content:    answer.Content,
		References: slices.Clone(answer.References),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.appendLocked(id, reply) {
		// Deleted while the responder ran.
		log.Warn("reply dropped, conversation no longer exists")
		return true, nil
	}
	log.Debug("reply appended", "messageID", reply.ID, "references", len(reply.References))
	return true, nil
}

// appendLocked appends msg to conversation id. Callers hold s.mu.
func (s *Store) appendLocked(id string, msg Message) bool {
	i := s.snap.indexOf(id)
	if i < 0 {
		return false
	}
	convs := slices.Clone(s.snap.conversations)
	c := convs[i]
	msgs := make([]Message, 0, len(c.Messages)+1)
	msgs = append(msgs, c.Messages...)
	c.Messages = append(msgs, msg)
	convs[i] = c
	s.commit(convs, s.snap.activeID)
	return true
}

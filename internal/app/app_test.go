package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/scholar/internal/conversation"
	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/keys"
	"github.com/zhubert/scholar/internal/notification"
	"github.com/zhubert/scholar/internal/ui"
)

func TestNew_StartsInListMode(t *testing.T) {
	m := testModelWithSize(t, 120, 40)

	if m.ChatMode() {
		t.Fatal("expected list mode without an active conversation")
	}
	view := ansi.Strip(m.RenderToString())
	for _, want := range []string{ui.ListTitle, "CRISPR gene editing basics", "Deep learning for protein folding", ui.Tagline} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q", want)
		}
	}
	if strings.Contains(view, "Sidebar") {
		t.Error("sidebar toggle must only appear in chat mode")
	}
	for i, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > 120 {
			t.Errorf("line %d is %d cells wide on a 120 column terminal", i, w)
		}
	}
}

func TestNew_WithActiveStartsInChatMode(t *testing.T) {
	m := testChatModel(t, "c1")

	if !m.ChatMode() {
		t.Fatal("expected chat mode")
	}
	if m.Focus() != FocusChat {
		t.Errorf("expected composer focus, got %v", m.Focus())
	}
	view := ansi.Strip(m.RenderToString())
	for _, want := range []string{ui.ChatTitle, "Hide Sidebar", "A genome editing tool.", "CRISPR-Cas Systems"} {
		if !strings.Contains(view, want) {
			t.Errorf("chat view missing %q", want)
		}
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := testModel(testConfig(), testStore())
	defer m.Close()

	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("expected Loading..., got %q", got)
	}
}

func TestListMode_EnterOpensSelected(t *testing.T) {
	m := testModelWithSize(t, 120, 40)

	sendKeys(m, keys.Right, keys.Enter)

	if !m.ChatMode() {
		t.Fatal("expected chat mode after enter")
	}
	if got := m.Snapshot().ActiveID(); got != "c2" {
		t.Errorf("expected c2 to be open, got %q", got)
	}
}

func TestListMode_PinTogglesWithoutOpening(t *testing.T) {
	m := testModelWithSize(t, 120, 40)

	sendKeys(m, "p")

	c1, _ := m.Snapshot().Find("c1")
	if c1.Pinned {
		t.Error("expected c1 to be unpinned")
	}
	if m.ChatMode() {
		t.Error("pinning must not open the conversation")
	}

	sendKeys(m, "p")
	c1, _ = m.Snapshot().Find("c1")
	if !c1.Pinned {
		t.Error("pinning twice should restore the flag")
	}
	if ids := conversationIDs(m.Snapshot()); ids != "c1,c2" {
		t.Errorf("pinning must not reorder, got %s", ids)
	}
}

func TestListMode_NewChat(t *testing.T) {
	m := testModelWithSize(t, 120, 40)

	sendKeys(m, "n")

	snap := m.Snapshot()
	if snap.Len() != 3 {
		t.Fatalf("expected 3 conversations, got %d", snap.Len())
	}
	first, _ := snap.At(0)
	if first.Title != conversation.DefaultTitle {
		t.Errorf("expected new conversation first, got %q", first.Title)
	}
	if snap.ActiveID() != first.ID {
		t.Error("new conversation should be active")
	}
	if m.Focus() != FocusChat {
		t.Error("composer should have focus after creating a chat")
	}
}

func TestListMode_Filter(t *testing.T) {
	m := testModelWithSize(t, 120, 40)

	sendKeys(m, "/")
	typeText(m, "protein")

	if m.list.Len() != 1 {
		t.Fatalf("expected one match, got %d", m.list.Len())
	}
	if m.Snapshot().Len() != 2 {
		t.Error("letters typed into the filter must not run shortcuts")
	}

	sendKeys(m, keys.Escape)
	if m.list.Len() != 2 || m.list.IsFiltering() {
		t.Error("escape should clear the filter")
	}
}

func TestListMode_EmptyState(t *testing.T) {
	m := testModel(testConfig(), conversation.NewStore(nil, nil))
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(ansi.Strip(m.RenderToString()), ui.EmptyListText) {
		t.Error("expected the empty state message")
	}
}

func TestChat_SendMessage(t *testing.T) {
	m := testChatModel(t, "c2")

	typeText(m, "How do AlphaFold models work?")
	_, cmd := m.Update(keyPress(keys.Enter))

	if !m.HasPendingReply() {
		t.Fatal("expected a pending reply")
	}
	if m.chat.GetInput() != "" {
		t.Error("composer should be cleared on send")
	}

	reply := awaitMsg[ReplyMsg](t, cmd)
	m.Update(reply)

	if m.HasPendingReply() {
		t.Error("reply should be finished")
	}
	c2, _ := m.Snapshot().Find("c2")
	if len(c2.Messages) != 2 {
		t.Fatalf("expected user and assistant messages, got %d", len(c2.Messages))
	}
	if c2.Messages[0].Role != conversation.RoleUser || c2.Messages[0].Content != "How do AlphaFold models work?" {
		t.Errorf("unexpected user message: %+v", c2.Messages[0])
	}
	if c2.Messages[1].Role != conversation.RoleAssistant || len(c2.Messages[1].References) == 0 {
		t.Errorf("expected assistant message with references: %+v", c2.Messages[1])
	}
	if m.chat.MessageCount() != 2 {
		t.Error("chat should show the new messages")
	}
}

func TestChat_WhitespaceIsNotSent(t *testing.T) {
	m := testChatModel(t, "c2")

	typeText(m, "   ")
	sendKeys(m, keys.Enter)

	if m.HasPendingReply() {
		t.Error("whitespace must not be sent")
	}
	c2, _ := m.Snapshot().Find("c2")
	if len(c2.Messages) != 0 {
		t.Errorf("expected no messages, got %d", len(c2.Messages))
	}
}

func TestChat_ShiftEnterInsertsNewline(t *testing.T) {
	m := testChatModel(t, "c2")

	typeText(m, "a")
	sendKeys(m, keys.ShiftEnter)
	typeText(m, "b")

	if got := m.chat.GetInput(); got != "a\nb" {
		t.Errorf("expected a newline in the draft, got %q", got)
	}
	if m.HasPendingReply() {
		t.Error("shift+enter must not send")
	}
}

func TestChat_LettersGoToComposer(t *testing.T) {
	m := testChatModel(t, "c2")

	typeText(m, "qnp?")

	if m.chat.GetInput() != "qnp?" {
		t.Errorf("expected letters in the composer, got %q", m.chat.GetInput())
	}
	if m.Snapshot().Len() != 2 || m.modal.IsVisible() {
		t.Error("single-letter shortcuts must not run while typing")
	}
}

func TestChat_EscapeReturnsToList(t *testing.T) {
	m := testChatModel(t, "c1")

	sendKeys(m, keys.Escape)

	if m.ChatMode() {
		t.Fatal("expected list mode after escape")
	}
	if m.Snapshot().ActiveID() != "" {
		t.Error("expected no active conversation")
	}
	if !strings.Contains(ansi.Strip(m.RenderToString()), ui.ListTitle) {
		t.Error("expected the list header")
	}
}

func TestChat_NotifiesOnlyWhenUnfocused(t *testing.T) {
	titles := make(chan string, 2)
	notification.SetNotifier(func(title, _ string, _ any) error {
		titles <- title
		return nil
	})
	defer notification.ResetNotifier()

	cfg := testConfig()
	cfg.SetNotificationsEnabled(true)
	m := testModel(cfg, testStore(conversation.WithActive("c2")))
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	// Focused: no notification
	typeText(m, "First question")
	_, cmd := m.Update(keyPress(keys.Enter))
	m.Update(awaitMsg[ReplyMsg](t, cmd))

	m.Update(tea.BlurMsg{})
	typeText(m, "Second question")
	_, cmd = m.Update(keyPress(keys.Enter))
	m.Update(awaitMsg[ReplyMsg](t, cmd))

	select {
	case title := <-titles:
		if !strings.Contains(title, "Deep learning for protein folding") {
			t.Errorf("notification title = %q", title)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a notification while unfocused")
	}
	select {
	case title := <-titles:
		t.Errorf("unexpected second notification %q", title)
	default:
	}
}

// blockingResponder answers only when its context is cancelled.
type blockingResponder struct{}

func (blockingResponder) Submit(ctx context.Context, q conversation.Question) (conversation.Answer, error) {
	<-ctx.Done()
	return conversation.Answer{}, ctx.Err()
}

func TestChat_EscapeCancelsPendingReply(t *testing.T) {
	store := conversation.NewStore(testSeed(), blockingResponder{}, conversation.WithActive("c2"))
	m := testModel(testConfig(), store)
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	typeText(m, "Will this finish?")
	_, cmd := m.Update(keyPress(keys.Enter))
	sendKeys(m, keys.Escape)

	if !m.ChatMode() {
		t.Fatal("first escape should cancel the reply, not leave the chat")
	}

	reply := awaitMsg[ReplyMsg](t, cmd)
	if !pkgerrors.Is(reply.Err, pkgerrors.KindCancelled) {
		t.Fatalf("expected a cancellation error, got %v", reply.Err)
	}
	if got := pkgerrors.ConversationOf(reply.Err); got != "c2" {
		t.Errorf("error names conversation %q, want c2", got)
	}
	m.Update(reply)

	if m.HasPendingReply() {
		t.Error("pending reply should be cleared")
	}
	if !strings.Contains(ansi.Strip(m.RenderToString()), "Reply cancelled") {
		t.Error("expected a cancellation flash")
	}
	c2, _ := m.Snapshot().Find("c2")
	if len(c2.Messages) != 1 || c2.Messages[0].Role != conversation.RoleUser {
		t.Errorf("user message should be kept, got %+v", c2.Messages)
	}
}

func TestChat_OnlyOneReplyAtATime(t *testing.T) {
	store := conversation.NewStore(testSeed(), blockingResponder{}, conversation.WithActive("c2"))
	m := testModel(testConfig(), store)
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	typeText(m, "first")
	sendKeys(m, keys.Enter)
	typeText(m, "second")
	sendKeys(m, keys.Enter)

	if m.chat.GetInput() != "second" {
		t.Error("the second draft should stay in the composer")
	}
	if !strings.Contains(ansi.Strip(m.RenderToString()), "Still waiting") {
		t.Error("expected a warning flash")
	}
}

func TestChat_TabAndSidebarToggle(t *testing.T) {
	m := testChatModel(t, "c1")

	sendKeys(m, keys.Tab)
	if m.Focus() != FocusSidebar {
		t.Fatal("tab should focus the sidebar")
	}
	sendKeys(m, keys.Tab)
	if m.Focus() != FocusChat {
		t.Fatal("tab should focus the composer again")
	}

	sendKeys(m, keys.Tab, keys.CtrlB)
	if !m.sidebar.IsCollapsed() {
		t.Fatal("ctrl+b should collapse the sidebar")
	}
	if m.Focus() != FocusChat {
		t.Error("collapsing the sidebar should move focus to the composer")
	}
	if !strings.Contains(ansi.Strip(m.RenderToString()), "Show Sidebar") {
		t.Error("header should offer to show the sidebar")
	}

	sendKeys(m, keys.CtrlB)
	if m.sidebar.IsCollapsed() {
		t.Error("ctrl+b should show the sidebar again")
	}
}

func TestSidebar_EnterOpensSelected(t *testing.T) {
	m := testChatModel(t, "c1")

	sendKeys(m, keys.Tab, keys.Down, keys.Enter)

	if got := m.Snapshot().ActiveID(); got != "c2" {
		t.Errorf("expected c2 to be open, got %q", got)
	}
	if m.Focus() != FocusChat {
		t.Error("opening from the sidebar should focus the composer")
	}
}

func TestStoreChangedMsg_IgnoresStaleSnapshots(t *testing.T) {
	m := testModelWithSize(t, 120, 40)
	stale := m.Snapshot()

	sendKeys(m, "n")
	m.Update(StoreChangedMsg{Snapshot: stale})

	if m.Snapshot().Len() != 3 {
		t.Error("an older snapshot must not replace a newer one")
	}
}

func TestStoreListener_PublishesLatestSnapshot(t *testing.T) {
	store := testStore()
	m := testModel(testConfig(), store)
	defer m.Close()

	store.Create()
	store.Open("c2")

	msg := awaitMsg[StoreChangedMsg](t, m.Init())
	if msg.Snapshot.ActiveID() != "c2" || msg.Snapshot.Len() != 3 {
		t.Errorf("expected the latest snapshot, got active=%q len=%d", msg.Snapshot.ActiveID(), msg.Snapshot.Len())
	}

	m.Update(msg)
	if !m.ChatMode() {
		t.Error("model should follow the store into chat mode")
	}
}

func TestUpdate_KeyboardEnhancements(t *testing.T) {
	m := testChatModel(t, "c1")

	m.Update(tea.KeyboardEnhancementsMsg{})
	view := ansi.Strip(m.RenderToString())
	if !strings.Contains(view, "opt+enter") || strings.Contains(view, "shift+enter") {
		t.Error("without disambiguation the footer should suggest opt+enter")
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m := testModelWithSize(t, 80, 24)

	_, cmd := m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func conversationIDs(s conversation.Snapshot) string {
	var ids []string
	for _, c := range s.Conversations() {
		ids = append(ids, c.ID)
	}
	return strings.Join(ids, ",")
}

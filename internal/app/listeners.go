package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scholar/internal/conversation"
	pkgerrors "github.com/zhubert/scholar/internal/errors"
	"github.com/zhubert/scholar/internal/logger"
)

// publishSnapshot is the store listener. It runs on whichever goroutine
// mutated the store, so it only hands the snapshot to the event loop. The
// channel holds one snapshot; a stale one is replaced.
func (m *Model) publishSnapshot(snap conversation.Snapshot) {
	for {
		select {
		case m.storeCh <- snap:
			return
		default:
		}
		select {
		case <-m.storeCh:
		default:
		}
	}
}

// listenForStoreChanges waits for the next published snapshot.
func (m *Model) listenForStoreChanges() tea.Cmd {
	ch := m.storeCh
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Snapshot: snap}
	}
}

// submit asks the store to send text to conversation id and reports the
// outcome as a ReplyMsg.
func (m *Model) submit(ctx context.Context, id, text string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		sent, err := store.SendTo(ctx, id, text)
		return ReplyMsg{ConversationID: id, Sent: sent, Err: err}
	}
}

func (m *Model) logReplyError(id string, err error) {
	if pkgerrors.Cancelled(err) {
		logger.WithConversation(id).Info("reply cancelled")
		return
	}
	logger.ForError("app", err).Error("reply failed", "error", err)
}

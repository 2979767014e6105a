package memory

import (
	"context"
	"errors"
	"time"

	"gateway/pkg/domain"
	"gateway/pkg/storage"
)

var errClosed = errors.New("memory storage is closed")

type tx struct {
	m        *Memory
	snapshot map[string]*domain.Conversation
	done     bool
}

func (t *tx) ConversationByChatID(_ context.Context, chatID string) (*domain.Conversation, error) {
	if t.done {
		return nil, storage.ErrNotInTx
	}

	return view{t.m}.ConversationByChatID(chatID)
}

func (t *tx) UpsertConversation(_ context.Context, conversation *domain.Conversation) error {
	if t.done {
		return storage.ErrNotInTx
	}

	return view{t.m}.UpsertConversation(conversation)
}

func (t *tx) DeleteConversationsBefore(_ context.Context, before time.Time) (int64, error) {
	if t.done {
		return 0, storage.ErrNotInTx
	}

	return view{t.m}.DeleteConversationsBefore(before)
}

func (t *tx) Commit() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true
	t.m.mu.Unlock()

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true
	t.m.items = t.snapshot
	t.m.mu.Unlock()

	return nil
}

// Package memory implements storage.Storage in process memory. State is lost
// on restart, which matches the default single-node deployment.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gateway/pkg/domain"
	"gateway/pkg/storage"
)

// Memory is a mutex-guarded map of conversations keyed by chat ID. Stored
// values are private clones and never handed out directly.
type Memory struct {
	mu     sync.Mutex
	items  map[string]*domain.Conversation
	closed bool
}

var _ storage.Storage = (*Memory)(nil)

// New returns an empty in-memory storage.
func New() *Memory {
	return &Memory{items: make(map[string]*domain.Conversation)}
}

func (m *Memory) ConversationByChatID(_ context.Context, chatID string) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return view{m}.ConversationByChatID(chatID)
}

func (m *Memory) UpsertConversation(_ context.Context, conversation *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return view{m}.UpsertConversation(conversation)
}

func (m *Memory) DeleteConversationsBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return view{m}.DeleteConversationsBefore(before)
}

// Len returns the number of stored conversations.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}

// Close drops every stored conversation. Further calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = make(map[string]*domain.Conversation)

	return nil
}

// Begin locks the storage until the returned transaction is committed or
// rolled back. Rollback restores the content as it was at Begin.
func (m *Memory) Begin(ctx context.Context) (storage.TxStorage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	m.mu.Lock()
	snapshot := make(map[string]*domain.Conversation, len(m.items))
	for k, v := range m.items {
		snapshot[k] = v
	}

	return &tx{m: m, snapshot: snapshot}, nil
}

// WithTx runs cb inside a transaction, committing when it returns nil. The
// transaction is rolled back, and the lock released, when cb fails or panics.
func (m *Memory) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	t, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	// no-op once committed
	defer func() { _ = t.Rollback() }()

	if err := cb(t); err != nil {
		return err
	}

	return t.Commit()
}

// view performs the actual map operations. The caller holds the lock.
type view struct {
	m *Memory
}

func (v view) ConversationByChatID(chatID string) (*domain.Conversation, error) {
	if v.m.closed {
		return nil, errClosed
	}

	return v.m.items[chatID].Clone(), nil
}

func (v view) UpsertConversation(conversation *domain.Conversation) error {
	if v.m.closed {
		return errClosed
	}
	if conversation == nil || conversation.ChatID == "" {
		return fmt.Errorf("conversation without chat id")
	}
	v.m.items[conversation.ChatID] = conversation.Clone()

	return nil
}

func (v view) DeleteConversationsBefore(before time.Time) (int64, error) {
	if v.m.closed {
		return 0, errClosed
	}

	var n int64
	for id, c := range v.m.items {
		if c.LastUpdated.Before(before) {
			delete(v.m.items, id)
			n++
		}
	}

	return n, nil
}

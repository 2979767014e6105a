// Package storage defines the core storage interfaces that the application relies on.
// It abstracts persistence of conversation state and transaction management so that
// different backends (in-memory, PostgreSQL) can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"time"

	"gateway/pkg/domain"
)

// ConversationStorage persists per-chat conversation state.
type ConversationStorage interface {
	// ConversationByChatID returns the stored state for chatID, or nil when
	// nothing is stored.
	ConversationByChatID(ctx context.Context, chatID string) (*domain.Conversation, error)
	// UpsertConversation inserts or replaces the state keyed by its ChatID.
	UpsertConversation(ctx context.Context, conversation *domain.Conversation) error
	// DeleteConversationsBefore removes every state last updated before the
	// given time and returns how many were removed.
	DeleteConversationsBefore(ctx context.Context, before time.Time) (int64, error)
}

// AllStorage is a composite interface that includes all domain-specific storage
// capabilities required by the application.
type AllStorage interface {
	ConversationStorage
}

// TxStorage describes a storage handle that operates within a transaction. It
// exposes the same domain-specific capabilities as AllStorage, and additionally
// allows committing or rolling back the ongoing transaction.
// Implementations should become unusable after Commit or Rollback is called.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions. It exposes domain-specific capabilities and lifecycle
// management such as Close.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage that can be used to
	// perform further operations within that transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx is a helper that begins a transaction, invokes the provided callback
	// with a TxStorage, and then commits on success or rolls back if the callback
	// returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

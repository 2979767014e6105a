package conversation

import (
	"context"
	"time"

	"gateway/pkg/domain"
)

//go:generate mockgen -package mockconversation -source=interface.go -destination=mock/mockconversation.go *
type Store interface {
	// Load returns the state for the message's chat, starting a fresh one when
	// none is stored or the stored one expired, with the inbound context merged.
	Load(ctx context.Context, msg domain.ChatbotMessage) (*domain.Conversation, error)
	// Persist touches and saves the state.
	Persist(ctx context.Context, state *domain.Conversation) error
	// DeleteExpired removes states not updated since before.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	// MaxHistory is the number of history entries kept per conversation.
	MaxHistory() int
	// TTL is how long an idle conversation is kept.
	TTL() time.Duration
}

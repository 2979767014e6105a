// Package conversation keeps per-chat state between turns on top of a
// storage.Storage backend.
package conversation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/pkg/domain"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
	"gateway/pkg/storage"
)

// Options configure conversation retention.
type Options struct {
	// TTL is how long an idle conversation is kept before it is reset.
	TTL time.Duration
	// MaxHistory is the number of history entries kept per conversation.
	MaxHistory int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		TTL:        cfg.Conversation.HistoryTTL,
		MaxHistory: cfg.Conversation.MaxHistory,
	}
}

type store struct {
	options Options
	storage storage.Storage
	now     func() time.Time
}

// New returns a Store persisting state through s.
func New(s storage.Storage, options Options) Store {
	return &store{
		options: options,
		storage: s,
		now:     time.Now,
	}
}

func (s *store) Load(ctx context.Context, msg domain.ChatbotMessage) (*domain.Conversation, error) {
	var state *domain.Conversation
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.ConversationByChatID(ctx, msg.ChatID)
		if err != nil {
			return fmt.Errorf("could not get conversation: %w", err)
		}

		if stored == nil || stored.Expired(s.options.TTL, s.now()) {
			if stored != nil {
				logger.Debug(ctx, "conversation expired, starting a fresh one",
					zap.String("chatID", msg.ChatID),
					zap.Time("lastUpdated", stored.LastUpdated))
			}
			stored = domain.NewConversation(msg.ChatID)
		}
		stored.MergeInbound(msg.Context)
		stored.Touch()

		if err := tx.UpsertConversation(ctx, stored); err != nil {
			return fmt.Errorf("could not save conversation: %w", err)
		}
		state = stored

		return nil
	}); err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "conversation store is unavailable")
	}

	return state.Clone(), nil
}

func (s *store) Persist(ctx context.Context, state *domain.Conversation) error {
	if state == nil {
		return serrors.With(serrors.ErrBadRequest, "nil conversation")
	}

	snapshot := state.Clone()
	snapshot.Touch()
	if err := s.storage.UpsertConversation(ctx, snapshot); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not persist conversation")
	}
	state.LastUpdated = snapshot.LastUpdated

	return nil
}

func (s *store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.storage.DeleteConversationsBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("could not delete expired conversations: %w", err)
	}

	return n, nil
}

func (s *store) MaxHistory() int {
	return s.options.MaxHistory
}

func (s *store) TTL() time.Duration {
	return s.options.TTL
}

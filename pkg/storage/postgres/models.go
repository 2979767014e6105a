package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"gateway/pkg/domain"
)

type PgConversation struct {
	ChatID   string          `db:"chat_id"`
	Language string          `db:"language"`
	// jsonb columns are carried as text so goqu renders them as literals.
	Slots    string `db:"slots"`
	Metadata string `db:"metadata"`
	History  string `db:"history"`

	CreatedAt   time.Time `db:"created_at"   goqu:"skipinsert"`
	LastUpdated time.Time `db:"last_updated"`
}

func (p *PgConversation) ToDomain() (*domain.Conversation, error) {
	c := &domain.Conversation{
		ChatID:      p.ChatID,
		Language:    p.Language,
		LastUpdated: p.LastUpdated.UTC(),
	}
	if err := unmarshalColumn(p.Slots, &c.Slots); err != nil {
		return nil, fmt.Errorf("could not unmarshal slots: %w", err)
	}
	if err := unmarshalColumn(p.Metadata, &c.Metadata); err != nil {
		return nil, fmt.Errorf("could not unmarshal metadata: %w", err)
	}
	if err := unmarshalColumn(p.History, &c.History); err != nil {
		return nil, fmt.Errorf("could not unmarshal history: %w", err)
	}
	if c.Slots == nil {
		c.Slots = map[string]any{}
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}

	return c, nil
}

func (p *PgConversation) FromDomain(c *domain.Conversation) error {
	slots, err := marshalColumn(c.Slots, "{}")
	if err != nil {
		return fmt.Errorf("could not marshal slots: %w", err)
	}
	metadata, err := marshalColumn(c.Metadata, "{}")
	if err != nil {
		return fmt.Errorf("could not marshal metadata: %w", err)
	}
	history, err := marshalColumn(c.History, "[]")
	if err != nil {
		return fmt.Errorf("could not marshal history: %w", err)
	}

	*p = PgConversation{
		ChatID:      c.ChatID,
		Language:    c.Language,
		Slots:       slots,
		Metadata:    metadata,
		History:     history,
		LastUpdated: c.LastUpdated,
	}

	return nil
}

func marshalColumn[T any](v T, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err //nolint: wrapcheck
	}
	if string(b) == "null" {
		return empty, nil
	}

	return string(b), nil
}

func unmarshalColumn(raw string, dst any) error {
	if raw == "" {
		return nil
	}

	return json.Unmarshal([]byte(raw), dst) //nolint: wrapcheck
}

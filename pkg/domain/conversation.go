package domain

import (
	"time"
)

// History roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryEntry is a single message stored in the conversation history.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the persisted state of a single chat.
type Conversation struct {
	ChatID      string
	Language    string
	Slots       map[string]any
	Metadata    map[string]any
	History     []HistoryEntry
	LastUpdated time.Time
}

// NewConversation returns an empty state for chatID.
func NewConversation(chatID string) *Conversation {
	return &Conversation{
		ChatID:      chatID,
		Slots:       map[string]any{},
		Metadata:    map[string]any{},
		LastUpdated: time.Now().UTC(),
	}
}

// Touch marks the conversation as updated now.
func (c *Conversation) Touch() {
	c.LastUpdated = time.Now().UTC()
}

// Expired reports whether the conversation was last updated more than ttl ago.
func (c *Conversation) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(c.LastUpdated) > ttl
}

// MergeInbound folds the context sent by the chatbot into the state. An
// already known language or timezone is never replaced.
func (c *Conversation) MergeInbound(ctx ChatContext) {
	c.ensureMaps()
	if c.Language == "" && ctx.Language != "" {
		c.Language = ctx.Language
	}
	for k, v := range ctx.Slots {
		c.Slots[k] = v
	}
	if _, ok := c.Metadata["timezone"]; !ok && ctx.Timezone != "" {
		c.Metadata["timezone"] = ctx.Timezone
	}
}

// ApplyUpdates merges updates into the state. Keys other than language, slots
// and metadata are stored under metadata.
func (c *Conversation) ApplyUpdates(updates Updates) {
	c.ensureMaps()
	for key, value := range updates {
		switch key {
		case UpdateKeyLanguage:
			if lang, ok := value.(string); ok && lang != "" {
				c.Language = lang
			}
		case UpdateKeySlots:
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					c.Slots[k] = v
				}
			}
		case UpdateKeyMetadata:
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					c.Metadata[k] = v
				}
			}
		default:
			c.Metadata[key] = value
		}
	}
}

// AppendHistory adds a message to the history keeping at most max entries
// when max is positive. Empty content is ignored.
func (c *Conversation) AppendHistory(role, content string, max int) {
	if content == "" {
		return
	}
	c.History = append(c.History, HistoryEntry{Role: role, Content: content})
	if max > 0 && len(c.History) > max {
		c.History = append([]HistoryEntry(nil), c.History[len(c.History)-max:]...)
	}
	c.Touch()
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}

	return &Conversation{
		ChatID:      c.ChatID,
		Language:    c.Language,
		Slots:       cloneMap(c.Slots),
		Metadata:    cloneMap(c.Metadata),
		History:     append([]HistoryEntry(nil), c.History...),
		LastUpdated: c.LastUpdated,
	}
}

// StringFrom returns the first non-empty string stored in slots or metadata
// under any of keys, slots taking precedence.
func (c *Conversation) StringFrom(keys ...string) string {
	for _, source := range []map[string]any{c.Slots, c.Metadata} {
		for _, key := range keys {
			if s := stringify(source[key]); s != "" {
				return s
			}
		}
	}

	return ""
}

func (c *Conversation) ensureMaps() {
	if c.Slots == nil {
		c.Slots = map[string]any{}
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
}

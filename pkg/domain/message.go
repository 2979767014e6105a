package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultLanguage is the language assumed for a chat when the chatbot does
// not send one.
const DefaultLanguage = "uk"

// ChatContext is the conversation snapshot provided by the legacy chatbot.
type ChatContext struct {
	// Language is the IETF language tag preferred by the user (e.g. "uk", "en").
	Language string `json:"language,omitempty"`
	// Timezone is the end-user IANA timezone identifier, if known.
	Timezone string `json:"timezone,omitempty"`
	// Slots holds arbitrary values already collected for the user.
	Slots map[string]any `json:"slots,omitempty"`
}

// ChatbotMessage is the inbound payload posted by the legacy chatbot backend
// for every end-user message.
type ChatbotMessage struct {
	// ChatID uniquely identifies the dialogue. Required.
	ChatID string `json:"chat_id"`
	// UserID optionally identifies the end user.
	UserID string `json:"user_id,omitempty"`
	// MessageID identifies the message within the chatbot system.
	MessageID string `json:"message_id,omitempty"`
	// Text is the raw text provided by the end user. Required.
	Text string `json:"text"`
	// IsPrivate reports whether the conversation channel is private.
	IsPrivate bool `json:"is_private"`
	// Context is the conversation context captured by the chatbot.
	Context ChatContext `json:"context"`
	// Metadata carries transport metadata, user agent, experiments, etc.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes a ChatbotMessage applying the chatbot defaults:
// is_private=true and context.language="uk" when absent.
func (m *ChatbotMessage) UnmarshalJSON(b []byte) error {
	type alias ChatbotMessage
	aux := struct {
		*alias

		IsPrivate *bool            `json:"is_private"`
		Context   *json.RawMessage `json:"context"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err //nolint: wrapcheck
	}

	m.IsPrivate = true
	if aux.IsPrivate != nil {
		m.IsPrivate = *aux.IsPrivate
	}

	m.Context = ChatContext{Language: DefaultLanguage}
	if aux.Context != nil && string(*aux.Context) != "null" {
		ctxAux := struct {
			Language *string       `json:"language"`
			Timezone string        `json:"timezone"`
			Slots    map[string]any `json:"slots"`
		}{}
		if err := json.Unmarshal(*aux.Context, &ctxAux); err != nil {
			return fmt.Errorf("context: %w", err)
		}
		if ctxAux.Language != nil {
			m.Context.Language = *ctxAux.Language
		}
		m.Context.Timezone = ctxAux.Timezone
		m.Context.Slots = ctxAux.Slots
	}
	if m.Context.Slots == nil {
		m.Context.Slots = map[string]any{}
	}
	if m.Metadata == nil {
		m.Metadata = map[string]any{}
	}

	return nil
}

// Validate checks the required fields of an inbound message.
func (m ChatbotMessage) Validate() error {
	if strings.TrimSpace(m.ChatID) == "" {
		return fmt.Errorf("chat_id is required")
	}
	if m.Text == "" {
		return fmt.Errorf("text is required")
	}

	return nil
}

// DirectQuestion is a plain question to be answered without chat context.
type DirectQuestion struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

// Validate checks the required fields of a direct question.
func (q DirectQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question is required")
	}

	return nil
}

package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gateway/pkg/domain"
)

func TestConversation_MergeInbound(t *testing.T) {
	t.Parallel()

	c := domain.NewConversation("chat-1")
	c.MergeInbound(domain.ChatContext{Language: "en", Timezone: "Europe/Kyiv", Slots: map[string]any{"a": 1}})
	c.MergeInbound(domain.ChatContext{Language: "uk", Timezone: "UTC", Slots: map[string]any{"b": 2}})

	require.Equal(t, "en", c.Language)
	require.Equal(t, "Europe/Kyiv", c.Metadata["timezone"])
	require.Equal(t, map[string]any{"a": 1, "b": 2}, c.Slots)
}

func TestConversation_ApplyUpdates(t *testing.T) {
	t.Parallel()

	c := domain.NewConversation("chat-1")
	c.Language = "uk"
	c.ApplyUpdates(domain.Updates{
		"language": "en",
		"slots":    map[string]any{"client_id": "42"},
		"metadata": map[string]any{"source": "tool"},
		"custom":   true,
	})

	require.Equal(t, "en", c.Language)
	require.Equal(t, "42", c.Slots["client_id"])
	require.Equal(t, "tool", c.Metadata["source"])
	require.Equal(t, true, c.Metadata["custom"])

	c.ApplyUpdates(domain.Updates{"language": ""})
	require.Equal(t, "en", c.Language)
}

func TestConversation_AppendHistory(t *testing.T) {
	t.Parallel()

	c := domain.NewConversation("chat-1")
	c.LastUpdated = time.Time{}

	c.AppendHistory(domain.RoleUser, "", 3)
	require.Empty(t, c.History)
	require.True(t, c.LastUpdated.IsZero())

	for _, msg := range []string{"1", "2", "3", "4", "5"} {
		c.AppendHistory(domain.RoleUser, msg, 3)
	}

	require.Equal(t, []domain.HistoryEntry{
		{Role: domain.RoleUser, Content: "3"},
		{Role: domain.RoleUser, Content: "4"},
		{Role: domain.RoleUser, Content: "5"},
	}, c.History)
	require.False(t, c.LastUpdated.IsZero())

	c.AppendHistory(domain.RoleAssistant, "6", 0)
	require.Len(t, c.History, 4)
}

func TestConversation_Clone(t *testing.T) {
	t.Parallel()

	c := domain.NewConversation("chat-1")
	c.Slots["nested"] = map[string]any{"k": "v"}
	c.AppendHistory(domain.RoleUser, "hi", 10)

	clone := c.Clone()
	clone.Slots["nested"].(map[string]any)["k"] = "changed"
	clone.History[0].Content = "changed"
	clone.Metadata["x"] = 1

	require.Equal(t, "v", c.Slots["nested"].(map[string]any)["k"])
	require.Equal(t, "hi", c.History[0].Content)
	require.NotContains(t, c.Metadata, "x")
}

func TestConversation_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := domain.NewConversation("chat-1")
	c.LastUpdated = now.Add(-3 * time.Hour)

	require.True(t, c.Expired(2*time.Hour, now))
	require.False(t, c.Expired(4*time.Hour, now))
	require.False(t, c.Expired(0, now))
}

func TestConversation_StringFrom(t *testing.T) {
	t.Parallel()

	c := domain.NewConversation("chat-1")
	c.Metadata["customer_id"] = float64(77)
	require.Equal(t, "77", c.StringFrom("client_id", "customerid", "customer_id"))

	c.Slots["customerid"] = " 12 "
	require.Equal(t, "12", c.StringFrom("client_id", "customerid", "customer_id"))

	require.Empty(t, c.StringFrom("missing"))
}

func TestMergeUpdates(t *testing.T) {
	t.Parallel()

	merged := domain.MergeUpdates(
		domain.Updates{"slots": map[string]any{"a": 1}, "language": "uk"},
		nil,
		domain.Updates{"slots": map[string]any{"b": 2}, "language": "en", "metadata": map[string]any{"m": true}},
	)

	require.Equal(t, domain.Updates{
		"slots":    map[string]any{"a": 1, "b": 2},
		"metadata": map[string]any{"m": true},
		"language": "en",
	}, merged)
}

func TestChatbotMessage_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		expected domain.ChatbotMessage
	}{
		{
			name:    "defaults",
			payload: `{"chat_id":"c1","text":"hello"}`,
			expected: domain.ChatbotMessage{
				ChatID:    "c1",
				Text:      "hello",
				IsPrivate: true,
				Context:   domain.ChatContext{Language: "uk", Slots: map[string]any{}},
				Metadata:  map[string]any{},
			},
		},
		{
			name:    "explicit values",
			payload: `{"chat_id":"c1","user_id":"u1","text":"hi","is_private":false,"context":{"language":"en","timezone":"UTC","slots":{"x":"y"}},"metadata":{"m":"n"}}`,
			expected: domain.ChatbotMessage{
				ChatID:    "c1",
				UserID:    "u1",
				Text:      "hi",
				IsPrivate: false,
				Context:   domain.ChatContext{Language: "en", Timezone: "UTC", Slots: map[string]any{"x": "y"}},
				Metadata:  map[string]any{"m": "n"},
			},
		},
		{
			name:    "context without language",
			payload: `{"chat_id":"c1","text":"hi","context":{"timezone":"Europe/Kyiv"}}`,
			expected: domain.ChatbotMessage{
				ChatID:    "c1",
				Text:      "hi",
				IsPrivate: true,
				Context:   domain.ChatContext{Language: "uk", Timezone: "Europe/Kyiv", Slots: map[string]any{}},
				Metadata:  map[string]any{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var msg domain.ChatbotMessage
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &msg))
			require.Equal(t, tt.expected, msg)
			require.NoError(t, msg.Validate())
		})
	}
}

func TestChatbotMessage_Validate(t *testing.T) {
	t.Parallel()

	require.Error(t, domain.ChatbotMessage{ChatID: " ", Text: "x"}.Validate())
	require.Error(t, domain.ChatbotMessage{ChatID: "c", Text: ""}.Validate())
	require.Error(t, domain.DirectQuestion{Question: "  "}.Validate())
	require.NoError(t, domain.DirectQuestion{Question: "why?"}.Validate())
}

package orchestrator

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gateway/pkg/domain"
	"gateway/pkg/serrors"
)

func TestRenderUserContent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	msg := domain.ChatbotMessage{
		ChatID:  "chat-1",
		UserID:  "user-1",
		Text:    "Баланс <картки>",
		Context: domain.ChatContext{Timezone: "Europe/Kyiv"},
	}
	state := domain.NewConversation("chat-1")
	state.Slots["client_id"] = "42"

	expected := "Below is the latest customer input and known context.\n```json\n" +
		`{
  "chat_id": "chat-1",
  "user_id": "user-1",
  "message_id": null,
  "language": "uk",
  "slots": {
    "client_id": "42"
  },
  "text": "Баланс <картки>",
  "timestamp": {
    "iso": "2025-03-10T14:00:00.000000+02:00",
    "timezone": "Europe/Kyiv"
  }
}` + "\n```"

	require.Equal(t, expected, renderUserContent(msg, state, "uk", now))
}

func TestRenderUserContent_Timezone(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	state := domain.NewConversation("chat-1")
	state.Metadata["timezone"] = "America/New_York"
	msg := domain.ChatbotMessage{ChatID: "chat-1", Context: domain.ChatContext{Timezone: "Europe/Kyiv"}}
	require.Contains(t, renderUserContent(msg, state, "en", now), `"timezone": "America/New_York"`)

	state.Metadata["timezone"] = "Mars/Olympus"
	content := renderUserContent(msg, state, "en", now)
	require.Contains(t, content, `"timezone": "UTC"`)
	require.Contains(t, content, `"iso": "2025-03-10T12:00:00.000000+00:00"`)
}

type customError struct{}

func (customError) Error() string { return "custom" }

func TestErrorType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "UPSTREAM", errorType(fmt.Errorf("wrapped: %w", serrors.KindOnly(serrors.ErrUpstream))))
	require.Equal(t, "orchestrator.customError", errorType(fmt.Errorf("wrapped: %w", customError{})))
	require.Equal(t, "errors.errorString", errorType(errors.New("plain")))
}

func TestFallbackReply(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.AgentReply{Event: domain.EventSend, Data: fallbackTextEN}, fallbackReply("en-GB", nil))
	require.Equal(t, domain.AgentReply{Event: domain.EventSend, Data: fallbackTextUK}, fallbackReply("uk", nil))
	require.Equal(t, "UNAVAILABLE",
		fallbackReply("", serrors.KindOnly(serrors.ErrUnavailable)).ContextUpdates["metadata"].(map[string]any)["last_error"])
}

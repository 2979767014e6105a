package azureopenai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gateway/pkg/llm"
	"gateway/pkg/llm/azureopenai"
	"gateway/pkg/serrors"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, fn rtFunc) *azureopenai.Client {
	t.Helper()

	c, err := azureopenai.New(azureopenai.Options{
		Endpoint:    "https://example.openai.azure.com",
		APIKey:      "test-key",
		Deployment:  "gpt-4o",
		Temperature: 0.2,
		TopP:        0.9,
		HTTPClient:  &http.Client{Transport: fn},
	})
	require.NoError(t, err)

	return c
}

func jsonResponse(status int, body string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew_RequiresSettings(t *testing.T) {
	tests := []struct {
		name    string
		options azureopenai.Options
		message string
	}{
		{"endpoint", azureopenai.Options{APIKey: "k", Deployment: "d"}, "AZURE_OPENAI_ENDPOINT"},
		{"key", azureopenai.Options{Endpoint: "https://e", Deployment: "d"}, "AZURE_OPENAI_API_KEY"},
		{"deployment", azureopenai.Options{Endpoint: "https://e", APIKey: "k"}, "AZURE_OPENAI_DEPLOYMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := azureopenai.New(tt.options)
			require.ErrorIs(t, err, azureopenai.ErrNotConfigured)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestClient_Complete_Text(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "example.openai.azure.com", r.URL.Host)
		require.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		require.Equal(t, azureopenai.DefaultAPIVersion, r.URL.Query().Get("api-version"))
		require.Equal(t, "test-key", r.Header.Get("Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.InDelta(t, 0.2, body["temperature"], 1e-9)
		require.InDelta(t, 0.9, body["top_p"], 1e-9)
		require.NotContains(t, body, "tools")

		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		require.Equal(t, "system", msgs[0].(map[string]any)["role"])
		require.Equal(t, "user", msgs[1].(map[string]any)["role"])

		return jsonResponse(http.StatusOK, `{
			"id":"cmpl-1","object":"chat.completion","created":1,"model":"gpt-4o",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Привіт!"}}],
			"usage":{"prompt_tokens":10,"completion_tokens":2,"total_tokens":12}
		}`), nil
	})

	resp, err := c.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "be nice"},
			{Role: llm.RoleUser, Content: "hi"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", resp.Model)
	require.EqualValues(t, 12, resp.TotalTokens)
	require.Equal(t, "Привіт!", resp.FirstChoice().Message.Content)
	require.Equal(t, "stop", resp.FirstChoice().FinishReason)
}

func TestClient_Complete_ToolCalls(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		tools := body["tools"].([]any)
		require.Len(t, tools, 1)
		fn := tools[0].(map[string]any)["function"].(map[string]any)
		require.Equal(t, "get_balance", fn["name"])
		require.Equal(t, "Balance", fn["description"])

		msgs := body["messages"].([]any)
		require.Len(t, msgs, 3)
		assistant := msgs[1].(map[string]any)
		require.Equal(t, "assistant", assistant["role"])
		calls := assistant["tool_calls"].([]any)
		require.Equal(t, "call_1", calls[0].(map[string]any)["id"])
		tool := msgs[2].(map[string]any)
		require.Equal(t, "tool", tool["role"])
		require.Equal(t, "call_1", tool["tool_call_id"])

		return jsonResponse(http.StatusOK, `{
			"id":"cmpl-2","object":"chat.completion","created":1,"model":"gpt-4o",
			"choices":[{"index":0,"finish_reason":"tool_calls","message":{"role":"assistant","content":null,
				"tool_calls":[{"id":"call_2","type":"function","function":{"name":"get_exchange","arguments":"{}"}}]}}],
			"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}
		}`), nil
	})

	resp, err := c.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "balance?"},
			{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "get_balance", Arguments: "{}"}}},
			{Role: llm.RoleTool, ToolCallID: "call_1", Content: "100 UAH"},
		},
		Tools: []llm.Tool{{
			Name:        "get_balance",
			Description: "Balance",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		}},
	})
	require.NoError(t, err)
	require.Equal(t, []llm.ToolCall{{ID: "call_2", Name: "get_exchange", Arguments: "{}"}},
		resp.FirstChoice().Message.ToolCalls)
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		status int
		kind   serrors.Kind
	}{
		{http.StatusTooManyRequests, serrors.ErrRateLimited},
		{http.StatusUnauthorized, serrors.ErrUnauthorized},
		{http.StatusNotFound, serrors.ErrNotFound},
		{http.StatusInternalServerError, serrors.ErrUnavailable},
		{http.StatusBadRequest, serrors.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, `{"error":{"message":"nope","type":"error","code":"x"}}`), nil
			})

			_, err := c.Complete(context.Background(), llm.Request{
				Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
			})
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

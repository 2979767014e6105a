// Package azureopenai provides an llm.Client backed by Azure OpenAI chat
// completions through the official openai-go SDK.
package azureopenai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"

	"gateway/internal/config"
	"gateway/pkg/llm"
	"gateway/pkg/serrors"
)

// DefaultAPIVersion is the Azure OpenAI REST API version used when none is configured.
const DefaultAPIVersion = "2024-02-15-preview"

// ErrNotConfigured is returned by New when a required setting is missing.
var ErrNotConfigured = serrors.NewKind("LLM_NOT_CONFIGURED")

// Options configure the Azure OpenAI deployment and sampling parameters.
type Options struct {
	Endpoint    string
	APIKey      string
	Deployment  string
	APIVersion  string
	Temperature float64
	TopP        float64
	// MaxTokens applies to requests that do not set their own limit. Zero
	// leaves the limit to the service.
	MaxTokens  int64
	Timeout    time.Duration
	MaxRetries int
	// HTTPClient overrides the SDK default transport.
	HTTPClient *http.Client
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Endpoint:    cfg.AzureOpenAI.Endpoint,
		APIKey:      cfg.AzureOpenAI.APIKey,
		Deployment:  cfg.AzureOpenAI.Deployment,
		APIVersion:  cfg.AzureOpenAI.APIVersion,
		Temperature: cfg.AzureOpenAI.Temperature,
		TopP:        cfg.AzureOpenAI.TopP,
		MaxTokens:   cfg.AzureOpenAI.MaxTokens,
		Timeout:     cfg.AzureOpenAI.Timeout,
		MaxRetries:  cfg.AzureOpenAI.MaxRetries,
	}
}

// Client is safe for concurrent use.
type Client struct {
	client  openai.Client
	options Options
}

var _ llm.Client = (*Client)(nil)

// New validates options and builds a Client.
func New(options Options) (*Client, error) {
	if options.Endpoint == "" {
		return nil, serrors.With(ErrNotConfigured, "AZURE_OPENAI_ENDPOINT is not configured")
	}
	if options.APIKey == "" {
		return nil, serrors.With(ErrNotConfigured, "AZURE_OPENAI_API_KEY is not configured")
	}
	if options.Deployment == "" {
		return nil, serrors.With(ErrNotConfigured, "AZURE_OPENAI_DEPLOYMENT is not configured")
	}
	if options.APIVersion == "" {
		options.APIVersion = DefaultAPIVersion
	}

	opts := []option.RequestOption{
		azure.WithEndpoint(options.Endpoint, options.APIVersion),
		azure.WithAPIKey(options.APIKey),
		option.WithMaxRetries(options.MaxRetries),
	}
	if options.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(options.Timeout))
	}
	if options.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(options.HTTPClient))
	}

	return &Client{
		client:  openai.NewClient(opts...),
		options: options,
	}, nil
}

// Complete sends req to the configured deployment.
func (c *Client) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.options.Deployment),
		Messages:    toMessageParams(req.Messages),
		Temperature: openai.Float(c.options.Temperature),
		TopP:        openai.Float(c.options.TopP),
	}
	if len(req.Tools) > 0 {
		params.Tools = toToolParams(req.Tools)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.options.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(maxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	return fromCompletion(resp), nil
}

func toMessageParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case llm.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))

				continue
			}
			out = append(out, assistantToolCallMessage(m))
		case llm.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}

	return out
}

func assistantToolCallMessage(m llm.Message) openai.ChatCompletionMessageParamUnion {
	calls := make([]openai.ChatCompletionMessageToolCallUnionParam, 0, len(m.ToolCalls))
	for _, tc := range m.ToolCalls {
		calls = append(calls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: tc.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			},
		})
	}

	assistant := &openai.ChatCompletionAssistantMessageParam{ToolCalls: calls}
	if m.Content != "" {
		assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: openai.String(m.Content),
		}
	}

	return openai.ChatCompletionMessageParamUnion{OfAssistant: assistant}
}

func toToolParams(tools []llm.Tool) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		def := openai.FunctionDefinitionParam{
			Name:       t.Name,
			Parameters: openai.FunctionParameters(t.Parameters),
		}
		if t.Description != "" {
			def.Description = openai.String(t.Description)
		}
		out = append(out, openai.ChatCompletionFunctionTool(def))
	}

	return out
}

func fromCompletion(resp *openai.ChatCompletion) *llm.Completion {
	out := &llm.Completion{
		Model:       resp.Model,
		TotalTokens: resp.Usage.TotalTokens,
		Choices:     make([]llm.Choice, 0, len(resp.Choices)),
	}
	for _, ch := range resp.Choices {
		msg := llm.Message{
			Role:    llm.RoleAssistant,
			Content: ch.Message.Content,
		}
		for _, tc := range ch.Message.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, llm.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
		out.Choices = append(out.Choices, llm.Choice{
			Message:      msg,
			FinishReason: string(ch.FinishReason),
		})
	}

	return out
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return serrors.Wrap(serrors.ErrRateLimited, err, "azure openai rate limited")
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return serrors.Wrap(serrors.ErrUnauthorized, err, "azure openai rejected credentials")
		case apiErr.StatusCode == http.StatusNotFound:
			return serrors.Wrap(serrors.ErrNotFound, err, "azure openai deployment not found")
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return serrors.Wrap(serrors.ErrUnavailable, err, "azure openai unavailable")
		default:
			return serrors.Wrap(serrors.ErrUpstream, err, "azure openai request failed")
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, err, "azure openai timed out")
	}

	return serrors.Wrap(serrors.ErrUpstream, err, "could not call azure openai")
}

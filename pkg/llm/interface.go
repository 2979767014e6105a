// Package llm describes the chat completion capability the orchestrator needs,
// independent of the provider SDK.
//
//go:generate mockgen -package mockllm -source=interface.go -destination=mock/mockllm.go *
package llm

import "context"

// Role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is a single chat message sent to or received from the model.
type Message struct {
	Role    Role
	Content string
	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall
	// ToolCallID links a tool message to the call it answers.
	ToolCallID string
}

// Tool is a function the model may call. Parameters is a JSON schema.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is a chat completion request. A zero MaxTokens leaves the limit to
// the provider.
type Request struct {
	Messages  []Message
	Tools     []Tool
	MaxTokens int64
}

// Choice is one completion alternative.
type Choice struct {
	Message      Message
	FinishReason string
}

// Completion is the provider answer to a Request.
type Completion struct {
	Choices     []Choice
	Model       string
	TotalTokens int64
}

// FirstChoice returns the first choice, or nil when there is none.
func (c *Completion) FirstChoice() *Choice {
	if c == nil || len(c.Choices) == 0 {
		return nil
	}

	return &c.Choices[0]
}

// Client generates chat completions.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

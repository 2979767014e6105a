package tools

import (
	"context"

	"gateway/pkg/domain"
	"gateway/pkg/llm"
)

// Executor exposes the tools to the orchestrator.
//
//go:generate mockgen -package mocktools -source=interface.go -destination=mock/mocktools.go *
type Executor interface {
	// Schemas returns the function definitions offered to the model.
	Schemas() []llm.Tool
	// Execute runs the named tool with JSON encoded arguments.
	Execute(ctx context.Context,
		name string,
		arguments string,
		state *domain.Conversation,
		language string) (Output, error)
}

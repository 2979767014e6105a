package tools

import (
	"context"

	"gateway/pkg/domain"
	"gateway/pkg/llm"
)

// functionTool asks the chatbot backend to run a function it already
// implements, without any parameter.
type functionTool struct {
	name        string
	description string
}

// NewExchangeTool returns get_exchange.
func NewExchangeTool() Tool {
	return functionTool{
		name:        "get_exchange",
		description: "Request the legacy chatbot backend to send current bank exchange rate to client.",
	}
}

// NewBalanceTool returns get_balance.
func NewBalanceTool() Tool {
	return functionTool{
		name: "get_balance",
		description: "Request the legacy chatbot backend to find and send current account balance to client. " +
			"If user ask about balances, or want to get all balances, use this tool.",
	}
}

func (t functionTool) Definition() llm.Tool {
	return llm.Tool{
		Name:        t.name,
		Description: t.description,
		Parameters:  emptyParameters(),
	}
}

func (t functionTool) Execute(context.Context, Invocation) (Result, error) {
	return Result{Event: domain.EventFunction, Data: t.name}, nil
}

func emptyParameters() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"required":             []string{},
		"additionalProperties": false,
	}
}

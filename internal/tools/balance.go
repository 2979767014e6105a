package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gateway/pkg/bankapi"
	"gateway/pkg/domain"
	"gateway/pkg/llm"
	"gateway/pkg/logger"
)

type specificBalanceTool struct {
	bank bankapi.Client
}

// NewSpecificBalanceTool returns get_specific_balance. Every failure falls back
// to asking the chatbot backend for the generic balance flow.
func NewSpecificBalanceTool(bank bankapi.Client) Tool {
	return specificBalanceTool{bank: bank}
}

func (specificBalanceTool) Definition() llm.Tool {
	return llm.Tool{
		Name: "get_specific_balance",
		Description: "Request the list with all user accounts and balances to give user answers about " +
			"specific account and balance. with LLM processing. Use this tool if user ask you about " +
			"specific balance, or mentioned IBAN.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"client_id": map[string]any{
					"type":        "integer",
					"description": "Identifier of the client in bank database",
				},
				"account": map[string]any{
					"type":        "string",
					"description": "Account number or IBAN the user is asking about.",
				},
				"mode": map[string]any{
					"type":        "integer",
					"description": "Identifier of kind of search for account/balance search.",
				},
			},
			"required":             []string{"client_id"},
			"additionalProperties": false,
		},
	}
}

func (t specificBalanceTool) Execute(ctx context.Context, inv Invocation) (Result, error) {
	generic := Result{Event: domain.EventFunction, Data: "get_balance"}

	clientID, ok := inv.Args.Int("client_id")
	if !ok {
		logger.Warn(ctx, "get_specific_balance called without a usable client_id",
			zap.String("clientID", inv.Args.String("client_id")))

		return generic, nil
	}
	mode, _ := inv.Args.Int("mode")
	account := bankapi.NormalizeAccount(inv.Args.String("account"))

	accounts, err := t.bank.Accounts(ctx, clientID, mode)
	if err != nil {
		logger.Warn(ctx, "could not fetch accounts for specific balance",
			zap.Int64("clientID", clientID),
			zap.Error(err))

		return generic, nil
	}
	if len(accounts) == 0 {
		return generic, nil
	}

	if account == "" {
		return Result{Event: domain.EventSend, Data: accounts, PostProcess: true}, nil
	}

	msgs := messagesFor(inv.Language)
	for _, a := range accounts {
		if a.IBAN() != account {
			continue
		}

		return Result{
			Event: domain.EventSend,
			Data: format(msgs.balance,
				"{account}", account,
				"{amount}", renderAmount(a),
				"{currency}", a.Currency()),
		}, nil
	}

	return Result{
		Event: domain.EventSend,
		Data:  format(msgs.accountNotFound, "{account}", account),
	}, nil
}

// renderAmount prints amountRest as the bank sent it. Only decoded floats go
// through decimal, which never switches to exponent notation.
func renderAmount(a bankapi.Account) string {
	switch v := a["amountRest"].(type) {
	case json.Number:
		return v.String()
	case string:
		return strings.TrimSpace(v)
	}
	if d, isNumber := a.Amount(); isNumber {
		return d.String()
	}

	return fmt.Sprint(a["amountRest"])
}

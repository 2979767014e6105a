package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"gateway/pkg/bankapi"
	"gateway/pkg/domain"
	"gateway/pkg/llm"
	"gateway/pkg/logger"
)

// clientIDKeys are looked up in the conversation when the model does not pass
// a client id.
var clientIDKeys = []string{"client_id", "customerid", "customer_id"} //nolint: gochecknoglobals

type accountsInfoTool struct {
	bank bankapi.Client
}

// NewAccountsInfoTool returns get_client_accounts_info.
func NewAccountsInfoTool(bank bankapi.Client) Tool {
	return accountsInfoTool{bank: bank}
}

func (accountsInfoTool) Definition() llm.Tool {
	return llm.Tool{
		Name: "get_client_accounts_info",
		Description: "Fetch all accounts for a client. Call this first if accountid is unknown " +
			"when preparing a statement.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"client_id": map[string]any{
					"type":        "integer",
					"description": "Numeric client identifier in the bank system.",
				},
			},
			"required":             []string{},
			"additionalProperties": false,
		},
	}
}

func (t accountsInfoTool) Execute(ctx context.Context, inv Invocation) (Result, error) {
	msgs := messagesFor(inv.Language)

	clientID, ok := resolveClientID(inv.Args, inv.State)
	if !ok {
		logger.Warn(ctx, "get_client_accounts_info called without a client id")

		return Result{Event: domain.EventSend, Data: msgs.clientIDRequired}, nil
	}

	accounts, err := t.bank.Accounts(ctx, clientID, 0)
	if err != nil {
		logger.Warn(ctx, "could not fetch client accounts",
			zap.Int64("clientID", clientID),
			zap.Error(err))

		return Result{Event: domain.EventSend, Data: msgs.accountsFailed}, nil
	}

	stored := make([]any, 0, len(accounts))
	for _, a := range accounts {
		stored = append(stored, map[string]any(a))
	}

	return Result{
		Event:       domain.EventSend,
		Data:        accounts,
		PostProcess: true,
		Updates: domain.Updates{
			domain.UpdateKeySlots: map[string]any{
				"accounts":  stored,
				"client_id": clientID,
			},
		},
	}, nil
}

func resolveClientID(args Args, state *domain.Conversation) (int64, bool) {
	if args.Has("client_id") {
		return args.Int("client_id")
	}
	if state == nil {
		return 0, false
	}
	// each key is tried in slots then metadata before moving to the next key.
	// An empty slot value (nil, "", 0, false) defers to metadata.
	for _, key := range clientIDKeys {
		stored := state.Slots[key]
		if isEmptyValue(stored) {
			stored = state.Metadata[key]
		}
		if stored == nil {
			continue
		}
		if id, ok := toInt(stored); ok {
			return id, true
		}
	}

	return 0, false
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()

		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	}

	return false
}

// statementDateLayouts are tried in order when validating a statement period.
var statementDateLayouts = []string{ //nolint: gochecknoglobals
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

type statementTool struct {
	now func() time.Time
}

// NewStatementTool returns get_statement. now is used to reject future dates
// and defaults to time.Now.
func NewStatementTool(now func() time.Time) Tool {
	if now == nil {
		now = time.Now
	}

	return statementTool{now: now}
}

func (statementTool) Definition() llm.Tool {
	return llm.Tool{
		Name: "get_statement",
		Description: "Emit a function call instruction for the chatbot backend. If user asks about a bank " +
			"statement/extract, use this tool. If accountid is unknown, first call get_client_accounts_info " +
			"to retrieve accounts.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"accountid": map[string]any{
					"type":        "integer",
					"description": "Client identifier inside bank system",
				},
				"datefrom": map[string]any{
					"type":   "string",
					"format": "date-time",
					"description": "Starting date/time for bank statement " +
						"(ISO 8601 string, e.g. 2024-12-01 or 2024-12-01T00:00:00Z)",
				},
				"dateinto": map[string]any{
					"type":   "string",
					"format": "date-time",
					"description": "Ending date/time for bank statement " +
						"(ISO 8601 string, e.g. 2024-12-31 or 2024-12-31T23:59:59Z)",
				},
			},
			"required":             []string{"accountid", "datefrom", "dateinto"},
			"additionalProperties": false,
		},
	}
}

func (t statementTool) Execute(ctx context.Context, inv Invocation) (Result, error) {
	accountID := inv.Args.String("accountid")
	from := inv.Args.String("datefrom")
	into := inv.Args.String("dateinto")

	logger.Info(ctx, "get_statement requested",
		zap.String("accountID", accountID),
		zap.String("dateFrom", from),
		zap.String("dateInto", into))

	if !t.validPeriod(from, into, location(inv.State)) {
		return Result{Event: domain.EventSend, Data: messagesFor(inv.Language).invalidPeriod}, nil
	}

	return Result{
		Event: domain.EventFunction,
		Data:  fmt.Sprintf("get_statement(accountid=%s,datefrom=%s,dateinto=%s)", accountID, from, into),
	}, nil
}

// validPeriod rejects a start after the end and any date after today. Dates
// that cannot be parsed are left for the chatbot backend to judge.
func (t statementTool) validPeriod(from, into string, loc *time.Location) bool {
	today := dayOf(t.now().In(loc))

	fromDate, fromOK := parseStatementDate(from, loc)
	intoDate, intoOK := parseStatementDate(into, loc)

	if fromOK && dayOf(fromDate).After(today) {
		return false
	}
	if intoOK && dayOf(intoDate).After(today) {
		return false
	}
	if fromOK && intoOK && fromDate.After(intoDate) {
		return false
	}

	return true
}

func parseStatementDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range statementDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed.In(loc), true
		}
	}

	return time.Time{}, false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// location returns the conversation timezone, or UTC when unknown.
func location(state *domain.Conversation) *time.Location {
	if state == nil {
		return time.UTC
	}
	name := state.StringFrom("timezone")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}

package orchestrator

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"gateway/pkg/domain"
)

// SystemPrompt frames every completion.
const SystemPrompt = "You are a compliant digital banking assistant serving retail clients in Ukraine. " +
	"Respond only using Ukrainian language. " +
	"If the request requires back-end actions, decide whether to call an available tool. " +
	"Never invent account information. When unsure, ask follow-up questions. " +
	"If the user asks about bank branches, first ask which city they are looking for. " +
	"If user ask same question/information about his bank account, and you already have it in history " +
	"or memory, don't use those info, always use tools to get most recent information. " +
	"When tools are available, prefer calling them immediately over promising future actions. " +
	"For bank statements/extracts: if accountid is unknown, call get_client_accounts_info to fetch " +
	"accounts, then choose the correct account (by currency/IBAN fragment) and call get_statement with " +
	"accountid and date range in the SAME turn. If you have all the info to use statement tool, prompt " +
	"user with all the info to get permission to use tool. " +
	"Do not use future dates for statements. If the user requests a future date range, ask them to " +
	"provide a valid period up to today. " +
	"If the user only expresses thanks/acknowledgment without a new request, reply politely and do not " +
	"call tools."

const userContentPreamble = "Below is the latest customer input and known context.\n"

// isoLayout matches an ISO 8601 timestamp with microseconds and a numeric offset.
const isoLayout = "2006-01-02T15:04:05.000000-07:00"

type userContent struct {
	ChatID    string         `json:"chat_id"`
	UserID    *string        `json:"user_id"`
	MessageID *string        `json:"message_id"`
	Language  string         `json:"language"`
	Slots     map[string]any `json:"slots"`
	Text      string         `json:"text"`
	Timestamp timestamp      `json:"timestamp"`
}

type timestamp struct {
	ISO      string `json:"iso"`
	Timezone string `json:"timezone"`
}

// renderUserContent describes the inbound message and the known context as a
// fenced JSON document for the model.
func renderUserContent(msg domain.ChatbotMessage, state *domain.Conversation, language string, now time.Time) string {
	tzName, _ := state.Metadata["timezone"].(string)
	if tzName == "" {
		tzName = msg.Context.Timezone
	}
	loc := loadLocation(tzName)

	slots := state.Slots
	if slots == nil {
		slots = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(userContent{
		ChatID:    msg.ChatID,
		UserID:    optional(msg.UserID),
		MessageID: optional(msg.MessageID),
		Language:  language,
		Slots:     slots,
		Text:      msg.Text,
		Timestamp: timestamp{
			ISO:      now.In(loc).Format(isoLayout),
			Timezone: loc.String(),
		},
	})
	if err != nil {
		// unreachable with slots decoded from JSON
		return userContentPreamble + msg.Text
	}

	return userContentPreamble + "```json\n" + strings.TrimRight(buf.String(), "\n") + "\n```"
}

func loadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

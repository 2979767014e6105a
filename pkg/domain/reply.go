package domain

// Event tells the legacy chatbot what to do with an AgentReply.
type Event string

const (
	// EventSend asks the chatbot to deliver Data to the end user as text.
	EventSend Event = "send"
	// EventFunction asks the chatbot backend to run the function named (and
	// possibly parameterized) in Data, e.g. "get_balance".
	EventFunction Event = "function"
)

// AgentReply is the structured response returned to the chatbot.
type AgentReply struct {
	Event Event  `json:"event"`
	Data  string `json:"data"`
	// ContextUpdates are merged into the stored chat state and never leave
	// the gateway.
	ContextUpdates Updates `json:"-"`
}

// IsText reports whether the reply is a non-empty message for the end user.
func (r AgentReply) IsText() bool {
	return r.Event == EventSend && r.Data != ""
}

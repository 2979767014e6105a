package orchestrator

import (
	"context"

	"gateway/pkg/domain"
)

//go:generate mockgen -package mockorchestrator -source=interface.go -destination=mock/mockorchestrator.go *
type Agent interface {
	// HandleTurn answers a chatbot message using the stored conversation. Only
	// a conversation store failure is returned as an error; everything else
	// ends in a fallback reply.
	HandleTurn(ctx context.Context, msg domain.ChatbotMessage) (domain.AgentReply, error)
	// AnswerDirect answers a standalone question without tools or state.
	AnswerDirect(ctx context.Context, q domain.DirectQuestion) domain.AgentReply
}

package v1handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"gateway/pkg/domain"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
)

// maxBodyBytes bounds inbound request bodies.
const maxBodyBytes = 1 << 20

// ReplyResponse is the body returned to the chatbot.
type ReplyResponse struct {
	Event domain.Event `json:"event"`
	Data  string       `json:"data"`
}

// validatable is implemented by request payloads.
type validatable interface {
	Validate() error
}

func decode[T validatable](w http.ResponseWriter, r *http.Request) (T, error) {
	var payload T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return payload, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}
	if err := payload.Validate(); err != nil {
		return payload, serrors.Wrap(serrors.ErrBadRequest, err, "%s", err.Error())
	}

	return payload, nil
}

// Turn handles a chatbot message and answers with the agent reply.
func (h Handler) Turn(w http.ResponseWriter, r *http.Request) {
	msg, err := decode[domain.ChatbotMessage](w, r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	ctx := logger.WithFields(r.Context(), zap.String("chatID", msg.ChatID))
	logger.Info(ctx, "received chatbot turn", zap.String("messageID", msg.MessageID))

	reply, err := h.deps.Agent.HandleTurn(ctx, msg)
	if err != nil {
		h.WriteError(w, r.WithContext(ctx), err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, ReplyResponse{Event: reply.Event, Data: reply.Data})
}

// DirectAnswer answers a standalone question.
func (h Handler) DirectAnswer(w http.ResponseWriter, r *http.Request) {
	q, err := decode[domain.DirectQuestion](w, r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	reply := h.deps.Agent.AnswerDirect(r.Context(), q)
	writeJSON(r.Context(), w, http.StatusOK, ReplyResponse{Event: reply.Event, Data: reply.Data})
}

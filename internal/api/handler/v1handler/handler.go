// Package v1handler implements the version 1 chatbot HTTP endpoints.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gateway/internal/orchestrator"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
)

// Deps are the services backing the handlers.
type Deps struct {
	Agent orchestrator.Agent
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes on mux behind sec.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	mux.Handle("POST /v1/chatbot/turn", sec.Middleware(http.HandlerFunc(h.Turn)))
	mux.Handle("POST /v1/chatbot/direct-answer", sec.Middleware(http.HandlerFunc(h.DirectAnswer)))
}

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

type errorMapping struct {
	status  int
	message string
}

var errorMappings = map[serrors.Kind]errorMapping{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrForbidden:    {http.StatusForbidden, "forbidden"},
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrConflict:     {http.StatusConflict, "conflict"},
	serrors.ErrTimeout:      {http.StatusGatewayTimeout, "request timed out"},
	serrors.ErrUnavailable:  {http.StatusServiceUnavailable, "service unavailable"},
	serrors.ErrRateLimited:  {http.StatusTooManyRequests, "too many requests"},
	serrors.ErrUpstream:     {http.StatusBadGateway, "upstream error"},
	serrors.ErrInternal:     {http.StatusInternalServerError, "internal error"},
}

// NewError maps err to a status code and a response body. Errors without a
// known kind become internal errors and their text is not exposed.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	mapping := errorMappings[serrors.ErrInternal]
	code := serrors.ErrInternal.Error()
	message := ""

	if kind := serrors.KindOf(err); kind != nil {
		if m, ok := errorMappings[kind]; ok {
			mapping = m
			code = kind.Error()
		}
		var semantic *serrors.Error
		if errors.As(err, &semantic) && code != serrors.ErrInternal.Error() {
			message = semantic.Message()
		}
	}
	if message == "" {
		message = mapping.message
	}

	if mapping.status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorStatusCode{
		StatusCode: mapping.status,
		Response:   ErrorResponse{Code: code, Message: message},
	}
}

// WriteError writes err as a JSON error response.
func (h Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

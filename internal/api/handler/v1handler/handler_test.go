package v1handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gateway/internal/api/handler/v1handler"
	mockorchestrator "gateway/internal/orchestrator/mock"
	"gateway/pkg/domain"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	// Pass the Kind sentinel directly
	res := h.NewError(ctx, serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Response.Code)
	require.Equal(t, "resource not found", res.Response.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	err := serrors.With(serrors.ErrBadRequest, "invalid payload: missing chat_id")
	res := h.NewError(ctx, err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Response.Code)
	require.Equal(t, "invalid payload: missing chat_id", res.Response.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	cause := errors.New("bad token")
	err := serrors.Wrap(serrors.ErrUnauthorized, cause, "unauthorized")
	res := h.NewError(ctx, err)
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, serrors.ErrUnauthorized.Error(), res.Response.Code)
	// Should include provided message, not the cause
	require.Equal(t, "unauthorized", res.Response.Message)
}

func TestNewError_InternalKind_HidesMessage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, serrors.With(serrors.ErrInternal, "db password is wrong"))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Response.Code)
	require.Equal(t, "internal error", res.Response.Message)
}

func TestNewError_WrappedUnavailable(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(),
		errors.Join(errors.New("context"), serrors.KindOnly(serrors.ErrUnavailable)))
	require.Equal(t, 503, res.StatusCode)
	require.Equal(t, "UNAVAILABLE", res.Response.Code)
	require.Equal(t, "service unavailable", res.Response.Message)
}

func newMux(t *testing.T) (*http.ServeMux, *mockorchestrator.MockAgent) {
	t.Helper()

	ctrl := gomock.NewController(t)
	agent := mockorchestrator.NewMockAgent(ctrl)
	sec, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{})
	require.NoError(t, err)

	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Agent: agent}).Register(mux, sec)

	return mux, agent
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestTurn(t *testing.T) {
	mux, agent := newMux(t)

	agent.EXPECT().HandleTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg domain.ChatbotMessage) (domain.AgentReply, error) {
			require.Equal(t, "chat-1", msg.ChatID)
			require.Equal(t, "Який мій баланс?", msg.Text)
			require.Equal(t, "uk", msg.Context.Language)
			require.True(t, msg.IsPrivate)

			return domain.AgentReply{
				Event:          domain.EventFunction,
				Data:           "get_balance",
				ContextUpdates: domain.Updates{"slots": map[string]any{"x": 1}},
			}, nil
		})

	rec := do(mux, http.MethodPost, "/v1/chatbot/turn", `{"chat_id":"chat-1","text":"Який мій баланс?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, map[string]any{"event": "function", "data": "get_balance"}, decodeBody(t, rec))
}

func TestTurn_BadRequests(t *testing.T) {
	mux, _ := newMux(t)

	for name, body := range map[string]string{
		"invalid json":    `{"chat_id":`,
		"missing chat id": `{"text":"hi"}`,
		"empty text":      `{"chat_id":"c","text":""}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/v1/chatbot/turn", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "BAD_REQUEST", decodeBody(t, rec)["code"])
		})
	}
}

func TestTurn_StoreUnavailable(t *testing.T) {
	mux, agent := newMux(t)

	agent.EXPECT().HandleTurn(gomock.Any(), gomock.Any()).
		Return(domain.AgentReply{}, serrors.With(serrors.ErrUnavailable, "conversation store is unavailable"))

	rec := do(mux, http.MethodPost, "/v1/chatbot/turn", `{"chat_id":"c","text":"hi"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, map[string]any{
		"code":    "UNAVAILABLE",
		"message": "conversation store is unavailable",
	}, decodeBody(t, rec))
}

func TestTurn_WrongMethod(t *testing.T) {
	mux, _ := newMux(t)

	rec := do(mux, http.MethodGet, "/v1/chatbot/turn", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDirectAnswer(t *testing.T) {
	mux, agent := newMux(t)

	agent.EXPECT().AnswerDirect(gomock.Any(), domain.DirectQuestion{Question: "Що таке IBAN?", Language: "uk"}).
		Return(domain.AgentReply{Event: domain.EventSend, Data: "Номер рахунку."})

	rec := do(mux, http.MethodPost, "/v1/chatbot/direct-answer", `{"question":"Що таке IBAN?","language":"uk"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"event": "send", "data": "Номер рахунку."}, decodeBody(t, rec))

	rec = do(mux, http.MethodPost, "/v1/chatbot/direct-answer", `{"question":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

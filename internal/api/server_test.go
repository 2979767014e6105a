package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gateway/internal/api"
	"gateway/internal/api/handler/v1handler"
	mockorchestrator "gateway/internal/orchestrator/mock"
	"gateway/pkg/domain"
	"gateway/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newHandler(t *testing.T, ready func(ctx context.Context) error) (http.Handler, *mockorchestrator.MockAgent) {
	t.Helper()

	agent := mockorchestrator.NewMockAgent(gomock.NewController(t))
	handler, err := api.NewHandler(api.Deps{
		Deps:  v1handler.Deps{Agent: agent},
		Ready: ready,
	}, api.Options{
		MetricsPath:    "/metrics",
		RequestTimeout: time.Second,
	})
	require.NoError(t, err)

	return handler, agent
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestHealth(t *testing.T) {
	handler, _ := newHandler(t, nil)

	rec := serve(handler, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(handler, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestHealth_NotReady(t *testing.T) {
	handler, _ := newHandler(t, func(context.Context) error { return errors.New("db down") })

	rec := serve(handler, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestServer_Routes(t *testing.T) {
	handler, agent := newHandler(t, nil)

	rec := serve(handler, http.MethodGet, "/specs/v1.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "/v1/chatbot/turn")

	rec = serve(handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(handler, http.MethodOptions, "/v1/chatbot/turn", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	agent.EXPECT().HandleTurn(gomock.Any(), gomock.Any()).
		Return(domain.AgentReply{Event: domain.EventSend, Data: "Вітаю!"}, nil)
	rec = serve(handler, http.MethodPost, "/v1/chatbot/turn", `{"chat_id":"c","text":"Привіт"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"event":"send","data":"Вітаю!"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_RequestTimeout(t *testing.T) {
	handler, agent := newHandler(t, nil)

	agent.EXPECT().AnswerDirect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.DirectQuestion) domain.AgentReply {
			<-ctx.Done()

			return domain.AgentReply{Event: domain.EventSend, Data: "late"}
		})

	rec := serve(handler, http.MethodPost, "/v1/chatbot/direct-answer", `{"question":"slow?"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"code":"TIMEOUT","message":"request timed out"}`, rec.Body.String())
}

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"gateway/pkg/logger"
)

type healthResponse struct {
	Status string `json:"status"`
}

func writeHealth(w http.ResponseWriter, status int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, healthResponse{Status: "alive"})
}

func readiness(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn(r.Context(), "readiness check failed", zap.Error(err))
				writeHealth(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})

				return
			}
		}

		writeHealth(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

package controller

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gateway/pkg/logger"
)

// DefaultRequestIDHeader is read for an incoming request ID when LoggerOptions
// names none.
const DefaultRequestIDHeader = "X-Request-Id"

// statusRecorder wraps http.ResponseWriter to capture the final HTTP status
// code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

// WriteHeader records the status code and forwards the call to the underlying writer.
func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// GetClientIP returns the originating client IP address. When trustedHeader
// is set (a proxy header such as X-Forwarded-For) its first entry wins,
// otherwise the connection's remote address is used.
func GetClientIP(r *http.Request, trustedHeader string) string {
	if trustedHeader != "" {
		// may contain multiple IPs: "client, proxy1, proxy2"
		if value := r.Header.Get(trustedHeader); value != "" {
			first, _, _ := strings.Cut(value, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

// CtxKey is a string-based type used for storing values in request contexts.
// It avoids collisions with other packages' context keys.
type CtxKey string

const (
	// RequestIDKey is the context key under which the current request ID is stored.
	RequestIDKey CtxKey = "RequestID"
)

// LoggerOptions configure WithLogger.
type LoggerOptions struct {
	// RequestIDHeader carries the caller's request ID and is echoed in responses.
	RequestIDHeader string
	// ClientIPHeader, when set, is trusted to carry the client IP.
	ClientIPHeader string
}

// RequestID returns the request ID stored by WithLogger.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)

	return id
}

// WithLogger returns a middleware that injects a request-scoped logger and
// request ID into the context, then logs a structured access log after the
// handler finishes.
func WithLogger(next http.Handler, opts LoggerOptions) http.Handler {
	header := opts.RequestIDHeader
	if header == "" {
		header = DefaultRequestIDHeader
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// set request ID
		requestID := r.Header.Get(header)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		w.Header().Set(header, requestID)

		clientIP := GetClientIP(r, opts.ClientIPHeader)

		// set logger
		ctx = logger.WithFields(ctx,
			zap.String(string(RequestIDKey), requestID),
			zap.String("client_ip", clientIP))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Info(ctx, "Access log",
			zap.Int("status_code", rec.status),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("user_agent", r.UserAgent()),
			zap.String("url", r.URL.String()),
			zap.String("referer", r.Referer()),
			zap.String("method", r.Method),
		)
	})
}

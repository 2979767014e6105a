// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the AI gateway.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"

	"gateway/internal/api/handler/v1handler"
	"gateway/internal/config"
	"gateway/pkg/controller"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// timeoutBody is written when a request exceeds RequestTimeout.
const timeoutBody = `{"code":"TIMEOUT","message":"request timed out"}`

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures the security handler (authn) for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// LoggerOptions configures request IDs and client IP detection in access logs.
	LoggerOptions controller.LoggerOptions

	// AppName is shown in the API documentation.
	AppName string
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	loggerOptions := controller.LoggerOptions{RequestIDHeader: cfg.HTTP.RequestIDHeader}
	if cfg.HTTP.TrustClientIPHeader {
		loggerOptions.ClientIPHeader = cfg.HTTP.ClientIPHeader
	}

	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		LoggerOptions:     loggerOptions,

		AppName:           cfg.AppName,
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps

	// Ready optionally reports whether the service dependencies are reachable.
	Ready func(ctx context.Context) error
}

// NewHandler builds the routed and wrapped handler served by NewServer:
// - health checks
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 chatbot routes
// - pprof endpoints for profiling
// The mux is wrapped with CORS and logging middlewares and a request timeout.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health/live", liveness)
	mux.HandleFunc("GET /health/ready", readiness(deps.Ready))

	// prometheus metrics server
	if opts.MetricsPath != "" {
		mux.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// v1 specs file
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	appName := opts.AppName
	if appName == "" {
		appName = "AI Gateway"
	}
	mux.Handle("/v1/docs/", v5emb.New(
		appName,
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	// v1 api
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1handler.New(deps.Deps).Register(mux, secHandler)

	// pprof
	mux.Handle(controller.DefaultPprofPrefix, controller.PprofMux(controller.DefaultPprofPrefix))

	// cors
	handler := controller.WithCORS(mux, opts.LoggerOptions.RequestIDHeader)

	// logger
	handler = controller.WithLogger(handler, opts.LoggerOptions)

	if opts.RequestTimeout > 0 {
		handler = withTimeout(handler, opts.RequestTimeout)
	}

	return handler, nil
}

// withTimeout applies http.TimeoutHandler and makes its JSON body go out as
// application/json instead of a sniffed text/plain.
func withTimeout(next http.Handler, timeout time.Duration) http.Handler {
	timeoutHandler := http.TimeoutHandler(next, timeout, timeoutBody)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timeoutHandler.ServeHTTP(jsonDefaultWriter{w}, r)
	})
}

// jsonDefaultWriter sets a JSON Content-Type on responses that carry none.
type jsonDefaultWriter struct {
	http.ResponseWriter
}

func (w jsonDefaultWriter) WriteHeader(code int) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers, exposes the request ID header and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger, request ID and client IP to the context and logs access info.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers under a prefix.
package controller

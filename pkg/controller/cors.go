package controller

import "net/http"

const corsAllowHeaders = "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control"

// WithCORS returns a middleware that sets permissive CORS headers on every
// response and short-circuits OPTIONS preflight requests with 204 No Content.
// requestIDHeader is both accepted from and exposed to browsers, so the docs
// UI can show the ID of a failed call. It defaults to DefaultRequestIDHeader.
func WithCORS(next http.Handler, requestIDHeader string) http.Handler {
	if requestIDHeader == "" {
		requestIDHeader = DefaultRequestIDHeader
	}
	allowHeaders := corsAllowHeaders + ", " + requestIDHeader

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		w.Header().Set("Access-Control-Expose-Headers", requestIDHeader)

		// handle preflight requests quickly
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

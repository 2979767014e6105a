package controller

import (
	"net/http"
	"net/http/pprof"
	"strings"
)

// DefaultPprofPrefix is where net/http/pprof expects its index to be served.
const DefaultPprofPrefix = "/debug/pprof/"

// PprofMux returns an http.ServeMux with the net/http/pprof handlers
// registered under prefix, so it can be mounted at the same prefix in the main
// HTTP server. Named profiles (heap, goroutine, ...) are served by the index.
func PprofMux(prefix string) *http.ServeMux {
	if prefix == "" {
		prefix = DefaultPprofPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	mux := http.NewServeMux()

	mux.HandleFunc(prefix, pprof.Index)
	mux.HandleFunc(prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"profile", pprof.Profile)
	mux.HandleFunc(prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"trace", pprof.Trace)

	return mux
}

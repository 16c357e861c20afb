// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/trailfeed/internal/domain/dataset"
	"github.com/okian/trailfeed/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// ResolveParam resolves the raw type query parameter. present is false
	// when the request did not carry one.
	ResolveParam(ctx context.Context, raw string, present bool) (dataset.Kind, []byte, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	fetchHandler  *FetchHandler

	allowOrigin string
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	allowOrigin string
	strict      bool
	logger      logger.Logger
}

// WithAllowOrigin sets the Access-Control-Allow-Origin value. Defaults to "*".
func WithAllowOrigin(origin string) Option {
	return func(o *serverOptions) {
		if origin != "" {
			o.allowOrigin = origin
		}
	}
}

// WithStrictStatus makes error responses carry 400/404/500 instead of 200.
func WithStrictStatus(strict bool) Option {
	return func(o *serverOptions) {
		o.strict = strict
	}
}

// WithLogger sets the logger used by the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{allowOrigin: "*"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider, o.logger),
		fetchHandler:  NewFetchHandler(deps, o.strict, o.logger),
		allowOrigin:   o.allowOrigin,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	wrap := func(h http.HandlerFunc, endpoint string) http.Handler {
		return RequestIDMiddleware(CORSMiddleware(s.allowOrigin, MetricsMiddleware(h, endpoint)))
	}

	mux.Handle("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/fetch_data", wrap(s.fetchHandler.HandleFetch, "fetch_data"))
	// Path of the original PHP endpoint, kept for existing frontends.
	mux.Handle("/fetch_data.php", wrap(s.fetchHandler.HandleFetch, "fetch_data"))
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeRaw writes body as-is with the JSON content type.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes {"error": msg} without a trailing newline.
func writeError(w http.ResponseWriter, status int, msg string) {
	body, err := json.Marshal(errorResponse{Error: msg})
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Internal error"}`)
	}
	writeRaw(w, status, body)
}

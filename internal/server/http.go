package server

import (
	"net/http"
	"time"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"resptx/internal/core/engine"
)

// HTTPServer extends the basic server with the transforming proxy
type HTTPServer struct {
	*Server
	engine   *engine.Engine
	provider http.Handler
}

// NewHTTPServer creates a new HTTP server in front of provider
func NewHTTPServer(addr string, eng *engine.Engine, provider http.Handler, log *zap.Logger) *HTTPServer {
	return &HTTPServer{
		Server:   New(addr, log),
		engine:   eng,
		provider: provider,
	}
}

// Handler returns the routing handler: health check locally, everything else upstream
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Everything else goes through the pipeline
	mux.Handle("/", s.provider)

	return mux
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	return s.Serve(s.Handler())
}

// handleHealth reports liveness and the active rule generation
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := []byte(`{"status":"ok"}`)

	if gen := s.engine.Current(); gen != nil {
		body, _ = sjson.SetBytes(body, "configured", true)
		body, _ = sjson.SetBytes(body, "generation", gen.ID)
		body, _ = sjson.SetBytes(body, "loaded_at", gen.LoadedAt.UTC().Format(time.RFC3339))
		body, _ = sjson.SetBytes(body, "rules.headers", gen.Config.Headers != nil)
		body, _ = sjson.SetBytes(body, "rules.json", gen.Config.JSON != nil)
	} else {
		body, _ = sjson.SetBytes(body, "configured", false)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

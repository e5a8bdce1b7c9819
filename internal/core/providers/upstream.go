package providers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"resptx/internal/core"
	"resptx/internal/core/engine"
	"resptx/internal/pkg/logger"
)

// UpstreamProvider forwards requests to the upstream and runs every response
// through the pipeline.
type UpstreamProvider struct {
	target   *url.URL
	pipeline *core.Pipeline
	proxy    *httputil.ReverseProxy
	log      *logger.Logger
}

// NewUpstreamProvider creates a provider for the configured upstream
func NewUpstreamProvider(upstream engine.Upstream, pipeline *core.Pipeline, log *logger.Logger) (*UpstreamProvider, error) {
	if log == nil {
		// Create a default logger if none provided
		zapLogger, _ := logger.New("info")
		log = logger.NewLogger(zapLogger)
	}

	target, err := parseBaseURL(upstream.BaseURL)
	if err != nil {
		return nil, err
	}

	p := &UpstreamProvider{
		target:   target,
		pipeline: pipeline,
		log:      log,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = upstream.Timeout

	p.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport:      transport,
		FlushInterval:  upstream.FlushInterval,
		ModifyResponse: p.modifyResponse,
		ErrorHandler:   p.errorHandler,
	}

	log.Info("proxying upstream", zap.String("upstream", p.ID()))
	return p, nil
}

// ID returns the upstream host as the provider identifier
func (p *UpstreamProvider) ID() string {
	return p.target.Host
}

// ServeHTTP proxies one exchange. The ResponseContext is created here so the
// latency covers the upstream round trip.
func (p *UpstreamProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	reqLog := p.log.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	reqLog.Debug("forwarding request")

	rc := core.NewResponseContext(r.Context(), reqLog.Logger)
	rc.RequestID = requestID

	p.proxy.ServeHTTP(w, r.WithContext(core.WithResponseContext(r.Context(), rc)))
}

// modifyResponse delivers the header event and hands the body to the pipeline stream
func (p *UpstreamProvider) modifyResponse(resp *http.Response) error {
	rc, ok := core.ResponseContextFrom(resp.Request.Context())
	if !ok {
		rc = core.NewResponseContext(resp.Request.Context(), p.log.Logger)
	}
	rc.StatusCode = resp.StatusCode

	p.pipeline.OnResponseHeaders(rc, &responseHeaders{resp: resp})
	resp.Body = newBodyStream(resp.Body, rc, p.pipeline)
	return nil
}

// errorHandler answers 502 when the upstream cannot be reached. The pipeline
// never sees these exchanges, so the access log entry is written here.
func (p *UpstreamProvider) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	log := p.log
	start := time.Now()
	body := []byte(`{}`)
	if rc, ok := core.ResponseContextFrom(r.Context()); ok {
		log = logger.NewLogger(rc.Log)
		start = rc.StartTime
		body, _ = sjson.SetBytes(body, "error.request_id", rc.RequestID)
	}
	log.Warn("upstream request failed", zap.Error(err))

	body, _ = sjson.SetBytes(body, "error.type", "upstream_error")
	body, _ = sjson.SetBytes(body, "error.message", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	if _, werr := w.Write(body); werr != nil {
		log.Error("failed to write error response", zap.Error(werr))
	}

	log.Info("Response Finished",
		zap.Duration("latency", time.Since(start)),
		zap.Int("status", http.StatusBadGateway),
	)
}

// parseBaseURL resolves "env:VAR" indirection and validates the result
func parseBaseURL(raw string) (*url.URL, error) {
	if envVar, ok := strings.CutPrefix(raw, "env:"); ok {
		raw = os.Getenv(envVar)
		if raw == "" {
			return nil, fmt.Errorf("upstream base_url: environment variable %s is empty", envVar)
		}
	}
	if raw == "" {
		return nil, errors.New("upstream base_url is not configured")
	}

	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base_url %q: %w", raw, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream base_url %q: scheme and host are required", raw)
	}
	return target, nil
}

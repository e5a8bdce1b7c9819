package processors

import (
	"errors"

	"go.uber.org/zap"

	"resptx/internal/core"
	"resptx/internal/core/engine"
	"resptx/internal/core/rules"
	"resptx/internal/core/transform"
)

const (
	contentLength = "Content-Length"
	contentType   = "Content-Type"
)

// Metadata keys set on the ResponseContext
const (
	MetadataGeneration      = "generation"
	MetadataBodyTransformed = "body_transformed"
	MetadataBodySkipReason  = "body_skip_reason"

	stateKey = "response-transformer.state"
)

// Reasons recorded under MetadataBodySkipReason
const (
	SkipNotJSON     = "not_json"
	SkipEmptyBody   = "empty_body"
	SkipInvalidBody = "invalid_body"
	SkipEncodeError = "encode_error"
	// SkipLengthDeclared means a Content-Length survived the header stage, so a
	// rewritten body would not match it.
	SkipLengthDeclared = "content_length_declared"
)

// bodyPhase is the per-response body state: waiting for the last chunk, or done.
type bodyPhase int

const (
	phaseAwaitingBody bodyPhase = iota
	phaseReady
)

// responseState pins the generation seen at header time for the rest of the response.
type responseState struct {
	config  *rules.Config
	headers core.HeaderAccessor
	phase   bodyPhase
}

// ResponseTransformer applies the active rule generation to every response.
type ResponseTransformer struct {
	engine   *engine.Engine
	priority int
}

// NewResponseTransformer creates the transformer processor
func NewResponseTransformer(e *engine.Engine) *ResponseTransformer {
	return &ResponseTransformer{
		engine:   e,
		priority: 100,
	}
}

// Name returns the processor name
func (r *ResponseTransformer) Name() string {
	return "response-transformer"
}

// Priority returns the execution priority
func (r *ResponseTransformer) Priority() int {
	return r.priority
}

// OnResponseHeaders strips a stale Content-Length when the body may be rewritten,
// then applies the header rules.
func (r *ResponseTransformer) OnResponseHeaders(ctx *core.ResponseContext, headers core.HeaderAccessor) {
	gen := r.engine.Current()
	if gen == nil {
		ctx.Log.Warn("no transform configuration loaded, passing response through")
		return
	}

	cfg := gen.Config
	ctx.SetMetadata(MetadataGeneration, gen.ID)
	ctx.SetMetadata(stateKey, &responseState{config: cfg, headers: headers})

	if cfg.JSON != nil && isJSONResponse(headers) {
		ctx.Log.Debug("removing content-length header for body transformations")
		headers.Remove(contentLength)
	}

	if cfg.Headers != nil {
		transform.New(ctx.Log).Headers(cfg.Headers, headers)

		// header rules may have turned the response into JSON
		if _, declared := headers.Get(contentLength); declared && cfg.JSON != nil && isJSONResponse(headers) {
			ctx.Log.Debug("removing content-length header after header transformations")
			headers.Remove(contentLength)
		}
	}
}

// OnResponseBody holds the body until the last chunk, then rewrites it.
func (r *ResponseTransformer) OnResponseBody(ctx *core.ResponseContext, body core.BodyAccessor, endOfStream bool) core.Action {
	st := stateOf(ctx)
	if st == nil || st.config.JSON == nil || st.phase == phaseReady {
		return core.ActionContinue
	}

	if !isJSONResponse(st.headers) {
		ctx.Log.Debug("response is not JSON, skipping body transformations")
		st.phase = phaseReady
		ctx.SetMetadata(MetadataBodySkipReason, SkipNotJSON)
		return core.ActionContinue
	}

	if _, declared := st.headers.Get(contentLength); declared {
		ctx.Log.Warn("content-length is still declared, skipping body transformations")
		st.phase = phaseReady
		ctx.SetMetadata(MetadataBodySkipReason, SkipLengthDeclared)
		return core.ActionContinue
	}

	if !endOfStream {
		return core.ActionPause
	}
	st.phase = phaseReady

	data := body.Body()
	if len(data) == 0 {
		ctx.Log.Debug("empty response body, skipping body transformations")
		ctx.SetMetadata(MetadataBodySkipReason, SkipEmptyBody)
		return core.ActionContinue
	}

	out, changed, err := transform.New(ctx.Log).Body(st.config.JSON, data)
	if err != nil {
		if errors.Is(err, transform.ErrEncode) {
			ctx.Log.Error("failed to re-serialize JSON response body, forwarding original", zap.Error(err))
			ctx.SetMetadata(MetadataBodySkipReason, SkipEncodeError)
		} else {
			ctx.Log.Warn("invalid JSON response body, forwarding original", zap.Error(err))
			ctx.SetMetadata(MetadataBodySkipReason, SkipInvalidBody)
		}
		return core.ActionContinue
	}

	ctx.SetMetadata(MetadataBodyTransformed, changed)
	if changed {
		body.SetBody(out)
	}
	return core.ActionContinue
}

func stateOf(ctx *core.ResponseContext) *responseState {
	v, ok := ctx.GetMetadata(stateKey)
	if !ok {
		return nil
	}
	st, _ := v.(*responseState)
	return st
}

func isJSONResponse(headers core.HeaderAccessor) bool {
	ct, ok := headers.Get(contentType)
	return ok && transform.IsJSONMimeType(ct)
}

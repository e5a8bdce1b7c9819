package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ResponseContext carries the state of one in-flight response.
// It is owned by the goroutine serving that response and is not safe for concurrent use.
type ResponseContext struct {
	context.Context
	RequestID  string
	StatusCode int
	StartTime  time.Time
	Log        *zap.Logger

	metadata map[string]interface{}
}

// NewResponseContext creates a new ResponseContext
func NewResponseContext(ctx context.Context, logger *zap.Logger) *ResponseContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseContext{
		Context:   ctx,
		StartTime: time.Now(),
		Log:       logger,
		metadata:  make(map[string]interface{}),
	}
}

// SetMetadata sets a metadata value
func (c *ResponseContext) SetMetadata(key string, value interface{}) {
	c.metadata[key] = value
}

// GetMetadata gets a metadata value
func (c *ResponseContext) GetMetadata(key string) (interface{}, bool) {
	v, ok := c.metadata[key]
	return v, ok
}

// Metadata returns a copy of all metadata
func (c *ResponseContext) Metadata() map[string]interface{} {
	copy := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		copy[k] = v
	}
	return copy
}

type responseContextKey struct{}

// WithResponseContext stores rc in ctx so later hooks of the same exchange can find it.
func WithResponseContext(ctx context.Context, rc *ResponseContext) context.Context {
	return context.WithValue(ctx, responseContextKey{}, rc)
}

// ResponseContextFrom returns the ResponseContext stored by WithResponseContext.
func ResponseContextFrom(ctx context.Context) (*ResponseContext, bool) {
	rc, ok := ctx.Value(responseContextKey{}).(*ResponseContext)
	return rc, ok
}

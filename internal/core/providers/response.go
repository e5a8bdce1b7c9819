package providers

import (
	"errors"
	"io"
	"net/http"

	"resptx/internal/core"
)

const readChunkSize = 32 * 1024

// responseHeaders exposes the upstream response headers to the pipeline.
type responseHeaders struct {
	resp *http.Response
}

func (h *responseHeaders) Get(name string) (string, bool) {
	values := h.resp.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h *responseHeaders) Set(name, value string) {
	h.resp.Header.Set(name, value)
}

func (h *responseHeaders) Remove(name string) {
	h.resp.Header.Del(name)
	if http.CanonicalHeaderKey(name) == "Content-Length" {
		h.resp.ContentLength = -1
	}
}

func (h *responseHeaders) Add(name, value string) {
	h.resp.Header.Add(name, value)
}

// bodyStream reads the upstream body chunk by chunk and delivers every chunk to
// the pipeline. Buffered bytes are released downstream when the pipeline
// continues and withheld while it pauses; at end of stream whatever is buffered,
// possibly substituted, is released.
type bodyStream struct {
	src      io.ReadCloser
	ctx      *core.ResponseContext
	pipeline *core.Pipeline

	chunk    []byte
	buffered []byte
	out      []byte
	done     bool
}

func newBodyStream(src io.ReadCloser, ctx *core.ResponseContext, pipeline *core.Pipeline) *bodyStream {
	return &bodyStream{
		src:      src,
		ctx:      ctx,
		pipeline: pipeline,
		chunk:    make([]byte, readChunkSize),
	}
}

// Body implements core.BodyAccessor
func (b *bodyStream) Body() []byte {
	return b.buffered
}

// SetBody implements core.BodyAccessor
func (b *bodyStream) SetBody(body []byte) {
	b.buffered = body
}

func (b *bodyStream) Read(p []byte) (int, error) {
	for len(b.out) == 0 {
		if b.done {
			return 0, io.EOF
		}
		if err := b.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(p, b.out)
	b.out = b.out[n:]
	return n, nil
}

// fill pulls one chunk from upstream and runs the pipeline over it
func (b *bodyStream) fill() error {
	n, err := b.src.Read(b.chunk)
	if n > 0 {
		b.buffered = append(b.buffered, b.chunk[:n]...)
	}

	endOfStream := errors.Is(err, io.EOF)
	if err != nil && !endOfStream {
		return err
	}
	if n == 0 && !endOfStream {
		return nil
	}

	action := b.pipeline.OnResponseBody(b.ctx, b, endOfStream)
	if action == core.ActionContinue || endOfStream {
		b.out = b.buffered
		b.buffered = nil
	}
	b.done = endOfStream
	return nil
}

func (b *bodyStream) Close() error {
	return b.src.Close()
}

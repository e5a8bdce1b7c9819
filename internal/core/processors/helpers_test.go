package processors

import (
	"net/http"
)

type fakeHeaders struct {
	http.Header
}

func newFakeHeaders(pairs ...string) fakeHeaders {
	h := fakeHeaders{Header: make(http.Header)}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Header.Add(pairs[i], pairs[i+1])
	}
	return h
}

func (h fakeHeaders) Get(name string) (string, bool) {
	values := h.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h fakeHeaders) Set(name, value string) { h.Header.Set(name, value) }
func (h fakeHeaders) Remove(name string)     { h.Header.Del(name) }
func (h fakeHeaders) Add(name, value string) { h.Header.Add(name, value) }

// fakeBody accumulates chunks the way the host buffers them while paused.
type fakeBody struct {
	buf     []byte
	setCall int
}

func (b *fakeBody) Body() []byte { return b.buf }

func (b *fakeBody) SetBody(body []byte) {
	b.setCall++
	b.buf = body
}

func (b *fakeBody) push(chunk string) {
	b.buf = append(b.buf, chunk...)
}

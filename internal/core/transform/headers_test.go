package transform

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"resptx/internal/core/rules"
)

// headerMap is an in-memory header accessor.
type headerMap struct {
	http.Header
}

func newHeaderMap(pairs ...string) headerMap {
	h := headerMap{Header: make(http.Header)}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Header.Add(pairs[i], pairs[i+1])
	}
	return h
}

func (h headerMap) Get(name string) (string, bool) {
	values := h.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h headerMap) Set(name, value string) { h.Header.Set(name, value) }
func (h headerMap) Remove(name string)     { h.Header.Del(name) }
func (h headerMap) Add(name, value string) { h.Header.Add(name, value) }

func kv(key, value string) rules.KeyValue {
	return rules.NewKeyValue(key, value)
}

func TestHeadersRemove(t *testing.T) {
	h := newHeaderMap("X-Remove", "1", "X-Keep", "2")
	New(zaptest.NewLogger(t)).Headers(&rules.Headers{Remove: []string{"x-remove", "x-absent"}}, h)

	assert.Empty(t, h.Values("X-Remove"))
	assert.Equal(t, "2", h.Header.Get("X-Keep"))
	assert.Len(t, h.Header, 1)
}

func TestHeadersRename(t *testing.T) {
	h := newHeaderMap("X-Old", "value", "X-New", "stale")
	New(nil).Headers(&rules.Headers{Rename: []rules.KeyValue{kv("x-old", "x-new"), kv("x-absent", "x-other")}}, h)

	assert.Empty(t, h.Values("X-Old"))
	assert.Equal(t, []string{"value"}, h.Values("X-New"))
	assert.Empty(t, h.Values("X-Other"))
}

func TestHeadersReplaceNeverCreates(t *testing.T) {
	h := newHeaderMap("X-Present", "old")
	New(nil).Headers(&rules.Headers{Replace: []rules.KeyValue{kv("x-present", "new"), kv("x-absent", "new")}}, h)

	assert.Equal(t, "new", h.Header.Get("X-Present"))
	assert.Empty(t, h.Values("X-Absent"))
}

func TestHeadersAddNeverOverwrites(t *testing.T) {
	h := newHeaderMap("X-Present", "old")
	New(nil).Headers(&rules.Headers{Add: []rules.KeyValue{kv("x-present", "new"), kv("x-absent", "new")}}, h)

	assert.Equal(t, "old", h.Header.Get("X-Present"))
	assert.Equal(t, "new", h.Header.Get("X-Absent"))
}

func TestHeadersAppendAlwaysAdds(t *testing.T) {
	h := newHeaderMap("X-Multi", "one")
	tx := &rules.Headers{Append: []rules.KeyValue{kv("x-multi", "two"), kv("x-fresh", "a")}}
	New(nil).Headers(tx, h)

	assert.Equal(t, []string{"one", "two"}, h.Values("X-Multi"))
	assert.Equal(t, []string{"a"}, h.Values("X-Fresh"))

	// append is not idempotent
	New(nil).Headers(tx, h)
	assert.Equal(t, []string{"one", "two", "two"}, h.Values("X-Multi"))
}

func TestHeadersStageOrder(t *testing.T) {
	h := newHeaderMap("A", "1", "B", "2", "C", "3")
	tx := &rules.Headers{
		Remove:  []string{"a"},
		Rename:  []rules.KeyValue{kv("b", "a")},
		Replace: []rules.KeyValue{kv("a", "replaced")},
		Add:     []rules.KeyValue{kv("a", "added"), kv("d", "new")},
		Append:  []rules.KeyValue{kv("a", "appended")},
	}
	New(zaptest.NewLogger(t)).Headers(tx, h)

	assert.Equal(t, []string{"replaced", "appended"}, h.Values("A"))
	assert.Empty(t, h.Values("B"))
	assert.Equal(t, []string{"3"}, h.Values("C"))
	assert.Equal(t, []string{"new"}, h.Values("D"))
}

func TestHeadersIdempotentStages(t *testing.T) {
	h := newHeaderMap("X-Remove", "1", "X-Replace", "old")
	tx := &rules.Headers{
		Remove:  []string{"x-remove"},
		Replace: []rules.KeyValue{kv("x-replace", "new")},
		Add:     []rules.KeyValue{kv("x-add", "v")},
	}
	tr := New(nil)
	tr.Headers(tx, h)
	first := h.Header.Clone()

	tr.Headers(tx, h)
	assert.Equal(t, first, h.Header)
}

func TestHeadersNilRuleset(t *testing.T) {
	h := newHeaderMap("A", "1")
	New(nil).Headers(nil, h)
	assert.Equal(t, "1", h.Header.Get("A"))
}

package transform

import (
	"go.uber.org/zap"

	"resptx/internal/core"
	"resptx/internal/core/rules"
)

// Headers applies tx to the live header set.
func (t *Transformer) Headers(tx *rules.Headers, h core.HeaderAccessor) {
	if tx == nil {
		return
	}

	for _, name := range tx.Remove {
		if _, ok := h.Get(name); ok {
			t.log.Debug("removing header", zap.String("header", name))
			h.Remove(name)
		}
	}

	for _, kv := range tx.Rename {
		if value, ok := h.Get(kv.Key); ok {
			t.log.Debug("renaming header", zap.String("from", kv.Key), zap.String("to", kv.Value))
			h.Remove(kv.Key)
			h.Set(kv.Value, value)
		}
	}

	for _, kv := range tx.Replace {
		if _, ok := h.Get(kv.Key); ok {
			t.log.Debug("replacing header", zap.String("header", kv.Key), zap.String("value", kv.Value))
			h.Set(kv.Key, kv.Value)
		}
	}

	for _, kv := range tx.Add {
		if _, ok := h.Get(kv.Key); !ok {
			t.log.Debug("adding header", zap.String("header", kv.Key), zap.String("value", kv.Value))
			h.Set(kv.Key, kv.Value)
		}
	}

	for _, kv := range tx.Append {
		t.log.Debug("appending header", zap.String("header", kv.Key), zap.String("value", kv.Value))
		h.Add(kv.Key, kv.Value)
	}
}

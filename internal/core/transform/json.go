package transform

import (
	"reflect"

	"go.uber.org/zap"

	"resptx/internal/core/rules"
)

// JSON applies tx to a decoded top-level object in place and reports whether
// anything changed.
func (t *Transformer) JSON(tx *rules.JSON, body map[string]any) bool {
	if tx == nil {
		return false
	}

	changed := false

	for _, field := range tx.Remove {
		if _, ok := body[field]; ok {
			delete(body, field)
			t.log.Debug("removed field", zap.String("field", field))
			changed = true
		}
	}

	for _, kv := range tx.Rename {
		if v, ok := body[kv.Key]; ok {
			delete(body, kv.Key)
			body[kv.Value] = v
			t.log.Debug("renamed field", zap.String("from", kv.Key), zap.String("to", kv.Value))
			changed = true
		}
	}

	for _, f := range tx.Replace {
		if found, ok := body[f.Name]; ok && !reflect.DeepEqual(found, f.Value) {
			t.log.Debug("replacing field", zap.String("field", f.Name), zap.Any("old", found), zap.Any("new", f.Value))
			body[f.Name] = f.Value
			changed = true
		}
	}

	for _, f := range tx.Add {
		if _, ok := body[f.Name]; !ok {
			t.log.Debug("adding field", zap.String("field", f.Name), zap.Any("value", f.Value))
			body[f.Name] = f.Value
			changed = true
		}
	}

	for _, f := range tx.Append {
		found, ok := body[f.Name]
		if !ok {
			body[f.Name] = []any{f.Value}
			t.log.Debug("inserted field", zap.String("field", f.Name), zap.Any("value", f.Value))
			changed = true
			continue
		}

		switch current := found.(type) {
		case string:
			body[f.Name] = []any{current, f.Value}
		case []any:
			body[f.Name] = append(current, f.Value)
		default:
			// numbers, booleans, null and objects are left untouched
			continue
		}
		t.log.Debug("appended field", zap.String("field", f.Name), zap.Any("value", f.Value))
		changed = true
	}

	return changed
}

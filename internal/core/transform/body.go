package transform

import (
	"go.uber.org/zap"

	"resptx/internal/core/rules"
)

// Body runs the JSON rule set against a complete response body. It returns the
// bytes to forward and whether they differ from the input. On any error the
// original body is returned unchanged along with the error.
func (t *Transformer) Body(tx *rules.JSON, body []byte) ([]byte, bool, error) {
	if tx == nil || len(body) == 0 {
		return body, false, nil
	}

	obj, err := DecodeObject(body)
	if err != nil {
		return body, false, err
	}

	if !t.JSON(tx, obj) {
		t.log.Debug("no response body changes were applied")
		return body, false, nil
	}

	out, err := EncodeObject(obj)
	if err != nil {
		return body, false, err
	}

	t.log.Debug("response body rewritten", zap.Int("old_size", len(body)), zap.Int("new_size", len(out)))
	return out, true, nil
}

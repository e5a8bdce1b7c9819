package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when a body does not parse as JSON.
	ErrInvalidJSON = errors.New("response body is not valid JSON")
	// ErrNotObject is returned when a body is valid JSON but not an object.
	ErrNotObject = errors.New("response body is not a JSON object")
	// ErrEncode is returned when a transformed object cannot be serialized.
	ErrEncode = errors.New("failed to re-serialize JSON body")
)

// codec keeps numbers as json.Number so untouched values re-serialize with
// their original text, and sorts keys so output is deterministic.
var codec = sonic.Config{
	EscapeHTML:     false,
	SortMapKeys:    true,
	UseNumber:      true,
	ValidateString: true,
}.Froze()

// DecodeObject parses body into a top-level JSON object.
func DecodeObject(body []byte) (map[string]any, error) {
	var v any
	if err := codec.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotObject, TypeName(body))
	}
	return obj, nil
}

// EncodeObject serializes obj.
func EncodeObject(obj map[string]any) ([]byte, error) {
	out, err := codec.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return out, nil
}

// TypeName names the top-level JSON type of body for log messages.
func TypeName(body []byte) string {
	res := gjson.ParseBytes(body)
	switch {
	case res.IsObject():
		return "object"
	case res.IsArray():
		return "array"
	case res.Type == gjson.True || res.Type == gjson.False:
		return "boolean"
	default:
		return strings.ToLower(res.Type.String())
	}
}

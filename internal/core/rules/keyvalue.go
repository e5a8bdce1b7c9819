package rules

import (
	"fmt"
	"strings"
)

// KeyValue is a validated "<key>:<value>" rule entry. Both halves are non-empty.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// InvalidKeyValueError reports a rule entry that is not a "<key>:<value>" pair.
type InvalidKeyValueError struct {
	Raw string
}

func (e *InvalidKeyValueError) Error() string {
	return fmt.Sprintf("invalid <key>:<value> => %q", e.Raw)
}

// NewKeyValue builds a pair from two strings without validation.
func NewKeyValue(key, value string) KeyValue {
	return KeyValue{Key: key, Value: value}
}

// ParseKeyValue splits raw on the first ':'.
func ParseKeyValue(raw string) (KeyValue, error) {
	key, value, ok := strings.Cut(raw, ":")
	if !ok || key == "" || value == "" {
		return KeyValue{}, &InvalidKeyValueError{Raw: raw}
	}
	return KeyValue{Key: key, Value: value}, nil
}

func (kv KeyValue) String() string {
	return kv.Key + ":" + kv.Value
}

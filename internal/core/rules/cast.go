package rules

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Cast describes how a raw rule value becomes a JSON value.
type Cast int

const (
	// CastString keeps the raw value as a JSON string. It is the default.
	CastString Cast = iota
	// CastNumber turns the raw value into a JSON number.
	CastNumber
	// CastBoolean turns the raw value into a JSON boolean.
	CastBoolean
)

// UnknownCastError reports a json_types entry that names no known cast.
type UnknownCastError struct {
	Name string
}

func (e *UnknownCastError) Error() string {
	return fmt.Sprintf("unknown json type %q (expected string, number or boolean)", e.Name)
}

// ParseCast resolves a json_types entry. Names are case-insensitive.
func ParseCast(name string) (Cast, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string":
		return CastString, nil
	case "number":
		return CastNumber, nil
	case "boolean":
		return CastBoolean, nil
	default:
		return CastString, &UnknownCastError{Name: name}
	}
}

func (c Cast) String() string {
	switch c {
	case CastNumber:
		return "number"
	case CastBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// Convert casts raw into a JSON value: string, json.Number or bool.
// Values that do not parse as the target type fall back to a JSON string.
func (c Cast) Convert(raw string) any {
	switch c {
	case CastNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" && gjson.Valid(trimmed) && gjson.Parse(trimmed).Type == gjson.Number {
			return json.Number(trimmed)
		}
	case CastBoolean:
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			return b
		}
	}
	return raw
}

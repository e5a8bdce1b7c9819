package rules

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// RawBucket is one action bucket as operators write it.
type RawBucket struct {
	Headers   []string `mapstructure:"headers" json:"headers,omitempty" yaml:"headers,omitempty"`
	JSON      []string `mapstructure:"json" json:"json,omitempty" yaml:"json,omitempty"`
	JSONTypes []string `mapstructure:"json_types" json:"json_types,omitempty" yaml:"json_types,omitempty"`
}

// RawInput is the user-facing transform configuration. Every key is optional.
type RawInput struct {
	Remove  RawBucket `mapstructure:"remove" json:"remove" yaml:"remove"`
	Rename  RawBucket `mapstructure:"rename" json:"rename" yaml:"rename"`
	Replace RawBucket `mapstructure:"replace" json:"replace" yaml:"replace"`
	Add     RawBucket `mapstructure:"add" json:"add" yaml:"add"`
	Append  RawBucket `mapstructure:"append" json:"append" yaml:"append"`
}

// Bucket is a validated action bucket. JSONTypes[i] applies to JSON[i].
type Bucket[T any] struct {
	Headers   []T
	JSON      []T
	JSONTypes []Cast
}

// Input is the validated configuration. Remove entries are bare names,
// every other action carries key/value pairs.
type Input struct {
	Remove  Bucket[string]
	Rename  Bucket[KeyValue]
	Replace Bucket[KeyValue]
	Add     Bucket[KeyValue]
	Append  Bucket[KeyValue]
}

// ParseJSON decodes a JSON transform document and validates it.
func ParseJSON(data []byte) (Input, error) {
	var raw RawInput
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Input{}, fmt.Errorf("failed to decode transform config: %w", err)
	}
	return raw.Parse()
}

// Parse validates every entry. The first bad entry aborts the whole input.
func (r RawInput) Parse() (Input, error) {
	var (
		in  Input
		err error
	)

	in.Remove = Bucket[string]{
		Headers: append([]string(nil), r.Remove.Headers...),
		JSON:    append([]string(nil), r.Remove.JSON...),
	}
	if in.Remove.JSONTypes, err = parseCasts("remove", r.Remove.JSONTypes); err != nil {
		return Input{}, err
	}

	if in.Rename, err = parsePairBucket("rename", r.Rename); err != nil {
		return Input{}, err
	}
	if in.Replace, err = parsePairBucket("replace", r.Replace); err != nil {
		return Input{}, err
	}
	if in.Add, err = parsePairBucket("add", r.Add); err != nil {
		return Input{}, err
	}
	if in.Append, err = parsePairBucket("append", r.Append); err != nil {
		return Input{}, err
	}

	return in, nil
}

func parsePairBucket(action string, raw RawBucket) (Bucket[KeyValue], error) {
	var (
		b   Bucket[KeyValue]
		err error
	)
	if b.Headers, err = parsePairs(action+".headers", raw.Headers); err != nil {
		return b, err
	}
	if b.JSON, err = parsePairs(action+".json", raw.JSON); err != nil {
		return b, err
	}
	if b.JSONTypes, err = parseCasts(action, raw.JSONTypes); err != nil {
		return b, err
	}
	return b, nil
}

func parsePairs(location string, entries []string) ([]KeyValue, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	pairs := make([]KeyValue, 0, len(entries))
	for i, entry := range entries {
		kv, err := ParseKeyValue(entry)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", location, i, err)
		}
		pairs = append(pairs, kv)
	}
	return pairs, nil
}

func parseCasts(action string, names []string) ([]Cast, error) {
	if len(names) == 0 {
		return nil, nil
	}
	casts := make([]Cast, 0, len(names))
	for i, name := range names {
		c, err := ParseCast(name)
		if err != nil {
			return nil, fmt.Errorf("%s.json_types[%d]: %w", action, i, err)
		}
		casts = append(casts, c)
	}
	return casts, nil
}

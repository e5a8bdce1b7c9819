package rules

// Headers is the resolved header rule set, one list per action.
type Headers struct {
	Remove  []string   `json:"remove,omitempty" yaml:"remove,omitempty"`
	Rename  []KeyValue `json:"rename,omitempty" yaml:"rename,omitempty"`
	Replace []KeyValue `json:"replace,omitempty" yaml:"replace,omitempty"`
	Add     []KeyValue `json:"add,omitempty" yaml:"add,omitempty"`
	Append  []KeyValue `json:"append,omitempty" yaml:"append,omitempty"`
}

// JSONField is a top-level body field with its already-cast value.
type JSONField struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// JSON is the resolved body rule set. Values are cast before any response is seen.
type JSON struct {
	Remove  []string    `json:"remove,omitempty" yaml:"remove,omitempty"`
	Rename  []KeyValue  `json:"rename,omitempty" yaml:"rename,omitempty"`
	Replace []JSONField `json:"replace,omitempty" yaml:"replace,omitempty"`
	Add     []JSONField `json:"add,omitempty" yaml:"add,omitempty"`
	Append  []JSONField `json:"append,omitempty" yaml:"append,omitempty"`
}

// Config is the resolved configuration. A nil axis has no rules at all.
// A Config is never mutated after Resolve returns.
type Config struct {
	Headers *Headers `json:"headers,omitempty" yaml:"headers,omitempty"`
	JSON    *JSON    `json:"json,omitempty" yaml:"json,omitempty"`
}

// Resolve turns validated input into per-axis rule sets.
func Resolve(in Input) *Config {
	cfg := &Config{}

	if len(in.Remove.Headers) > 0 ||
		len(in.Rename.Headers) > 0 ||
		len(in.Replace.Headers) > 0 ||
		len(in.Add.Headers) > 0 ||
		len(in.Append.Headers) > 0 {
		cfg.Headers = &Headers{
			Remove:  in.Remove.Headers,
			Rename:  in.Rename.Headers,
			Replace: in.Replace.Headers,
			Add:     in.Add.Headers,
			Append:  in.Append.Headers,
		}
	}

	if len(in.Remove.JSON) > 0 ||
		len(in.Rename.JSON) > 0 ||
		len(in.Replace.JSON) > 0 ||
		len(in.Add.JSON) > 0 ||
		len(in.Append.JSON) > 0 {
		cfg.JSON = &JSON{
			Remove:  in.Remove.JSON,
			Rename:  in.Rename.JSON,
			Replace: castFields(in.Replace),
			Add:     castFields(in.Add),
			Append:  castFields(in.Append),
		}
	}

	return cfg
}

// castFields pairs json[i] with json_types[i], defaulting to the string cast.
func castFields(b Bucket[KeyValue]) []JSONField {
	if len(b.JSON) == 0 {
		return nil
	}
	fields := make([]JSONField, 0, len(b.JSON))
	for i, kv := range b.JSON {
		cast := CastString
		if i < len(b.JSONTypes) {
			cast = b.JSONTypes[i]
		}
		fields = append(fields, JSONField{Name: kv.Key, Value: cast.Convert(kv.Value)})
	}
	return fields
}

// Empty reports whether neither axis has rules.
func (c *Config) Empty() bool {
	return c == nil || (c.Headers == nil && c.JSON == nil)
}

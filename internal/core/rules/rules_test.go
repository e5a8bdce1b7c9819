package rules

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValueValid(t *testing.T) {
	kv, err := ParseKeyValue("a:b")
	require.NoError(t, err)
	assert.Equal(t, NewKeyValue("a", "b"), kv)

	// only the first colon splits
	kv, err = ParseKeyValue("x-url:http://example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, "x-url", kv.Key)
	assert.Equal(t, "http://example.com:8080", kv.Value)
}

func TestParseKeyValueInvalid(t *testing.T) {
	for _, raw := range []string{"a", "a:", ":b", ":", ""} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseKeyValue(raw)
			require.Error(t, err)

			var kvErr *InvalidKeyValueError
			require.True(t, errors.As(err, &kvErr))
			assert.Equal(t, raw, kvErr.Raw)
		})
	}
}

func TestParseCast(t *testing.T) {
	tests := []struct {
		name    string
		want    Cast
		wantErr bool
	}{
		{"string", CastString, false},
		{"Number", CastNumber, false},
		{"BOOLEAN", CastBoolean, false},
		{"integer", CastString, true},
		{"", CastString, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCast(tc.name)
			if tc.wantErr {
				var castErr *UnknownCastError
				assert.True(t, errors.As(err, &castErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCastConvert(t *testing.T) {
	tests := []struct {
		name string
		cast Cast
		raw  string
		want any
	}{
		{"string", CastString, "123", "123"},
		{"integer", CastNumber, "123", json.Number("123")},
		{"float", CastNumber, "-1.5e3", json.Number("-1.5e3")},
		{"number with spaces", CastNumber, " 42 ", json.Number("42")},
		{"nan falls back", CastNumber, "NaN", "NaN"},
		{"hex falls back", CastNumber, "0x10", "0x10"},
		{"word falls back", CastNumber, "twelve", "twelve"},
		{"true", CastBoolean, "true", true},
		{"false upper", CastBoolean, "FALSE", false},
		{"one", CastBoolean, "1", true},
		{"yes falls back", CastBoolean, "yes", "yes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cast.Convert(tc.raw))
		})
	}
}

func TestParseJSONTransformations(t *testing.T) {
	in, err := ParseJSON([]byte(`{ "rename": { "headers": ["a:b", "c:d"] } }`))
	require.NoError(t, err)

	assert.Equal(t, []KeyValue{NewKeyValue("a", "b"), NewKeyValue("c", "d")}, in.Rename.Headers)
	assert.Empty(t, in.Rename.JSON)
	assert.Empty(t, in.Remove.Headers)
}

func TestParseJSONRejectsBadEntry(t *testing.T) {
	_, err := ParseJSON([]byte(`{ "add": { "json": ["ok:1", "broken"] } }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add.json[1]")

	var kvErr *InvalidKeyValueError
	require.True(t, errors.As(err, &kvErr))
	assert.Equal(t, "broken", kvErr.Raw)
}

func TestParseJSONRejectsUnknownCast(t *testing.T) {
	_, err := ParseJSON([]byte(`{ "add": { "json": ["a:1"], "json_types": ["float"] } }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add.json_types[0]")
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{ "add": `))
	assert.Error(t, err)
}

func TestRemoveEntriesAreBareNames(t *testing.T) {
	in, err := RawInput{
		Remove: RawBucket{Headers: []string{"x-powered-by"}, JSON: []string{"a:b"}},
	}.Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"x-powered-by"}, in.Remove.Headers)
	assert.Equal(t, []string{"a:b"}, in.Remove.JSON)
}

func TestResolveEmpty(t *testing.T) {
	cfg := Resolve(Input{})
	assert.Nil(t, cfg.Headers)
	assert.Nil(t, cfg.JSON)
	assert.True(t, cfg.Empty())
}

func TestResolveHeadersOnly(t *testing.T) {
	in, err := RawInput{
		Append: RawBucket{Headers: []string{"x-a:1"}},
	}.Parse()
	require.NoError(t, err)

	cfg := Resolve(in)
	require.NotNil(t, cfg.Headers)
	assert.Nil(t, cfg.JSON)
	assert.Equal(t, []KeyValue{NewKeyValue("x-a", "1")}, cfg.Headers.Append)
	assert.False(t, cfg.Empty())
}

func TestResolveCastsPositionally(t *testing.T) {
	in, err := RawInput{
		Add: RawBucket{
			JSON:      []string{"count:3", "enabled:true", "label:7"},
			JSONTypes: []string{"number", "boolean"},
		},
		Replace: RawBucket{
			JSON: []string{"version:2"},
		},
	}.Parse()
	require.NoError(t, err)

	cfg := Resolve(in)
	assert.Nil(t, cfg.Headers)
	require.NotNil(t, cfg.JSON)

	assert.Equal(t, []JSONField{
		{Name: "count", Value: json.Number("3")},
		{Name: "enabled", Value: true},
		{Name: "label", Value: "7"},
	}, cfg.JSON.Add)
	assert.Equal(t, []JSONField{{Name: "version", Value: "2"}}, cfg.JSON.Replace)
}

func TestResolvePreservesOrder(t *testing.T) {
	in, err := RawInput{
		Remove: RawBucket{JSON: []string{"c", "a", "b"}},
		Rename: RawBucket{JSON: []string{"z:y", "y:x"}},
	}.Parse()
	require.NoError(t, err)

	cfg := Resolve(in)
	require.NotNil(t, cfg.JSON)
	assert.Equal(t, []string{"c", "a", "b"}, cfg.JSON.Remove)
	assert.Equal(t, []KeyValue{NewKeyValue("z", "y"), NewKeyValue("y", "x")}, cfg.JSON.Rename)
}

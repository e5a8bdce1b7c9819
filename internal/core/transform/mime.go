package transform

import (
	"mime"
	"strings"
)

// IsJSONMimeType reports whether a Content-Type value denotes JSON:
// application/json or any application/*+json. Parameters are ignored and
// malformed values are not JSON.
func IsJSONMimeType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	typ, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || typ != "application" {
		return false
	}
	if subtype == "json" {
		return true
	}
	if i := strings.LastIndexByte(subtype, '+'); i > 0 {
		return subtype[i+1:] == "json"
	}
	return false
}

// Package transform applies resolved rule sets to response headers and JSON bodies.
//
// Both engines run the same fixed stage order: remove, rename, replace, add, append.
// Within a stage entries are applied in configured order, and every stage sees the
// state left by the previous one.
package transform

import (
	"go.uber.org/zap"
)

// Transformer applies rule sets and logs what it changed.
type Transformer struct {
	log *zap.Logger
}

// New creates a Transformer. A nil logger discards output.
func New(log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{log: log}
}

package engine

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"resptx/internal/core/rules"
)

// Generation is one loaded rule configuration. It is immutable.
type Generation struct {
	ID       uint64
	Config   *rules.Config
	LoadedAt time.Time
}

// Engine owns the active rule generation. Responses read it without locking;
// a reload swaps the whole handle.
type Engine struct {
	current atomic.Pointer[Generation]
	seq     atomic.Uint64
	log     *zap.Logger
}

// NewEngine creates an engine with no active generation
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Current returns the active generation, or nil when no valid config has loaded
func (e *Engine) Current() *Generation {
	return e.current.Load()
}

// Load resolves in and makes it the active generation
func (e *Engine) Load(in rules.Input) *Generation {
	gen := &Generation{
		ID:       e.seq.Add(1),
		Config:   rules.Resolve(in),
		LoadedAt: time.Now(),
	}
	e.current.Store(gen)

	e.log.Info("transform configuration loaded",
		zap.Uint64("generation", gen.ID),
		zap.Bool("header_rules", gen.Config.Headers != nil),
		zap.Bool("json_rules", gen.Config.JSON != nil),
	)
	return gen
}

// LoadRaw validates raw and loads it. On error the previous generation stays active.
func (e *Engine) LoadRaw(raw rules.RawInput) (*Generation, error) {
	in, err := raw.Parse()
	if err != nil {
		prev := uint64(0)
		if gen := e.Current(); gen != nil {
			prev = gen.ID
		}
		e.log.Error("failed to parse transform configuration",
			zap.Error(err),
			zap.Uint64("active_generation", prev),
		)
		return nil, err
	}
	return e.Load(in), nil
}

package core

import (
	"sort"
)

// Pipeline holds a collection of processors and manages their execution.
// Processors are added before serving starts; the pipeline is read-only afterwards.
type Pipeline struct {
	processors []Processor
}

// NewPipeline creates a new pipeline instance
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]Processor, 0),
	}
}

// AddProcessor adds a processor to the pipeline, keeping priority order
func (p *Pipeline) AddProcessor(processor Processor) {
	p.processors = append(p.processors, processor)

	// Lower number = higher priority = runs earlier; ties keep insertion order
	sort.SliceStable(p.processors, func(i, j int) bool {
		return p.processors[i].Priority() < p.processors[j].Priority()
	})
}

// Processors returns the processors in execution order
func (p *Pipeline) Processors() []Processor {
	out := make([]Processor, len(p.processors))
	copy(out, p.processors)
	return out
}

// OnResponseHeaders runs every processor's header hook in priority order
func (p *Pipeline) OnResponseHeaders(ctx *ResponseContext, headers HeaderAccessor) {
	for _, processor := range p.processors {
		processor.OnResponseHeaders(ctx, headers)
	}
}

// OnResponseBody runs the body hooks in priority order. The first processor that
// pauses stops the iteration for this chunk.
func (p *Pipeline) OnResponseBody(ctx *ResponseContext, body BodyAccessor, endOfStream bool) Action {
	for _, processor := range p.processors {
		if action := processor.OnResponseBody(ctx, body, endOfStream); action == ActionPause {
			return ActionPause
		}
	}
	return ActionContinue
}

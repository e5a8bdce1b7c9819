package core

// Action tells the host what to do with the body bytes buffered so far.
type Action int

const (
	// ActionContinue forwards the buffered body bytes.
	ActionContinue Action = iota
	// ActionPause withholds the buffered bytes until the next chunk arrives.
	ActionPause
)

func (a Action) String() string {
	if a == ActionPause {
		return "pause"
	}
	return "continue"
}

// HeaderAccessor is the host capability over the live response headers.
type HeaderAccessor interface {
	// Get returns the first value of the header and whether it is present
	Get(name string) (string, bool)
	// Set replaces all values of the header
	Set(name, value string)
	// Remove deletes the header
	Remove(name string)
	// Add appends another occurrence of the header
	Add(name, value string)
}

// BodyAccessor is the host capability over the body bytes buffered so far.
type BodyAccessor interface {
	// Body returns the buffered, not yet forwarded bytes
	Body() []byte
	// SetBody substitutes the buffered bytes
	SetBody(body []byte)
}

// Processor is the middleware interface for the response pipeline
type Processor interface {
	// Name returns the processor name
	Name() string
	// Priority returns the execution priority (lower = earlier)
	Priority() int
	// OnResponseHeaders is called once when the upstream response headers arrive
	OnResponseHeaders(ctx *ResponseContext, headers HeaderAccessor)
	// OnResponseBody is called for every body chunk; endOfStream marks the last one
	OnResponseBody(ctx *ResponseContext, body BodyAccessor, endOfStream bool) Action
}

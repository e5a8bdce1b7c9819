package core

import (
	"context"
	"testing"
)

type recordingProcessor struct {
	name     string
	priority int
	pauseAt  int
	calls    *[]string
	chunks   int
}

func (r *recordingProcessor) Name() string  { return r.name }
func (r *recordingProcessor) Priority() int { return r.priority }

func (r *recordingProcessor) OnResponseHeaders(ctx *ResponseContext, headers HeaderAccessor) {
	*r.calls = append(*r.calls, r.name+":headers")
}

func (r *recordingProcessor) OnResponseBody(ctx *ResponseContext, body BodyAccessor, endOfStream bool) Action {
	*r.calls = append(*r.calls, r.name+":body")
	r.chunks++
	if !endOfStream && r.pauseAt > 0 {
		return ActionPause
	}
	return ActionContinue
}

func TestPipelinePriorityOrder(t *testing.T) {
	var calls []string
	p := NewPipeline()
	p.AddProcessor(&recordingProcessor{name: "late", priority: 1000, calls: &calls})
	p.AddProcessor(&recordingProcessor{name: "early", priority: -100, calls: &calls})
	p.AddProcessor(&recordingProcessor{name: "middle", priority: 100, calls: &calls})
	p.AddProcessor(&recordingProcessor{name: "middle-2", priority: 100, calls: &calls})

	ctx := NewResponseContext(context.Background(), nil)
	p.OnResponseHeaders(ctx, nil)

	want := []string{"early:headers", "middle:headers", "middle-2:headers", "late:headers"}
	if len(calls) != len(want) {
		t.Fatalf("Expected %d calls, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], calls[i])
		}
	}
}

func TestPipelinePauseStopsIteration(t *testing.T) {
	var calls []string
	pauser := &recordingProcessor{name: "pauser", priority: 1, pauseAt: 1, calls: &calls}
	after := &recordingProcessor{name: "after", priority: 2, calls: &calls}

	p := NewPipeline()
	p.AddProcessor(after)
	p.AddProcessor(pauser)

	ctx := NewResponseContext(context.Background(), nil)

	if action := p.OnResponseBody(ctx, nil, false); action != ActionPause {
		t.Fatalf("Expected pause, got %s", action)
	}
	if after.chunks != 0 {
		t.Errorf("Expected processor after a pause not to run, ran %d times", after.chunks)
	}

	if action := p.OnResponseBody(ctx, nil, true); action != ActionContinue {
		t.Fatalf("Expected continue at end of stream, got %s", action)
	}
	if after.chunks != 1 {
		t.Errorf("Expected processor after pause to see the last chunk once, got %d", after.chunks)
	}
}

func TestResponseContextRoundTrip(t *testing.T) {
	rc := NewResponseContext(context.Background(), nil)
	rc.SetMetadata("k", 1)

	ctx := WithResponseContext(context.Background(), rc)
	got, ok := ResponseContextFrom(ctx)
	if !ok || got != rc {
		t.Fatal("Expected to find the stored response context")
	}

	if _, ok := ResponseContextFrom(context.Background()); ok {
		t.Error("Expected no response context in a bare context")
	}

	meta := rc.Metadata()
	meta["k"] = 2
	if v, _ := rc.GetMetadata("k"); v != 1 {
		t.Errorf("Metadata copy must not alias, got %v", v)
	}
}

package config

import (
	"testing"

	"dada/internal/diag"
	"dada/internal/query"
	"dada/internal/source"
	"dada/internal/trace"
)

func TestOptions_TracerOffReturnsNop(t *testing.T) {
	o := Default()
	tr, err := o.Tracer()
	if err != nil {
		t.Fatalf("Tracer() error = %v", err)
	}
	if tr != trace.Nop {
		t.Fatalf("Tracer() with TraceLevel=off = %v, want trace.Nop", tr)
	}
}

func TestOptions_TracerRejectsInvalidLevel(t *testing.T) {
	o := Default()
	o.TraceLevel = "chatty"
	if _, err := o.Tracer(); err == nil {
		t.Fatalf("Tracer() with an invalid level, want error")
	}
}

// TestOptions_TracerRecordsQueryActivity drives a real query.Store with the
// tracer these Options describe end to end: TraceLevel "phase" should
// produce a RingTracer that actually observes the store's query.miss /
// query.hit pass-boundary events once something runs a query through it.
func TestOptions_TracerRecordsQueryActivity(t *testing.T) {
	o := Default()
	o.TraceLevel = "phase"
	o.TraceRingSize = 16

	tr, err := o.Tracer()
	if err != nil {
		t.Fatalf("Tracer() error = %v", err)
	}
	ring, ok := tr.(*trace.RingTracer)
	if !ok {
		t.Fatalf("Tracer() = %T, want *trace.RingTracer", tr)
	}

	store := query.NewStore(ring)
	q := query.Query[int, int]{
		Name: "double",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			return in * 2, nil, nil
		},
	}

	if out, _ := q.Run(store, 21); out != 42 {
		t.Fatalf("Run(21) = %d, want 42", out)
	}
	if out, _ := q.Run(store, 21); out != 42 {
		t.Fatalf("second Run(21) = %d, want 42 (memoized)", out)
	}

	events := ring.Snapshot()
	var sawMiss, sawHit bool
	for _, ev := range events {
		switch ev.Detail {
		case "double":
			if ev.Name == "query.miss" {
				sawMiss = true
			}
			if ev.Name == "query.hit" {
				sawHit = true
			}
		}
	}
	if !sawMiss || !sawHit {
		t.Fatalf("ring events = %+v, want a query.miss then a query.hit for %q", events, "double")
	}
}

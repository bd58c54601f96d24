// Package trace provides a tracing subsystem for the semantic core.
//
// It tracks query execution, inference-variable mutation, and scheduler
// activity so that hangs (a task stuck waiting on a bound that never
// arrives) and slow recompilation can be diagnosed without instrumenting
// call sites by hand.
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to an output sink
//   - RingTracer: circular buffer for crash dumps
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: query and scheduler phase boundaries
//   - LevelDetail: per-file / per-function events
//   - LevelDebug: everything, including individual bound insertions
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: top-level entry points (symbolize, check_function_*)
//   - ScopeModule: per-file processing
//   - ScopePass: resolution / checking / inference phases
//   - ScopeNode: IR node level (future)
//
// # Context propagation
//
// Tracers propagate through the checking pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "infer", parentID)
//	defer span.End("")
package trace

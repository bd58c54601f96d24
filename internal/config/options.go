// Package config loads the checker's tunable options from an optional
// project manifest, falling back to built-in defaults when none is found.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"dada/internal/trace"
)

// Options controls cross-cutting behavior of the checking pipeline.
type Options struct {
	// DiagnosticCap bounds how many diagnostics a single Bag may accumulate
	// before further entries are dropped.
	DiagnosticCap int `toml:"diagnostic_cap"`
	// MaxUniverseDepth bounds how many nested binder scopes may be opened
	// before RecursiveType-style rejection kicks in defensively.
	MaxUniverseDepth int `toml:"max_universe_depth"`
	// EmitSecondaryHints controls whether checkers attach "alien"/secondary
	// labels (e.g. "previous definition here") to diagnostics.
	EmitSecondaryHints bool `toml:"emit_secondary_hints"`
	// SchedulerFairness bounds how many ready tasks the inference scheduler
	// drains per wake round before re-checking for newly woken tasks; it
	// only affects trace verbosity, never the deterministic wake order.
	SchedulerFairness int `toml:"scheduler_fairness"`
	// TraceLevel selects the query store's tracing verbosity (one of
	// trace.ParseLevel's accepted strings). "off" disables tracing
	// entirely and the store falls back to trace.Nop.
	TraceLevel string `toml:"trace_level"`
	// TraceRingSize bounds the in-memory ring buffer query.Store's tracer
	// keeps when TraceLevel is anything but "off".
	TraceRingSize int `toml:"trace_ring_size"`
}

// Default returns the built-in option set used when no manifest is present.
func Default() Options {
	return Options{
		DiagnosticCap:      4096,
		MaxUniverseDepth:   64,
		EmitSecondaryHints: true,
		SchedulerFairness:  256,
		TraceLevel:         "off",
		TraceRingSize:      4096,
	}
}

// Tracer builds the trace.Tracer these Options describe, for handing to
// query.NewStore. A ring tracer is used rather than a stream one: the
// query store's events are for post-hoc inspection (e.g. a future "why was
// this recomputed" command), not a live log.
func (o Options) Tracer() (trace.Tracer, error) {
	level, err := trace.ParseLevel(o.TraceLevel)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		return trace.Nop, nil
	}
	return trace.NewRingTracer(o.TraceRingSize, level), nil
}

type manifest struct {
	Check Options `toml:"check"`
}

// Load reads options from a dada.toml manifest at path, overlaying them onto
// Default(). A missing file is not an error: Default() is returned unchanged.
func Load(path string) (Options, error) {
	opts := Default()
	m := manifest{Check: opts}
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return Options{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("check") {
		return opts, nil
	}
	return m.Check, nil
}

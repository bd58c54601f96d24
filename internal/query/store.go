package query

import (
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"dada/internal/diag"
	"dada/internal/source"
	"dada/internal/trace"
)

// entry is one memoized result, along with the set of files it read — the
// dependency set Invalidate uses to decide what a file edit drops.
type entry struct {
	out  any
	bag  *diag.Bag
	deps []source.FileID
}

// Store is the shared memoization table one compilation run's queries are
// registered against. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	byFile  map[source.FileID]map[string]struct{}

	group singleflight.Group

	Tracer trace.Tracer
}

// NewStore builds an empty Store. A nil Tracer falls back to trace.Nop.
func NewStore(tracer trace.Tracer) *Store {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Store{
		entries: make(map[string]entry),
		byFile:  make(map[source.FileID]map[string]struct{}),
		Tracer:  tracer,
	}
}

// Query[In, Out] is a tracked computation: a named function from In to Out
// that also produces a diagnostic bag and declares which files it read.
// Wrapping a computation in a Query rather than calling it directly buys
// memoization (same Name + msgpack(in) never recomputes), deduplication of
// concurrent identical requests, and invalidation when a dependency changes.
type Query[In any, Out any] struct {
	// Name disambiguates this query from every other one sharing a Store;
	// conventionally the tracked function's own name (e.g.
	// "check_function_body").
	Name string

	// Compute runs the query cold: it returns the result, the diagnostics
	// produced while computing it, and the set of files the result depends
	// on (so a later edit to any of them invalidates this entry).
	Compute func(in In) (Out, *diag.Bag, []source.FileID)
}

// Run executes q against in, returning the memoized result if Store
// already holds one for this (Name, in) pair, computing and storing it
// otherwise. Concurrent calls for the same key collapse into a single
// Compute invocation via singleflight.
func (q Query[In, Out]) Run(s *Store, in In) (Out, *diag.Bag) {
	key := q.key(in)

	if out, bag, ok := s.lookup(key); ok {
		s.Tracer.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopePass, Name: "query.hit", Detail: q.Name})
		return out.(Out), bag
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		if out, bag, ok := s.lookup(key); ok {
			return entry{out: out, bag: bag}, nil
		}
		out, bag, deps := q.Compute(in)
		s.Tracer.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopePass, Name: "query.miss", Detail: q.Name})
		s.store(key, entry{out: out, bag: bag, deps: deps})
		return entry{out: out, bag: bag}, nil
	})

	e := v.(entry)
	return e.out.(Out), e.bag
}

func (q Query[In, Out]) key(in In) string {
	b, err := msgpack.Marshal(in)
	if err != nil {
		panic(fmt.Errorf("query: marshal input for %q: %w", q.Name, err))
	}
	return q.Name + ":" + string(b)
}

func (s *Store) lookup(key string) (any, *diag.Bag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil, false
	}
	return e.out, e.bag, true
}

func (s *Store) store(key string, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	for _, f := range e.deps {
		set, ok := s.byFile[f]
		if !ok {
			set = make(map[string]struct{})
			s.byFile[f] = set
		}
		set[key] = struct{}{}
	}
}

// Invalidate drops every memoized query that declared file as one of its
// dependencies, so the next Run recomputes it.
func (s *Store) Invalidate(file source.FileID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.byFile[file] {
		delete(s.entries, key)
	}
	delete(s.byFile, file)
	s.Tracer.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopePass, Name: "query.invalidate", Detail: fmt.Sprintf("file=%d", file)})
}

// Len reports how many memoized entries the store currently holds, for
// tests and diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

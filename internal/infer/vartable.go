package infer

import (
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// PredicateKind names one of the four predicates an inference variable can
// be required to satisfy (or not satisfy) ahead of its value being known.
type PredicateKind uint8

const (
	PredicateCopy PredicateKind = iota
	PredicateMove
	PredicateOwned
	PredicateLent
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateCopy:
		return "copy"
	case PredicateMove:
		return "move"
	case PredicateOwned:
		return "owned"
	case PredicateLent:
		return "lent"
	default:
		return "invalid"
	}
}

// Direction distinguishes a lower bound (something the variable's eventual
// value must be greater than or equal to, under the subtype order) from an
// upper bound.
type Direction uint8

const (
	Lower Direction = iota
	Upper
)

// Fact records a required predicate and the justification recorded for it,
// so a later contradiction can explain itself in terms of what demanded it.
type Fact struct {
	Justification string
}

// Record is the per-variable bookkeeping described in §4.F: what kind of
// term the variable stands for, the universe it was created in (so its
// eventual value can't leak a more-nested skolem constant), the span that
// produced it, the is/isn't predicate fact sets, and the bounds accumulated
// so far — a single lower/upper RedTy for a type variable, or an ordered,
// deduplicated set of lower/upper chains for a permission variable.
type Record struct {
	Kind     ir.GenericKind
	Universe ir.Universe
	Span     source.Span

	Is   map[PredicateKind]Fact
	Isnt map[PredicateKind]Fact

	HasLowerTy bool
	LowerTy    redterm.RedTy
	HasUpperTy bool
	UpperTy    redterm.RedTy

	LowerChains []redterm.Chain
	UpperChains []redterm.Chain

	Poisoned bool
}

func newRecord(kind ir.GenericKind, universe ir.Universe, span source.Span) *Record {
	return &Record{
		Kind:     kind,
		Universe: universe,
		Span:     span,
		Is:       map[PredicateKind]Fact{},
		Isnt:     map[PredicateKind]Fact{},
	}
}

func (r *Record) snapshot() Record {
	cp := *r
	cp.Is = make(map[PredicateKind]Fact, len(r.Is))
	for k, v := range r.Is {
		cp.Is[k] = v
	}
	cp.Isnt = make(map[PredicateKind]Fact, len(r.Isnt))
	for k, v := range r.Isnt {
		cp.Isnt[k] = v
	}
	cp.LowerChains = append([]redterm.Chain(nil), r.LowerChains...)
	cp.UpperChains = append([]redterm.Chain(nil), r.UpperChains...)
	return cp
}

// Table is the inference engine's shared mutable state: the arena of
// inference-variable records. Per §5, it is the only state any task
// touches directly, and every touch happens at a poll boundary (the
// cooperative scheduler in engine.go never runs two tasks' code at once),
// so Table itself needs no locking of its own.
type Table struct {
	vars []*Record
}

// NewTable builds an empty variable table.
func NewTable() *Table {
	return &Table{}
}

// FreshVar allocates a new inference variable of the given kind, recording
// the universe it was born in and the span that introduced it.
func (t *Table) FreshVar(kind ir.GenericKind, universe ir.Universe, span source.Span) ir.InferVarID {
	t.vars = append(t.vars, newRecord(kind, universe, span))
	return ir.InferVarID(len(t.vars))
}

func (t *Table) record(v ir.InferVarID) *Record {
	if v == 0 || int(v) > len(t.vars) {
		return nil
	}
	return t.vars[v-1]
}

// Snapshot returns a copy of v's current record, safe to read without
// risk of a concurrent mutation — the with_inference_var_data operation
// of §4.F. Suitable only for a read that does not itself need to suspend;
// callers that need to wait for more data use Ctx.AwaitBound instead.
func (t *Table) Snapshot(v ir.InferVarID) Record {
	r := t.record(v)
	if r == nil {
		return Record{}
	}
	return r.snapshot()
}

// RequireIs records that v must satisfy predicate, reporting and poisoning
// v if that contradicts an existing isn't-fact for the same predicate.
func (t *Table) RequireIs(v ir.InferVarID, predicate PredicateKind, justification string, bag *diag.Bag) bool {
	r := t.record(v)
	if r == nil {
		return false
	}
	if existing, ok := r.Isnt[predicate]; ok {
		r.Poisoned = true
		if bag != nil {
			bag.Add(diag.New(diag.SevError, diag.ContradictoryInference, r.Span,
				"inference variable required to be "+predicate.String()+" but was already required not to be: "+existing.Justification))
		}
		return false
	}
	if _, ok := r.Is[predicate]; !ok {
		r.Is[predicate] = Fact{Justification: justification}
	}
	return true
}

// RequireIsnt is RequireIs's negative counterpart.
func (t *Table) RequireIsnt(v ir.InferVarID, predicate PredicateKind, justification string, bag *diag.Bag) bool {
	r := t.record(v)
	if r == nil {
		return false
	}
	if existing, ok := r.Is[predicate]; ok {
		r.Poisoned = true
		if bag != nil {
			bag.Add(diag.New(diag.SevError, diag.ContradictoryInference, r.Span,
				"inference variable required not to be "+predicate.String()+" but was already required to be: "+existing.Justification))
		}
		return false
	}
	if _, ok := r.Isnt[predicate]; !ok {
		r.Isnt[predicate] = Fact{Justification: justification}
	}
	return true
}

// InsertTypeBound idempotently tightens v's lower or upper RedTy bound.
// Reports whether the bound was new (so the engine knows to wake tasks
// waiting on v).
func (t *Table) InsertTypeBound(v ir.InferVarID, dir Direction, ty redterm.RedTy) bool {
	r := t.record(v)
	if r == nil {
		return false
	}
	switch dir {
	case Lower:
		if r.HasLowerTy && sameRedTy(r.LowerTy, ty) {
			return false
		}
		r.HasLowerTy = true
		r.LowerTy = ty
	case Upper:
		if r.HasUpperTy && sameRedTy(r.UpperTy, ty) {
			return false
		}
		r.HasUpperTy = true
		r.UpperTy = ty
	}
	return true
}

// InsertPermissionBound idempotently appends chain to v's ordered lower or
// upper bound-chain set, skipping it if structurally already present.
func (t *Table) InsertPermissionBound(v ir.InferVarID, dir Direction, chain redterm.Chain) bool {
	r := t.record(v)
	if r == nil {
		return false
	}
	switch dir {
	case Lower:
		if chainSetContains(r.LowerChains, chain) {
			return false
		}
		r.LowerChains = append(r.LowerChains, chain)
	case Upper:
		if chainSetContains(r.UpperChains, chain) {
			return false
		}
		r.UpperChains = append(r.UpperChains, chain)
	}
	return true
}

// NarrowUpperChains discards every one of v's current upper-bound chain
// alternatives that keep rejects — the viable-alternative narrowing §4.F
// describes: a permission variable's upper bound is a disjunction of
// candidate chains, and a predicate obligation placed on v can rule some
// of them out without having to wait for the variable to fully resolve.
// Reports the number of alternatives left standing and whether narrowing
// actually discarded anything (so the caller knows whether to wake
// dependents). A variable with no recorded upper chains yet has nothing to
// narrow: (0, false).
func (t *Table) NarrowUpperChains(v ir.InferVarID, keep func(redterm.Chain) bool) (remaining int, changed bool) {
	r := t.record(v)
	if r == nil || len(r.UpperChains) == 0 {
		return 0, false
	}
	kept := make([]redterm.Chain, 0, len(r.UpperChains))
	for _, c := range r.UpperChains {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	changed = len(kept) != len(r.UpperChains)
	r.UpperChains = kept
	return len(kept), changed
}

func chainSetContains(set []redterm.Chain, chain redterm.Chain) bool {
	deduped := redterm.DedupChains(append(append([]redterm.Chain(nil), set...), chain))
	return len(deduped) == len(set)
}

func sameRedTy(a, b redterm.RedTy) bool {
	return redterm.EqualRedTy(a, b)
}

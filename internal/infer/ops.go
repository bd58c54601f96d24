package infer

import (
	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// FreshVar allocates a new inference variable (fresh_inference_var, §4.F).
func (e *Engine) FreshVar(kind ir.GenericKind, universe ir.Universe, span source.Span) ir.InferVarID {
	return e.Table.FreshVar(kind, universe, span)
}

// RequireIs asserts v must satisfy predicate (require_is, §4.F), waking any
// task suspended on v when the fact is new or contradictory (a poison is
// itself a state change worth re-checking dependents over).
func (e *Engine) RequireIs(v ir.InferVarID, predicate PredicateKind, justification string, bag *diag.Bag) bool {
	before := e.Table.Snapshot(v)
	ok := e.Table.RequireIs(v, predicate, justification, bag)
	after := e.Table.Snapshot(v)
	if !sameFacts(before, after) {
		e.NotifyVar(v)
	}
	return ok
}

// RequireIsnt is RequireIs's negative counterpart.
func (e *Engine) RequireIsnt(v ir.InferVarID, predicate PredicateKind, justification string, bag *diag.Bag) bool {
	before := e.Table.Snapshot(v)
	ok := e.Table.RequireIsnt(v, predicate, justification, bag)
	after := e.Table.Snapshot(v)
	if !sameFacts(before, after) {
		e.NotifyVar(v)
	}
	return ok
}

// InsertTypeBound tightens v's lower or upper RedTy bound (insert_bound,
// §4.F), waking dependents only when the bound actually changed.
func (e *Engine) InsertTypeBound(v ir.InferVarID, dir Direction, ty redterm.RedTy) bool {
	changed := e.Table.InsertTypeBound(v, dir, ty)
	if changed {
		e.NotifyVar(v)
	}
	return changed
}

// InsertPermissionBound appends chain to v's ordered lower or upper
// bound-chain set, waking dependents only when it was genuinely new.
func (e *Engine) InsertPermissionBound(v ir.InferVarID, dir Direction, chain redterm.Chain) bool {
	changed := e.Table.InsertPermissionBound(v, dir, chain)
	if changed {
		e.NotifyVar(v)
	}
	return changed
}

// Snapshot is with_inference_var_data (§4.F): a non-suspending read of v's
// current record.
func (e *Engine) Snapshot(v ir.InferVarID) Record {
	return e.Table.Snapshot(v)
}

// NarrowUpperChains rules out every upper-bound chain alternative of v that
// keep rejects, waking dependents only when the set actually shrank.
func (e *Engine) NarrowUpperChains(v ir.InferVarID, keep func(redterm.Chain) bool) (remaining int, changed bool) {
	remaining, changed = e.Table.NarrowUpperChains(v, keep)
	if changed {
		e.NotifyVar(v)
	}
	return remaining, changed
}

func sameFacts(a, b Record) bool {
	return len(a.Is) == len(b.Is) && len(a.Isnt) == len(b.Isnt) && a.Poisoned == b.Poisoned
}

package subtype

import (
	"dada/internal/diag"
	"dada/internal/infer"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// deferInferLower handles `infer(v) ≤ upper`: upper becomes v's upper
// RedTy bound, and a task is spawned (only when this is genuinely new
// information) to finish the check once v's lower bound also arrives.
func (c *Checker) deferInferLower(v ir.InferVarID, upper redterm.RedTy, span source.Span) {
	c.deferred = true
	if c.engine == nil {
		return
	}
	if c.engine.InsertTypeBound(v, infer.Upper, upper) {
		c.spawnTypeVarTask(v, span)
	}
}

// deferInferUpper handles `lower ≤ infer(v)` symmetrically.
func (c *Checker) deferInferUpper(v ir.InferVarID, lower redterm.RedTy, span source.Span) {
	c.deferred = true
	if c.engine == nil {
		return
	}
	if c.engine.InsertTypeBound(v, infer.Lower, lower) {
		c.spawnTypeVarTask(v, span)
	}
}

// spawnTypeVarTask waits for both a lower and upper RedTy bound to exist on
// v and relates them directly. A variable that only ever collects a bound
// on one side has nothing to cross-check and the task simply ends at
// end-of-stream without reporting anything — this component does not
// implement join/meet over multiple candidate bounds, only the one
// lower/upper RedTy pair §4.F's variable record holds.
func (c *Checker) spawnTypeVarTask(v ir.InferVarID, span source.Span) {
	c.engine.Spawn(func(ctx *infer.Ctx) any {
		lowerRec, ok := ctx.NextTypeBound(v, infer.Lower, 0)
		if !ok {
			return nil
		}
		upperRec, ok := ctx.NextTypeBound(v, infer.Upper, 0)
		if !ok {
			return nil
		}
		if !c.relateTy(lowerRec.LowerTy, upperRec.UpperTy, span) {
			if c.bag != nil {
				c.bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, span,
					"inferred type does not satisfy a required bound"))
			}
		}
		return nil
	})
}

// deferPermInferLower handles `infer(v) ≤ upper` at the permission level:
// every chain of upper becomes a candidate upper-bound alternative for v
// (§4.F's ordered chain set, not a single value — multiple alternatives
// can coexist until the predicate checker's viable-alternative narrowing
// rules them out one by one).
func (c *Checker) deferPermInferLower(v ir.InferVarID, upper redterm.RedPerm, span source.Span) {
	c.deferred = true
	if c.engine == nil {
		return
	}
	changed := false
	for _, ch := range upper.Chains {
		if c.engine.InsertPermissionBound(v, infer.Upper, ch) {
			changed = true
		}
	}
	if changed {
		c.spawnPermVarTask(v, span)
	}
}

func (c *Checker) deferPermInferUpper(v ir.InferVarID, lower redterm.RedPerm, span source.Span) {
	c.deferred = true
	if c.engine == nil {
		return
	}
	changed := false
	for _, ch := range lower.Chains {
		if c.engine.InsertPermissionBound(v, infer.Lower, ch) {
			changed = true
		}
	}
	if changed {
		c.spawnPermVarTask(v, span)
	}
}

// spawnPermVarTask iterates v's lower-bound chain stream (suspension
// point 3, §5) as it grows, checking each newly-arrived chain against
// every upper-bound chain known at that moment; a lower chain with no
// satisfying upper chain yet recorded is not itself an error (more upper
// bounds may still arrive), only one that survives to end-of-stream with
// at least one upper bound present but none matching is reported.
func (c *Checker) spawnPermVarTask(v ir.InferVarID, span source.Span) {
	c.engine.Spawn(func(ctx *infer.Ctx) any {
		idx := 0
		for {
			rec, ok := ctx.NextPermissionBound(v, infer.Lower, idx)
			if !ok {
				return nil
			}
			lc := rec.LowerChains[idx]
			idx++
			if len(rec.UpperChains) == 0 {
				continue
			}
			matched := false
			for _, uc := range rec.UpperChains {
				if chainLE(lc, uc) {
					matched = true
					break
				}
			}
			if !matched && c.bag != nil {
				c.bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, span,
					"inferred permission does not satisfy a required bound"))
			}
		}
	})
}

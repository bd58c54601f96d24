package predicate

import (
	"dada/internal/diag"
	"dada/internal/infer"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// Checker evaluates the four predicates over an interner's types and
// permissions, distinguishing primitive, class, and struct-like (tuple,
// future, or any other non-class aggregate) named types per §4.E.
//
// A Checker is built per function body, sharing that function's own
// inference engine (mirroring subtype.Checker, func.go's newFuncChecker) so
// a predicate obligation that lands on a bare inference variable can
// suspend rather than report prematurely (§4.E's suspend-until-bound rule).
// engine may be nil, in which case every such obligation falls back to the
// synchronous NeedsAnnotation report.
type Checker struct {
	interner       *ir.Interner
	classNames     map[source.StringID]bool
	primitiveNames map[source.StringID]bool
	engine         *infer.Engine
}

// NewChecker builds a Checker. classNames is the set of declared class
// names (symbols.Result.Classes, keyed down to names) — every other
// named type is treated as a struct-like aggregate (tuple, future, or an
// unrecognized constructor), per §4.E's class/struct split.
func NewChecker(interner *ir.Interner, classNames map[source.StringID]bool, engine *infer.Engine) *Checker {
	c := &Checker{interner: interner, classNames: classNames, primitiveNames: map[source.StringID]bool{}, engine: engine}
	b := interner.Builtins()
	for _, id := range []ir.TypeID{b.Int, b.Bool, b.String, b.Unit} {
		if t, ok := interner.LookupType(id); ok && t.Kind == ir.TypeNamed {
			c.primitiveNames[t.Name] = true
		}
	}
	return c
}

// Predicates computes all four verdicts for ty.
func (c *Checker) Predicates(ty ir.TypeID) Verdicts {
	rty, rperm := redterm.Reduce(c.interner, ty)
	return c.verdictsOf(rty, rperm)
}

func (c *Checker) IsProvablyCopy(ty ir.TypeID) bool  { return c.Predicates(ty).Copy == Holds }
func (c *Checker) IsProvablyMove(ty ir.TypeID) bool  { return c.Predicates(ty).Move == Holds }
func (c *Checker) IsProvablyOwned(ty ir.TypeID) bool { return c.Predicates(ty).Owned == Holds }
func (c *Checker) IsProvablyLent(ty ir.TypeID) bool  { return c.Predicates(ty).Lent == Holds }

// RequireCopy asserts ty is copy, reporting PredicateFailure (or
// NeedsAnnotation, when the answer depends on an unresolved variable) at
// span into bag when it cannot be shown. Returns whether the predicate held.
//
// When ty reduces to a bare inference variable rather than a fully known
// permission, the obligation suspends on that variable instead of reporting
// immediately (requireKind, spawnPredicateTask) — §4.E's suspend-until-bound
// rule — and this call optimistically returns true, the same deferred-
// success convention subtype.Checker.Check uses for a type-level infer var.
func (c *Checker) RequireCopy(ty ir.TypeID, bag *diag.Bag, span source.Span) bool {
	return c.requireKind(ty, infer.PredicateCopy, "copy", bag, span)
}

func (c *Checker) RequireMove(ty ir.TypeID, bag *diag.Bag, span source.Span) bool {
	return c.requireKind(ty, infer.PredicateMove, "move", bag, span)
}

func (c *Checker) RequireOwned(ty ir.TypeID, bag *diag.Bag, span source.Span) bool {
	return c.requireKind(ty, infer.PredicateOwned, "owned", bag, span)
}

func (c *Checker) RequireLent(ty ir.TypeID, bag *diag.Bag, span source.Span) bool {
	return c.requireKind(ty, infer.PredicateLent, "lent", bag, span)
}

// requireKind drives one of the Require* entry points above. A verdict that
// isn't Unknown settles immediately via require, exactly as before. An
// Unknown verdict whose permission reduces to a single, bare inference
// variable (soleInferPermVar) — rather than a bound generic variable, a
// mixed chain, or a disjunction of several chains — gets a chance to
// resolve itself later instead of reporting NeedsAnnotation right away;
// anything else still falls through to the synchronous report.
func (c *Checker) requireKind(ty ir.TypeID, kind infer.PredicateKind, name string, bag *diag.Bag, span source.Span) bool {
	rty, rperm := redterm.Reduce(c.interner, ty)
	verdict := verdictFor(c.verdictsOf(rty, rperm), kind)
	if verdict == Unknown && c.engine != nil {
		if iv, ok := soleInferPermVar(rperm); ok {
			c.spawnPredicateTask(iv, kind, name, bag, span)
			return true
		}
	}
	return c.require(verdict, name, bag, span)
}

// verdictFor projects the field of v named by kind.
func verdictFor(v Verdicts, kind infer.PredicateKind) Verdict {
	switch kind {
	case infer.PredicateCopy:
		return v.Copy
	case infer.PredicateMove:
		return v.Move
	case infer.PredicateOwned:
		return v.Owned
	case infer.PredicateLent:
		return v.Lent
	default:
		return Unknown
	}
}

// soleInferPermVar recognizes the one RedPerm shape redterm.Reduce produces
// for a bare, unresolved permission variable: a single chain consisting of
// a single LinkVar link whose IsInfer is set. A bound generic permission
// variable (IsInfer false) has nowhere to suspend to and is deliberately
// excluded here, as is any richer chain (mixed concrete links, or more than
// one candidate chain) — those still fall through to the synchronous
// NeedsAnnotation report.
func soleInferPermVar(perm redterm.RedPerm) (ir.InferVarID, bool) {
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 1 {
		return 0, false
	}
	l := perm.Chains[0][0]
	if l.Kind != redterm.LinkVar || !l.IsInfer {
		return 0, false
	}
	return l.Infer, true
}

// spawnPredicateTask waits for v to collect at least one candidate
// upper-bound chain, then narrows that candidate set down to the
// alternatives that could still satisfy kind (viable-alternative narrowing,
// §4.F/§4.E): a chain already provably failing kind is ruled out for good.
// No candidates surviving is a hard failure; exactly one surviving promotes
// the obligation to a recorded require_is fact on v (reachable, from then
// on, to anything else awaiting v); more than one surviving leaves the
// obligation genuinely undecided and the task ends silently, the same
// end-of-stream convention spawnTypeVarTask and spawnPermVarTask use
// (infer_defer.go) when a variable never collects enough information to
// settle a check.
func (c *Checker) spawnPredicateTask(v ir.InferVarID, kind infer.PredicateKind, name string, bag *diag.Bag, span source.Span) {
	c.engine.Spawn(func(ctx *infer.Ctx) any {
		if _, ok := ctx.NextPermissionBound(v, infer.Upper, 0); !ok {
			return nil
		}
		keep := func(chain redterm.Chain) bool {
			return verdictFor(singleChainVerdicts(chain), kind) != Fails
		}
		remaining, _ := c.engine.NarrowUpperChains(v, keep)
		switch remaining {
		case 0:
			if bag != nil {
				bag.Add(diag.New(diag.SevError, diag.PredicateFailure, span,
					"this term is required to be "+name+" but is not"))
			}
		case 1:
			c.engine.RequireIs(v, kind, name, bag)
		}
		return nil
	})
}

func (c *Checker) require(v Verdict, name string, bag *diag.Bag, span source.Span) bool {
	switch v {
	case Holds:
		return true
	case Unknown:
		if bag != nil {
			bag.Add(diag.New(diag.SevError, diag.NeedsAnnotation, span,
				"cannot determine whether this term is "+name+" without more information"))
		}
		return false
	default: // Fails
		if bag != nil {
			bag.Add(diag.New(diag.SevError, diag.PredicateFailure, span,
				"this term is required to be "+name+" but is not"))
		}
		return false
	}
}

// verdictsOf is the recursive worker: never and primitive types override
// the general chain-driven computation per §4.E; class instances use only
// their outer permission chain; every other named type (tuple, future, an
// unrecognized constructor) aggregates existentially/universally over its
// generic arguments' own permissions, composed with the outer permission.
func (c *Checker) verdictsOf(ty redterm.RedTy, perm redterm.RedPerm) Verdicts {
	if ty.Kind == redterm.RedTyNever {
		return Verdicts{Copy: Fails, Move: Holds, Owned: Holds, Lent: Fails}
	}

	chain := chainVerdicts(perm)

	if ty.Kind == redterm.RedTyNamed {
		if c.primitiveNames[ty.Name] {
			chain.Copy = orHolds(chain.Copy, boolVerdict(!chainAnyHasMut(perm)))
			return chain
		}
		if c.classNames[ty.Name] {
			return chain
		}
		return c.aggregateVerdicts(ty, perm)
	}

	return chain
}

// aggregateVerdicts folds a struct-like named type's generic arguments
// (each composed with the outer permission) existentially for move/lent
// and universally for copy/owned.
func (c *Checker) aggregateVerdicts(ty redterm.RedTy, outer redterm.RedPerm) Verdicts {
	if len(ty.Args) == 0 {
		return Verdicts{Copy: Holds, Move: Fails, Owned: Holds, Lent: Fails}
	}

	result := Verdicts{Copy: Holds, Owned: Holds, Move: Fails, Lent: Fails}
	for _, arg := range ty.Args {
		if arg.Kind != ir.GenericKindType {
			continue
		}
		composed := redterm.Apply(outer, arg.Perm)
		v := c.verdictsOf(arg.Ty, composed)
		result.Copy = andVerdict(result.Copy, v.Copy)
		result.Owned = andVerdict(result.Owned, v.Owned)
		result.Move = orVerdict(result.Move, v.Move)
		result.Lent = orVerdict(result.Lent, v.Lent)
	}
	return result
}

// chainVerdicts computes the permission-only predicates (ignoring the
// type's own shape) over a disjunction of chains: is_provably_P requires
// every disjunct to satisfy P, since the actual permission realized at
// runtime could be any one of them.
func chainVerdicts(perm redterm.RedPerm) Verdicts {
	if len(perm.Chains) == 0 {
		return Verdicts{Copy: Unknown, Move: Unknown, Owned: Unknown, Lent: Unknown}
	}
	v := Verdicts{Copy: Holds, Move: Holds, Owned: Holds, Lent: Holds}
	for _, chain := range perm.Chains {
		cv := singleChainVerdicts(chain)
		v.Copy = andVerdict(v.Copy, cv.Copy)
		v.Move = andVerdict(v.Move, cv.Move)
		v.Owned = andVerdict(v.Owned, cv.Owned)
		v.Lent = andVerdict(v.Lent, cv.Lent)
	}
	return v
}

// singleChainVerdicts evaluates one permission chain. A LinkVar link (an
// unresolved bound or inference variable) makes every predicate that isn't
// otherwise already decided by a concrete link Unknown rather than
// decisively Fails, since the variable could still resolve to our/ref/mut
// later. A LinkError link is an already-diagnosed error sentinel: it is
// skipped rather than treated as uncertain, so a chain that failed to
// reduce doesn't also force every predicate on it to Unknown.
func singleChainVerdicts(chain redterm.Chain) Verdicts {
	var hasOur, hasRef, hasMut, uncertain bool
	for _, l := range chain {
		switch l.Kind {
		case redterm.LinkOur:
			hasOur = true
		case redterm.LinkRef:
			hasRef = true
		case redterm.LinkMut:
			hasMut = true
		case redterm.LinkVar:
			uncertain = true
		}
	}

	copyV := Fails
	if hasOur || hasRef {
		copyV = Holds
	} else if uncertain {
		copyV = Unknown
	}

	lentV := Fails
	if hasMut || hasRef {
		lentV = Holds
	} else if uncertain {
		lentV = Unknown
	}

	ownedV := Holds
	if hasMut || hasRef {
		ownedV = Fails
	} else if uncertain {
		ownedV = Unknown
	}

	moveV := Holds
	if hasOur || hasRef {
		moveV = Fails
	} else if uncertain {
		moveV = Unknown
	}

	return Verdicts{Copy: copyV, Move: moveV, Owned: ownedV, Lent: lentV}
}

func chainAnyHasMut(perm redterm.RedPerm) bool {
	for _, chain := range perm.Chains {
		for _, l := range chain {
			if l.Kind == redterm.LinkMut {
				return true
			}
		}
	}
	return false
}

func boolVerdict(b bool) Verdict {
	if b {
		return Holds
	}
	return Fails
}

// andVerdict combines two verdicts for a universally-quantified
// conjunction: Fails dominates, then Unknown, then Holds.
func andVerdict(a, b Verdict) Verdict {
	if a == Fails || b == Fails {
		return Fails
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return Holds
}

// orVerdict combines two verdicts for an existentially-quantified
// disjunction: Holds dominates, then Unknown, then Fails.
func orVerdict(a, b Verdict) Verdict {
	if a == Holds || b == Holds {
		return Holds
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return Fails
}

// orHolds is a small helper for overriding a verdict to Holds without
// losing an existing Holds/Unknown distinction when the override itself
// doesn't apply.
func orHolds(a, override Verdict) Verdict {
	if override == Holds {
		return Holds
	}
	return a
}

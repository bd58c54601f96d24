package subtype

import (
	"dada/internal/diag"
	"dada/internal/infer"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// Checker relates reduced terms by structural recursion (§4.G). engine may
// be nil when relating fully-resolved terms with no inference variables
// anywhere in them — every inference-variable code path degrades to a
// no-op (optimistic success, nothing recorded) in that case, since there is
// nowhere to park the deferred bound.
type Checker struct {
	engine *infer.Engine
	bag    *diag.Bag

	// deferred is set by the four infer_defer.go entry points whenever a
	// Check call touched an inference variable, so Check can tell its
	// caller the immediate `true` it's about to return is optimistic
	// forward progress rather than a settled answer.
	deferred bool
}

// NewChecker builds a Checker. bag receives any SubtypeFailure diagnostics
// a spawned deferred-relation task reports once it can finally decide.
func NewChecker(engine *infer.Engine, bag *diag.Bag) *Checker {
	return &Checker{engine: engine, bag: bag}
}

// Relate checks lower ≤ upper for a (type, permission) pair, per §4.G. When
// either side turns out to involve an inference variable, the relation is
// recorded as a bound on that variable and a task is spawned to finish the
// check once enough data arrives; Relate itself returns true in that case
// (optimistic forward progress — a genuine mismatch surfaces later as a
// SubtypeFailure diagnostic from the spawned task, not from this call).
func (c *Checker) Relate(lowerTy redterm.RedTy, lowerPerm redterm.RedPerm, upperTy redterm.RedTy, upperPerm redterm.RedPerm, span source.Span) bool {
	ok, _ := c.Check(lowerTy, lowerPerm, upperTy, upperPerm, span)
	return ok
}

// Check is Relate plus a second result: whether the check actually settled
// synchronously or was deferred to a spawned task because an inference
// variable was involved somewhere in the comparison. A caller that wants
// to report its own diagnostic code on immediate failure (rather than
// relying on the generic SubtypeFailure a deferred task reports later)
// should only do so when deferred is false.
func (c *Checker) Check(lowerTy redterm.RedTy, lowerPerm redterm.RedPerm, upperTy redterm.RedTy, upperPerm redterm.RedPerm, span source.Span) (ok, deferred bool) {
	c.deferred = false
	permOK := c.relatePermTop(lowerPerm, upperPerm, span)
	tyOK := c.relateTy(lowerTy, upperTy, span)
	return permOK && tyOK, c.deferred
}

func (c *Checker) relateTy(lower, upper redterm.RedTy, span source.Span) bool {
	if lower.Kind == redterm.RedTyError || upper.Kind == redterm.RedTyError {
		return true
	}
	if lower.Kind == redterm.RedTyNever {
		return true
	}
	if lower.Kind == redterm.RedTyInfer {
		c.deferInferLower(lower.Infer, upper, span)
		return true
	}
	if upper.Kind == redterm.RedTyInfer {
		c.deferInferUpper(upper.Infer, lower, span)
		return true
	}

	switch {
	case lower.Kind == redterm.RedTyVar && upper.Kind == redterm.RedTyVar:
		return lower.Var == upper.Var
	case lower.Kind == redterm.RedTyNamed && upper.Kind == redterm.RedTyNamed:
		return c.relateNamed(lower, upper, span)
	default:
		return false
	}
}

// relateNamed equates head names (a tuple is a named type of fixed arity,
// so this also covers tuple arity+componentwise comparison per §4.G), then
// relates each generic-argument position invariantly: both directions must
// hold, since this component does not implement declared variance.
func (c *Checker) relateNamed(lower, upper redterm.RedTy, span source.Span) bool {
	if lower.Name != upper.Name || len(lower.Args) != len(upper.Args) {
		return false
	}
	for i := range lower.Args {
		a, b := lower.Args[i], upper.Args[i]
		if a.Kind != b.Kind {
			return false
		}
		switch a.Kind {
		case ir.GenericKindType:
			if !c.relateTy(a.Ty, b.Ty, span) || !c.relateTy(b.Ty, a.Ty, span) {
				return false
			}
			if !c.relatePermTop(a.Perm, b.Perm, span) || !c.relatePermTop(b.Perm, a.Perm, span) {
				return false
			}
		case ir.GenericKindPermission:
			if !c.relatePermTop(a.Perm, b.Perm, span) || !c.relatePermTop(b.Perm, a.Perm, span) {
				return false
			}
		case ir.GenericKindPlace:
			if !a.Place.Equal(b.Place) {
				return false
			}
		}
	}
	return true
}

// RequireNumeric drives require_numeric (§4.G): structural recursion
// bottoms out at a lookup in the caller-supplied set of numeric type
// names, since this package has no builtin notion of which named types
// count as numeric.
func (c *Checker) RequireNumeric(ty redterm.RedTy, numericNames map[source.StringID]bool, bag *diag.Bag, span source.Span) bool {
	return c.requireShape(ty, "numeric", func(name source.StringID) bool { return numericNames[name] }, bag, span)
}

// RequireFuture drives require_future (§4.G) the same way, against the
// single well-known Future constructor name.
func (c *Checker) RequireFuture(ty redterm.RedTy, futureName source.StringID, bag *diag.Bag, span source.Span) bool {
	return c.requireShape(ty, "a future", func(name source.StringID) bool { return name == futureName }, bag, span)
}

func (c *Checker) requireShape(ty redterm.RedTy, label string, matches func(source.StringID) bool, bag *diag.Bag, span source.Span) bool {
	switch ty.Kind {
	case redterm.RedTyNever, redterm.RedTyError:
		return true
	case redterm.RedTyInfer:
		if bag != nil {
			bag.Add(diag.New(diag.SevError, diag.NeedsAnnotation, span,
				"cannot determine whether this term is "+label+" without more information"))
		}
		return false
	case redterm.RedTyNamed:
		if matches(ty.Name) {
			return true
		}
	}
	if bag != nil {
		bag.Add(diag.New(diag.SevError, diag.SubtypeFailure, span, "expected "+label))
	}
	return false
}

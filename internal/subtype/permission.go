package subtype

import (
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

// relatePermTop relates two permission disjunctions, first checking
// whether either side is bare (a standalone, unembedded) inference
// variable — in which case the relation is deferred to the inference
// engine — and otherwise falling through to the purely structural
// comparison every chain of lower must satisfy against some chain of
// upper.
func (c *Checker) relatePermTop(lower, upper redterm.RedPerm, span source.Span) bool {
	if v, ok := soleInferLink(lower); ok {
		c.deferPermInferLower(v, upper, span)
		return true
	}
	if v, ok := soleInferLink(upper); ok {
		c.deferPermInferUpper(v, lower, span)
		return true
	}
	return relatePerm(lower, upper)
}

func soleInferLink(p redterm.RedPerm) (ir.InferVarID, bool) {
	if len(p.Chains) == 1 && len(p.Chains[0]) == 1 {
		l := p.Chains[0][0]
		if l.Kind == redterm.LinkVar && l.IsInfer {
			return l.Infer, true
		}
	}
	return 0, false
}

// relatePerm is the purely structural half of §4.G's permission rule:
// each chain of lower must be ≤ some chain of upper. An empty disjunction
// on either side means the shape couldn't be determined (e.g. it
// reduced from an error permission) and is treated permissively.
func relatePerm(lower, upper redterm.RedPerm) bool {
	if len(lower.Chains) == 0 || len(upper.Chains) == 0 {
		return true
	}
	for _, lc := range lower.Chains {
		ok := false
		for _, uc := range upper.Chains {
			if chainLE(lc, uc) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// chainLE compares two flat chains link-by-link per §4.G: `mut[p] ≤
// mut[p']` when p'⊆p, `ref[p] ≤ ref[p']` when p'⊆p, and `our ≤
// ref[anything]`. Chains of differing length never relate — this
// component does not attempt any chain-shortening normalization beyond
// what redterm.Reduce already performs.
func chainLE(lower, upper redterm.Chain) bool {
	if len(lower) != len(upper) {
		return false
	}
	for i := range lower {
		if !linkLE(lower[i], upper[i]) {
			return false
		}
	}
	return true
}

func linkLE(l, u redterm.Link) bool {
	switch {
	case l.Kind == redterm.LinkError || u.Kind == redterm.LinkError:
		return true
	case l.Kind == redterm.LinkVar || u.Kind == redterm.LinkVar:
		// An opaque generic or embedded inference link: the bare-variable
		// case is handled one level up by soleInferLink before we ever
		// reach per-link comparison, so a LinkVar seen here is either a
		// rigid generic permission parameter (only ever equal to itself,
		// which the caller has no way to disprove structurally) or an
		// inference variable embedded alongside other links in the same
		// chain — this component does not attempt bound tracking at that
		// granularity, so it lets it through permissively.
		return true
	case l.Kind == redterm.LinkOur && u.Kind == redterm.LinkOur:
		return true
	case l.Kind == redterm.LinkOur && u.Kind == redterm.LinkRef:
		return true
	case l.Kind == redterm.LinkMut && u.Kind == redterm.LinkMut:
		return placesSubsetOf(u.Places, l.Places)
	case l.Kind == redterm.LinkRef && u.Kind == redterm.LinkRef:
		return placesSubsetOf(u.Places, l.Places)
	default:
		return false
	}
}

// placesSubsetOf reports whether every place in sub also appears in sup.
func placesSubsetOf(sub, sup []ir.Place) bool {
	for _, s := range sub {
		found := false
		for _, t := range sup {
			if s.Equal(t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

package redterm

import (
	"github.com/vmihailenco/msgpack/v5"

	"dada/internal/ir"
)

// Reduce computes the canonical RedTy + RedPerm pair for an interned type.
func Reduce(interner *ir.Interner, id ir.TypeID) (RedTy, RedPerm) {
	t, ok := interner.LookupType(id)
	if !ok {
		return RedTy{Kind: RedTyError}, identityPerm()
	}

	switch t.Kind {
	case ir.TypeNamed:
		args := make([]ReducedArg, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, reduceArg(interner, a))
		}
		return RedTy{Kind: RedTyNamed, Name: t.Name, Args: args}, identityPerm()

	case ir.TypePerm:
		outer := ReducePermission(interner, t.Perm)
		innerTy, innerPerm := Reduce(interner, t.Inner)
		return innerTy, RedPerm{Chains: dedupChains(projectThroughOuter(outer.Chains, innerPerm.Chains))}

	case ir.TypeVar:
		return RedTy{Kind: RedTyVar, Var: t.Var}, identityPerm()

	case ir.TypeInfer:
		// A bare infer(i) type is always paired with a companion
		// permission inference variable (§4.6): perm(infer(j), infer(i)).
		return RedTy{Kind: RedTyInfer, Infer: t.Infer}, RedPerm{
			Chains: []Chain{{{Kind: LinkVar, IsInfer: true, Infer: t.InferPerm}}},
		}

	case ir.TypeNever:
		return RedTy{Kind: RedTyNever}, identityPerm()

	default:
		return RedTy{Kind: RedTyError}, identityPerm()
	}
}

func reduceArg(interner *ir.Interner, a ir.GenericTerm) ReducedArg {
	switch a.Kind {
	case ir.GenericKindType:
		ty, perm := Reduce(interner, a.Type)
		return ReducedArg{Kind: a.Kind, Ty: ty, Perm: perm}
	case ir.GenericKindPermission:
		return ReducedArg{Kind: a.Kind, Perm: ReducePermission(interner, a.Perm)}
	case ir.GenericKindPlace:
		return ReducedArg{Kind: a.Kind, Place: a.Place}
	default:
		return ReducedArg{Kind: a.Kind}
	}
}

// ReducePermission computes the canonical disjunction of chains for an
// interned permission.
func ReducePermission(interner *ir.Interner, id ir.PermissionID) RedPerm {
	p, ok := interner.LookupPermission(id)
	if !ok {
		return RedPerm{Chains: []Chain{{{Kind: LinkError}}}}
	}

	switch p.Kind {
	case ir.PermMy:
		return identityPerm()

	case ir.PermOur:
		return RedPerm{Chains: []Chain{{{Kind: LinkOur}}}}

	case ir.PermMut:
		return RedPerm{Chains: []Chain{{{Kind: LinkMut, Places: p.Places, Liveness: LiveUnknown}}}}

	case ir.PermRef:
		return RedPerm{Chains: []Chain{{{Kind: LinkRef, Places: p.Places, Liveness: LiveUnknown}}}}

	case ir.PermVar:
		return RedPerm{Chains: []Chain{{{Kind: LinkVar, Var: p.Var}}}}

	case ir.PermInfer:
		return RedPerm{Chains: []Chain{{{Kind: LinkVar, IsInfer: true, Infer: p.Infer}}}}

	case ir.PermApply:
		left := ReducePermission(interner, p.Left)
		right := ReducePermission(interner, p.Right)
		return RedPerm{Chains: dedupChains(applyChains(left.Chains, right.Chains))}

	case ir.PermOr:
		left := ReducePermission(interner, p.Left)
		right := ReducePermission(interner, p.Right)
		combined := make([]Chain, 0, len(left.Chains)+len(right.Chains))
		combined = append(combined, left.Chains...)
		combined = append(combined, right.Chains...)
		return RedPerm{Chains: dedupChains(combined)}

	default:
		return RedPerm{Chains: []Chain{{{Kind: LinkError}}}}
	}
}

// identityPerm is the chain disjunction for `my`: a single empty chain,
// the identity element for chain concatenation under apply.
func identityPerm() RedPerm {
	return RedPerm{Chains: []Chain{{}}}
}

// Apply composes an outer permission disjunction with an inner one, per
// raw permission-algebra `apply(a, b)` (§4.D): `a` identity yields `b`
// unchanged; otherwise each `b` chain that is already copy (leads with
// `our` or `ref`) absorbs the `a` prefix and is kept as-is, and every
// other `b` chain is prefixed with every `a` chain. This is exported so
// the predicate checker can compose an aggregate's outer permission with
// a generic argument's own nested permission (§4.E's "struct inherits
// from its generic arguments under the outer permission").
func Apply(a, b RedPerm) RedPerm {
	return RedPerm{Chains: dedupChains(applyChains(a.Chains, b.Chains))}
}

func applyChains(a, b []Chain) []Chain {
	if isIdentity(a) {
		return b
	}

	out := make([]Chain, 0, len(a)*len(b))
	for _, bChain := range b {
		if chainIsCopy(bChain) {
			out = append(out, bChain)
			continue
		}
		for _, aChain := range a {
			out = append(out, concatChain(aChain, bChain))
		}
	}
	return out
}

// projectThroughOuter composes an outer permission with the permission
// already reduced for a type's inner structure, used only when reducing
// `perm(p, T)` (field/place access through an aggregate). Unlike Apply,
// a bare `our` outer permission is absorbing here: once you hold a fully
// shared view of an aggregate, any further access reached through it is
// shared too, regardless of what permission its contents nominally carry.
// Raw permission-algebra `apply(our, mut[p])` (e.g. a literal "our mut[p]"
// lease-sharing permission) does NOT get this treatment — see Apply — so
// that shape stays correctly classified as both copy and lent.
func projectThroughOuter(outer, inner []Chain) []Chain {
	if isBareOur(outer) {
		return outer
	}
	return applyChains(outer, inner)
}

func isIdentity(chains []Chain) bool {
	return len(chains) == 1 && len(chains[0]) == 0
}

func isBareOur(chains []Chain) bool {
	return len(chains) == 1 && len(chains[0]) == 1 && chains[0][0].Kind == LinkOur
}

// chainIsCopy reports whether the outermost link of chain already grants
// independent (copy) access, per §4.E: `our` and `ref[p]` are copy, `mut[p]`
// requires move. A bare variable or inference link is treated as move here
// — this is a structural, conservative classification for normalization
// purposes only; the predicate checker (component E) is the authority on
// whether an opaque permission variable is provably copy.
func chainIsCopy(c Chain) bool {
	if len(c) == 0 {
		return false
	}
	switch c[0].Kind {
	case LinkOur, LinkRef:
		return true
	default:
		return false
	}
}

func concatChain(a, b Chain) Chain {
	out := make(Chain, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// DedupChains is dedupChains exported for the inference engine's
// idempotent bound-set insertion (it reuses the same structural-equality
// check to decide whether a chain is already a member of a bound set).
func DedupChains(chains []Chain) []Chain {
	return dedupChains(chains)
}

// EqualRedTy reports whether a and b are structurally identical, by the
// same canonical-serialization comparison dedupChains uses for chains.
func EqualRedTy(a, b RedTy) bool {
	ka, errA := msgpack.Marshal(a)
	kb, errB := msgpack.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ka) == string(kb)
}

// dedupChains removes structurally duplicate chains from a disjunction,
// keeping first-occurrence order so the result stays deterministic.
func dedupChains(chains []Chain) []Chain {
	if len(chains) <= 1 {
		return chains
	}
	seen := make(map[string]bool, len(chains))
	out := make([]Chain, 0, len(chains))
	for _, c := range chains {
		key, err := msgpack.Marshal(c)
		if err != nil {
			out = append(out, c)
			continue
		}
		ks := string(key)
		if seen[ks] {
			continue
		}
		seen[ks] = true
		out = append(out, c)
	}
	return out
}

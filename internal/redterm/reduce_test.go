package redterm

import (
	"testing"

	"dada/internal/ir"
	"dada/internal/source"
)

func newInterner() *ir.Interner {
	return ir.NewInterner(source.NewInterner())
}

func TestReduce_NamedType(t *testing.T) {
	in := newInterner()
	ty, perm := Reduce(in, in.Builtins().Int)
	if ty.Kind != RedTyNamed {
		t.Fatalf("ty.Kind = %v, want RedTyNamed", ty.Kind)
	}
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 0 {
		t.Fatalf("perm = %+v, want the identity chain (bare `my`)", perm)
	}
}

func TestReduce_MutPermWrapsNamedType(t *testing.T) {
	in := newInterner()
	place := ir.Place{Base: ir.LocalID(1)}
	permID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: permID, Inner: in.Builtins().Int})

	ty, perm := Reduce(in, wrapped)
	if ty.Kind != RedTyNamed {
		t.Fatalf("ty.Kind = %v, want RedTyNamed (perm layers are erased from RedTy)", ty.Kind)
	}
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 1 || perm.Chains[0][0].Kind != LinkMut {
		t.Fatalf("perm = %+v, want a single mut(place) chain", perm)
	}
}

func TestReduce_OurAbsorbsNestedMut(t *testing.T) {
	in := newInterner()
	place := ir.Place{Base: ir.LocalID(1)}
	mutPerm := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	innerMut := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: mutPerm, Inner: in.Builtins().Int})

	ourPerm := in.InternPermission(ir.Permission{Kind: ir.PermOur})
	outer := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: ourPerm, Inner: innerMut})

	_, perm := Reduce(in, outer)
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 1 || perm.Chains[0][0].Kind != LinkOur {
		t.Fatalf("perm = %+v, want a bare `our` chain absorbing the nested mut", perm)
	}
}

func TestReducePermission_ApplyComposesNonCopyChains(t *testing.T) {
	in := newInterner()
	placeA := ir.Place{Base: ir.LocalID(1)}
	placeB := ir.Place{Base: ir.LocalID(2)}
	mutA := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{placeA}})
	mutB := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{placeB}})
	applyID := in.InternPermission(ir.Permission{Kind: ir.PermApply, Left: mutA, Right: mutB})

	perm := ReducePermission(in, applyID)
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 2 {
		t.Fatalf("perm = %+v, want one two-link chain (mutA concatenated with mutB)", perm)
	}
	if perm.Chains[0][0].Kind != LinkMut || perm.Chains[0][1].Kind != LinkMut {
		t.Fatalf("perm.Chains[0] = %+v, want [LinkMut, LinkMut]", perm.Chains[0])
	}
}

func TestReducePermission_ApplyLeavesCopyChainUnprefixed(t *testing.T) {
	in := newInterner()
	place := ir.Place{Base: ir.LocalID(1)}
	mutA := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	refB := in.InternPermission(ir.Permission{Kind: ir.PermRef, Places: []ir.Place{place}})
	applyID := in.InternPermission(ir.Permission{Kind: ir.PermApply, Left: mutA, Right: refB})

	perm := ReducePermission(in, applyID)
	if len(perm.Chains) != 1 || len(perm.Chains[0]) != 1 || perm.Chains[0][0].Kind != LinkRef {
		t.Fatalf("perm = %+v, want the ref chain kept bare since it is already copy", perm)
	}
}

func TestReducePermission_OrUnionsAndDedupsChains(t *testing.T) {
	in := newInterner()
	ourA := in.InternPermission(ir.Permission{Kind: ir.PermOur})
	ourB := in.InternPermission(ir.Permission{Kind: ir.PermOur})
	orID := in.InternPermission(ir.Permission{Kind: ir.PermOr, Left: ourA, Right: ourB})

	perm := ReducePermission(in, orID)
	if len(perm.Chains) != 1 {
		t.Fatalf("len(perm.Chains) = %d, want 1 (identical `our` chains dedup)", len(perm.Chains))
	}
}

func TestEqualRedTy(t *testing.T) {
	in := newInterner()
	a, _ := Reduce(in, in.Builtins().Int)
	b, _ := Reduce(in, in.Builtins().Int)
	c, _ := Reduce(in, in.Builtins().Bool)

	if !EqualRedTy(a, b) {
		t.Fatalf("EqualRedTy(Int, Int) = false, want true")
	}
	if EqualRedTy(a, c) {
		t.Fatalf("EqualRedTy(Int, Bool) = true, want false")
	}
}

func TestDedupChains(t *testing.T) {
	chain := Chain{{Kind: LinkOur}}
	chains := []Chain{chain, {{Kind: LinkOur}}, {{Kind: LinkRef}}}
	deduped := DedupChains(chains)
	if len(deduped) != 2 {
		t.Fatalf("len(deduped) = %d, want 2", len(deduped))
	}
}

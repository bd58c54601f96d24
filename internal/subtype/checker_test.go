package subtype

import (
	"testing"

	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

func reduceType(in *ir.Interner, id ir.TypeID) (redterm.RedTy, redterm.RedPerm) {
	return redterm.Reduce(in, id)
}

func TestCheck_IdenticalNamedTypesRelate(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	ty, perm := reduceType(in, in.Builtins().Int)
	ok, deferred := c.Check(ty, perm, ty, perm, source.Span{})
	if !ok || deferred {
		t.Fatalf("Check(Int, Int) = (%v, %v), want (true, false)", ok, deferred)
	}
}

func TestCheck_MismatchedNamedTypesFail(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	lowerTy, lowerPerm := reduceType(in, in.Builtins().Int)
	upperTy, upperPerm := reduceType(in, in.Builtins().Bool)
	ok, deferred := c.Check(lowerTy, lowerPerm, upperTy, upperPerm, source.Span{})
	if ok || deferred {
		t.Fatalf("Check(Int, Bool) = (%v, %v), want (false, false)", ok, deferred)
	}
}

func TestCheck_OurIsSubpermOfRefButNotViceVersa(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	place := ir.Place{Base: ir.LocalID(1)}
	refID := in.InternPermission(ir.Permission{Kind: ir.PermRef, Places: []ir.Place{place}})
	ourID := in.InternPermission(ir.Permission{Kind: ir.PermOur})

	ourWrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: ourID, Inner: in.Builtins().Int})
	refWrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: refID, Inner: in.Builtins().Int})

	ourTy, ourPerm := reduceType(in, ourWrapped)
	refTy, refPerm := reduceType(in, refWrapped)

	if ok, _ := c.Check(ourTy, ourPerm, refTy, refPerm, source.Span{}); !ok {
		t.Fatalf("Check(our Int, ref[p] Int) = false, want true (our <= ref[anything])")
	}
	if ok, _ := c.Check(refTy, refPerm, ourTy, ourPerm, source.Span{}); ok {
		t.Fatalf("Check(ref[p] Int, our Int) = true, want false")
	}
}

func TestCheck_MutRequiresPlaceSubset(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	placeA := ir.Place{Base: ir.LocalID(1)}
	placeB := ir.Place{Base: ir.LocalID(2)}

	mutBothID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{placeA, placeB}})
	mutAID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{placeA}})

	mutBothWrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: mutBothID, Inner: in.Builtins().Int})
	mutAWrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: mutAID, Inner: in.Builtins().Int})

	bothTy, bothPerm := reduceType(in, mutBothWrapped)
	aTy, aPerm := reduceType(in, mutAWrapped)

	// mut[a,b] <= mut[a]: the wider-places lease is a subtype of the
	// narrower one it could soundly stand in for.
	if ok, _ := c.Check(bothTy, bothPerm, aTy, aPerm, source.Span{}); !ok {
		t.Fatalf("Check(mut[a,b] Int, mut[a] Int) = false, want true")
	}
	// mut[a] <= mut[a,b] does not hold: mut[a] cannot stand in for a
	// lease that also claims b.
	if ok, _ := c.Check(aTy, aPerm, bothTy, bothPerm, source.Span{}); ok {
		t.Fatalf("Check(mut[a] Int, mut[a,b] Int) = true, want false")
	}
}

func TestCheck_TupleArityMismatchFails(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	strings := in.Strings()
	pairName := strings.Intern("Pair")
	tripleName := strings.Intern("Triple")

	pairType := in.InternType(ir.Type{Kind: ir.TypeNamed, Name: pairName, Args: []ir.GenericTerm{
		ir.TypeTerm(in.Builtins().Int), ir.TypeTerm(in.Builtins().Int),
	}})
	tripleType := in.InternType(ir.Type{Kind: ir.TypeNamed, Name: tripleName, Args: []ir.GenericTerm{
		ir.TypeTerm(in.Builtins().Int), ir.TypeTerm(in.Builtins().Int), ir.TypeTerm(in.Builtins().Int),
	}})

	lowerTy, lowerPerm := reduceType(in, pairType)
	upperTy, upperPerm := reduceType(in, tripleType)

	if ok, _ := c.Check(lowerTy, lowerPerm, upperTy, upperPerm, source.Span{}); ok {
		t.Fatalf("Check(Pair, Triple) = true, want false (different constructor names)")
	}
}

func TestRequireNumeric_FailsForNonNumericNamedType(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	ty, _ := reduceType(in, in.Builtins().Bool)
	numeric := map[source.StringID]bool{}
	bag := diag.NewBag(8)
	if c.RequireNumeric(ty, numeric, bag, source.Span{}) {
		t.Fatalf("RequireNumeric(Bool) = true, want false")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SubtypeFailure {
		t.Fatalf("bag = %+v, want one diag.SubtypeFailure", bag.Items())
	}
}

func TestRequireFuture_HoldsForMatchingConstructorName(t *testing.T) {
	in := ir.NewInterner(source.NewInterner())
	c := NewChecker(nil, nil)

	futureName := in.Strings().Intern("Future")
	futureType := in.InternType(ir.Type{Kind: ir.TypeNamed, Name: futureName, Args: []ir.GenericTerm{
		ir.TypeTerm(in.Builtins().Int),
	}})
	ty, _ := reduceType(in, futureType)

	bag := diag.NewBag(8)
	if !c.RequireFuture(ty, futureName, bag, source.Span{}) {
		t.Fatalf("RequireFuture(Future[Int]) = false, want true")
	}
	if bag.Len() != 0 {
		t.Fatalf("bag = %+v, want empty", bag.Items())
	}
}

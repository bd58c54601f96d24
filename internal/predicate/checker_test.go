package predicate

import (
	"testing"

	"dada/internal/diag"
	"dada/internal/infer"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

func TestPredicates_BarePrimitiveIsCopyOwned(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	c := NewChecker(in, map[source.StringID]bool{}, nil)

	v := c.Predicates(in.Builtins().Int)
	if v.Copy != Holds || v.Owned != Holds {
		t.Fatalf("Predicates(my Int) = %+v, want Copy=Holds, Owned=Holds", v)
	}
	if v.Move != Holds {
		t.Fatalf("Predicates(my Int).Move = %v, want Holds (an owned value is always movable)", v.Move)
	}
}

func TestPredicates_MutPrimitiveIsNotCopy(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	c := NewChecker(in, map[source.StringID]bool{}, nil)

	place := ir.Place{Base: ir.LocalID(1)}
	permID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: permID, Inner: in.Builtins().Int})

	v := c.Predicates(wrapped)
	if v.Copy != Fails {
		t.Fatalf("Predicates(mut[p] Int).Copy = %v, want Fails", v.Copy)
	}
	if v.Lent != Holds {
		t.Fatalf("Predicates(mut[p] Int).Lent = %v, want Holds", v.Lent)
	}
	if v.Owned != Fails {
		t.Fatalf("Predicates(mut[p] Int).Owned = %v, want Fails", v.Owned)
	}
}

func TestPredicates_RefClassIsCopyAndLent(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	boxName := strings.Intern("Box")
	c := NewChecker(in, map[source.StringID]bool{boxName: true}, nil)

	boxType := in.InternType(ir.Type{Kind: ir.TypeNamed, Name: boxName})
	place := ir.Place{Base: ir.LocalID(1)}
	permID := in.InternPermission(ir.Permission{Kind: ir.PermRef, Places: []ir.Place{place}})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: permID, Inner: boxType})

	v := c.Predicates(wrapped)
	if v.Copy != Holds {
		t.Fatalf("Predicates(ref[p] Box).Copy = %v, want Holds", v.Copy)
	}
	if v.Lent != Holds {
		t.Fatalf("Predicates(ref[p] Box).Lent = %v, want Holds", v.Lent)
	}
	if v.Move != Fails {
		t.Fatalf("Predicates(ref[p] Box).Move = %v, want Fails (a shared view cannot be moved out of)", v.Move)
	}
}

func TestPredicates_OurTupleOfMovableFieldsIsStillCopy(t *testing.T) {
	// A struct-like aggregate's copy predicate is universal over its own
	// fields' *nested* permission, but the outer `our` composes with each
	// field and absorbs it (ReducePermission's isBareOur rule does not
	// apply here; redterm.Apply is used instead, composing prefixes), so
	// the outer `our` alone is enough to make every field copy regardless
	// of what permission it nominally carries inside the tuple.
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	c := NewChecker(in, map[source.StringID]bool{}, nil)

	pairName := strings.Intern("Pair")
	pairType := in.InternType(ir.Type{
		Kind: ir.TypeNamed,
		Name: pairName,
		Args: []ir.GenericTerm{
			{Kind: ir.GenericKindType, Type: in.Builtins().Int},
			{Kind: ir.GenericKindType, Type: in.Builtins().Bool},
		},
	})
	ourPerm := in.InternPermission(ir.Permission{Kind: ir.PermOur})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: ourPerm, Inner: pairType})

	v := c.Predicates(wrapped)
	if v.Copy != Holds {
		t.Fatalf("Predicates(our Pair[Int, Bool]).Copy = %v, want Holds", v.Copy)
	}
}

func TestRequireCopy_ReportsPredicateFailure(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	c := NewChecker(in, map[source.StringID]bool{}, nil)

	place := ir.Place{Base: ir.LocalID(1)}
	permID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: permID, Inner: in.Builtins().Int})

	bag := diag.NewBag(8)
	if c.RequireCopy(wrapped, bag, source.Span{}) {
		t.Fatalf("RequireCopy(mut[p] Int) = true, want false")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.PredicateFailure {
		t.Fatalf("bag = %+v, want one diag.PredicateFailure", bag.Items())
	}
}

func TestRequireOwned_UnresolvedVariableReportsNeedsAnnotation(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	c := NewChecker(in, map[source.StringID]bool{}, nil)

	varPerm := in.InternPermission(ir.Permission{Kind: ir.PermVar, Var: 0})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: varPerm, Inner: in.Builtins().Int})

	bag := diag.NewBag(8)
	if c.RequireOwned(wrapped, bag, source.Span{}) {
		t.Fatalf("RequireOwned(var(p) Int) = true, want false (undetermined)")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.NeedsAnnotation {
		t.Fatalf("bag = %+v, want one diag.NeedsAnnotation", bag.Items())
	}
}

// TestRequireCopy_SuspendsOnInferenceVariableThenNarrowsToFailure exercises
// §4.E's suspend-until-bound path end to end: a bare inference variable
// defers rather than reporting NeedsAnnotation up front, and once its only
// candidate upper-bound chain turns out to be mut (not copy), the deferred
// obligation resolves to PredicateFailure once the engine actually runs the
// suspended task.
func TestRequireCopy_SuspendsOnInferenceVariableThenNarrowsToFailure(t *testing.T) {
	strings := source.NewInterner()
	in := ir.NewInterner(strings)
	engine := infer.NewEngine(nil)
	c := NewChecker(in, map[source.StringID]bool{}, engine)

	v := engine.FreshVar(ir.GenericKindPermission, ir.Universe(0), source.Span{})
	inferPerm := in.InternPermission(ir.Permission{Kind: ir.PermInfer, Infer: v})
	wrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: inferPerm, Inner: in.Builtins().Int})

	bag := diag.NewBag(8)
	if !c.RequireCopy(wrapped, bag, source.Span{}) {
		t.Fatalf("RequireCopy(infer(v) Int) = false, want true (deferred, not yet decided)")
	}
	if bag.Len() != 0 {
		t.Fatalf("bag = %+v, want empty before v's upper bound arrives", bag.Items())
	}

	place := ir.Place{Base: ir.LocalID(1)}
	mutPermID := in.InternPermission(ir.Permission{Kind: ir.PermMut, Places: []ir.Place{place}})
	mutWrapped := in.InternType(ir.Type{Kind: ir.TypePerm, Perm: mutPermID, Inner: in.Builtins().Int})
	_, mutRPerm := redterm.Reduce(in, mutWrapped)
	if len(mutRPerm.Chains) != 1 {
		t.Fatalf("mut[p] Int reduced to %d chains, want 1", len(mutRPerm.Chains))
	}
	engine.InsertPermissionBound(v, infer.Upper, mutRPerm.Chains[0])
	engine.Run()

	if bag.Len() != 1 || bag.Items()[0].Code != diag.PredicateFailure {
		t.Fatalf("bag = %+v, want one diag.PredicateFailure once mut is the sole surviving upper bound", bag.Items())
	}
}

package infer

import (
	"testing"

	"dada/internal/diag"
	"dada/internal/ir"
	"dada/internal/redterm"
	"dada/internal/source"
)

func TestFreshVar_AllocatesDistinctIDs(t *testing.T) {
	e := NewEngine(nil)
	a := e.FreshVar(ir.GenericKindType, ir.RootUniverse, source.Span{})
	b := e.FreshVar(ir.GenericKindType, ir.RootUniverse, source.Span{})
	if a == b {
		t.Fatalf("FreshVar returned the same id twice: %v", a)
	}
}

func TestRequireIs_ContradictsExistingIsnt(t *testing.T) {
	e := NewEngine(nil)
	v := e.FreshVar(ir.GenericKindPermission, ir.RootUniverse, source.Span{})

	bag := diag.NewBag(8)
	if !e.RequireIsnt(v, PredicateCopy, "leased here", bag) {
		t.Fatalf("RequireIsnt on a fresh variable should not fail")
	}
	if e.RequireIs(v, PredicateCopy, "shared here", bag) {
		t.Fatalf("RequireIs should fail: contradicts the prior require-isn't")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ContradictoryInference {
		t.Fatalf("bag = %+v, want one diag.ContradictoryInference", bag.Items())
	}
	if rec := e.Snapshot(v); !rec.Poisoned {
		t.Fatalf("Snapshot(v).Poisoned = false, want true after a contradiction")
	}
}

func TestInsertTypeBound_IdempotentOnRepeatedEqualBound(t *testing.T) {
	e := NewEngine(nil)
	v := e.FreshVar(ir.GenericKindType, ir.RootUniverse, source.Span{})

	ty := redterm.RedTy{Kind: redterm.RedTyNamed, Name: source.StringID(1)}
	if changed := e.InsertTypeBound(v, Lower, ty); !changed {
		t.Fatalf("first InsertTypeBound should report changed")
	}
	if changed := e.InsertTypeBound(v, Lower, ty); changed {
		t.Fatalf("second InsertTypeBound with the same bound should report unchanged")
	}

	rec := e.Snapshot(v)
	if !rec.HasLowerTy || !redterm.EqualRedTy(rec.LowerTy, ty) {
		t.Fatalf("Snapshot(v) = %+v, want LowerTy = %+v", rec, ty)
	}
}

func TestEngineRun_AwaitBoundWakesOnNotify(t *testing.T) {
	e := NewEngine(nil)
	v := e.FreshVar(ir.GenericKindType, ir.RootUniverse, source.Span{})

	task := e.Spawn(func(ctx *Ctx) any {
		rec, fresh := ctx.AwaitBound(v)
		return fresh && rec.HasLowerTy
	})

	// A second task inserts the bound once running, which should wake the
	// first task rather than leave it suspended until end-of-stream.
	e.Spawn(func(ctx *Ctx) any {
		ctx.engine.InsertTypeBound(v, Lower, redterm.RedTy{Kind: redterm.RedTyNamed, Name: source.StringID(1)})
		return nil
	})

	results := e.Run()
	if !task.Done() {
		t.Fatalf("task should be done after Run")
	}
	if got, ok := results[0].(bool); !ok || !got {
		t.Fatalf("results[0] = %v, want true (woken with a fresh bound)", results[0])
	}
}

func TestEngineRun_AwaitTaskOrdersAfterDependency(t *testing.T) {
	e := NewEngine(nil)

	var order []string
	first := e.Spawn(func(ctx *Ctx) any {
		order = append(order, "first")
		return 42
	})
	e.Spawn(func(ctx *Ctx) any {
		result, ok := ctx.AwaitTask(first)
		order = append(order, "second")
		if !ok {
			t.Errorf("AwaitTask(first) ok = false, want true")
		}
		return result
	})

	results := e.Run()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("order = %v, want [first second]", order)
	}
	if results[1] != 42 {
		t.Fatalf("results[1] = %v, want 42 (forwarded from the awaited task)", results[1])
	}
}

func TestEngineRun_UnresolvedAwaitEndsAtEndOfStream(t *testing.T) {
	e := NewEngine(nil)
	v := e.FreshVar(ir.GenericKindType, ir.RootUniverse, source.Span{})

	task := e.Spawn(func(ctx *Ctx) any {
		_, fresh := ctx.AwaitBound(v)
		return fresh
	})

	results := e.Run()
	if !task.Done() {
		t.Fatalf("task should be forced to a result by end-of-stream")
	}
	if got, ok := results[0].(bool); !ok || got {
		t.Fatalf("results[0] = %v, want false (no bound ever arrived)", results[0])
	}
}

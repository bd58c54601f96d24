package query

import (
	"context"
	"sync/atomic"
	"testing"

	"dada/internal/diag"
	"dada/internal/source"
)

func TestRunFiles_CollectsResultsInInputOrder(t *testing.T) {
	store := NewStore(nil)
	square := Query[int, int]{
		Name: "square",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			return in * in, diag.NewBag(0), nil
		},
	}

	outs, bag, err := RunFiles(context.Background(), store, square, []int{1, 2, 3, 4}, 2)
	if err != nil {
		t.Fatalf("RunFiles returned an error: %v", err)
	}
	want := []int{1, 4, 9, 16}
	for i, v := range want {
		if outs[i] != v {
			t.Fatalf("outs[%d] = %d, want %d", i, outs[i], v)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("bag.Len() = %d, want 0", bag.Len())
	}
}

func TestRunFiles_MergesDiagnosticsAcrossInputs(t *testing.T) {
	store := NewStore(nil)
	flagOdd := Query[int, int]{
		Name: "flagOdd",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			bag := diag.NewBag(4)
			if in%2 != 0 {
				bag.Add(diag.New(diag.SevError, diag.UnresolvedName, source.Span{}, "odd"))
			}
			return in, bag, nil
		},
	}

	_, bag, err := RunFiles(context.Background(), store, flagOdd, []int{1, 2, 3}, 4)
	if err != nil {
		t.Fatalf("RunFiles returned an error: %v", err)
	}
	if bag.Len() != 2 {
		t.Fatalf("bag.Len() = %d, want 2 (one per odd input)", bag.Len())
	}
}

func TestRunFiles_DeduplicatesViaUnderlyingStore(t *testing.T) {
	store := NewStore(nil)
	var calls int32
	identity := Query[int, int]{
		Name: "identity",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			atomic.AddInt32(&calls, 1)
			return in, diag.NewBag(0), nil
		},
	}

	_, _, err := RunFiles(context.Background(), store, identity, []int{5, 5, 5}, 4)
	if err != nil {
		t.Fatalf("RunFiles returned an error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("Compute called %d times across repeated identical inputs, want 1", got)
	}
}

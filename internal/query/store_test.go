package query

import (
	"sync"
	"sync/atomic"
	"testing"

	"dada/internal/diag"
	"dada/internal/source"
)

func TestQueryRun_MemoizesByInput(t *testing.T) {
	store := NewStore(nil)
	var calls int32

	double := Query[int, int]{
		Name: "double",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			atomic.AddInt32(&calls, 1)
			return in * 2, diag.NewBag(0), []source.FileID{source.FileID(1)}
		},
	}

	out, _ := double.Run(store, 21)
	if out != 42 {
		t.Fatalf("Run() = %d, want 42", out)
	}
	out, _ = double.Run(store, 21)
	if out != 42 {
		t.Fatalf("second Run() = %d, want 42", out)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("Compute called %d times, want 1 (second call should hit cache)", got)
	}

	out, _ = double.Run(store, 10)
	if out != 20 {
		t.Fatalf("Run(10) = %d, want 20", out)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("Compute called %d times, want 2 (distinct input)", got)
	}
}

func TestQueryRun_DistinguishesByName(t *testing.T) {
	store := NewStore(nil)
	var aCalls, bCalls int32

	a := Query[int, int]{Name: "a", Compute: func(in int) (int, *diag.Bag, []source.FileID) {
		atomic.AddInt32(&aCalls, 1)
		return in, diag.NewBag(0), nil
	}}
	b := Query[int, int]{Name: "b", Compute: func(in int) (int, *diag.Bag, []source.FileID) {
		atomic.AddInt32(&bCalls, 1)
		return in, diag.NewBag(0), nil
	}}

	a.Run(store, 1)
	b.Run(store, 1)
	a.Run(store, 1)
	b.Run(store, 1)

	if aCalls != 1 || bCalls != 1 {
		t.Fatalf("aCalls=%d bCalls=%d, want 1 and 1", aCalls, bCalls)
	}
}

func TestQueryRun_ConcurrentCallsCollapse(t *testing.T) {
	store := NewStore(nil)
	var calls int32
	release := make(chan struct{})

	slow := Query[int, int]{
		Name: "slow",
		Compute: func(in int) (int, *diag.Bag, []source.FileID) {
			atomic.AddInt32(&calls, 1)
			<-release
			return in, diag.NewBag(0), nil
		},
	}

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			slow.Run(store, 7)
		}()
	}
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("Compute called %d times under concurrent identical requests, want 1", got)
	}
}

func TestStoreInvalidate_DropsOnlyDependentEntries(t *testing.T) {
	store := NewStore(nil)
	var calls int32

	q := Query[source.FileID, int]{
		Name: "perFile",
		Compute: func(in source.FileID) (int, *diag.Bag, []source.FileID) {
			atomic.AddInt32(&calls, 1)
			return int(in), diag.NewBag(0), []source.FileID{in}
		},
	}

	q.Run(store, source.FileID(1))
	q.Run(store, source.FileID(2))
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}

	store.Invalidate(source.FileID(1))
	if store.Len() != 1 {
		t.Fatalf("Len() after Invalidate(1) = %d, want 1", store.Len())
	}

	q.Run(store, source.FileID(1))
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("Compute called %d times, want 3 (recomputed after invalidation)", got)
	}

	q.Run(store, source.FileID(2))
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("Compute called %d times, want still 3 (file 2 entry untouched)", got)
	}
}

func TestQueryRun_ReplaysStoredDiagnostics(t *testing.T) {
	store := NewStore(nil)

	q := Query[int, string]{
		Name: "withDiag",
		Compute: func(in int) (string, *diag.Bag, []source.FileID) {
			bag := diag.NewBag(4)
			bag.Add(diag.New(diag.SevError, diag.UnresolvedName, source.Span{}, "boom"))
			return "result", bag, nil
		},
	}

	_, bag1 := q.Run(store, 1)
	_, bag2 := q.Run(store, 1)

	if bag1.Len() != 1 || bag2.Len() != 1 {
		t.Fatalf("expected 1 diagnostic on both calls, got %d and %d", bag1.Len(), bag2.Len())
	}
}

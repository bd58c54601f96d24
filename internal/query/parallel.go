package query

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dada/internal/diag"
)

// RunFiles runs q once per input concurrently, bounded by jobs (GOMAXPROCS
// when jobs <= 0), and collects the results in input order. Each Run still
// goes through the Store's own memoization and singleflight collapsing, so
// RunFiles buys nothing beyond a bounded fan-out over already-deduplicated
// work — it exists for the case where a caller has many files queued up at
// once and wants them checked in parallel rather than one at a time.
//
// Grounded on the teacher's errgroup.WithContext driven directory walk
// (DiagnoseDirWithOptions's indexed results slice plus g.SetLimit(jobs)),
// adapted from "one goroutine per file on disk" to "one goroutine per
// already-resolved query input".
func RunFiles[In any, Out any](ctx context.Context, s *Store, q Query[In, Out], inputs []In, jobs int) ([]Out, *diag.Bag, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outs := make([]Out, len(inputs))
	bags := make([]*diag.Bag, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(inputs), 1)))

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, bag := q.Run(s, in)
			outs[i] = out
			bags[i] = bag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := diag.NewBag(0)
	for _, bag := range bags {
		if bag != nil {
			merged.Merge(bag)
		}
	}
	return outs, merged, nil
}

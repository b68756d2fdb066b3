package ingest

import (
	"context"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// side identifies which of the two concurrent normalize jobs a result
// belongs to, so NormalizeBoth can return ref/impl in fixed positions
// regardless of which goroutine finishes first.
type side int

const (
	sideRef side = iota
	sideImpl
)

type normalizeResult struct {
	side side
	view *view.NormalizedView
	err  error
}

// NormalizeBoth runs Normalize for the ref and impl resources concurrently,
// using an explicit goroutine+channel worker idiom
// (internal/pipeline/parallel.go) scaled down to exactly two tasks per
// §5's concurrency model. The first error cancels the derived context and
// is returned; the other goroutine's result, if any, is discarded.
func NormalizeBoth(
	ctx context.Context,
	refResource, implResource Resource,
	refOpts, implOpts Options,
) (refView, implView *view.NormalizedView, err error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan normalizeResult, 2)

	go func() {
		v, e := Normalize(runCtx, refResource, refOpts)
		results <- normalizeResult{side: sideRef, view: v, err: e}
	}()
	go func() {
		v, e := Normalize(runCtx, implResource, implOpts)
		results <- normalizeResult{side: sideImpl, view: v, err: e}
	}()

	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil && err == nil {
			err = r.err
			cancel()
		}
		switch r.side {
		case sideRef:
			refView = r.view
		case sideImpl:
			implView = r.view
		}
	}

	if err != nil {
		return nil, nil, err
	}
	return refView, implView, nil
}

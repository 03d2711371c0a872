package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel2 runs fn1 and fn2 concurrently. The context they receive is
// canceled as soon as either fails; on error both results are zero.
//
// The list path uses it to run Find and Count side by side:
//
//	quotes, total, err := Parallel2(ctx,
//	    func(ctx context.Context) ([]*domain.Quote, error) { return repo.Find(ctx, filter, skip, limit) },
//	    func(ctx context.Context) (int64, error) { return repo.Count(ctx, filter) },
//	)
func Parallel2[A, B any](
	ctx context.Context,
	fn1 func(context.Context) (A, error),
	fn2 func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = fn1(gctx)
		return err
	})
	g.Go(func() (err error) {
		b, err = fn2(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var (
			zeroA A
			zeroB B
		)

		return zeroA, zeroB, fmt.Errorf("parallel execution failed: %w", err)
	}

	return a, b, nil
}

// FanOut feeds items to at most workers goroutines running fn. The first
// error stops the feed and cancels the context the others run under.
//
// The seeder uses it to insert candidates concurrently:
//
//	err := FanOut(ctx, 4, quotes, func(ctx context.Context, q *domain.Quote) error {
//	    return store.Insert(ctx, q)
//	})
func FanOut[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	fed := 0
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			return fn(gctx, item)
		})
		fed++
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("fan out failed: %w", err)
	}

	// The caller canceled before every item was handed out.
	if fed < len(items) {
		return fmt.Errorf("fan out failed: %w", ctx.Err())
	}

	return nil
}

// Package fanout is the single place that decides how a view loads several
// backend lists at once: either all-or-nothing, or best-effort where a failed
// source degrades to its zero value instead of failing the page.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All runs every fn concurrently and fails the whole load on the first error.
func All(ctx context.Context, fns ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error { return fn(ctx) })
	}
	return g.Wait()
}

// Settle runs every fn concurrently and waits for all of them. Individual
// failures are collected but never abort the others; callers keep whatever
// each fn managed to store.
func Settle(ctx context.Context, fns ...func(context.Context) error) []error {
	errs := make([]error, len(fns))
	var g errgroup.Group
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			errs[i] = fn(ctx)
			return nil
		})
	}
	g.Wait()

	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

package translate

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// TranslateBatch translates every text with at most MaxConcurrent requests
// in flight. Results are in input order. The first failure cancels the
// remaining requests and is returned.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, dest, src string) ([]*Translated, error) {
	results := make([]*Translated, len(texts))
	err := runBatch(ctx, texts, t.opts, func(ctx context.Context, i int, text string) error {
		r, err := t.Translate(ctx, text, dest, src)
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DetectBatch is Detect over many texts, bounded like TranslateBatch.
func (t *Translator) DetectBatch(ctx context.Context, texts []string) ([]*Detected, error) {
	results := make([]*Detected, len(texts))
	err := runBatch(ctx, texts, t.opts, func(ctx context.Context, i int, text string) error {
		r, err := t.Detect(ctx, text)
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// runBatch runs fn over items with the configured concurrency limit and
// reports progress after each completed item.
func runBatch(ctx context.Context, items []string, opts Options, fn func(context.Context, int, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.effectiveMaxConcurrent())

	var done atomic.Int32
	total := len(items)
launch:
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		if i > 0 && opts.RequestDelay > 0 {
			select {
			case <-gctx.Done():
				break launch
			case <-time.After(opts.RequestDelay):
			}
		}
		g.Go(func() error {
			if err := fn(gctx, i, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			n := int(done.Add(1))
			if opts.OnProgress != nil {
				opts.OnProgress(n, total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

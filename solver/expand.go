// SPDX-License-Identifier: MIT

package solver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/emmelineperneel/UJSSP/envelope"
)

// minShard is the smallest number of parents worth a goroutine.
const minShard = 2

// expand composes every parent with item j. With Workers > 1 the parents
// are split into contiguous shards, each writing its own range of the
// outcome slice, so the result is in envelope order whatever the schedule.
// The slice is reused across items and only valid until the next call.
func (e *engine[T]) expand(ctx context.Context, j int, parents []envelope.Candidate[T]) ([]outcome[T], error) {
	n := len(parents)
	if cap(e.outcomes) < n {
		e.outcomes = make([]outcome[T], n)
	}
	out := e.outcomes[:n]

	w := e.opts.Workers
	if w > n/minShard {
		w = n / minShard
	}
	if w <= 1 {
		for i := range parents {
			out[i] = e.strat.compose(j, parents[i])
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + w - 1) / w
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)&255 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = e.strat.compose(j, parents[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

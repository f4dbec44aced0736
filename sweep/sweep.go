// Package sweep dispatches benchmark invocations onto a bounded worker
// pool and collects the outcomes in submission order.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/RickFreemanCui/bavc-one-tree-sampler/grid"
	"github.com/RickFreemanCui/bavc-one-tree-sampler/invoke"
)

// DefaultWorkers bounds concurrent invocations when no pool size is
// given.
const DefaultWorkers = 4

// Invoker runs the benchmark for one grid point. *invoke.Runner is the
// production implementation.
type Invoker interface {
	Run(ctx context.Context, p grid.Point) invoke.Outcome
}

// Sink receives the raw output line of each successful invocation, in
// submission order.
type Sink interface {
	WriteRow(raw string) error
}

// Summary counts how the sweep went.
type Summary struct {
	Submitted int
	Succeeded int
	Failed    int
}

// Coordinator fans grid points out to a bounded pool of workers and
// feeds successful outcomes to a single sink.
type Coordinator struct {
	Workers int
	Invoker Invoker
	Logger  *slog.Logger
}

// NewCoordinator creates a Coordinator with the given pool size. A
// non-positive size falls back to DefaultWorkers.
func NewCoordinator(workers int, inv Invoker, logger *slog.Logger) *Coordinator {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	return &Coordinator{
		Workers: workers,
		Invoker: inv,
		Logger:  logger.With(slog.Int("workers", workers)),
	}
}

// Run sweeps all points. At most Workers invocations are in flight at
// once, and sink rows appear in the order of points regardless of which
// invocation finishes first: the collection loop blocks on each slot
// positionally before advancing, so row N+1 is never written before row
// N's outcome resolves. A failed invocation contributes no row and
// never cancels its siblings; only a sink write error aborts the sweep.
func (c *Coordinator) Run(ctx context.Context, points []grid.Point, sink Sink) (Summary, error) {
	summary := Summary{Submitted: len(points)}
	if len(points) == 0 {
		return summary, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]invoke.Outcome, len(points))

	done := make([]chan struct{}, len(points))
	for i := range done {
		done[i] = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)

	// Submission runs in its own goroutine because Go blocks once the
	// pool is full; the collection loop below must keep draining.
	go func() {
		for i, p := range points {
			i, p := i, p
			g.Go(func() error {
				outcomes[i] = c.Invoker.Run(gctx, p)
				close(done[i])

				return nil
			})
		}
	}()

	for i := range points {
		<-done[i]
		out := outcomes[i]

		if out.Failed {
			summary.Failed++

			continue
		}

		if strings.TrimSpace(out.Stdout) == "" {
			summary.Failed++
			c.Logger.Warn("benchmark produced no output, skipping row",
				slog.String("point", out.Point.String()),
			)

			continue
		}

		if err := sink.WriteRow(out.Stdout); err != nil {
			return summary, fmt.Errorf("write row for %s: %w", out.Point, err)
		}

		summary.Succeeded++
	}

	// Workers report invocation failures through their outcomes, never
	// as errors.
	_ = g.Wait()

	return summary, nil
}

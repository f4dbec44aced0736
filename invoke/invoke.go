// Package invoke runs the benchmark binary once per grid point and
// classifies how each run ended. The benchmark is opaque to the
// harness: its arguments are the point's values in positional order and
// its contract is one comma-separated line on stdout plus exit status 0.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/RickFreemanCui/bavc-one-tree-sampler/grid"
)

// DefaultTimeout is the wall-clock budget for one invocation.
const DefaultTimeout = 3000 * time.Second

// Reason tags why an invocation failed.
type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonNonzeroExit Reason = "nonzero-exit"
	ReasonUnexpected  Reason = "unexpected-error"
)

// Outcome is the terminal result of one invocation. On success Stdout
// holds the process's captured output verbatim; on failure Reason tags
// the cause and Detail carries the child's stderr or the error text.
type Outcome struct {
	Point  grid.Point
	Stdout string
	Failed bool
	Reason Reason
	Detail string
}

// Runner executes the benchmark binary for single grid points. It is
// deliberately synchronous; bounding parallelism is the coordinator's
// job.
type Runner struct {
	BinaryPath string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// NewRunner creates a Runner for the benchmark at binaryPath. A
// non-positive timeout falls back to DefaultTimeout.
func NewRunner(binaryPath string, timeout time.Duration, logger *slog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Runner{
		BinaryPath: binaryPath,
		Timeout:    timeout,
		Logger:     logger.With(slog.String("binary", binaryPath)),
	}
}

// Run executes the binary once with the point's values as positional
// arguments and blocks until it exits or the timeout expires. Every
// failure mode is folded into the Outcome, never returned as an error,
// so one bad grid point cannot take down the sweep.
func (r *Runner) Run(ctx context.Context, p grid.Point) Outcome {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.BinaryPath, p.Args()...)

	// Unblocks Wait when a killed child's orphans keep the output
	// pipes open past the deadline.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Debug("starting invocation", slog.String("point", p.String()))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case err == nil:
		r.Logger.Info("invocation finished",
			slog.String("point", p.String()),
			slog.Duration("elapsed", elapsed),
		)

		return Outcome{Point: p, Stdout: stdout.String()}

	case ctx.Err() == context.DeadlineExceeded:
		// The context kill surfaces as an exit error, so the deadline
		// check must come first.
		r.Logger.Error("invocation timed out",
			slog.String("point", p.String()),
			slog.Duration("budget", r.Timeout),
		)

		return failure(p, ReasonTimeout, fmt.Sprintf("exceeded %s", r.Timeout))

	case isExitError(err):
		detail := strings.TrimSpace(stderr.String())

		r.Logger.Error("invocation exited nonzero",
			slog.String("point", p.String()),
			slog.String("error", err.Error()),
			slog.String("stderr", detail),
		)

		return failure(p, ReasonNonzeroExit, detail)

	default:
		r.Logger.Error("invocation failed",
			slog.String("point", p.String()),
			slog.String("error", err.Error()),
		)

		return failure(p, ReasonUnexpected, err.Error())
	}
}

func failure(p grid.Point, reason Reason, detail string) Outcome {
	return Outcome{Point: p, Failed: true, Reason: reason, Detail: detail}
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError

	return errors.As(err, &exitErr)
}

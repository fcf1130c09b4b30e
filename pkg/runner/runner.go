package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	linter := NewLinter(opts.Config)

	p := pool.NewWithResults[FileOutcome]().WithMaxGoroutines(jobs)
	for _, path := range files {
		p.Go(func() FileOutcome {
			return linter.LintFile(ctx, path)
		})
	}
	outcomesByPath := make(map[string]FileOutcome, len(files))
	for _, outcome := range p.Wait() {
		outcomesByPath[outcome.Path] = outcome
	}

	// Build the result in discovery order; workers complete out of order.
	for _, path := range files {
		if outcome, ok := outcomesByPath[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

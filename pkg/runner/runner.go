package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and lints them concurrently.
//
// Results come back in discovery order no matter which worker finishes
// first. A failure in one file is recorded on its outcome and never stops
// the others. Cancellation stops files that have not started yet; those
// are left out of the result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles lints an already discovered list of files.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

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
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptions{KeepSource: opts.KeepSource}

	// One slot per file keeps the output order independent of scheduling.
	outcomes := make([]*FileOutcome, len(files))

	group := new(errgroup.Group)
	group.SetLimit(jobs)

	logger.Debug("linting files", "files", len(files), "jobs", jobs)

	for idx, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			fr, procErr := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
			if procErr != nil {
				outcome.Error = procErr
			} else {
				outcome.Result = fr
				logger.Debug("linted file", "path", path, "issues", fr.IssueCount())
			}
			outcomes[idx] = &outcome
			return nil
		})
	}

	// Workers never return errors; failures live on the outcomes.
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

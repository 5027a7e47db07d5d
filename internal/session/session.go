package session

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sirkon/refguard/internal/config"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/hir"
	"github.com/sirkon/refguard/internal/tree"
	"github.com/sirkon/refguard/internal/visit"
)

// Job is a unit together with the environment its calls are resolved in.
type Job struct {
	Unit tree.Unit
	Env  guard.Env
}

// Options of a session run.
type Options struct {
	// Jobs limits the number of units analyzed at once. Zero means GOMAXPROCS.
	Jobs int

	// Ignore skips units whose names it matches.
	Ignore *config.Matcher

	Logger *slog.Logger
}

// Result of a session run.
type Result struct {
	// Diagnoses in job order, each unit's diagnoses in traversal order.
	Diagnoses []diag.Diagnosis

	// Failed lists units whose analysis was aborted.
	Failed []string

	// Skipped counts ignored units.
	Skipped int
}

// HasErrors reports whether any diagnosis has error severity.
func (r *Result) HasErrors() bool {
	for i := range r.Diagnoses {
		if r.Diagnoses[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// FromIndex makes jobs out of every unit of an indexed crate.
func FromIndex(x *hir.Index) []Job {
	env := x.Env()
	units := x.Units()
	jobs := make([]Job, len(units))
	for i, u := range units {
		jobs[i] = Job{Unit: u, Env: env}
	}
	return jobs
}

type unitResult struct {
	skipped bool
	failed  bool
	reports []diag.Diagnosis
}

// Run analyzes all jobs. Unit failures are not errors of the run, they end
// up as internal diagnoses and in Result.Failed. Only a context cancellation
// stops the run.
func Run(ctx context.Context, v *visit.Visitor, jobs []Job, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res := &Result{}
	if len(jobs) == 0 {
		return res, nil
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Every goroutine writes its own index only.
	results := make([]unitResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			name := job.Unit.Name()
			if opts.Ignore.Match(name) {
				results[i].skipped = true
				logger.Debug("unit ignored", slog.String("unit", name))
				return nil
			}

			r := diag.NewReporter()
			if err := v.Visit(job.Unit, job.Env, r); err != nil {
				results[i].failed = true
			}
			results[i].reports = r.Reports()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, ur := range results {
		switch {
		case ur.skipped:
			res.Skipped++
			continue
		case ur.failed:
			res.Failed = append(res.Failed, jobs[i].Unit.Name())
		}
		res.Diagnoses = append(res.Diagnoses, ur.reports...)
	}

	logger.Info(
		"session finished",
		slog.Int("units", len(jobs)),
		slog.Int("diagnostics", len(res.Diagnoses)),
		slog.Int("failed", len(res.Failed)),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}

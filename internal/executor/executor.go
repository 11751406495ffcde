// Package executor runs the checks of a validation script against a dataset
// on a bounded pool of workers.
package executor

import (
	"context"
	"time"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/report"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkerCount is used when a non-positive worker count is configured.
const DefaultWorkerCount = 4

// Executor dispatches checks to rule handlers.
type Executor struct {
	registry  *registry.Registry
	converter config.Converter
	reporter  *report.Reporter
	workers   int
}

// New creates an Executor.
func New(reg *registry.Registry, conv config.Converter, reporter *report.Reporter, workerCount int) *Executor {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	return &Executor{
		registry:  reg,
		converter: conv,
		reporter:  reporter,
		workers:   workerCount,
	}
}

// Run evaluates every enabled check and returns one report per enabled check
// in declaration order. The dataset is shared read-only between workers.
// Checks not yet started when ctx is cancelled are reported as faults.
func (e *Executor) Run(ctx context.Context, ds *dataset.Dataset, checks []*config.Check) []report.Report {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	enabled := make([]*config.Check, 0, len(checks))
	for _, c := range checks {
		if !c.Enabled {
			logger.Debug("Check disabled, skipping.", "check", c.Name, "rule", c.Rule)
			continue
		}
		enabled = append(enabled, c)
	}
	logger.Debug("Executor started.", "checks", len(enabled), "workers", e.workers)

	reports := make([]report.Report, len(enabled))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, c := range enabled {
		i, c := i, c
		g.Go(func() error {
			reports[i] = e.runCheck(ctx, ds, c)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("Executor finished.", "checks", len(enabled), "duration", time.Since(start))
	return reports
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/specialistvlad/dvcheck/internal/executor"
	"github.com/specialistvlad/dvcheck/internal/report"
)

// Run loads the script and the dataset, executes every check and writes the
// reports and a summary to the App's output. Failing checks are not errors;
// only conditions that prevent the run from starting are.
func (a *App) Run(ctx context.Context) (report.Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	start := time.Now()

	sink, err := report.NewSink(a.config.ReportFormat, a.outW)
	if err != nil {
		return report.Summary{}, err
	}

	model, err := a.loadScripts(ctx)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to load script: %w", err)
	}

	ds, err := a.loadDataset(ctx, model.Dataset)
	if err != nil {
		return report.Summary{}, err
	}

	a.logger.Info("🚀 Running checks...", "checks", len(model.Checks), "workers", a.config.WorkerCount)
	reporter := report.NewReporter(report.WithDebug(a.config.Debug))
	exec := executor.New(a.registry, dvcty.NewConverter(), reporter, a.config.WorkerCount)
	reports := exec.Run(ctx, ds, model.Checks)

	for _, rep := range reports {
		if err := sink.Emit(rep); err != nil {
			return report.Summary{}, fmt.Errorf("failed to write report: %w", err)
		}
	}

	summary := report.Summarize(a.runID, reports, time.Since(start))
	if err := sink.Summarize(summary); err != nil {
		return summary, fmt.Errorf("failed to write summary: %w", err)
	}

	a.logger.Info("🏁 Checks finished.",
		"checks", summary.Checks,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"faults", summary.Faults,
	)
	a.logger.Debug("App.Run method finished.")
	return summary, nil
}

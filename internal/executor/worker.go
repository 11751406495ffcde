package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/report"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// runCheck resolves, decodes and evaluates one check. It never fails: every
// problem becomes a Fault report.
func (e *Executor) runCheck(ctx context.Context, ds *dataset.Dataset, c *config.Check) report.Report {
	ctx = ctxlog.With(ctx, "check", c.Name)
	logger := ctxlog.FromContext(ctx)

	h, lookupErr := e.registry.Lookup(c.Rule)
	inv := newInvocation(c, h)

	if err := ctx.Err(); err != nil {
		logger.Debug("Check cancelled before start.", "error", err)
		return report.Fault(inv, fmt.Errorf("not run: %w", err))
	}
	if lookupErr != nil {
		return report.Fault(inv, lookupErr)
	}
	if c.Err != nil {
		return report.Fault(inv, fmt.Errorf("%s: %w", c.Location, c.Err))
	}

	input := h.NewInput()
	if err := e.converter.DecodeArguments(ctx, input, h.Args, c.Arguments); err != nil {
		logger.Debug("Argument decoding failed.", "error", err)
		return report.Fault(inv, err)
	}

	logger.Debug("Running check.", "rule", c.Rule, "rule_description", h.Description)
	return e.reporter.Check(ctx, inv, func(ctx context.Context) (rules.Result, error) {
		return h.Run(ctx, ds, input)
	})
}

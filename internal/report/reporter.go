package report

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// RuleFunc evaluates one rule invocation.
type RuleFunc func(ctx context.Context) (rules.Result, error)

// Reporter converts rule evaluations into Reports.
type Reporter struct {
	debug bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithDebug includes failing row lists in every report.
func WithDebug(enabled bool) Option {
	return func(r *Reporter) {
		r.debug = enabled
	}
}

// NewReporter creates a Reporter.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wrap decorates fn so that calling the result always yields a Report.
func (r *Reporter) Wrap(inv Invocation, fn RuleFunc) func(context.Context) Report {
	return func(ctx context.Context) Report {
		return r.Check(ctx, inv, fn)
	}
}

// Check runs fn immediately. Errors and panics become a Fault report.
func (r *Reporter) Check(ctx context.Context, inv Invocation, fn RuleFunc) (rep Report) {
	logger := ctxlog.FromContext(ctx).With("check", inv.Check, "rule", inv.Rule)
	rep = Report{Check: inv.Check, Description: inv.Description, Rule: inv.Rule, Call: inv.String()}
	start := time.Now()

	defer func() {
		rep.Duration = time.Since(start)
		if p := recover(); p != nil {
			logger.Debug("Rule panicked.", "panic", p, "stack", string(debug.Stack()))
			rep.Status = StatusFault
			rep.Error = fmt.Sprintf("panic: %v", p)
			rep.FailingCount = 0
			rep.Failing = nil
		}
	}()

	res, err := fn(ctx)
	if err != nil {
		logger.Debug("Check faulted.", "error", err)
		rep.Status = StatusFault
		rep.Error = err.Error()
		return rep
	}

	if res.Passed {
		logger.Debug("Check passed.")
		rep.Status = StatusPassed
		return rep
	}

	logger.Debug("Check failed.", "failing", len(res.Failing))
	rep.Status = StatusFailed
	rep.FailingCount = len(res.Failing)
	if r.debug || inv.Debug {
		rep.Failing = append([]string(nil), res.Failing...)
	}
	return rep
}

// Fault builds a Fault report for an invocation that never reached its rule,
// such as an unknown rule or an argument that failed to decode.
func Fault(inv Invocation, err error) Report {
	return Report{
		Check:       inv.Check,
		Description: inv.Description,
		Rule:        inv.Rule,
		Call:        inv.String(),
		Status:      StatusFault,
		Error:       err.Error(),
	}
}

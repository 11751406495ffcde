package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/report"
	"github.com/specialistvlad/dvcheck/modules/checkbox"
	"github.com/specialistvlad/dvcheck/modules/columns"
	"github.com/specialistvlad/dvcheck/modules/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestExecutor(t *testing.T, workers int, opts ...report.Option) *Executor {
	t.Helper()
	reg := registry.New()
	for _, m := range []registry.Module{&columns.Module{}, &checkbox.Module{}, &logic.Module{}} {
		m.Register(reg)
	}
	require.NoError(t, reg.ValidateRegistry(context.Background()))
	return New(reg, dvcty.NewConverter(), report.NewReporter(opts...), workers)
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		[]string{"record", "Q1", "Q2"},
		[][]dataset.Cell{
			{dataset.Text("1"), dataset.Text("1"), dataset.Text("x")},
			{dataset.Text("2"), dataset.Text("7"), dataset.Missing()},
		},
		"record",
	)
	require.NoError(t, err)
	return ds
}

func qidCheck(rule, name, qid string) *config.Check {
	return &config.Check{
		Rule:      rule,
		Name:      name,
		Enabled:   true,
		Arguments: map[string]cty.Value{"qid": cty.StringVal(qid)},
	}
}

func TestRun_DeclarationOrder(t *testing.T) {
	var checks []*config.Check
	for i := 0; i < 50; i++ {
		rule := "is_non_empty"
		if i%3 == 0 {
			rule = "is_empty"
		}
		checks = append(checks, qidCheck(rule, fmt.Sprintf("c%02d", i), "Q2"))
	}

	for _, workers := range []int{1, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			reports := newTestExecutor(t, workers).Run(context.Background(), testDataset(t), checks)
			require.Len(t, reports, len(checks))
			for i, rep := range reports {
				assert.Equal(t, checks[i].Name, rep.Check)
				assert.Equal(t, report.StatusFailed, rep.Status)
			}
		})
	}
}

func TestRun_FaultsDoNotStopTheBatch(t *testing.T) {
	checks := []*config.Check{
		qidCheck("no_such_rule", "unknown_rule", "Q1"),
		{Rule: "check_range", Name: "missing_arg", Enabled: true, Arguments: map[string]cty.Value{"qid": cty.StringVal("Q1")}},
		qidCheck("is_non_empty", "unknown_column", "Q9"),
		{Rule: "is_empty", Name: "load_error", Enabled: true, Location: "s.hcl:3", Err: fmt.Errorf("bad expression")},
		qidCheck("is_non_empty", "ok", "Q1"),
	}

	reports := newTestExecutor(t, 2).Run(context.Background(), testDataset(t), checks)
	require.Len(t, reports, 5)

	assert.Equal(t, report.StatusFault, reports[0].Status)
	assert.Contains(t, reports[0].Error, "unknown rule")
	assert.Equal(t, "no_such_rule(qid=Q1)", reports[0].Call)

	assert.Equal(t, report.StatusFault, reports[1].Status)
	assert.Equal(t, `missing required argument "vrange"`, reports[1].Error)

	assert.Equal(t, report.StatusFault, reports[2].Status)
	assert.Contains(t, reports[2].Error, `column "Q9"`)

	assert.Equal(t, report.StatusFault, reports[3].Status)
	assert.Equal(t, "s.hcl:3: bad expression", reports[3].Error)

	assert.Equal(t, report.StatusPassed, reports[4].Status)
}

func TestRun_SkipsDisabled(t *testing.T) {
	disabled := qidCheck("is_empty", "off", "Q1")
	disabled.Enabled = false

	reports := newTestExecutor(t, 1).Run(context.Background(), testDataset(t), []*config.Check{
		disabled,
		qidCheck("is_non_empty", "on", "Q1"),
	})
	require.Len(t, reports, 1)
	assert.Equal(t, "on", reports[0].Check)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := newTestExecutor(t, 1).Run(ctx, testDataset(t), []*config.Check{qidCheck("is_empty", "c", "Q1")})
	require.Len(t, reports, 1)
	assert.Equal(t, report.StatusFault, reports[0].Status)
	assert.Equal(t, "not run: context canceled", reports[0].Error)
}

func TestRun_DebugListsFailingRows(t *testing.T) {
	check := &config.Check{
		Rule:    "check_range",
		Name:    "q1_range",
		Enabled: true,
		Debug:   true,
		Arguments: map[string]cty.Value{
			"qid":    cty.StringVal("Q1"),
			"vrange": cty.TupleVal([]cty.Value{cty.StringVal("1-5")}),
			"blank":  cty.False,
		},
	}

	reports := newTestExecutor(t, 1).Run(context.Background(), testDataset(t), []*config.Check{check})
	require.Len(t, reports, 1)
	rep := reports[0]
	assert.Equal(t, report.StatusFailed, rep.Status)
	assert.Equal(t, 1, rep.FailingCount)
	assert.Equal(t, []string{"2"}, rep.Failing)
	assert.Equal(t, "check_range(Q1, ['1-5'], blank=false)", rep.Call)
}

func TestNew_DefaultWorkers(t *testing.T) {
	e := New(registry.New(), dvcty.NewConverter(), report.NewReporter(), 0)
	assert.Equal(t, DefaultWorkerCount, e.workers)
}

func TestRun_CarriesDescription(t *testing.T) {
	failing := qidCheck("is_non_empty", "q2_answered", "Q2")
	failing.Description = "Q2 must be answered"
	faulted := qidCheck("is_empty", "typo", "Q9")
	faulted.Description = "unknown column"

	reports := newTestExecutor(t, 2).Run(context.Background(), testDataset(t), []*config.Check{failing, faulted})
	require.Len(t, reports, 2)
	assert.Equal(t, report.StatusFailed, reports[0].Status)
	assert.Equal(t, "Q2 must be answered", reports[0].Description)
	assert.Equal(t, report.StatusFault, reports[1].Status)
	assert.Equal(t, "unknown column", reports[1].Description)
}

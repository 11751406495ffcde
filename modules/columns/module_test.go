package columns

import (
	"context"
	"testing"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		[]string{"record", "Q1", "Q2"},
		[][]dataset.Cell{
			{dataset.Text("1"), dataset.Text("1"), dataset.Text("1")},
			{dataset.Text("2"), dataset.Text("4"), dataset.Text("4")},
			{dataset.Text("3"), dataset.Missing(), dataset.Text("2")},
		},
		"record",
	)
	require.NoError(t, err)
	return ds
}

func TestModule(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	require.NoError(t, r.ValidateRegistry(context.Background()))
	assert.Equal(t, []string{"check_range", "is_empty", "is_float", "is_identical", "is_non_empty", "is_number"}, r.Rules())

	tests := []struct {
		rule string
		args map[string]cty.Value
		want []string
	}{
		{rule: "is_empty", args: map[string]cty.Value{"qid": cty.StringVal("Q1")}, want: []string{"1", "2"}},
		{rule: "is_non_empty", args: map[string]cty.Value{"qid": cty.StringVal("Q1")}, want: []string{"3"}},
		{rule: "is_number", args: map[string]cty.Value{"qid": cty.StringVal("Q1"), "blank": cty.False}, want: []string{"3"}},
		{rule: "is_float", args: map[string]cty.Value{"qid": cty.StringVal("Q1")}, want: nil},
		{
			rule: "check_range",
			args: map[string]cty.Value{
				"qid":    cty.StringVal("Q1"),
				"vrange": cty.TupleVal([]cty.Value{cty.StringVal("1-3")}),
				"blank":  cty.False,
			},
			want: []string{"2", "3"},
		},
		{rule: "is_identical", args: map[string]cty.Value{"qid1": cty.StringVal("Q1"), "qid2": cty.StringVal("Q2")}, want: []string{"3"}},
	}
	ds := testDataset(t)
	conv := dvcty.NewConverter()
	for _, tc := range tests {
		t.Run(tc.rule, func(t *testing.T) {
			h, err := r.Lookup(tc.rule)
			require.NoError(t, err)

			input := h.NewInput()
			require.NoError(t, conv.DecodeArguments(context.Background(), input, h.Args, tc.args))

			res, err := h.Run(context.Background(), ds, input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Failing)
		})
	}
}

func TestBlankDefaultsToTrue(t *testing.T) {
	assert.True(t, newFormatInput().Blank)
	assert.True(t, newRangeInput().Blank)
}

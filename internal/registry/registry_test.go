package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	QID   string `arg:"qid"`
	Blank bool   `arg:"blank,optional"`
}

func addEcho(r *Registry, rule string) {
	Add(r, rule, "echo", func() *echoInput {
		return &echoInput{Blank: true}
	}, func(_ context.Context, _ *dataset.Dataset, in *echoInput) (rules.Result, error) {
		return rules.Result{Passed: in.Blank}, nil
	})
}

func TestAddAndLookup(t *testing.T) {
	r := New()
	addEcho(r, "echo")

	h, err := r.Lookup("echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", h.Rule)
	require.Len(t, h.Args, 2)
	assert.Equal(t, "qid", h.Args[0].Name)
	assert.True(t, h.Args[1].Optional)

	input := h.NewInput()
	require.IsType(t, &echoInput{}, input)
	res, err := h.Run(context.Background(), nil, input)
	require.NoError(t, err)
	assert.True(t, res.Passed)

	_, err = h.Run(context.Background(), nil, &struct{}{})
	assert.ErrorContains(t, err, "expected input")
}

func TestLookup_Unknown(t *testing.T) {
	_, err := New().Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.ErrorContains(t, err, `"nope"`)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	addEcho(r, "echo")
	assert.Panics(t, func() { addEcho(r, "echo") })
}

func TestRules_Sorted(t *testing.T) {
	r := New()
	addEcho(r, "b")
	addEcho(r, "a")
	assert.Equal(t, []string{"a", "b"}, r.Rules())
}

func TestValidateRegistry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := New()
		addEcho(r, "echo")
		assert.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("bad tags", func(t *testing.T) {
		type untagged struct{ QID string }
		r := New()
		Add(r, "broken", "", func() *untagged { return &untagged{} },
			func(context.Context, *dataset.Dataset, *untagged) (rules.Result, error) { return rules.Result{}, nil })

		err := r.ValidateRegistry(context.Background())
		assert.ErrorContains(t, err, "rule 'broken'")
		assert.ErrorContains(t, err, `no "arg" tag`)
	})

	t.Run("no required argument", func(t *testing.T) {
		type optionalOnly struct {
			Blank bool `arg:"blank,optional"`
		}
		r := New()
		Add(r, "loose", "", func() *optionalOnly { return &optionalOnly{} },
			func(context.Context, *dataset.Dataset, *optionalOnly) (rules.Result, error) { return rules.Result{}, nil })

		assert.ErrorContains(t, r.ValidateRegistry(context.Background()), "no required argument")
	})

	t.Run("missing run function", func(t *testing.T) {
		r := New()
		r.Register(&Handler{Rule: "raw"})
		err := r.ValidateRegistry(context.Background())
		assert.ErrorContains(t, err, "no run function")
		assert.ErrorContains(t, err, "no input constructor")
	})
}

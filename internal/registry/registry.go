package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// ErrUnknownRule is returned by Lookup for a rule name nobody registered.
var ErrUnknownRule = errors.New("unknown rule")

// Module is the interface that all rule modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RunFunc evaluates a rule against a dataset. input is the value returned by
// the handler's NewInput after arguments have been decoded into it.
type RunFunc func(ctx context.Context, ds *dataset.Dataset, input any) (rules.Result, error)

// Handler holds the compiled Go parts of one rule.
type Handler struct {
	Rule        string
	Description string
	// NewInput returns a pointer to a fresh input struct with defaults applied.
	NewInput  func() any
	InputType reflect.Type
	// Args lists the script arguments derived from the input struct tags.
	Args []dvcty.Field
	Run  RunFunc

	argsErr error
}

// Registry holds the rule handlers of a single application instance.
type Registry struct {
	handlers map[string]*Handler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Add registers a typed rule handler. newInput supplies the input struct with
// its defaults; run receives it after argument decoding.
func Add[T any](r *Registry, rule, description string, newInput func() *T, run func(ctx context.Context, ds *dataset.Dataset, in *T) (rules.Result, error)) {
	inputType := reflect.TypeOf((*T)(nil)).Elem()
	args, err := dvcty.Fields(inputType)
	r.Register(&Handler{
		Rule:        rule,
		Description: description,
		NewInput:    func() any { return newInput() },
		InputType:   inputType,
		Args:        args,
		Run: func(ctx context.Context, ds *dataset.Dataset, input any) (rules.Result, error) {
			in, ok := input.(*T)
			if !ok {
				return rules.Result{}, fmt.Errorf("rule %s: expected input %T, got %T", rule, (*T)(nil), input)
			}
			return run(ctx, ds, in)
		},
		argsErr: err,
	})
}

// Register stores a handler. Registering the same rule twice panics.
func (r *Registry) Register(h *Handler) {
	if _, exists := r.handlers[h.Rule]; exists {
		panic(fmt.Sprintf("rule handler with name '%s' already registered", h.Rule))
	}
	slog.Debug("Registering rule handler.", "rule", h.Rule)
	r.handlers[h.Rule] = h
}

// Lookup returns the handler for rule.
func (r *Registry) Lookup(rule string) (*Handler, error) {
	h, ok := r.handlers[rule]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, rule)
	}
	return h, nil
}

// Rules returns the registered rule names in alphabetical order.
func (r *Registry) Rules() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

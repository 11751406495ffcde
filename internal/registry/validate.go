package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/dvcheck/internal/ctxlog"
)

// ValidateRegistry checks that every handler can be driven from a script:
// its input struct tags parse, NewInput returns the declared input type and
// at least one argument is required.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, rule := range r.Rules() {
		h := r.handlers[rule]

		if h.Run == nil {
			errs = append(errs, fmt.Sprintf("rule '%s': no run function", rule))
		}
		if h.NewInput == nil {
			errs = append(errs, fmt.Sprintf("rule '%s': no input constructor", rule))
			continue
		}
		if h.argsErr != nil {
			errs = append(errs, fmt.Sprintf("rule '%s': %v", rule, h.argsErr))
			continue
		}

		input := h.NewInput()
		if got := reflect.TypeOf(input); got != reflect.PointerTo(h.InputType) {
			errs = append(errs, fmt.Sprintf("rule '%s': input constructor returns %v, want *%v", rule, got, h.InputType))
			continue
		}

		required := 0
		for _, arg := range h.Args {
			if !arg.Optional {
				required++
			}
		}
		if required == 0 {
			errs = append(errs, fmt.Sprintf("rule '%s': input struct declares no required argument", rule))
		}

		logger.Debug("Rule handler validated.", "rule", rule, "arguments", len(h.Args))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

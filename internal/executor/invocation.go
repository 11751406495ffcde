package executor

import (
	"sort"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/report"
)

// newInvocation renders a check's arguments in the handler's declaration
// order: supplied required arguments positionally, supplied optional ones by
// name. Arguments the handler does not know, or all arguments when h is nil,
// follow by name in alphabetical order.
func newInvocation(c *config.Check, h *registry.Handler) report.Invocation {
	inv := report.Invocation{Check: c.Name, Description: c.Description, Rule: c.Rule, Debug: c.Debug}
	used := make(map[string]struct{}, len(c.Arguments))

	if h != nil {
		for _, f := range h.Args {
			v, ok := c.Arguments[f.Name]
			if !ok {
				continue
			}
			used[f.Name] = struct{}{}
			if f.Optional {
				inv.Named = append(inv.Named, report.Arg{Name: f.Name, Value: dvcty.Render(v)})
			} else {
				inv.Positional = append(inv.Positional, dvcty.Render(v))
			}
		}
	}

	rest := make([]string, 0, len(c.Arguments)-len(used))
	for name := range c.Arguments {
		if _, ok := used[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		inv.Named = append(inv.Named, report.Arg{Name: name, Value: dvcty.Render(c.Arguments[name])})
	}
	return inv
}

package report

import "strings"

// Arg is a named argument with its rendered value.
type Arg struct {
	Name  string
	Value string
}

// Invocation identifies one rule call as written in a script. Values are
// already rendered to text by the caller.
type Invocation struct {
	// Check is the script-level name of the check, e.g. "q7_grid[r1]".
	Check string
	// Description is the check's free-text description, if any.
	Description string
	Rule        string
	Positional  []string
	Named       []Arg
	// Debug requests the failing row list for this invocation.
	Debug bool
}

// String renders the invocation as rule(pos1, pos2, key=value).
func (i Invocation) String() string {
	var b strings.Builder
	b.WriteString(i.Rule)
	b.WriteByte('(')
	n := 0
	for _, v := range i.Positional {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v)
		n++
	}
	for _, a := range i.Named {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value)
		n++
	}
	b.WriteByte(')')
	return b.String()
}

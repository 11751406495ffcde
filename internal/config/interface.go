package config

import (
	"context"

	"github.com/specialistvlad/dvcheck/internal/dvcty"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific script loader.
type Loader interface {
	// Load reads the given script files and translates them into the
	// format-agnostic model. Syntax errors are returned; evaluation errors
	// local to one check are recorded on that check.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Converter binds evaluated script arguments to a rule's Go input struct.
type Converter interface {
	DecodeArguments(ctx context.Context, input any, fields []dvcty.Field, args map[string]cty.Value) error
}

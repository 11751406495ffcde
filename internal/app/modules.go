package app

import (
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/modules/checkbox"
	"github.com/specialistvlad/dvcheck/modules/columns"
	"github.com/specialistvlad/dvcheck/modules/logic"
)

// coreModules is the definitive list of all rule modules that are compiled
// into the dvcheck binary.
var coreModules = []registry.Module{
	&columns.Module{},
	&checkbox.Module{},
	&logic.Module{},
}

package yamlcfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Dataset *datasetSection `yaml:"dataset"`
	// Locals is a mapping evaluated top to bottom; later entries may refer
	// to earlier ones through local.<name>.
	Locals yaml.Node       `yaml:"locals"`
	Checks []*checkSection `yaml:"checks"`
}

type datasetSection struct {
	Path       string   `yaml:"path"`
	IDColumn   string   `yaml:"id_column"`
	Delimiter  string   `yaml:"delimiter"`
	NullValues []string `yaml:"null_values"`
}

type checkSection struct {
	Rule        string    `yaml:"rule"`
	Name        string    `yaml:"name"`
	Description yaml.Node `yaml:"description"`
	Enabled     *bool     `yaml:"enabled"`
	Debug       *bool     `yaml:"debug"`
	ForEach     yaml.Node `yaml:"for_each"`
	Arguments   yaml.Node `yaml:"arguments"`

	line int
}

// checkKeys are the keys a check mapping may contain.
var checkKeys = map[string]struct{}{
	"rule": {}, "name": {}, "description": {}, "enabled": {},
	"debug": {}, "for_each": {}, "arguments": {},
}

// UnmarshalYAML records the declaration line of a check and rejects keys
// outside checkKeys.
func (c *checkSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if _, ok := checkKeys[key.Value]; !ok {
				return fmt.Errorf("line %d: field %s not found in check", key.Line, key.Value)
			}
		}
	}

	type plain checkSection
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.line = node.Line
	return nil
}

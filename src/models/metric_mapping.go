package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// MMetricField pairs a provider key with the CSV column it is written to.
type MMetricField struct {
	Source string `yaml:"source"`
	Column string `yaml:"column"`
}

// MMetricMapping is the ordered list of fields written per row. Order defines
// column order.
type MMetricMapping []MMetricField

// -----------------------------------------------------------------------------

// UnmarshalYAML accepts either a mapping (source: column), keeping document
// order, or a sequence of {source, column} items.
func (m *MMetricMapping) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		fields := make(MMetricMapping, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
				return fmt.Errorf("metrics: line %d: expected scalar source and column", key.Line)
			}
			fields = append(fields, MMetricField{Source: key.Value, Column: val.Value})
		}
		*m = fields
		return nil

	case yaml.SequenceNode:
		var fields []MMetricField
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		*m = fields
		return nil

	default:
		return fmt.Errorf("metrics: line %d: expected a mapping or a sequence", node.Line)
	}
}

// -----------------------------------------------------------------------------

// MarshalYAML writes the mapping form, in order.
func (m MMetricMapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Source},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Column},
		)
	}
	return node, nil
}

// -----------------------------------------------------------------------------

// Columns returns the output column names in mapping order.
func (m MMetricMapping) Columns() []string {
	cols := make([]string, len(m))
	for i, f := range m {
		cols[i] = f.Column
	}
	return cols
}

// -----------------------------------------------------------------------------

// Validate rejects empty names and duplicate sources or columns.
func (m MMetricMapping) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("metrics must contain at least one field")
	}

	sources := make(map[string]bool, len(m))
	columns := make(map[string]bool, len(m))
	for i, f := range m {
		if f.Source == "" {
			return fmt.Errorf("metrics[%d].source is required", i)
		}
		if f.Column == "" {
			return fmt.Errorf("metrics[%d].column is required", i)
		}
		if sources[f.Source] {
			return fmt.Errorf("metrics: duplicate source %q", f.Source)
		}
		if columns[f.Column] {
			return fmt.Errorf("metrics: duplicate column %q", f.Column)
		}
		sources[f.Source] = true
		columns[f.Column] = true
	}
	return nil
}

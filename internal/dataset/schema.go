package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/graphtrain/internal/confignode"
)

// Schema is the declarative description of one data source. It is parsed
// from a dataset document and is read-only afterward.
type Schema struct {
	Path            string            `yaml:"path"`
	GraphDefinition *confignode.Node  `yaml:"graph_definition"`
	Pulsemaps       []string          `yaml:"pulsemaps"`
	Features        []string          `yaml:"features"`
	Truth           []string          `yaml:"truth"`
	IndexColumn     string            `yaml:"index_column"`
	TruthTable      string            `yaml:"truth_table"`
	Seed            int64             `yaml:"seed"`
	Selection       map[string]string `yaml:"selection"`
}

// ParseSchema decodes and validates a dataset document.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse dataset document: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural requirements of a schema.
func (s *Schema) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("dataset schema: path is required")
	}
	if s.IndexColumn == "" {
		return fmt.Errorf("dataset schema: index_column is required")
	}
	if s.TruthTable == "" {
		return fmt.Errorf("dataset schema: truth_table is required")
	}
	if len(s.Features) == 0 {
		return fmt.Errorf("dataset schema: at least one feature column is required")
	}
	if len(s.Truth) == 0 {
		return fmt.Errorf("dataset schema: at least one truth column is required")
	}
	seen := make(map[string]bool, len(s.Truth))
	for _, col := range s.Truth {
		if seen[col] {
			return fmt.Errorf("dataset schema: duplicate truth column %q", col)
		}
		seen[col] = true
	}
	return nil
}

// HasTruthColumn reports whether the named column is a member of the
// schema's truth set.
func (s *Schema) HasTruthColumn(name string) bool {
	for _, col := range s.Truth {
		if col == name {
			return true
		}
	}
	return false
}

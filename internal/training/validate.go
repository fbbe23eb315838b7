package training

import (
	"fmt"

	"github.com/vk/graphtrain/internal/dataset"
)

// Validate checks that every truth column required by the model's tasks is a
// member of every schema's truth set. It runs at binding time, before any
// training step executes: a failure here aborts run setup with a
// *MissingTruthColumnsError naming each missing column and the tasks that
// reference it.
//
// Multiple schemas correspond to joint training over several datasets; each
// must independently provide the full required set, because batch record
// sets from every source are merged during loss aggregation.
func Validate(m *Model, schemas ...*dataset.Schema) error {
	if len(m.Tasks) == 0 {
		return fmt.Errorf("model binding has no tasks")
	}
	if len(schemas) == 0 {
		return fmt.Errorf("model binding requires at least one dataset schema")
	}

	for _, schema := range schemas {
		missing := make(map[string][]string)
		for _, task := range m.Tasks {
			for _, col := range task.RequiredColumns() {
				if !schema.HasTruthColumn(col) {
					missing[col] = append(missing[col], task.Name)
				}
			}
		}
		if len(missing) > 0 {
			err := &MissingTruthColumnsError{
				Tasks: missing,
				Where: fmt.Sprintf("dataset schema %q", schema.Path),
			}
			for col := range missing {
				err.Missing = append(err.Missing, col)
			}
			return err
		}
	}
	return nil
}

package training

import (
	"github.com/vk/graphtrain/internal/builder"
	"github.com/vk/graphtrain/internal/confignode"
)

// OptimizerSpec retains an optimizer or scheduler class reference together
// with its keyword arguments. The numerical update rules live outside this
// layer; the spec only reconstructs the configured object on demand.
type OptimizerSpec struct {
	Ref    builder.ClassRef
	Kwargs map[string]any
}

// Instantiate constructs the configured optimizer/scheduler object.
func (s *OptimizerSpec) Instantiate() (any, error) {
	return s.Ref.Instantiate(s.Kwargs)
}

// Model binds one graph definition, one backbone, and an ordered sequence of
// tasks, plus optimizer and scheduler specifications. A Model is validated
// against the dataset schema(s) it trains on before any batch work begins,
// and does not outlive the training run that created it.
type Model struct {
	confignode.Base

	GraphDefinition any
	Backbone        any
	Tasks           []*Task
	Optimizer       *OptimizerSpec
	Scheduler       *OptimizerSpec
	// SchedulerConfig carries loop-level scheduler settings (interval,
	// frequency) that belong to the external training loop, kept as data.
	SchedulerConfig map[string]any
}

// RequiredLabels returns the de-duplicated union, in declaration order, of
// every task's target labels and loss-weight columns. De-duplication matters:
// two tasks may legitimately share a label, and it must be merged only once.
func RequiredLabels(tasks []*Task) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, t := range tasks {
		for _, col := range t.RequiredColumns() {
			if !seen[col] {
				seen[col] = true
				labels = append(labels, col)
			}
		}
	}
	return labels
}

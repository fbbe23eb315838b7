package training

import (
	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/expr"
	"github.com/vk/graphtrain/internal/tensor"
)

// Column is one named truth column, merged across record sets.
type Column struct {
	Name   string
	Values []float64
}

// LossFunction computes one task's loss from a prediction and the combined
// truth columns restricted to that task's own labels, in the task's label
// declaration order. The weights slice is nil when the task declares no
// loss-weight column.
type LossFunction interface {
	Name() string
	Compute(pred *tensor.Tensor, targets []Column, weights []float64) (*tensor.Tensor, error)
}

// Task is one model head: the truth columns it predicts, the transforms that
// apply to them, and the loss function scoring its predictions.
type Task struct {
	confignode.Base

	Name         string
	TargetLabels []string
	// LossWeight names an optional per-event weight column; empty when unset.
	LossWeight         string
	TransformTarget    *expr.Function
	TransformInference *expr.Function
	Loss               LossFunction
}

// RequiredColumns returns every truth column the task consumes: its target
// labels plus the loss-weight column when one is declared.
func (t *Task) RequiredColumns() []string {
	cols := append([]string(nil), t.TargetLabels...)
	if t.LossWeight != "" {
		cols = append(cols, t.LossWeight)
	}
	return cols
}

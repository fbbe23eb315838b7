package training

import (
	"fmt"

	"github.com/vk/graphtrain/internal/dataset"
	"github.com/vk/graphtrain/internal/tensor"
)

// ComputeLoss merges the required truth columns across every record set and
// reduces the per-task losses into one scalar.
//
// predictions holds one tensor per task, in task declaration order. batches
// holds one record set per contributing data source, in source order; when
// several datasets train jointly, each label column is concatenated across
// sources exactly once, even if multiple tasks share it.
func ComputeLoss(predictions []*tensor.Tensor, batches []*dataset.Batch, tasks []*Task) (*tensor.Tensor, error) {
	if len(predictions) != len(tasks) {
		return nil, fmt.Errorf("got %d prediction(s) for %d task(s)", len(predictions), len(tasks))
	}
	if len(batches) == 0 {
		return nil, fmt.Errorf("no batch record sets to compute loss over")
	}

	combined, err := mergeColumns(batches, tasks)
	if err != nil {
		return nil, err
	}

	// Tasks reduce in declaration order so per-task side effects stay stable.
	total := 0.0
	for i, task := range tasks {
		targets := make([]Column, 0, len(task.TargetLabels))
		for _, col := range task.TargetLabels {
			values := combined[col]
			if task.TransformTarget != nil {
				values, err = task.TransformTarget.Apply(values)
				if err != nil {
					return nil, fmt.Errorf("task %q: failed to transform target %q: %w", task.Name, col, err)
				}
			}
			targets = append(targets, Column{Name: col, Values: values})
		}

		var weights []float64
		if task.LossWeight != "" {
			weights = combined[task.LossWeight]
		}

		loss, err := task.Loss.Compute(predictions[i], targets, weights)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		if !loss.IsScalar() {
			return nil, &NonScalarTaskLossError{Task: task.Name, Shape: loss.Shape}
		}

		v, err := loss.Item()
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Name, err)
		}
		total += v
	}

	return tensor.Scalar(total), nil
}

// mergeColumns concatenates each distinct required label across every record
// set, in record-set order. A record set lacking a required label fails with
// *MissingTruthColumnsError, the runtime safety net behind the binding-time
// validation.
func mergeColumns(batches []*dataset.Batch, tasks []*Task) (map[string][]float64, error) {
	distinct := RequiredLabels(tasks)
	referencedBy := make(map[string][]string, len(distinct))
	for _, t := range tasks {
		for _, col := range t.RequiredColumns() {
			referencedBy[col] = append(referencedBy[col], t.Name)
		}
	}

	combined := make(map[string][]float64, len(distinct))
	for _, label := range distinct {
		var merged []float64
		for i, batch := range batches {
			col, ok := batch.Column(label)
			if !ok {
				return nil, &MissingTruthColumnsError{
					Missing: []string{label},
					Tasks:   map[string][]string{label: referencedBy[label]},
					Where:   fmt.Sprintf("batch record set %d", i),
				}
			}
			merged = append(merged, col...)
		}
		combined[label] = merged
	}
	return combined, nil
}

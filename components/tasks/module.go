// Package tasks provides the task classes: model heads that predict one or
// more truth columns through a designated loss function.
package tasks

import (
	"fmt"

	"github.com/vk/graphtrain/internal/expr"
	"github.com/vk/graphtrain/internal/kwargs"
	"github.com/vk/graphtrain/internal/registry"
	"github.com/vk/graphtrain/internal/training"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers this package's classes.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("Reconstruction", NewReconstruction)
}

// NewReconstruction constructs a regression task over one or more truth
// columns. Arguments: target_labels (required), loss_function (required,
// nested node), loss_weight, transform_target, transform_inference, name.
func NewReconstruction(args map[string]any) (any, error) {
	labels, err := kwargs.Strings(args, "target_labels")
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("target_labels must not be empty")
	}

	lossRaw, ok := args["loss_function"]
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", "loss_function")
	}
	loss, ok := lossRaw.(training.LossFunction)
	if !ok {
		return nil, fmt.Errorf("loss_function: expected a loss function, got %T", lossRaw)
	}

	name, err := kwargs.AsOr(args, "name", labels[0])
	if err != nil {
		return nil, err
	}
	lossWeight, err := kwargs.AsOr(args, "loss_weight", "")
	if err != nil {
		return nil, err
	}

	task := &training.Task{
		Name:         name,
		TargetLabels: labels,
		LossWeight:   lossWeight,
		Loss:         loss,
	}

	if task.TransformTarget, err = optionalFunction(args, "transform_target"); err != nil {
		return nil, err
	}
	if task.TransformInference, err = optionalFunction(args, "transform_inference"); err != nil {
		return nil, err
	}

	// Transforms apply elementwise to label columns, so only unary
	// functions make sense here.
	for _, fn := range []*expr.Function{task.TransformTarget, task.TransformInference} {
		if fn != nil && fn.Arity() != 1 {
			return nil, fmt.Errorf("transform %q must take exactly one parameter", fn.Source())
		}
	}

	return task, nil
}

func optionalFunction(args map[string]any, key string) (*expr.Function, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	fn, ok := raw.(*expr.Function)
	if !ok {
		return nil, fmt.Errorf("%s: expected an inline function literal, got %T", key, raw)
	}
	return fn, nil
}

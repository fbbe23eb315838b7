// Package models provides the top-level model classes assembling a graph
// definition, a backbone, and an ordered sequence of tasks into one
// trainable binding.
package models

import (
	"fmt"

	"github.com/vk/graphtrain/internal/builder"
	"github.com/vk/graphtrain/internal/registry"
	"github.com/vk/graphtrain/internal/training"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers this package's classes.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("StandardModel", NewStandardModel)
}

// NewStandardModel constructs a training.Model from a model document's
// arguments: backbone, graph_definition, tasks, optimizer_class,
// optimizer_kwargs, scheduler_class, scheduler_config, scheduler_kwargs.
func NewStandardModel(args map[string]any) (any, error) {
	m := &training.Model{}

	m.Backbone = args["backbone"]
	if m.Backbone == nil {
		return nil, fmt.Errorf("missing required argument %q", "backbone")
	}
	m.GraphDefinition = args["graph_definition"]
	if m.GraphDefinition == nil {
		return nil, fmt.Errorf("missing required argument %q", "graph_definition")
	}

	rawTasks, ok := args["tasks"].([]any)
	if !ok || len(rawTasks) == 0 {
		return nil, fmt.Errorf("tasks must be a non-empty list")
	}
	for i, raw := range rawTasks {
		task, ok := raw.(*training.Task)
		if !ok {
			return nil, fmt.Errorf("tasks[%d]: expected a task, got %T", i, raw)
		}
		m.Tasks = append(m.Tasks, task)
	}

	var err error
	if m.Optimizer, err = optimizerSpec(args, "optimizer_class", "optimizer_kwargs", true); err != nil {
		return nil, err
	}
	if m.Scheduler, err = optimizerSpec(args, "scheduler_class", "scheduler_kwargs", false); err != nil {
		return nil, err
	}

	if raw, ok := args["scheduler_config"]; ok && raw != nil {
		cfg, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("scheduler_config: expected a mapping, got %T", raw)
		}
		m.SchedulerConfig = cfg
	}

	return m, nil
}

// optimizerSpec assembles an OptimizerSpec from a class-reference argument
// and its kwargs companion. Kwargs are retained as data; instantiation
// happens on demand by the training loop.
func optimizerSpec(args map[string]any, classKey, kwargsKey string, required bool) (*training.OptimizerSpec, error) {
	raw, ok := args[classKey]
	if !ok || raw == nil {
		if required {
			return nil, fmt.Errorf("missing required argument %q", classKey)
		}
		return nil, nil
	}
	ref, ok := raw.(builder.ClassRef)
	if !ok {
		return nil, fmt.Errorf("%s: expected a class reference, got %T", classKey, raw)
	}

	spec := &training.OptimizerSpec{Ref: ref}
	if rawKwargs, ok := args[kwargsKey]; ok && rawKwargs != nil {
		kw, ok := rawKwargs.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected a mapping, got %T", kwargsKey, rawKwargs)
		}
		spec.Kwargs = kw
	}
	return spec, nil
}

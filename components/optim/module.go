// Package optim provides the optimizer and scheduler classes referenced by
// model documents. The numerical update rules are external; these classes
// validate and retain the configured hyperparameters.
package optim

import (
	"fmt"

	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/kwargs"
	"github.com/vk/graphtrain/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers this package's classes.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("Adam", NewAdam)
	r.MustRegister("SGD", NewSGD)
	r.MustRegister("StepLR", NewStepLR)
	r.MustRegister("PiecewiseLinearLR", NewPiecewiseLinearLR)
}

// Adam holds the hyperparameters of an Adam optimizer.
type Adam struct {
	confignode.Base

	LR  float64
	Eps float64
}

// NewAdam constructs an Adam configuration.
func NewAdam(args map[string]any) (any, error) {
	lr, err := kwargs.AsOr(args, "lr", 1e-3)
	if err != nil {
		return nil, err
	}
	eps, err := kwargs.AsOr(args, "eps", 1e-8)
	if err != nil {
		return nil, err
	}
	if lr <= 0 {
		return nil, fmt.Errorf("lr must be positive, got %g", lr)
	}
	return &Adam{LR: lr, Eps: eps}, nil
}

// SGD holds the hyperparameters of a stochastic-gradient-descent optimizer.
type SGD struct {
	confignode.Base

	LR       float64
	Momentum float64
}

// NewSGD constructs an SGD configuration.
func NewSGD(args map[string]any) (any, error) {
	lr, err := kwargs.As[float64](args, "lr")
	if err != nil {
		return nil, err
	}
	momentum, err := kwargs.AsOr(args, "momentum", 0.0)
	if err != nil {
		return nil, err
	}
	if lr <= 0 {
		return nil, fmt.Errorf("lr must be positive, got %g", lr)
	}
	return &SGD{LR: lr, Momentum: momentum}, nil
}

// StepLR decays the learning rate by gamma every step_size epochs.
type StepLR struct {
	confignode.Base

	StepSize int
	Gamma    float64
}

// NewStepLR constructs a StepLR scheduler configuration.
func NewStepLR(args map[string]any) (any, error) {
	stepSize, err := kwargs.Int(args, "step_size")
	if err != nil {
		return nil, err
	}
	gamma, err := kwargs.AsOr(args, "gamma", 0.1)
	if err != nil {
		return nil, err
	}
	if stepSize <= 0 {
		return nil, fmt.Errorf("step_size must be positive, got %d", stepSize)
	}
	return &StepLR{StepSize: stepSize, Gamma: gamma}, nil
}

// PiecewiseLinearLR interpolates the learning rate linearly between
// milestones, the warmup-then-decay schedule used for one-cycle training.
type PiecewiseLinearLR struct {
	confignode.Base

	Milestones []float64
	Factors    []float64
}

// NewPiecewiseLinearLR constructs a PiecewiseLinearLR scheduler configuration.
func NewPiecewiseLinearLR(args map[string]any) (any, error) {
	milestones, err := floats(args, "milestones")
	if err != nil {
		return nil, err
	}
	factors, err := floats(args, "factors")
	if err != nil {
		return nil, err
	}
	if len(milestones) != len(factors) {
		return nil, fmt.Errorf("milestones and factors must have equal length, got %d and %d", len(milestones), len(factors))
	}
	if len(milestones) < 2 {
		return nil, fmt.Errorf("at least two milestones are required")
	}
	for i := 1; i < len(milestones); i++ {
		if milestones[i] <= milestones[i-1] {
			return nil, fmt.Errorf("milestones must be strictly increasing")
		}
	}
	return &PiecewiseLinearLR{Milestones: milestones, Factors: factors}, nil
}

func floats(args map[string]any, key string) ([]float64, error) {
	raw, err := kwargs.As[[]any](args, key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %q[%d]: expected number, got %T", key, i, item)
		}
		out[i] = f
	}
	return out, nil
}

// Package losses provides the built-in loss functions constructible from
// configuration documents.
package losses

import (
	"fmt"
	"math"

	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/registry"
	"github.com/vk/graphtrain/internal/tensor"
	"github.com/vk/graphtrain/internal/training"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers this package's classes.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("MSELoss", NewMSELoss)
	r.MustRegister("LogCoshLoss", NewLogCoshLoss)
	r.MustRegister("CosineLoss", NewCosineLoss)
}

// MSELoss is the mean squared error over every (event, label) entry, with
// optional per-event weighting.
type MSELoss struct {
	confignode.Base
}

// NewMSELoss constructs an MSELoss. It takes no arguments.
func NewMSELoss(args map[string]any) (any, error) {
	return &MSELoss{}, nil
}

// Name implements training.LossFunction.
func (l *MSELoss) Name() string { return "MSELoss" }

// Compute implements training.LossFunction.
func (l *MSELoss) Compute(pred *tensor.Tensor, targets []training.Column, weights []float64) (*tensor.Tensor, error) {
	return reduce(pred, targets, weights, func(d float64) float64 { return d * d })
}

// LogCoshLoss is log(cosh(prediction - target)), a smooth approximation of
// absolute error that stays quadratic near zero.
type LogCoshLoss struct {
	confignode.Base
}

// NewLogCoshLoss constructs a LogCoshLoss. It takes no arguments.
func NewLogCoshLoss(args map[string]any) (any, error) {
	return &LogCoshLoss{}, nil
}

// Name implements training.LossFunction.
func (l *LogCoshLoss) Name() string { return "LogCoshLoss" }

// Compute implements training.LossFunction.
func (l *LogCoshLoss) Compute(pred *tensor.Tensor, targets []training.Column, weights []float64) (*tensor.Tensor, error) {
	return reduce(pred, targets, weights, logcosh)
}

// CosineLoss scores direction predictions by angular disagreement,
// 1 - cos(angle) between the predicted and true vectors of each event. It
// needs at least two target columns to span a direction.
type CosineLoss struct {
	confignode.Base
}

// NewCosineLoss constructs a CosineLoss. It takes no arguments.
func NewCosineLoss(args map[string]any) (any, error) {
	return &CosineLoss{}, nil
}

// Name implements training.LossFunction.
func (l *CosineLoss) Name() string { return "CosineLoss" }

// Compute implements training.LossFunction.
func (l *CosineLoss) Compute(pred *tensor.Tensor, targets []training.Column, weights []float64) (*tensor.Tensor, error) {
	if len(targets) < 2 {
		return nil, fmt.Errorf("direction loss needs at least 2 target columns, got %d", len(targets))
	}
	events, err := checkShapes(pred, targets, weights)
	if err != nil {
		return nil, err
	}
	if events == 0 {
		return tensor.Scalar(0), nil
	}

	dims := len(targets)
	var total, norm float64
	for i := 0; i < events; i++ {
		var dot, pp, tt float64
		for j, t := range targets {
			p := pred.Data[i*dims+j]
			dot += p * t.Values[i]
			pp += p * p
			tt += t.Values[i] * t.Values[i]
		}
		if pp == 0 || tt == 0 {
			return nil, fmt.Errorf("event %d: zero-length direction vector", i)
		}
		perEvent := 1 - dot/math.Sqrt(pp*tt)

		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		total += w * perEvent
		norm += w
	}
	if norm == 0 {
		return nil, fmt.Errorf("weight column sums to zero")
	}
	return tensor.Scalar(total / norm), nil
}

// checkShapes validates that the targets agree on an event count and that
// the flat row-major prediction and the weight column match it. It returns
// the event count.
func checkShapes(pred *tensor.Tensor, targets []training.Column, weights []float64) (int, error) {
	if len(targets) == 0 {
		return 0, fmt.Errorf("no target columns")
	}
	events := len(targets[0].Values)
	for _, t := range targets[1:] {
		if len(t.Values) != events {
			return 0, fmt.Errorf("target %q has %d values, expected %d", t.Name, len(t.Values), events)
		}
	}
	if len(pred.Data) != events*len(targets) {
		return 0, fmt.Errorf("prediction has %d values, expected %d events and %d label(s)", len(pred.Data), events, len(targets))
	}
	if weights != nil && len(weights) != events {
		return 0, fmt.Errorf("weight column has %d values, expected %d", len(weights), events)
	}
	return events, nil
}

// logcosh evaluates log(cosh(x)) without overflowing for large |x|:
// log(cosh(x)) = |x| + log1p(exp(-2|x|)) - log(2).
func logcosh(x float64) float64 {
	a := math.Abs(x)
	return a + math.Log1p(math.Exp(-2*a)) - math.Ln2
}

// reduce scores a flat row-major prediction of shape [events, labels]
// against the target columns, in their given order, and reduces to a single
// scalar. With a weight column present the per-event errors form a weighted
// mean.
func reduce(pred *tensor.Tensor, targets []training.Column, weights []float64, score func(float64) float64) (*tensor.Tensor, error) {
	events, err := checkShapes(pred, targets, weights)
	if err != nil {
		return nil, err
	}
	if events == 0 {
		return tensor.Scalar(0), nil
	}

	var total, norm float64
	for i := 0; i < events; i++ {
		var perEvent float64
		for j, t := range targets {
			d := pred.Data[i*len(targets)+j] - t.Values[i]
			perEvent += score(d)
		}
		perEvent /= float64(len(targets))

		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		total += w * perEvent
		norm += w
	}
	if norm == 0 {
		return nil, fmt.Errorf("weight column sums to zero")
	}
	return tensor.Scalar(total / norm), nil
}

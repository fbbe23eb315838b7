package losses

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/graphtrain/internal/registry"
	"github.com/vk/graphtrain/internal/tensor"
	"github.com/vk/graphtrain/internal/training"
)

func item(t *testing.T, out *tensor.Tensor) float64 {
	t.Helper()
	v, err := out.Item()
	require.NoError(t, err)
	return v
}

func TestModuleRegistersLossClasses(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)

	for _, name := range []string{"MSELoss", "LogCoshLoss", "CosineLoss"} {
		ctor, err := reg.Resolve(name)
		require.NoError(t, err)
		obj, err := ctor(nil)
		require.NoError(t, err)
		_, ok := obj.(training.LossFunction)
		assert.True(t, ok, "%s must be a loss function", name)
	}
}

func TestMSELossSingleLabel(t *testing.T) {
	loss := &MSELoss{}
	pred := tensor.Vector([]float64{1, 2, 3})
	targets := []training.Column{{Name: "position_x", Values: []float64{1, 0, 1}}}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	require.True(t, out.IsScalar())
	// (0 + 4 + 4) / 3
	assert.InDelta(t, 8.0/3.0, item(t, out), 1e-12)
}

func TestMSELossMultiLabelRowMajor(t *testing.T) {
	loss := &MSELoss{}
	// Two events, two labels, laid out row-major per event.
	pred := &tensor.Tensor{Data: []float64{1, 2, 3, 4}, Shape: []int{2, 2}}
	targets := []training.Column{
		{Name: "position_x", Values: []float64{0, 3}},
		{Name: "position_y", Values: []float64{2, 4}},
	}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	// Event 0: (1 + 0) / 2, event 1: (0 + 0) / 2, mean over events.
	assert.InDelta(t, 0.25, item(t, out), 1e-12)
}

func TestMSELossWeightedMean(t *testing.T) {
	loss := &MSELoss{}
	pred := tensor.Vector([]float64{1, 2})
	targets := []training.Column{{Name: "energy", Values: []float64{0, 0}}}

	out, err := loss.Compute(pred, targets, []float64{3, 1})
	require.NoError(t, err)
	// (3*1 + 1*4) / (3 + 1)
	assert.InDelta(t, 1.75, item(t, out), 1e-12)
}

func TestMSELossRejectsZeroWeightSum(t *testing.T) {
	loss := &MSELoss{}
	pred := tensor.Vector([]float64{1})
	targets := []training.Column{{Name: "energy", Values: []float64{0}}}

	_, err := loss.Compute(pred, targets, []float64{0})
	require.Error(t, err)
}

func TestMSELossRejectsShapeMismatch(t *testing.T) {
	loss := &MSELoss{}
	pred := tensor.Vector([]float64{1, 2, 3})
	targets := []training.Column{
		{Name: "position_x", Values: []float64{0, 0}},
	}

	_, err := loss.Compute(pred, targets, nil)
	require.Error(t, err)

	targets = append(targets, training.Column{Name: "position_y", Values: []float64{0}})
	_, err = loss.Compute(pred, targets, nil)
	require.Error(t, err)
}

func TestLogCoshLossValues(t *testing.T) {
	loss := &LogCoshLoss{}
	pred := tensor.Vector([]float64{2})
	targets := []training.Column{{Name: "azimuth", Values: []float64{0}}}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(math.Cosh(2)), item(t, out), 1e-12)
}

func TestLogCoshLossStableForLargeResiduals(t *testing.T) {
	loss := &LogCoshLoss{}
	pred := tensor.Vector([]float64{1e6})
	targets := []training.Column{{Name: "energy", Values: []float64{0}}}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	// For large |x|, log(cosh(x)) approaches |x| - log(2).
	assert.InDelta(t, 1e6-math.Ln2, item(t, out), 1e-6)
	assert.False(t, math.IsInf(item(t, out), 1))
}

func TestCosineLossAlignedVectorsScoreZero(t *testing.T) {
	loss := &CosineLoss{}
	// Prediction parallel to the target, twice the length.
	pred := &tensor.Tensor{Data: []float64{2, 0, 4}, Shape: []int{1, 3}}
	targets := []training.Column{
		{Name: "direction_x", Values: []float64{1}},
		{Name: "direction_y", Values: []float64{0}},
		{Name: "direction_z", Values: []float64{2}},
	}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, item(t, out), 1e-12)
}

func TestCosineLossOrthogonalVectors(t *testing.T) {
	loss := &CosineLoss{}
	pred := &tensor.Tensor{Data: []float64{1, 0}, Shape: []int{1, 2}}
	targets := []training.Column{
		{Name: "direction_x", Values: []float64{0}},
		{Name: "direction_y", Values: []float64{1}},
	}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, item(t, out), 1e-12)
}

func TestCosineLossRejectsSingleColumn(t *testing.T) {
	loss := &CosineLoss{}
	pred := tensor.Vector([]float64{1})
	targets := []training.Column{{Name: "zenith", Values: []float64{1}}}

	_, err := loss.Compute(pred, targets, nil)
	require.Error(t, err)
}

func TestCosineLossRejectsZeroLengthVector(t *testing.T) {
	loss := &CosineLoss{}
	pred := &tensor.Tensor{Data: []float64{0, 0}, Shape: []int{1, 2}}
	targets := []training.Column{
		{Name: "direction_x", Values: []float64{1}},
		{Name: "direction_y", Values: []float64{0}},
	}

	_, err := loss.Compute(pred, targets, nil)
	require.Error(t, err)
}

func TestLogCoshLossZeroResidual(t *testing.T) {
	loss := &LogCoshLoss{}
	pred := tensor.Vector([]float64{5, 5})
	targets := []training.Column{{Name: "zenith", Values: []float64{5, 5}}}

	out, err := loss.Compute(pred, targets, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, item(t, out), 1e-12)
}

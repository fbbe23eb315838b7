// Package tensor provides the minimal value/shape carrier exchanged between
// the configuration layer and the external numeric layers. It exists so the
// loss aggregator can distinguish scalars from everything else; it is not a
// math library.
package tensor

import "fmt"

// Tensor is a dense column-major-free value: flat data plus a shape. An
// empty shape denotes a scalar.
type Tensor struct {
	Data  []float64
	Shape []int
}

// Scalar wraps a single value as a 0-dimensional tensor.
func Scalar(v float64) *Tensor {
	return &Tensor{Data: []float64{v}}
}

// Vector wraps a column of values as a 1-dimensional tensor.
func Vector(vs []float64) *Tensor {
	return &Tensor{Data: vs, Shape: []int{len(vs)}}
}

// IsScalar reports whether the tensor is 0-dimensional.
func (t *Tensor) IsScalar() bool {
	return len(t.Shape) == 0 && len(t.Data) == 1
}

// Item returns the value of a scalar tensor.
func (t *Tensor) Item() (float64, error) {
	if !t.IsScalar() {
		return 0, fmt.Errorf("tensor of shape %v is not a scalar", t.Shape)
	}
	return t.Data[0], nil
}

// Concat concatenates 1-dimensional tensors in order.
func Concat(ts ...*Tensor) (*Tensor, error) {
	var data []float64
	for _, t := range ts {
		if len(t.Shape) != 1 {
			return nil, fmt.Errorf("concat requires 1-dimensional tensors, got shape %v", t.Shape)
		}
		data = append(data, t.Data...)
	}
	return Vector(data), nil
}

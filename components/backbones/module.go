// Package backbones provides the backbone architecture classes. The layers
// themselves are external numeric code; the classes here are the opaque,
// validated configuration they are instantiated from.
package backbones

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
	r.MustRegister("EdgeConvNet", NewEdgeConvNet)
}

// EdgeConvNet is a dynamic edge-convolution backbone configuration.
type EdgeConvNet struct {
	confignode.Base

	NbInputs   int
	LayerSizes []int
	Dynamic    bool
}

// NewEdgeConvNet constructs an EdgeConvNet configuration.
func NewEdgeConvNet(args map[string]any) (any, error) {
	nbInputs, err := kwargs.Int(args, "nb_inputs")
	if err != nil {
		return nil, err
	}
	if nbInputs <= 0 {
		return nil, fmt.Errorf("nb_inputs must be positive, got %d", nbInputs)
	}

	dynamic, err := kwargs.AsOr(args, "dynamic", true)
	if err != nil {
		return nil, err
	}

	net := &EdgeConvNet{NbInputs: nbInputs, Dynamic: dynamic}

	if raw, ok := args["layer_sizes"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("layer_sizes: expected a list, got %T", raw)
		}
		for i, item := range list {
			f, ok := item.(float64)
			if !ok {
				return nil, fmt.Errorf("layer_sizes[%d]: expected number, got %T", i, item)
			}
			net.LayerSizes = append(net.LayerSizes, int(f))
		}
	}
	return net, nil
}

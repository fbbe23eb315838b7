// Package graphs provides the graph-construction classes: how raw pulses
// become nodes and how nodes are connected into a graph. The numeric message
// passing that consumes these definitions lives outside this layer; the
// classes here carry the configuration the numeric layers are built from.
package graphs

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
	r.MustRegister("KNNGraph", NewKNNGraph)
	r.MustRegister("NodesAsPulses", NewNodesAsPulses)
	r.MustRegister("Detector", NewDetector)
}

// NodesAsPulses maps each detector pulse to one graph node.
type NodesAsPulses struct {
	confignode.Base
}

// NewNodesAsPulses constructs a NodesAsPulses node definition.
func NewNodesAsPulses(args map[string]any) (any, error) {
	return &NodesAsPulses{}, nil
}

// Detector describes the sensor array a dataset was recorded with: the
// per-sensor feature columns the graph definition standardizes against.
type Detector struct {
	confignode.Base

	SensorFeatures []string
}

// NewDetector constructs a Detector.
func NewDetector(args map[string]any) (any, error) {
	features, err := kwargs.Strings(args, "sensor_features")
	if err != nil {
		return nil, err
	}
	return &Detector{SensorFeatures: features}, nil
}

// KNNGraph connects every node to its k nearest neighbours in the detector's
// coordinate space.
type KNNGraph struct {
	confignode.Base

	NbNearestNeighbours int
	NodeDefinition      *NodesAsPulses
	Detector            *Detector
}

// NewKNNGraph constructs a KNNGraph definition.
func NewKNNGraph(args map[string]any) (any, error) {
	k, err := kwargs.IntOr(args, "nb_nearest_neighbours", 8)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("nb_nearest_neighbours must be positive, got %d", k)
	}

	g := &KNNGraph{NbNearestNeighbours: k}

	if raw, ok := args["node_definition"]; ok && raw != nil {
		nd, ok := raw.(*NodesAsPulses)
		if !ok {
			return nil, fmt.Errorf("node_definition: expected a node definition, got %T", raw)
		}
		g.NodeDefinition = nd
	}
	if raw, ok := args["detector"]; ok && raw != nil {
		det, ok := raw.(*Detector)
		if !ok {
			return nil, fmt.Errorf("detector: expected a detector, got %T", raw)
		}
		g.Detector = det
	}
	return g, nil
}

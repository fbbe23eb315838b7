// Package detectors provides the named detector geometries a dataset may be
// recorded with. Each class is a preset over graphs.Detector: the per-sensor
// feature columns that geometry exposes.
package detectors

import (
	"github.com/vk/graphtrain/components/graphs"
	"github.com/vk/graphtrain/internal/kwargs"
	"github.com/vk/graphtrain/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers this package's classes.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("PoleDetector", NewPoleDetector)
	r.MustRegister("OrcaDetector", NewOrcaDetector)
}

// poleFeatures are the pulse columns of the South Pole in-ice array.
var poleFeatures = []string{"dom_x", "dom_y", "dom_z", "dom_time", "charge", "rde", "pmt_area"}

// orcaFeatures are the pulse columns of the ORCA water-Cherenkov array,
// whose PMTs carry an orientation.
var orcaFeatures = []string{"pos_x", "pos_y", "pos_z", "t", "dir_x", "dir_y", "dir_z"}

// NewPoleDetector constructs the in-ice detector preset. The feature list
// may be narrowed with sensor_features.
func NewPoleDetector(args map[string]any) (any, error) {
	return preset(args, poleFeatures)
}

// NewOrcaDetector constructs the ORCA detector preset.
func NewOrcaDetector(args map[string]any) (any, error) {
	return preset(args, orcaFeatures)
}

func preset(args map[string]any, defaults []string) (any, error) {
	features := append([]string(nil), defaults...)
	if _, ok := args["sensor_features"]; ok {
		override, err := kwargs.Strings(args, "sensor_features")
		if err != nil {
			return nil, err
		}
		features = override
	}
	return &graphs.Detector{SensorFeatures: features}, nil
}

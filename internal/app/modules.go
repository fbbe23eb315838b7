package app

import (
	"github.com/vk/graphtrain/components/backbones"
	"github.com/vk/graphtrain/components/detectors"
	"github.com/vk/graphtrain/components/graphs"
	"github.com/vk/graphtrain/components/losses"
	"github.com/vk/graphtrain/components/models"
	"github.com/vk/graphtrain/components/optim"
	"github.com/vk/graphtrain/components/tasks"
	"github.com/vk/graphtrain/internal/registry"
)

// coreModules is the definitive list of component packages compiled into the
// binary. Every constructible class a configuration document may reference
// registers itself here during startup.
var coreModules = []registry.Module{
	&graphs.Module{},
	&detectors.Module{},
	&backbones.Module{},
	&losses.Module{},
	&tasks.Module{},
	&optim.Module{},
	&models.Module{},
}

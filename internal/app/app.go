package app

import (
	"io"
	"log/slog"

	"github.com/vk/graphtrain/internal/builder"
	"github.com/vk/graphtrain/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	reg     *registry.Registry
	builder *builder.Builder
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a populated,
// frozen class registry. Extra modules beyond the compiled-in set may be
// supplied by tests.
func NewApp(outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)

	reg := registry.New()
	for _, mod := range append(append([]registry.Module(nil), coreModules...), modules...) {
		mod.Register(reg)
	}
	reg.Freeze()
	logger.Debug("Class registry populated and frozen.", "classes", len(reg.Names()))

	return &App{
		outW:    outW,
		logger:  logger,
		reg:     reg,
		builder: builder.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}

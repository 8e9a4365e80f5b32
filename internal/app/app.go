package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/featbus/internal/catalog"
	"github.com/vk/featbus/internal/components"
	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/lifecycle"
	"github.com/vk/featbus/internal/memsettings"
	"github.com/vk/featbus/internal/pipeline"
	"github.com/vk/featbus/internal/session"
	"github.com/vk/featbus/internal/settings"
)

// Config holds everything an App instance needs from its host.
type Config struct {
	// OverridesPath optionally points at an .hcl override file or a
	// directory of them, applied before enablement resolution.
	OverridesPath string

	// LogFormat is "text" or "json"; LogLevel is one of debug, info,
	// warn, error. Both fall back to sensible defaults when empty.
	LogFormat string
	LogLevel  string

	// TaskBuilder optionally substitutes the container's task builder;
	// nil selects the default factory-invoking builder.
	TaskBuilder feature.Builder
}

// App encapsulates one engine instance: its logger, settings store, catalog,
// collaborators, and (after Configure) its lifecycle coordinator.
type App struct {
	logger     *slog.Logger
	cfg        *Config
	session    *session.Session
	settings   *memsettings.Store
	catalog    *catalog.Catalog
	components *components.Registry
	pipeline   *pipeline.Config

	coordinator *lifecycle.Coordinator
	configured  bool
}

// New creates an App with the given features registered. When no features are
// passed, the shipped core set is used.
func New(outW io.Writer, cfg *Config, feats ...feature.Feature) (*App, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		logger:     logger,
		cfg:        cfg,
		session:    session.New(),
		settings:   memsettings.New(),
		components: components.New(),
		pipeline:   pipeline.New(),
	}
	a.catalog = catalog.New(a.settings)

	if len(feats) == 0 {
		feats = coreFeatures()
	}
	for _, f := range feats {
		if err := a.catalog.Add(ctx, f); err != nil {
			return nil, fmt.Errorf("failed to register feature %q: %w", f.Name(), err)
		}
	}
	logger.Debug("All features registered.", "count", len(feats), "session_id", a.session.ID())

	return a, nil
}

// Settings returns the settings store.
func (a *App) Settings() settings.Settings {
	return a.settings
}

// Catalog returns the feature catalog. This is primarily for testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Components returns the component registry populated during activation.
func (a *App) Components() *components.Registry {
	return a.components
}

// Pipeline returns the pipeline configuration populated during activation.
func (a *App) Pipeline() *pipeline.Config {
	return a.pipeline
}

// Session returns the run session identity.
func (a *App) Session() *session.Session {
	return a.session
}

// errNotConfigured guards the lifecycle entry points.
var errNotConfigured = errors.New("app: Configure must complete before starting or stopping features")

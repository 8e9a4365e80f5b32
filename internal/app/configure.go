package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/featbus/internal/activation"
	"github.com/vk/featbus/internal/builder"
	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/dag"
	"github.com/vk/featbus/internal/hclconf"
	"github.com/vk/featbus/internal/lifecycle"
	"github.com/vk/featbus/internal/report"
	"github.com/vk/featbus/internal/resolver"
)

// Configure runs the full configuration pass: overrides, sort, enablement
// resolution, activation, settings lock. It returns the Features Report and
// prepares the lifecycle coordinator. One-shot per App.
func (a *App) Configure(ctx context.Context) (report.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if a.configured {
		return nil, errors.New("app: Configure called twice")
	}

	if a.cfg.OverridesPath != "" {
		overrides, err := hclconf.Load(ctx, a.cfg.OverridesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load feature overrides: %w", err)
		}
		if err := hclconf.Apply(ctx, overrides, a.settings); err != nil {
			return nil, fmt.Errorf("failed to apply feature overrides: %w", err)
		}
		a.logger.Debug("Feature overrides applied.", "count", len(overrides))
	}

	sorted, err := dag.Sort(ctx, a.catalog.Entries())
	if err != nil {
		return nil, fmt.Errorf("failed to sort features: %w", err)
	}

	selected, err := resolver.Resolve(ctx, sorted, a.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feature enablement: %w", err)
	}

	engine := activation.New(a.settings, a.components, a.pipeline)
	rep, err := engine.Run(ctx, a.catalog.Entries(), selected)
	if err != nil {
		return nil, fmt.Errorf("feature activation failed: %w", err)
	}

	taskBuilder := a.cfg.TaskBuilder
	if taskBuilder == nil {
		taskBuilder = builder.New()
	}
	a.coordinator = lifecycle.New(taskBuilder, a.catalog.Entries())
	a.configured = true

	a.logger.Info("Feature configuration complete.",
		"session_id", a.session.ID(),
		"registered", len(a.catalog.Entries()),
		"active", rep.Active(),
		"elapsed", a.session.Uptime(),
	)
	return rep, nil
}

// StartFeatures sequentially starts the tasks of every active feature.
func (a *App) StartFeatures(ctx context.Context) error {
	if !a.configured {
		return errNotConfigured
	}
	return a.coordinator.StartFeatures(ctxlog.WithLogger(ctx, a.logger))
}

// StopFeatures sequentially stops the tasks of every active feature.
func (a *App) StopFeatures(ctx context.Context) error {
	if !a.configured {
		return errNotConfigured
	}
	return a.coordinator.StopFeatures(ctxlog.WithLogger(ctx, a.logger))
}

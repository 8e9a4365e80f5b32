// Package activation drives per-feature activation: it verifies dependency
// group satisfaction and environment prerequisites for every selected
// feature, runs its setup hook, captures diagnostics and startup-task
// factories, and finally locks the settings store and publishes the Features
// Report.
package activation

import (
	"context"
	"fmt"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/report"
	"github.com/vk/featbus/internal/settings"
)

// Engine activates the selected features of a single configuration pass.
// It is synchronous and single-threaded; callers must not run configuration
// concurrently.
type Engine struct {
	settings   settings.Settings
	components feature.ComponentRegistrar
	pipeline   feature.PipelineConfigurer

	// selected maps names to the features chosen by the resolver. Names
	// absent from it are dropped from dependency groups, not errored.
	selected map[string]*feature.State

	// resolving tracks the features on the current recursion stack so a
	// cyclic dependency fails fast instead of recursing unboundedly.
	resolving map[string]bool
}

// New creates an engine bound to the settings store and the component and
// pipeline collaborators handed to feature hooks.
func New(s settings.Settings, c feature.ComponentRegistrar, p feature.PipelineConfigurer) *Engine {
	return &Engine{
		settings:   s,
		components: c,
		pipeline:   p,
		resolving:  make(map[string]bool),
	}
}

// Run activates every selected feature in selection order, locks the settings
// store against further mutation, and returns the Features Report covering
// all registered features.
//
// Dependency and prerequisite failures are expected negative outcomes,
// recorded in diagnostics; an error from a feature hook or a dependency cycle
// aborts the whole pass.
func (e *Engine) Run(ctx context.Context, registered, selected []*feature.State) (report.Report, error) {
	logger := ctxlog.FromContext(ctx)

	e.selected = make(map[string]*feature.State, len(selected))
	for _, st := range selected {
		e.selected[st.Feature.Name()] = st
	}

	for _, st := range selected {
		if _, err := e.ActivateFeature(ctx, st); err != nil {
			return nil, err
		}
	}

	e.settings.PreventChanges()
	logger.Debug("Activation pass complete, settings locked.", "registered", len(registered), "selected", len(selected))

	return report.New(registered), nil
}

// ActivateFeature activates a single selected feature, recursively activating
// the members of its dependency groups first. It reports whether the feature
// ended up active; the error return is reserved for hook failures and
// dependency cycles, which abort the pass.
//
// A second call on an already-active feature is a no-op returning success,
// which is what makes recursive re-entry from dependency groups safe.
func (e *Engine) ActivateFeature(ctx context.Context, st *feature.State) (bool, error) {
	name := st.Feature.Name()
	logger := ctxlog.FromContext(ctx).With("feature", name)

	if st.Diag.Active {
		return true, nil
	}
	if e.resolving[name] {
		return false, fmt.Errorf("dependency cycle detected while activating feature %q", name)
	}
	e.resolving[name] = true
	defer delete(e.resolving, name)

	met, err := e.dependenciesSatisfied(ctx, st)
	if err != nil {
		return false, err
	}
	st.Diag.DependenciesAreMet = met
	if !met {
		logger.Debug("Feature deactivated: dependencies not satisfied.")
		if err := e.settings.MarkFeatureAsDeactivated(name); err != nil {
			return false, err
		}
		return false, nil
	}

	actx := feature.NewContext(e.settings, e.components, e.pipeline)

	status, err := st.Feature.CheckPrerequisites(ctx, actx)
	if err != nil {
		return false, fmt.Errorf("feature %q: check-prerequisites hook failed: %w", name, err)
	}
	st.Diag.Prerequisite = status
	if !status.Satisfied {
		logger.Debug("Feature deactivated: prerequisites not satisfied.", "reason", status.Reason)
		if err := e.settings.MarkFeatureAsDeactivated(name); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := e.settings.MarkFeatureAsActive(name); err != nil {
		return false, err
	}
	if err := st.Feature.Setup(ctx, actx); err != nil {
		return false, fmt.Errorf("feature %q: setup hook failed: %w", name, err)
	}

	st.TaskFactories = actx.TaskFactories()
	st.Diag.StartupTasks = actx.TaskNames()
	st.Diag.Active = true
	logger.Debug("Feature activated.", "startup_tasks", len(st.TaskFactories))
	return true, nil
}

// dependenciesSatisfied checks every declared dependency group. Within a
// group at least one resolvable member must activate; across groups all must
// be satisfied. A group whose members all fall outside the selected set is
// empty after dropping and fails closed.
func (e *Engine) dependenciesSatisfied(ctx context.Context, st *feature.State) (bool, error) {
	logger := ctxlog.FromContext(ctx).With("feature", st.Feature.Name())

	for _, group := range st.Feature.Dependencies() {
		var candidates []*feature.State
		for _, depName := range group {
			dep, ok := e.selected[depName]
			if !ok {
				logger.Debug("Dropping dependency name not among selected features.", "dependency", depName)
				continue
			}
			candidates = append(candidates, dep)
		}

		satisfied := false
		for _, dep := range candidates {
			active, err := e.ActivateFeature(ctx, dep)
			if err != nil {
				return false, err
			}
			if active {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

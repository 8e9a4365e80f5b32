// Package feature defines the contracts shared by the activation engine and
// the features it manages: the descriptor every feature implements, the
// activation context handed to its hooks, the per-feature diagnostics record,
// and the startup task contracts.
package feature

import (
	"context"

	"github.com/vk/featbus/internal/settings"
)

// DependencyGroup is a set of feature names of which at least one must
// activate (OR semantics). A feature's dependency list is an ordered sequence
// of groups combined with AND semantics.
type DependencyGroup []string

// Feature is the descriptor contract every feature implements.
//
// Name is the sole identity key and must be unique across the catalog. The
// three hooks are invoked by the engine in a fixed order: ConfigureDefaults
// during enablement resolution, then CheckPrerequisites and Setup during
// activation. An error from any hook aborts the whole configuration pass.
type Feature interface {
	// Name returns the unique identity of the feature.
	Name() string

	// Version returns the feature version, for diagnostics only.
	Version() string

	// EnabledByDefault reports whether registering the feature should
	// enable it in the settings store.
	EnabledByDefault() bool

	// Dependencies returns the ordered dependency groups.
	Dependencies() []DependencyGroup

	// ConfigureDefaults runs when the feature is selected by the resolver.
	// It may mutate settings, including flipping enablement flags of other,
	// not-yet-selected features.
	ConfigureDefaults(s settings.Settings) error

	// CheckPrerequisites verifies environment and runtime conditions that
	// are independent of the dependency graph.
	CheckPrerequisites(ctx context.Context, actx *Context) (PrerequisiteStatus, error)

	// Setup runs once dependencies and prerequisites are satisfied. It is
	// the only point at which the feature may register startup tasks,
	// components, or pipeline behaviors on the context.
	Setup(ctx context.Context, actx *Context) error
}

// ComponentRegistrar is the component-registration capability exposed to
// feature Setup hooks. The hosting container implements it; the engine treats
// registered factories as opaque.
type ComponentRegistrar interface {
	Register(name string, factory func() any)
}

// PipelineConfigurer is the pipeline-configuration capability exposed to
// feature Setup hooks. Behaviors are opaque to the engine; the hosting
// framework consumes them in registration order.
type PipelineConfigurer interface {
	Register(stage, name string, behavior any)
}

// PrerequisiteStatus is the outcome of a feature's prerequisite check.
type PrerequisiteStatus struct {
	Satisfied bool   `yaml:"satisfied"`
	Reason    string `yaml:"reason,omitempty"`
}

// PrerequisitesSatisfied returns a satisfied status.
func PrerequisitesSatisfied() PrerequisiteStatus {
	return PrerequisiteStatus{Satisfied: true}
}

// PrerequisitesUnsatisfied returns an unsatisfied status carrying the reason
// recorded into diagnostics.
func PrerequisitesUnsatisfied(reason string) PrerequisiteStatus {
	return PrerequisiteStatus{Satisfied: false, Reason: reason}
}

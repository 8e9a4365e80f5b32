package feature

// Diagnostics is the per-feature record mutated in place as the feature moves
// through the resolve and activate passes. One record exists for every
// registered feature regardless of outcome; the full set forms the Features
// Report.
//
// Records are only stable for external readers once the pass that owns them
// has completed.
type Diagnostics struct {
	Name               string             `yaml:"name"`
	Version            string             `yaml:"version"`
	EnabledByDefault   bool               `yaml:"enabled_by_default"`
	Dependencies       []string           `yaml:"dependencies,omitempty"`
	DependenciesAreMet bool               `yaml:"dependencies_are_met"`
	Active             bool               `yaml:"active"`
	Prerequisite       PrerequisiteStatus `yaml:"prerequisite"`
	StartupTasks       []string           `yaml:"startup_tasks,omitempty"`
}

// State ties a registered feature to its diagnostics record and, once
// activated, its task factories and live task instances. The catalog creates
// one State per registration; it persists for the process's configuration
// lifetime.
type State struct {
	Feature Feature
	Diag    *Diagnostics

	// TaskFactories is populated by the activation engine, only for active
	// features.
	TaskFactories []TaskFactory

	// Tasks holds the live instances created at start; the stop pass walks
	// them in creation order.
	Tasks []StartupTask
}

// NewState creates the runtime state for a freshly registered feature,
// including its diagnostics record with the flattened dependency names.
func NewState(f Feature) *State {
	return &State{
		Feature: f,
		Diag: &Diagnostics{
			Name:             f.Name(),
			Version:          f.Version(),
			EnabledByDefault: f.EnabledByDefault(),
			Dependencies:     flattenDependencies(f.Dependencies()),
		},
	}
}

// Active reports whether the feature came out of the activation pass active.
func (s *State) Active() bool {
	return s.Diag.Active
}

// flattenDependencies collapses the dependency groups into a single ordered,
// de-duplicated name list. The OR/AND structure is irrelevant here: any named
// dependency must sort before its dependent.
func flattenDependencies(groups []DependencyGroup) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Package report publishes the per-feature diagnostic outcomes of an
// activation pass.
//
// The catalog's Status view is live and mutated in place across phases; a
// Report is a value snapshot taken once the owning pass has completed, so
// external readers never observe partial state.
package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/featbus/internal/feature"
)

// Report is the Features Report: one diagnostics entry per registered
// feature, in registration order, irrespective of activation outcome.
type Report []feature.Diagnostics

// New snapshots the diagnostics of every registered feature. Slices are
// copied so later mutation of the live records cannot leak into the report.
func New(entries []*feature.State) Report {
	out := make(Report, 0, len(entries))
	for _, st := range entries {
		d := *st.Diag
		d.Dependencies = append([]string(nil), st.Diag.Dependencies...)
		d.StartupTasks = append([]string(nil), st.Diag.StartupTasks...)
		out = append(out, d)
	}
	return out
}

// Feature returns the entry recorded for the named feature.
func (r Report) Feature(name string) (feature.Diagnostics, bool) {
	for _, d := range r {
		if d.Name == name {
			return d, true
		}
	}
	return feature.Diagnostics{}, false
}

// Active returns the names of the features that came out of the pass active,
// in registration order.
func (r Report) Active() []string {
	var names []string
	for _, d := range r {
		if d.Active {
			names = append(names, d.Name)
		}
	}
	return names
}

// Encode writes the report as YAML for diagnostics tooling.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// Package catalog holds the set of registered features and owns their
// diagnostics records for the process lifetime.
package catalog

import (
	"context"
	"fmt"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/settings"
)

// Catalog registers feature descriptors in order and creates their
// diagnostics entries. Registration must happen before any activation pass.
type Catalog struct {
	settings settings.Settings
	entries  []*feature.State
	byName   map[string]*feature.State
}

// New creates an empty catalog bound to the given settings store.
func New(s settings.Settings) *Catalog {
	return &Catalog{
		settings: s,
		byName:   make(map[string]*feature.State),
	}
}

// Add registers a feature descriptor, creates its diagnostics entry, and, if
// the feature is enabled by default, records that in the settings store.
//
// Registering two features with the same name is a wiring bug and panics.
func (c *Catalog) Add(ctx context.Context, f feature.Feature) error {
	name := f.Name()
	if _, exists := c.byName[name]; exists {
		panic(fmt.Sprintf("feature with name '%s' already registered", name))
	}

	st := feature.NewState(f)
	c.entries = append(c.entries, st)
	c.byName[name] = st

	if f.EnabledByDefault() {
		if err := c.settings.EnableFeatureByDefault(name); err != nil {
			return fmt.Errorf("failed to enable feature %q by default: %w", name, err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Feature registered.", "feature", name, "version", f.Version(), "enabled_by_default", f.EnabledByDefault())
	return nil
}

// Entries returns the registered feature states in registration order.
func (c *Catalog) Entries() []*feature.State {
	return c.entries
}

// Lookup returns the state registered under name.
func (c *Catalog) Lookup(name string) (*feature.State, bool) {
	st, ok := c.byName[name]
	return st, ok
}

// Status returns the current diagnostics records by reference, one per
// registered feature. This is a live view, not a copy.
func (c *Catalog) Status() []*feature.Diagnostics {
	out := make([]*feature.Diagnostics, len(c.entries))
	for i, st := range c.entries {
		out[i] = st.Diag
	}
	return out
}

// Package resolver selects the fixed-point set of enabled features.
//
// Enabling one feature can cascade-enable others through its
// ConfigureDefaults hook, so a single pass over the sorted list is not
// enough: after every selection the scan restarts from the top of the
// remaining features. Termination is guaranteed because the remaining set
// shrinks by one on every selection; the worst case is quadratic in the
// feature count.
package resolver

import (
	"context"
	"fmt"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/settings"
)

// Resolve scans the topologically sorted features and returns, in selection
// order, exactly those that end up enabled, directly or via cascaded
// defaults. Each feature is selected at most once; its ConfigureDefaults hook
// runs at the moment of selection.
func Resolve(ctx context.Context, sorted []*feature.State, s settings.Settings) ([]*feature.State, error) {
	logger := ctxlog.FromContext(ctx)

	remaining := make([]*feature.State, len(sorted))
	copy(remaining, sorted)

	var selected []*feature.State
	for {
		idx := -1
		for i, st := range remaining {
			// Queried live: a later feature's defaults may have
			// flipped this flag since the previous scan.
			if s.IsFeatureEnabled(st.Feature.Name()) {
				idx = i
				break
			}
		}
		if idx == -1 {
			break
		}

		st := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		selected = append(selected, st)

		name := st.Feature.Name()
		logger.Debug("Feature selected for activation.", "feature", name)
		if err := st.Feature.ConfigureDefaults(s); err != nil {
			return nil, fmt.Errorf("feature %q: configure-defaults hook failed: %w", name, err)
		}
	}

	logger.Debug("Enablement resolution complete.", "selected", len(selected), "skipped", len(remaining))
	return selected, nil
}

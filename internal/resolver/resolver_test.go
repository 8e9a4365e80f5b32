package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/featuretest"
	"github.com/vk/featbus/internal/memsettings"
	"github.com/vk/featbus/internal/settings"
)

func names(selected []*feature.State) []string {
	out := make([]string, len(selected))
	for i, st := range selected {
		out[i] = st.Feature.Name()
	}
	return out
}

func register(t *testing.T, s settings.Settings, stubs ...*featuretest.Stub) []*feature.State {
	t.Helper()
	out := make([]*feature.State, len(stubs))
	for i, stub := range stubs {
		out[i] = feature.NewState(stub)
		if stub.DefaultEnabled {
			require.NoError(t, s.EnableFeatureByDefault(stub.FeatureName))
		}
	}
	return out
}

func TestResolveSelectsEnabledInOrder(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()

	sorted := register(t, s,
		&featuretest.Stub{FeatureName: "f1", DefaultEnabled: true},
		&featuretest.Stub{FeatureName: "f2"},
		&featuretest.Stub{FeatureName: "f3", DefaultEnabled: true},
	)

	selected, err := Resolve(ctx, sorted, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f3"}, names(selected))
}

func TestResolveCascadedEnablement(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()

	// f4 sits earlier in sorted order than f2 but starts disabled; f2's
	// defaults enable it. The resolver must pick f4 up within the same
	// pass because each scan restarts from the top of the remaining set.
	f4 := &featuretest.Stub{FeatureName: "f4"}
	f2 := &featuretest.Stub{
		FeatureName:    "f2",
		DefaultEnabled: true,
		OnDefaults: func(st settings.Settings) error {
			return st.EnableFeature("f4")
		},
	}

	sorted := register(t, s, f4, f2)

	selected, err := Resolve(ctx, sorted, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"f2", "f4"}, names(selected))
}

func TestResolveSelectsEachFeatureAtMostOnce(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()

	calls := 0
	f1 := &featuretest.Stub{
		FeatureName:    "f1",
		DefaultEnabled: true,
		OnDefaults: func(st settings.Settings) error {
			calls++
			// Re-enabling an already-selected feature must not
			// select it again.
			return st.EnableFeature("f1")
		},
	}
	f2 := &featuretest.Stub{FeatureName: "f2", DefaultEnabled: true}

	selected, err := Resolve(ctx, register(t, s, f1, f2), s)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, names(selected))
	assert.Equal(t, 1, calls)
}

func TestResolveNothingEnabled(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()

	selected, err := Resolve(ctx, register(t, s,
		&featuretest.Stub{FeatureName: "f1"},
		&featuretest.Stub{FeatureName: "f2"},
	), s)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestResolveDefaultsHookFailureAbortsPass(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()

	hookErr := errors.New("boom")
	sorted := register(t, s, &featuretest.Stub{
		FeatureName:    "f1",
		DefaultEnabled: true,
		OnDefaults:     func(settings.Settings) error { return hookErr },
	})

	_, err := Resolve(ctx, sorted, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, hookErr)
	assert.ErrorContains(t, err, "configure-defaults hook failed")
}

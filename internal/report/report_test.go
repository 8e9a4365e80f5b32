package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/featuretest"
)

func TestNewIsASnapshot(t *testing.T) {
	st := feature.NewState(&featuretest.Stub{
		FeatureName: "f1",
		Deps:        []feature.DependencyGroup{{"a"}},
	})
	st.Diag.Active = true
	st.Diag.StartupTasks = []string{"t1"}

	rep := New([]*feature.State{st})

	// Later mutation of the live record must not leak into the snapshot.
	st.Diag.Active = false
	st.Diag.StartupTasks[0] = "mutated"
	st.Diag.Dependencies[0] = "mutated"

	d, ok := rep.Feature("f1")
	require.True(t, ok)
	assert.True(t, d.Active)
	assert.Equal(t, []string{"t1"}, d.StartupTasks)
	assert.Equal(t, []string{"a"}, d.Dependencies)
}

func TestActive(t *testing.T) {
	on := feature.NewState(&featuretest.Stub{FeatureName: "on"})
	on.Diag.Active = true
	off := feature.NewState(&featuretest.Stub{FeatureName: "off"})

	rep := New([]*feature.State{on, off})
	assert.Equal(t, []string{"on"}, rep.Active())
}

func TestFeatureMiss(t *testing.T) {
	rep := New(nil)
	_, ok := rep.Feature("ghost")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	st := feature.NewState(&featuretest.Stub{FeatureName: "f1", FeatureVersion: "1.2.3"})
	st.Diag.Active = true
	st.Diag.Prerequisite = feature.PrerequisitesSatisfied()

	var sb strings.Builder
	require.NoError(t, New([]*feature.State{st}).Encode(&sb))

	out := sb.String()
	assert.Contains(t, out, "name: f1")
	assert.Contains(t, out, "version: 1.2.3")
	assert.Contains(t, out, "active: true")
	assert.Contains(t, out, "satisfied: true")
}

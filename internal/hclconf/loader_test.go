package hclconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featbus/internal/featuretest"
	"github.com/vk/featbus/internal/memsettings"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "features.hcl", `
feature "gateway" {
  enabled = true
  settings = {
    "gateway.url"       = "wss://gw.example.com/socket.io"
    "gateway.namespace" = "/bus"
  }
}

feature "heartbeat" {
  enabled = false
}
`)

	overrides, err := Load(featuretest.Context(), path)
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	gw := overrides[0]
	assert.Equal(t, "gateway", gw.Name)
	require.NotNil(t, gw.Enabled)
	assert.True(t, *gw.Enabled)
	assert.Equal(t, "wss://gw.example.com/socket.io", gw.Settings["gateway.url"])
	assert.Equal(t, "/bus", gw.Settings["gateway.namespace"])

	hb := overrides[1]
	assert.Equal(t, "heartbeat", hb.Name)
	require.NotNil(t, hb.Enabled)
	assert.False(t, *hb.Enabled)
	assert.Empty(t, hb.Settings)
}

func TestLoadDirectoryIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.hcl", `feature "b" {}`)
	writeFile(t, dir, "a.hcl", `feature "a" {}`)

	overrides, err := Load(featuretest.Context(), dir)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "a", overrides[0].Name, "files are visited in sorted order")
	assert.Equal(t, "b", overrides[1].Name)
}

func TestLoadEmptyDirectory(t *testing.T) {
	overrides, err := Load(featuretest.Context(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestLoadRejectsInvalidHCL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.hcl", `feature "x" {`)
	_, err := Load(featuretest.Context(), path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse HCL file")
}

func TestLoadRejectsNonBoolEnabled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.hcl", `
feature "x" {
  enabled = "yes"
}
`)
	_, err := Load(featuretest.Context(), path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "'enabled' must be a bool")
}

func TestApply(t *testing.T) {
	ctx := featuretest.Context()
	s := memsettings.New()
	require.NoError(t, s.EnableFeatureByDefault("heartbeat"))

	enable := true
	disable := false
	overrides := []Override{
		{Name: "gateway", Enabled: &enable, Settings: map[string]any{"gateway.url": "wss://gw"}},
		{Name: "heartbeat", Enabled: &disable},
		{Name: "outbox", Settings: map[string]any{"outbox.size": int64(100)}},
	}

	require.NoError(t, Apply(ctx, overrides, s))

	assert.True(t, s.IsFeatureEnabled("gateway"))
	assert.False(t, s.IsFeatureEnabled("heartbeat"), "override wins over registration default")
	assert.False(t, s.IsFeatureEnabled("outbox"), "settings-only override does not enable")

	url, ok := s.Get("gateway.url")
	require.True(t, ok)
	assert.Equal(t, "wss://gw", url)

	size, ok := s.Get("outbox.size")
	require.True(t, ok)
	assert.Equal(t, int64(100), size)
}

func TestApplyAfterLockFails(t *testing.T) {
	s := memsettings.New()
	s.PreventChanges()

	enable := true
	err := Apply(featuretest.Context(), []Override{{Name: "x", Enabled: &enable}}, s)
	require.Error(t, err)
}

func TestGoValueNumbers(t *testing.T) {
	path := writeFile(t, t.TempDir(), "n.hcl", `
feature "x" {
  settings = {
    "x.count"   = 3
    "x.ratio"   = 0.5
    "x.flag"    = true
    "x.list"    = ["a", "b"]
  }
}
`)
	overrides, err := Load(featuretest.Context(), path)
	require.NoError(t, err)
	require.Len(t, overrides, 1)

	s := overrides[0].Settings
	assert.Equal(t, int64(3), s["x.count"])
	assert.Equal(t, 0.5, s["x.ratio"])
	assert.Equal(t, true, s["x.flag"])
	assert.Equal(t, []any{"a", "b"}, s["x.list"])
}

// Duration settings arrive as strings from HCL; features that need a
// time.Duration parse it themselves. This pins the round trip a host relies
// on for heartbeat.interval.
func TestDurationSettingsStayStrings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "d.hcl", `
feature "heartbeat" {
  settings = { "heartbeat.interval" = "30s" }
}
`)
	overrides, err := Load(featuretest.Context(), path)
	require.NoError(t, err)

	raw := overrides[0].Settings["heartbeat.interval"]
	str, ok := raw.(string)
	require.True(t, ok)

	d, err := time.ParseDuration(str)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

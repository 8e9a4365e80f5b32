// Package heartbeat ships the liveness-beat feature: when active it emits a
// periodic heartbeat log entry so operators can confirm the endpoint's
// background loop is alive.
package heartbeat

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/settings"
)

// Name is the feature's identity in the catalog and in dependency groups.
const Name = "heartbeat"

const version = "0.3.0"

// IntervalKey is the settings key holding the beat interval as a
// time.Duration. ConfigureDefaults fills it when the host did not.
const IntervalKey = "heartbeat.interval"

const defaultInterval = 10 * time.Second

// Feature implements feature.Feature.
type Feature struct{}

// New creates the heartbeat feature.
func New() *Feature {
	return &Feature{}
}

func (f *Feature) Name() string { return Name }

func (f *Feature) Version() string { return version }

func (f *Feature) EnabledByDefault() bool { return true }

func (f *Feature) Dependencies() []feature.DependencyGroup { return nil }

// ConfigureDefaults fills in the beat interval unless the host already set it.
func (f *Feature) ConfigureDefaults(s settings.Settings) error {
	return s.SetDefault(IntervalKey, defaultInterval)
}

// CheckPrerequisites validates the configured interval.
func (f *Feature) CheckPrerequisites(ctx context.Context, actx *feature.Context) (feature.PrerequisiteStatus, error) {
	if _, err := intervalFromSettings(actx.Settings()); err != nil {
		return feature.PrerequisitesUnsatisfied(err.Error()), nil
	}
	return feature.PrerequisitesSatisfied(), nil
}

// Setup contributes the beat task.
func (f *Feature) Setup(ctx context.Context, actx *feature.Context) error {
	interval, err := intervalFromSettings(actx.Settings())
	if err != nil {
		return err
	}

	actx.RegisterStartupTask("heartbeat-beat", func() feature.StartupTask {
		return newBeatTask(interval)
	})
	return nil
}

// intervalFromSettings reads the beat interval. HCL overrides arrive as
// strings ("30s"); native callers may store a time.Duration directly.
func intervalFromSettings(s settings.Settings) (time.Duration, error) {
	raw, ok := s.Get(IntervalKey)
	if !ok {
		return 0, fmt.Errorf("setting %q is missing", IntervalKey)
	}

	var interval time.Duration
	switch v := raw.(type) {
	case time.Duration:
		interval = v
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("setting %q is not a valid duration: %v", IntervalKey, err)
		}
		interval = parsed
	default:
		return 0, fmt.Errorf("setting %q must be a duration, got %T", IntervalKey, raw)
	}

	if interval <= 0 {
		return 0, fmt.Errorf("setting %q must be positive, got %s", IntervalKey, interval)
	}
	return interval, nil
}

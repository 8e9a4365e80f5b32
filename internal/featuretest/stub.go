// Package featuretest provides configurable stand-ins for engine tests: a
// scriptable feature descriptor and a startup task that records its lifecycle
// calls.
package featuretest

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/settings"
)

// Stub is a feature whose behavior is driven entirely by its fields. The zero
// value (plus a name) is a default-disabled feature with no dependencies
// whose prerequisites are satisfied and whose hooks do nothing.
type Stub struct {
	FeatureName    string
	FeatureVersion string
	DefaultEnabled bool
	Deps           []feature.DependencyGroup

	OnDefaults func(s settings.Settings) error
	OnPrereq   func(ctx context.Context, actx *feature.Context) (feature.PrerequisiteStatus, error)
	OnSetup    func(ctx context.Context, actx *feature.Context) error
}

var _ feature.Feature = (*Stub)(nil)

func (s *Stub) Name() string { return s.FeatureName }

func (s *Stub) Version() string {
	if s.FeatureVersion == "" {
		return "0.0.0-test"
	}
	return s.FeatureVersion
}

func (s *Stub) EnabledByDefault() bool { return s.DefaultEnabled }

func (s *Stub) Dependencies() []feature.DependencyGroup { return s.Deps }

func (s *Stub) ConfigureDefaults(st settings.Settings) error {
	if s.OnDefaults == nil {
		return nil
	}
	return s.OnDefaults(st)
}

func (s *Stub) CheckPrerequisites(ctx context.Context, actx *feature.Context) (feature.PrerequisiteStatus, error) {
	if s.OnPrereq == nil {
		return feature.PrerequisitesSatisfied(), nil
	}
	return s.OnPrereq(ctx, actx)
}

func (s *Stub) Setup(ctx context.Context, actx *feature.Context) error {
	if s.OnSetup == nil {
		return nil
	}
	return s.OnSetup(ctx, actx)
}

// Task is a startup task that appends "start:<name>" / "stop:<name>" entries
// to a shared log slice, so tests can assert strict sequential ordering.
type Task struct {
	TaskName string
	Log      *[]string

	StartErr error
	StopErr  error

	// BeforeStart runs inside Start before the log entry is appended, so a
	// test can make a task artificially slow.
	BeforeStart func()

	Closed bool
}

var _ feature.StartupTask = (*Task)(nil)

func (t *Task) Start(ctx context.Context) error {
	if t.BeforeStart != nil {
		t.BeforeStart()
	}
	if t.Log != nil {
		*t.Log = append(*t.Log, "start:"+t.TaskName)
	}
	return t.StartErr
}

func (t *Task) Stop(ctx context.Context) error {
	if t.Log != nil {
		*t.Log = append(*t.Log, "stop:"+t.TaskName)
	}
	return t.StopErr
}

// Close implements io.Closer so disposal handling can be asserted.
func (t *Task) Close() error {
	t.Closed = true
	return nil
}

// Context returns a context carrying a discard logger, satisfying the
// engine's requirement that every entry point has one installed.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

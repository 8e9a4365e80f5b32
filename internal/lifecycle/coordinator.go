// Package lifecycle starts and stops the startup tasks contributed by active
// features.
//
// Both passes are fully sequential and deliberately so: tasks may assume the
// tasks of earlier-registered features finished initializing before theirs
// begin. Each hook is awaited to completion before the next one runs; no
// cancellation or timeout is imposed here, and there is no rollback of
// already-started tasks when a later one fails.
package lifecycle

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/feature"
)

// Coordinator walks the registered features in registration order, not the
// dependency order used during activation, and drives their tasks. It is
// one-shot per process lifecycle.
type Coordinator struct {
	builder feature.Builder
	entries []*feature.State
}

// New creates a coordinator over the registered feature states.
func New(b feature.Builder, entries []*feature.State) *Coordinator {
	return &Coordinator{builder: b, entries: entries}
}

// StartFeatures builds and starts every task of every active feature, one at
// a time. A failing task aborts the remainder.
func (c *Coordinator) StartFeatures(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, st := range c.entries {
		if !st.Active() {
			continue
		}
		name := st.Feature.Name()
		featLogger := logger.With("feature", name)

		for i, factory := range st.TaskFactories {
			taskName := st.Diag.StartupTasks[i]
			featLogger.Debug("Building startup task.", "task", taskName)

			task, err := c.builder.Build(ctx, factory)
			if err != nil {
				return fmt.Errorf("feature %q: failed to build startup task %q: %w", name, taskName, err)
			}
			st.Tasks = append(st.Tasks, task)

			featLogger.Debug("Starting task.", "task", taskName)
			if err := task.Start(ctx); err != nil {
				return fmt.Errorf("feature %q: startup task %q failed to start: %w", name, taskName, err)
			}
			featLogger.Debug("Task started.", "task", taskName)
		}
	}

	logger.Info("All feature startup tasks started.")
	return nil
}

// StopFeatures stops every live task of every active feature in the same
// forward order used at start, then releases tasks that expose an io.Closer.
// A failing task aborts the remainder.
func (c *Coordinator) StopFeatures(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, st := range c.entries {
		if !st.Active() {
			continue
		}
		name := st.Feature.Name()
		featLogger := logger.With("feature", name)

		for i, task := range st.Tasks {
			taskName := st.Diag.StartupTasks[i]
			featLogger.Debug("Stopping task.", "task", taskName)

			if err := task.Stop(ctx); err != nil {
				return fmt.Errorf("feature %q: startup task %q failed to stop: %w", name, taskName, err)
			}
			if closer, ok := task.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					return fmt.Errorf("feature %q: startup task %q failed to release resources: %w", name, taskName, err)
				}
			}
			featLogger.Debug("Task stopped.", "task", taskName)
		}
	}

	logger.Info("All feature startup tasks stopped.")
	return nil
}

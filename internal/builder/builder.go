// Package builder provides the default task builder used when the hosting
// container does not supply its own.
package builder

import (
	"context"
	"errors"

	"github.com/vk/featbus/internal/feature"
)

// Default is the reference feature.Builder: it simply invokes the factory.
// A hosting container can substitute a builder that performs dependency
// injection before handing the task back.
type Default struct{}

// New creates the default builder.
func New() *Default {
	return &Default{}
}

// Build constructs a task instance from its factory.
func (*Default) Build(_ context.Context, factory feature.TaskFactory) (feature.StartupTask, error) {
	if factory == nil {
		return nil, errors.New("builder: nil task factory")
	}
	task := factory()
	if task == nil {
		return nil, errors.New("builder: task factory returned a nil task")
	}
	return task, nil
}

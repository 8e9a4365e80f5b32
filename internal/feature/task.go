package feature

import "context"

// StartupTask is asynchronous work contributed by an active feature. Start is
// invoked at process startup and Stop at shutdown, each awaited to completion
// before the coordinator moves on. Neither call carries a deadline; a task
// that needs one must impose it itself.
//
// A task that additionally implements io.Closer has Close invoked after Stop
// to release its resources.
type StartupTask interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// TaskFactory produces a fresh StartupTask instance. Factories are collected
// during Setup and only invoked, via the Builder, when the coordinator starts
// features.
type TaskFactory func() StartupTask

// Builder turns a task factory into a constructed task instance. The default
// implementation simply calls the factory; a hosting container may substitute
// one that injects dependencies.
type Builder interface {
	Build(ctx context.Context, factory TaskFactory) (StartupTask, error)
}

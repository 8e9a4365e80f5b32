package heartbeat

import (
	"context"
	"time"

	"github.com/vk/featbus/internal/ctxlog"
)

// beatTask logs a heartbeat line at a fixed interval until stopped.
type beatTask struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func newBeatTask(interval time.Duration) *beatTask {
	return &beatTask{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the beat loop and returns immediately.
func (t *beatTask) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("task", "heartbeat-beat")
	logger.Debug("Heartbeat started.", "interval", t.interval)

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		beats := 0
		for {
			select {
			case <-ticker.C:
				beats++
				logger.Debug("Heartbeat.", "beats", beats)
			case <-t.stop:
				logger.Debug("Heartbeat stopped.", "beats", beats)
				return
			}
		}
	}()
	return nil
}

// Stop signals the loop and waits until it has drained.
func (t *beatTask) Stop(ctx context.Context) error {
	close(t.stop)
	<-t.done
	return nil
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/featbus/internal/ctxlog"
)

// connTask owns the socket.io connection for the process lifetime. Start
// dials and waits for the connection to establish (bounded by the dial
// timeout, since the lifecycle coordinator imposes none); Stop disconnects.
type connTask struct {
	endpoint    string
	namespace   string
	dialTimeout time.Duration

	manager   *socket.Manager
	io        *socket.Socket
	connected atomic.Bool
}

func newConnTask(endpoint, namespace string, dialTimeout time.Duration) *connTask {
	return &connTask{
		endpoint:    endpoint,
		namespace:   namespace,
		dialTimeout: dialTimeout,
	}
}

// Start dials the gateway and blocks until connected or the dial timeout
// elapses.
func (t *connTask) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("task", "gateway-connection", "url", t.endpoint, "namespace", t.namespace)
	logger.Debug("Dialing gateway.")

	parsedURL, err := url.Parse(t.endpoint)
	if err != nil {
		return fmt.Errorf("failed to parse gateway URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	t.manager = socket.NewManager(baseURL, opts)
	t.io = t.manager.Socket(t.namespace, opts)

	dialResult := make(chan error, 1)
	t.io.On(types.EventName("connect"), func(...any) {
		t.connected.Store(true)
		logger.Info("Gateway connected.", "sid", t.io.Id())
		select {
		case dialResult <- nil:
		default:
		}
	})
	t.io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				select {
				case dialResult <- err:
				default:
				}
				return
			}
		}
		select {
		case dialResult <- errors.New("gateway connection failed"):
		default:
		}
	})
	t.io.On(types.EventName("disconnect"), func(...any) {
		t.connected.Store(false)
		logger.Warn("Gateway disconnected.")
	})

	dialCtx, cancel := context.WithTimeout(ctx, t.dialTimeout)
	defer cancel()

	t.io.Connect()

	select {
	case err := <-dialResult:
		if err != nil {
			return fmt.Errorf("failed to connect to gateway: %w", err)
		}
		return nil
	case <-dialCtx.Done():
		return fmt.Errorf("timed out dialing gateway after %s", t.dialTimeout)
	}
}

// Stop disconnects from the gateway.
func (t *connTask) Stop(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("task", "gateway-connection")
	if t.io != nil {
		logger.Debug("Disconnecting gateway client.")
		t.io.Disconnect()
	}
	t.connected.Store(false)
	return nil
}

// Close releases the client references once the task has been stopped.
func (t *connTask) Close() error {
	t.io = nil
	t.manager = nil
	return nil
}

// Emit forwards an event through the live connection.
func (t *connTask) Emit(event string, payload any) error {
	if t.io == nil || !t.connected.Load() {
		return errors.New("gateway connection is not established")
	}
	return t.io.Emit(event, payload)
}

// Connected reports whether the connection is currently established.
func (t *connTask) Connected() bool {
	return t.connected.Load()
}

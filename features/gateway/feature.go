// Package gateway ships the realtime gateway feature: when active it keeps a
// socket.io connection to the configured gateway endpoint open for the
// process lifetime, and contributes an outgoing pipeline behavior the host
// framework uses to forward messages through that connection.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/featbus/features/heartbeat"
	"github.com/vk/featbus/internal/feature"
	"github.com/vk/featbus/internal/settings"
)

// Name is the feature's identity in the catalog and in dependency groups.
const Name = "gateway"

const version = "0.2.0"

// Settings keys consumed by the feature. URLKey has no default; the feature
// stays inactive until the host configures it.
const (
	URLKey         = "gateway.url"
	NamespaceKey   = "gateway.namespace"
	DialTimeoutKey = "gateway.dial_timeout"
)

const (
	defaultNamespace   = "/"
	defaultDialTimeout = 10 * time.Second
)

// Feature implements feature.Feature.
type Feature struct{}

// New creates the gateway feature.
func New() *Feature {
	return &Feature{}
}

func (f *Feature) Name() string { return Name }

func (f *Feature) Version() string { return version }

// EnabledByDefault is false: the gateway only makes sense when the host has
// an endpoint to connect to, so it must be enabled explicitly.
func (f *Feature) EnabledByDefault() bool { return false }

// Dependencies requires the heartbeat feature so a live gateway connection
// always has liveness reporting behind it.
func (f *Feature) Dependencies() []feature.DependencyGroup {
	return []feature.DependencyGroup{{heartbeat.Name}}
}

// ConfigureDefaults fills the namespace and dial timeout unless the host set
// them.
func (f *Feature) ConfigureDefaults(s settings.Settings) error {
	if err := s.SetDefault(NamespaceKey, defaultNamespace); err != nil {
		return err
	}
	return s.SetDefault(DialTimeoutKey, defaultDialTimeout)
}

// CheckPrerequisites requires a well-formed websocket endpoint URL.
func (f *Feature) CheckPrerequisites(ctx context.Context, actx *feature.Context) (feature.PrerequisiteStatus, error) {
	raw, ok := actx.Settings().Get(URLKey)
	if !ok {
		return feature.PrerequisitesUnsatisfied(fmt.Sprintf("setting %q is not configured", URLKey)), nil
	}
	endpoint, ok := raw.(string)
	if !ok || endpoint == "" {
		return feature.PrerequisitesUnsatisfied(fmt.Sprintf("setting %q must be a non-empty string", URLKey)), nil
	}
	if _, err := url.Parse(endpoint); err != nil {
		return feature.PrerequisitesUnsatisfied(fmt.Sprintf("setting %q is not a valid URL: %v", URLKey, err)), nil
	}
	return feature.PrerequisitesSatisfied(), nil
}

// Setup contributes the connection task, the connection component, and the
// outgoing publish behavior.
func (f *Feature) Setup(ctx context.Context, actx *feature.Context) error {
	endpoint, _ := actx.Settings().Get(URLKey)
	namespace := defaultNamespace
	if raw, ok := actx.Settings().Get(NamespaceKey); ok {
		if ns, ok := raw.(string); ok && ns != "" {
			namespace = ns
		}
	}
	dialTimeout := defaultDialTimeout
	if raw, ok := actx.Settings().Get(DialTimeoutKey); ok {
		switch v := raw.(type) {
		case time.Duration:
			if v > 0 {
				dialTimeout = v
			}
		case string:
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				dialTimeout = d
			}
		}
	}

	task := newConnTask(endpoint.(string), namespace, dialTimeout)

	actx.Components().Register("gateway.connection", func() any { return task })
	actx.Pipeline().Register("outgoing", "gateway.publish", &publishBehavior{conn: task})

	actx.RegisterStartupTask("gateway-connection", func() feature.StartupTask {
		return task
	})
	return nil
}

// publishBehavior is the outgoing pipeline behavior handed to the hosting
// framework. The engine treats it as opaque; the host invokes Publish for
// each outgoing message once its pipeline is assembled.
type publishBehavior struct {
	conn *connTask
}

// Publish forwards an event through the live gateway connection.
func (b *publishBehavior) Publish(event string, payload any) error {
	return b.conn.Emit(event, payload)
}

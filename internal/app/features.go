package app

import (
	"github.com/vk/featbus/features/gateway"
	"github.com/vk/featbus/features/heartbeat"
	"github.com/vk/featbus/internal/feature"
)

// coreFeatures is the definitive list of features compiled into the engine by
// default. Hosts that register their own feature set bypass it entirely.
func coreFeatures() []feature.Feature {
	return []feature.Feature{
		heartbeat.New(),
		gateway.New(),
	}
}

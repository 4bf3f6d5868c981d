package providers

import (
	"context"

	"github.com/go-home-io/sip-bridge/plugins/platform"
)

// IBridgeProvider defines HomeKit transport.
type IBridgeProvider interface {
	Publish(ctx context.Context, accessories []*platform.PlatformAccessory) error
}

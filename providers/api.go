package providers

import (
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
)

// IHostAPIProvider defines host side of the platform API.
// Plugins only see platform.IAPI part of it.
type IHostAPIProvider interface {
	platform.IAPI

	Restore(accessory *platform.PlatformAccessory) error
	Emit(event platform.Event)
	Accessories() []*platform.PlatformAccessory
	Accessory(id uuid.UUID) (*platform.PlatformAccessory, bool)
}

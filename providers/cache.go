package providers

import (
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
)

// IAccessoryCacheProvider defines persistent accessory cache.
type IAccessoryCacheProvider interface {
	Load() ([]*platform.SerializedAccessory, error)
	Put(*platform.PlatformAccessory)
	Delete(uuid.UUID)
	Save() error
}

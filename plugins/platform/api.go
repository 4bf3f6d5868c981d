package platform

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Event describes host lifecycle event.
type Event string

const (
	// EventDidFinishLaunching fires once all cached accessories were restored.
	EventDidFinishLaunching Event = "didFinishLaunching"
	// EventShutdown fires when the host is stopping.
	EventShutdown Event = "shutdown"
)

// IAPI defines host capabilities available to platform plugins.
type IAPI interface {
	On(event Event, handler func())
	NewPlatformAccessory(displayName string, id uuid.UUID, category byte) *PlatformAccessory
	RegisterPlatformAccessories(pluginName, platformName string, accessories []*PlatformAccessory) error
	UpdatePlatformAccessories(accessories []*PlatformAccessory) error
	UnregisterPlatformAccessories(pluginName, platformName string, accessories []*PlatformAccessory) error
	ReportState(update *common.MsgAccessoryUpdate)
}

// IDynamicPlatform defines platform plugin interface.
type IDynamicPlatform interface {
	// ConfigureAccessory is invoked for every accessory restored from the cache,
	// before EventDidFinishLaunching.
	ConfigureAccessory(accessory *PlatformAccessory)
}

// IMetricsProvider is implemented by platforms exposing own collectors.
type IMetricsProvider interface {
	Collectors() []prometheus.Collector
}

// ICron defines scheduler available to plugins.
type ICron interface {
	AddFunc(spec string, cmd func()) (int, error)
	RemoveFunc(id int)
}

// IValidator defines config validator available to plugins.
type IValidator interface {
	Validate(interface{}) bool
}

// InitDataPlatform has data passed to a platform plugin constructor.
type InitDataPlatform struct {
	Logger    common.ILoggerProvider
	API       IAPI
	Cron      ICron
	Validator IValidator
	Name      string
	RawConfig []byte
}

// Package sip implements irrigation systems platform.
package sip

import (
	"strconv"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/systems/reconciler"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	platform.Register(PluginName, PlatformName, NewPlatform)
}

// Platform exposes irrigation systems as HomeKit accessories.
type Platform struct {
	sync.Mutex

	logger   common.ILoggerProvider
	api      platform.IAPI
	cron     platform.ICron
	settings *settings
	source   IDeviceSource

	reconciler  *reconciler.Reconciler
	metrics     *reconciler.Metrics
	restored    []*platform.PlatformAccessory
	controllers map[uuid.UUID]*irrigationAccessory
}

// NewPlatform constructs platform from the yaml config.
func NewPlatform(data *platform.InitDataPlatform) (platform.IDynamicPlatform, error) {
	s, err := loadSettings(data)
	if err != nil {
		return nil, err
	}

	return newPlatform(data, s, NewConfigSource(s.IrrigationSystems)), nil
}

func newPlatform(data *platform.InitDataPlatform, s *settings, source IDeviceSource) *Platform {
	p := &Platform{
		logger:      data.Logger,
		api:         data.API,
		cron:        data.Cron,
		settings:    s,
		source:      source,
		metrics:     reconciler.NewMetrics(),
		restored:    make([]*platform.PlatformAccessory, 0),
		controllers: make(map[uuid.UUID]*irrigationAccessory),
	}

	p.reconciler = reconciler.NewReconciler(&reconciler.ConstructReconciler{
		Namespace:    uuidNamespace,
		PluginName:   PluginName,
		PlatformName: PlatformName,
		Category:     categorySprinkler,
		Host:         data.API,
		Controller:   p.bind,
		Logger:       data.Logger,
		Metrics:      p.metrics,
	})

	p.api.On(platform.EventDidFinishLaunching, func() {
		p.logger.Debug("Executed didFinishLaunching callback")
		if err := p.DiscoverDevices(); err != nil {
			p.logger.Error("Failed to discover devices", err)
		}
	})

	p.api.On(platform.EventShutdown, p.stop)

	return p
}

// ConfigureAccessory keeps accessory restored from the cache.
func (p *Platform) ConfigureAccessory(accessory *platform.PlatformAccessory) {
	p.Lock()
	defer p.Unlock()

	p.logger.Info("Loading accessory from cache",
		common.LogAccessoryNameToken, accessory.DisplayName, common.LogUUIDToken, accessory.UUID.String())
	p.restored = append(p.restored, accessory)
}

// DiscoverDevices matches known devices against restored accessories.
func (p *Platform) DiscoverDevices() error {
	devices, err := p.source.Devices()
	if err != nil {
		return errors.Wrap(err, "list devices")
	}

	descriptors := make([]reconciler.IDescriptor, 0, len(devices))
	for _, v := range devices {
		if p.settings.excluded(v.UniqueID) {
			p.logger.Debug("Device is excluded", common.LogDeviceIDToken, v.UniqueID)
			continue
		}

		descriptors = append(descriptors, v)
	}

	p.Lock()
	restored := make([]*platform.PlatformAccessory, len(p.restored))
	copy(restored, p.restored)
	p.Unlock()

	plan, err := p.reconciler.Reconcile(descriptors, restored)
	if err != nil {
		return err
	}

	p.logger.Info("Devices discovered",
		"created", strconv.Itoa(len(plan.Create)),
		"reused", strconv.Itoa(len(plan.Reuse)),
		"removed", strconv.Itoa(len(plan.Remove)))
	return nil
}

// Collectors returns platform metrics.
func (p *Platform) Collectors() []prometheus.Collector {
	return p.metrics.Collectors()
}

// Binds controller to the accessory.
func (p *Platform) bind(accessory *platform.PlatformAccessory, descriptor reconciler.IDescriptor) {
	device, ok := descriptor.(*IrrigationSystem)
	if !ok {
		p.logger.Warn("Unsupported device descriptor", common.LogDeviceIDToken, descriptor.ID())
		return
	}

	p.Lock()
	defer p.Unlock()

	if _, ok := p.controllers[accessory.UUID]; ok {
		p.logger.Warn("Accessory is already bound", common.LogUUIDToken, accessory.UUID.String())
		return
	}

	p.controllers[accessory.UUID] = newIrrigationAccessory(&constructIrrigationAccessory{
		Logger:    p.logger,
		API:       p.api,
		Cron:      p.cron,
		Accessory: accessory,
		Device:    device,
	})
}

// Stops running countdowns.
func (p *Platform) stop() {
	p.Lock()
	defer p.Unlock()

	for _, v := range p.controllers {
		v.stop()
	}
}

// Package api contains host implementation of the platform API.
package api

import (
	"sort"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Logger system.
	logSystem = "api"
	// Bridge accessory always takes the first AID.
	bridgeAID uint64 = 1
)

// Host API provider.
type provider struct {
	sync.Mutex
	logger common.ILoggerProvider
	cache  providers.IAccessoryCacheProvider
	fanOut providers.IInternalFanOutProvider
	gauge  prometheus.Gauge

	handlers    map[platform.Event][]func()
	fired       map[platform.Event]bool
	accessories map[uuid.UUID]*platform.PlatformAccessory
	lastAID     uint64
}

// ConstructAPI has data required for a new host API.
type ConstructAPI struct {
	Logger common.ILoggerProvider
	Cache  providers.IAccessoryCacheProvider
	FanOut providers.IInternalFanOutProvider
	Gauge  prometheus.Gauge
}

// NewAPIProvider constructs a new host API.
func NewAPIProvider(ctor *ConstructAPI) providers.IHostAPIProvider {
	return &provider{
		logger:      ctor.Logger,
		cache:       ctor.Cache,
		fanOut:      ctor.FanOut,
		gauge:       ctor.Gauge,
		handlers:    make(map[platform.Event][]func()),
		fired:       make(map[platform.Event]bool),
		accessories: make(map[uuid.UUID]*platform.PlatformAccessory),
		lastAID:     bridgeAID,
	}
}

// NewAccessoriesGauge creates registered accessories gauge.
func NewAccessoriesGauge() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sip_bridge_registered_accessories",
		Help: "Accessories currently registered with the bridge",
	})
}

// On subscribes to a lifecycle event.
// Subscriptions made after the event was emitted are never called.
func (p *provider) On(event platform.Event, handler func()) {
	p.Lock()
	defer p.Unlock()

	if p.fired[event] {
		p.logger.Warn("Subscription to already emitted event", common.LogSystemToken, logSystem,
			common.LogEventToken, string(event))
		return
	}

	p.handlers[event] = append(p.handlers[event], handler)
}

// Emit invokes event handlers synchronously.
// Each event is emitted at most once.
func (p *provider) Emit(event platform.Event) {
	p.Lock()
	if p.fired[event] {
		p.Unlock()
		p.logger.Warn("Event was already emitted", common.LogSystemToken, logSystem,
			common.LogEventToken, string(event))
		return
	}

	p.fired[event] = true
	handlers := p.handlers[event]
	delete(p.handlers, event)
	p.Unlock()

	p.logger.Debug("Emitting event", common.LogSystemToken, logSystem, common.LogEventToken, string(event))
	for _, h := range handlers {
		h()
	}
}

// NewPlatformAccessory constructs a new accessory handle.
func (p *provider) NewPlatformAccessory(displayName string, id uuid.UUID,
	category byte) *platform.PlatformAccessory {
	return platform.NewPlatformAccessory(displayName, id, category)
}

// Restore adds accessory loaded from the cache.
func (p *provider) Restore(a *platform.PlatformAccessory) error {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.accessories[a.UUID]; ok {
		return &ErrDuplicateUUID{UUID: a.UUID.String()}
	}

	if a.AID > p.lastAID {
		p.lastAID = a.AID
	}

	p.accessories[a.UUID] = a
	p.updateGauge()
	return nil
}

// RegisterPlatformAccessories links new accessories to the platform.
// Nothing is registered if any of accessories is already known.
func (p *provider) RegisterPlatformAccessories(pluginName, platformName string,
	accessories []*platform.PlatformAccessory) error {
	p.Lock()
	defer p.Unlock()

	batch := make(map[uuid.UUID]bool, len(accessories))
	for _, a := range accessories {
		if _, ok := p.accessories[a.UUID]; ok || batch[a.UUID] {
			return &ErrDuplicateUUID{UUID: a.UUID.String()}
		}

		batch[a.UUID] = true
	}

	for _, a := range accessories {
		a.PluginName = pluginName
		a.PlatformName = platformName
		if a.AID <= bridgeAID {
			p.lastAID++
			a.AID = p.lastAID
		}

		p.accessories[a.UUID] = a
		p.cache.Put(a)
		p.logger.Info("Registered accessory", common.LogSystemToken, logSystem,
			common.LogAccessoryNameToken, a.DisplayName, common.LogUUIDToken, a.UUID.String(),
			common.LogPlatformToken, platformName)
	}

	p.updateGauge()
	p.save()
	return nil
}

// UpdatePlatformAccessories persists changed accessories.
func (p *provider) UpdatePlatformAccessories(accessories []*platform.PlatformAccessory) error {
	p.Lock()
	defer p.Unlock()

	for _, a := range accessories {
		if _, ok := p.accessories[a.UUID]; !ok {
			return &ErrUnknownAccessory{UUID: a.UUID.String()}
		}
	}

	for _, a := range accessories {
		p.cache.Put(a)
	}

	p.save()
	return nil
}

// UnregisterPlatformAccessories removes accessories from the bridge and the cache.
// Nothing is removed if any of accessories is unknown.
func (p *provider) UnregisterPlatformAccessories(pluginName, platformName string,
	accessories []*platform.PlatformAccessory) error {
	p.Lock()
	defer p.Unlock()

	for _, a := range accessories {
		if _, ok := p.accessories[a.UUID]; !ok {
			return &ErrUnknownAccessory{UUID: a.UUID.String()}
		}
	}

	for _, a := range accessories {
		delete(p.accessories, a.UUID)
		p.cache.Delete(a.UUID)
		p.logger.Info("Unregistered accessory", common.LogSystemToken, logSystem,
			common.LogAccessoryNameToken, a.DisplayName, common.LogUUIDToken, a.UUID.String(),
			common.LogPlatformToken, platformName, common.LogPluginToken, pluginName)
	}

	p.updateGauge()
	p.save()
	return nil
}

// ReportState forwards accessory state into the fan-out.
func (p *provider) ReportState(update *common.MsgAccessoryUpdate) {
	if nil == p.fanOut || nil == update {
		return
	}

	select {
	case p.fanOut.ChannelInAccessoryUpdates() <- update:
	default:
		p.logger.Warn("Dropping accessory update", common.LogSystemToken, logSystem,
			common.LogUUIDToken, update.UUID)
	}
}

// Accessories returns registered accessories ordered by AID.
func (p *provider) Accessories() []*platform.PlatformAccessory {
	p.Lock()
	defer p.Unlock()

	out := make([]*platform.PlatformAccessory, 0, len(p.accessories))
	for _, v := range p.accessories {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AID < out[j].AID
	})

	return out
}

// Accessory returns registered accessory.
func (p *provider) Accessory(id uuid.UUID) (*platform.PlatformAccessory, bool) {
	p.Lock()
	defer p.Unlock()

	a, ok := p.accessories[id]
	return a, ok
}

func (p *provider) updateGauge() {
	if nil != p.gauge {
		p.gauge.Set(float64(len(p.accessories)))
	}
}

// Saves cache, failures are only logged.
func (p *provider) save() {
	if err := p.cache.Save(); err != nil {
		p.logger.Error("Failed to save accessory cache", err, common.LogSystemToken, logSystem)
	}
}

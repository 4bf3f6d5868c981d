package server

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/systems"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Loaded platform instance.
type knownPlatform struct {
	Name         string
	Registration *platform.Registration
	Instance     platform.IDynamicPlatform
}

// Instantiates configured platforms.
func (s *SIPBridgeServer) loadPlatforms() {
	for _, v := range s.Settings.Platforms() {
		reg, ok := platform.Get(v.Platform)
		if !ok {
			unknown := &ErrUnknownPlatform{Name: v.Platform, Known: platform.Known()}
			s.Logger.Error("Failed to load platform", unknown,
				common.LogSystemToken, logSystem, common.LogPlatformToken, v.Platform)
			continue
		}

		data := &platform.InitDataPlatform{
			Logger:    s.Settings.PluginLogger(systems.SysPlatform, v.Name),
			API:       s.api,
			Cron:      s.Settings.Cron(),
			Validator: s.Settings.Validator(),
			Name:      v.Name,
			RawConfig: v.Config,
		}

		instance, err := reg.Factory(data)
		if err != nil {
			s.Logger.Error("Failed to load platform", err, common.LogSystemToken, logSystem,
				common.LogPlatformToken, v.Platform, common.LogProviderToken, v.Name)
			continue
		}

		s.registerMetrics(instance)
		s.platforms = append(s.platforms, &knownPlatform{
			Name:         v.Name,
			Registration: reg,
			Instance:     instance,
		})

		s.Logger.Info("Loaded platform", common.LogSystemToken, logSystem,
			common.LogPlatformToken, v.Platform, common.LogPluginToken, reg.PluginName)
	}
}

// Registers platform collectors, duplicates are ignored.
func (s *SIPBridgeServer) registerMetrics(instance platform.IDynamicPlatform) {
	m, ok := instance.(platform.IMetricsProvider)
	if !ok {
		return
	}

	for _, c := range m.Collectors() {
		err := s.registry.Register(c)
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			continue
		}

		if err != nil {
			s.Logger.Warn("Failed to register platform metrics", common.LogSystemToken, logSystem,
				common.LogErrorToken, err.Error())
		}
	}
}

// Restores cached accessories.
// Accessories of platforms which are not configured stay in the cache.
func (s *SIPBridgeServer) restore() error {
	records, err := s.Settings.Cache().Load()
	if err != nil {
		return errors.Wrap(err, "load accessory cache")
	}

	for _, rec := range records {
		a, err := platform.Deserialize(rec)
		if err != nil {
			s.Logger.Warn("Ignoring broken cached accessory", common.LogSystemToken, logSystem,
				common.LogErrorToken, err.Error())
			continue
		}

		if err := s.api.Restore(a); err != nil {
			s.Logger.Warn("Ignoring cached accessory", common.LogSystemToken, logSystem,
				common.LogErrorToken, err.Error())
			continue
		}

		p := s.platformFor(a.PlatformName)
		if nil == p {
			s.Logger.Info("Accessory platform is not configured, keeping it cached",
				common.LogSystemToken, logSystem, common.LogAccessoryNameToken, a.DisplayName,
				common.LogPlatformToken, a.PlatformName)
			continue
		}

		p.Instance.ConfigureAccessory(a)
	}

	return nil
}

// First loaded instance of the platform owns its cached accessories.
func (s *SIPBridgeServer) platformFor(name string) *knownPlatform {
	for _, v := range s.platforms {
		if v.Registration.PlatformName == name {
			return v
		}
	}

	return nil
}

// Checks whether accessory belongs to a loaded platform.
func (s *SIPBridgeServer) isPublished(a *platform.PlatformAccessory) bool {
	return nil != s.platformFor(a.PlatformName)
}

// Accessories served over HAP.
func (s *SIPBridgeServer) published() []*platform.PlatformAccessory {
	all := s.api.Accessories()
	out := make([]*platform.PlatformAccessory, 0, len(all))
	for _, v := range all {
		if s.isPublished(v) {
			out = append(out, v)
		}
	}

	return out
}

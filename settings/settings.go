package settings

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/go-home-io/sip-bridge/systems"
	"github.com/go-home-io/sip-bridge/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger specifically for plugin provider.
func (s *settingsProvider) PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider {
	ctor := &logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system.String(),
		Provider:     provider,
	}

	return logger.NewPluginLogger(ctor)
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// BridgeSettings returns HomeKit bridge settings.
func (s *settingsProvider) BridgeSettings() *providers.BridgeSettings {
	return s.bridge
}

// Platforms returns configured platforms.
func (s *settingsProvider) Platforms() []*providers.RawPlatform {
	return s.platforms
}

// StoragePath returns folder for persistent data.
func (s *settingsProvider) StoragePath() string {
	return s.storagePath
}

// Cache returns accessory cache.
func (s *settingsProvider) Cache() providers.IAccessoryCacheProvider {
	return s.cache
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

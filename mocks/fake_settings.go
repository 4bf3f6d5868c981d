//+build !release

package mocks

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/go-home-io/sip-bridge/systems"
)

// IFakeSettings adds additional capabilities to a fake settings provider.
type IFakeSettings interface {
	AddPlatform(*providers.RawPlatform)
	SetCache(providers.IAccessoryCacheProvider)
	SetFanOut(providers.IInternalFanOutProvider)
}

type fakeSettings struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	cache     providers.IAccessoryCacheProvider
	fanOut    providers.IInternalFanOutProvider
	platforms []*providers.RawPlatform
	bridge    *providers.BridgeSettings
	storage   string
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) PluginLogger(systems.SystemType, string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

func (f *fakeSettings) BridgeSettings() *providers.BridgeSettings {
	return f.bridge
}

func (f *fakeSettings) Platforms() []*providers.RawPlatform {
	return f.platforms
}

func (f *fakeSettings) StoragePath() string {
	return f.storage
}

func (f *fakeSettings) Cache() providers.IAccessoryCacheProvider {
	return f.cache
}

func (f *fakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.fanOut
}

func (f *fakeSettings) AddPlatform(p *providers.RawPlatform) {
	f.platforms = append(f.platforms, p)
}

func (f *fakeSettings) SetCache(c providers.IAccessoryCacheProvider) {
	f.cache = c
}

func (f *fakeSettings) SetFanOut(fo providers.IInternalFanOutProvider) {
	f.fanOut = fo
}

// FakeNewSettings creates a fake settings provider.
// logCallback receives every logged message if not nil.
func FakeNewSettings(logCallback func(string), storage string) providers.ISettingsProvider {
	return &fakeSettings{
		logger:    FakeNewLogger(logCallback),
		cron:      FakeNewCron(),
		cache:     FakeNewCache(nil),
		platforms: make([]*providers.RawPlatform, 0),
		storage:   storage,
		bridge: &providers.BridgeSettings{
			Name:         "Test Bridge",
			Manufacturer: "go-home",
			Pin:          "03145154",
			APIPort:      8581,
		},
	}
}

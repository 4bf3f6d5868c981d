package providers

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/systems"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	BridgeSettings() *BridgeSettings
	Platforms() []*RawPlatform
	StoragePath() string
	Cache() IAccessoryCacheProvider
	FanOut() IInternalFanOutProvider
}

// RawPlatform has data describing configured platform,
// loaded from config files.
type RawPlatform struct {
	Platform string
	Name     string
	Config   []byte
}

// BridgeSettings has configured data for the HomeKit bridge.
type BridgeSettings struct {
	Name         string `yaml:"name" validate:"required" default:"SIP Bridge"`
	Manufacturer string `yaml:"manufacturer" default:"go-home"`
	Pin          string `yaml:"pin" validate:"required,pin" default:"03145154"`
	Port         int    `yaml:"port" validate:"gte=0,lte=65535"`
	APIPort      int    `yaml:"apiPort" validate:"required,port" default:"8581"`
}

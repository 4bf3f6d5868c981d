// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/go-home-io/sip-bridge/systems"
	"github.com/go-home-io/sip-bridge/systems/cache"
	"github.com/go-home-io/sip-bridge/systems/fanout"
	"github.com/go-home-io/sip-bridge/systems/logger"
	"github.com/go-home-io/sip-bridge/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config  string `short:"c" long:"config" description:"Config file. Defaults to ./configs/config.yaml."`
	Storage string `short:"s" long:"storage" description:"Storage folder. Defaults to ~/.sip-bridge."`
	Debug   bool   `short:"d" long:"debug" description:"Enables debug output."`
	JSON    bool   `short:"j" long:"json" description:"Writes logs as JSON lines."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Name     string
	Config   []byte
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	cache     providers.IAccessoryCacheProvider
	fanOut    providers.IInternalFanOutProvider

	storagePath string
	bridge      *providers.BridgeSettings
	bridgeErr   error
	platforms   []*providers.RawPlatform
}

// Load system configuration.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	data, err := ioutil.ReadFile(configFile(options))
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	return load(options, data, newLogger(options))
}

// Picks system logger.
func newLogger(options *StartUpOptions) common.ILoggerProvider {
	if options.JSON {
		return logger.NewJSONLogger(options.Debug, os.Stdout)
	}

	return logger.NewConsoleLogger(options.Debug)
}

// Builds settings from raw config data.
func load(options *StartUpOptions, data []byte, log common.ILoggerProvider) (providers.ISettingsProvider, error) {
	s := &settingsProvider{
		logger:      log,
		storagePath: options.Storage,
		platforms:   make([]*providers.RawPlatform, 0),
		cron:        utils.NewCron(log),
		fanOut:      fanout.NewFanOut(),
	}

	if "" == s.storagePath {
		s.storagePath = utils.GetDefaultStorageDir()
	}

	s.validator = utils.NewValidator(s.PluginLogger(systems.SysBridge, "validator"))

	for _, v := range s.loadFile(data) {
		s.parseProvider(v)
	}

	if err := s.validate(); err != nil {
		s.cron.Stop()
		return nil, err
	}

	s.cache = cache.NewCacheProvider(&cache.ConstructCache{
		Logger:      s.PluginLogger(systems.SysCache, "yaml"),
		Cron:        s.cron,
		StoragePath: s.storagePath,
	})

	return s, nil
}

func configFile(options *StartUpOptions) string {
	if "" == options.Config {
		return utils.GetDefaultConfigFile()
	}

	return options.Config
}

// Validates whether all necessary settings are present.
// Broken bridge document is fatal, defaults are only for a missing one.
func (s *settingsProvider) validate() error {
	if nil != s.bridgeErr {
		return s.bridgeErr
	}

	if nil == s.bridge {
		s.logger.Warn("Bridge settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.bridge = &providers.BridgeSettings{}
		if !s.validator.Validate(s.bridge) {
			return &utils.ErrInvalidConfig{Name: systems.SysBridge.String()}
		}
	}

	if 0 == len(s.platforms) {
		s.logger.Warn("No platforms are configured", common.LogSystemToken, logSystem)
	}

	return nil
}

// Processes single multi-document yaml file.
func (s *settingsProvider) loadFile(fileData []byte) []*rawProvider {
	provs := make([]*rawProvider, 0)
	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, logSystem)
			break
		}

		if nil == value {
			continue
		}

		componentType := ""
		componentProvider := ""
		componentName := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = ct
		}

		if cn, ok := value["name"].(string); ok {
			componentName = cn
		}

		if componentType == "" {
			s.logger.Warn("Failed to parse a record in the config file: system is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			System:   componentType,
			Provider: componentProvider,
			Name:     componentName,
			Config:   byteData,
		})
	}

	return provs
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return
	}

	switch sys {
	case systems.SysBridge:
		err = s.loadBridge(provider)
		if err != nil && nil == s.bridgeErr {
			s.bridgeErr = err
		}
	case systems.SysPlatform:
		s.loadPlatform(provider)
	default:
		s.logger.Warn("System can't be configured", common.LogSystemToken, provider.System)
	}

	if err != nil {
		s.logger.Error("Failed to load config", err, common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}
}

// Loads bridge settings.
func (s *settingsProvider) loadBridge(provider *rawProvider) error {
	if nil != s.bridge {
		s.logger.Warn("Duplicated bridge settings", common.LogSystemToken, provider.System)
		return nil
	}

	set := &providers.BridgeSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "unmarshal bridge settings")
	}

	if !s.validator.Validate(set) {
		return &utils.ErrInvalidConfig{Name: systems.SysBridge.String()}
	}

	s.bridge = set
	return nil
}

// Loads platform record.
func (s *settingsProvider) loadPlatform(provider *rawProvider) {
	if "" == provider.Provider {
		s.logger.Warn("Platform provider is not defined", common.LogSystemToken, provider.System)
		return
	}

	name := provider.Name
	if "" == name {
		name = provider.Provider
	}

	for _, v := range s.platforms {
		if v.Name == name {
			s.logger.Warn("Duplicated platform name, ignoring",
				common.LogProviderToken, provider.Provider, common.LogPlatformToken, name)
			return
		}
	}

	s.platforms = append(s.platforms, &providers.RawPlatform{
		Platform: provider.Provider,
		Name:     name,
		Config:   provider.Config,
	})
}

package sip

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/utils"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Platform settings.
type settings struct {
	Exclude           []string            `yaml:"exclude" validate:"dive,glob"`
	IrrigationSystems []*IrrigationSystem `yaml:"irrigationSystems" validate:"dive,required"`

	excludeExp []glob.Glob
}

// Parses and validates platform config.
func loadSettings(data *platform.InitDataPlatform) (*settings, error) {
	s := &settings{}
	if err := yaml.Unmarshal(data.RawConfig, s); err != nil {
		return nil, errors.Wrap(err, "parse platform config")
	}

	if nil != data.Validator && !data.Validator.Validate(s) {
		return nil, &utils.ErrInvalidConfig{Name: data.Name}
	}

	s.excludeExp = make([]glob.Glob, 0, len(s.Exclude))
	for _, v := range s.Exclude {
		g, err := glob.Compile(v)
		if err != nil {
			data.Logger.Warn("Failed to compile exclude expression", common.LogFieldToken, v)
			continue
		}

		s.excludeExp = append(s.excludeExp, g)
	}

	return s, nil
}

// Checks whether device is excluded from the bridge.
func (s *settings) excluded(id string) bool {
	for _, v := range s.excludeExp {
		if v.Match(id) {
			return true
		}
	}

	return false
}

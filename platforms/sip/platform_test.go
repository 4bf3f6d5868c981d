package sip

import (
	"errors"
	"testing"

	"github.com/go-home-io/sip-bridge/mocks"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/systems/reconciler"
	"github.com/go-home-io/sip-bridge/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backyardConfig = `
system: platform
provider: SIPHomebridgePlugin
name: backyard
exclude:
  - "IGNORED*"
irrigationSystems:
  - uniqueId: LMNOp
    displayName: Backyard2
    active: 1
    valves:
      - name: Zone 1
      - name: Zone 2
        setDuration: 60
  - uniqueId: IGNORED-1
    displayName: Garage
`

type fakeSource struct {
	devices []*IrrigationSystem
	err     error
}

func (f *fakeSource) Devices() ([]*IrrigationSystem, error) {
	return f.devices, f.err
}

func initData(config string) (*platform.InitDataPlatform, *mocks.FakeAPI) {
	api := mocks.FakeNewAPI()
	logger := mocks.FakeNewLogger(nil)
	return &platform.InitDataPlatform{
		Logger:    logger,
		API:       api,
		Cron:      mocks.FakeNewCron(),
		Validator: utils.NewValidator(logger),
		Name:      "backyard",
		RawConfig: []byte(config),
	}, api
}

// Tests that platform is available in the registry.
func TestRegistered(t *testing.T) {
	reg, ok := platform.Get(PlatformName)
	require.True(t, ok)
	assert.Equal(t, PluginName, reg.PluginName)
}

// Tests config validation.
func TestInvalidConfig(t *testing.T) {
	configs := []string{
		"irrigationSystems:\n  - uniqueId: LMNOp\n",
		"irrigationSystems:\n  - displayName: Backyard\n",
		"irrigationSystems:\n  - uniqueId: LMNOp\n    displayName: Backyard\n    programMode: 3\n",
		"irrigationSystems:\n  - uniqueId: LMNOp\n    displayName: Backyard\n    valves:\n      - valveType: 1\n",
		"exclude:\n  - \"[\"\n",
		"irrigationSystems: wrong",
	}

	for _, v := range configs {
		data, _ := initData(v)
		_, err := NewPlatform(data)
		assert.Error(t, err, v)
	}
}

// Tests that a new device gets a registered accessory.
func TestDiscoverNewDevice(t *testing.T) {
	data, api := initData(backyardConfig)
	p, err := NewPlatform(data)
	require.NoError(t, err)

	api.Fire(platform.EventDidFinishLaunching)

	require.Equal(t, 1, len(api.Registered))
	assert.Equal(t, 0, len(api.Unregistered))

	a := api.Registered[0]
	assert.Equal(t, "0d49bc41-4395-4865-b591-30c518e1f59a", a.UUID.String())
	assert.Equal(t, "Backyard2", a.DisplayName)
	assert.Equal(t, categorySprinkler, a.Category)
	assert.Equal(t, PluginName, a.PluginName)
	assert.Equal(t, PlatformName, a.PlatformName)

	device, ok := a.Context[reconciler.ContextDeviceKey].(*IrrigationSystem)
	require.True(t, ok)
	assert.Equal(t, "LMNOp", device.UniqueID)

	assert.Equal(t, 1, len(p.(*Platform).controllers))
}

// Tests that a restored accessory is reused.
func TestDiscoverRestoredDevice(t *testing.T) {
	data, api := initData(backyardConfig)
	p, err := NewPlatform(data)
	require.NoError(t, err)

	restored := platform.NewPlatformAccessory("Backyard2", platform.GenerateUUID("LMNOpIrrSys"), categorySprinkler)
	restored.Context["custom"] = "value"
	p.ConfigureAccessory(restored)

	api.Fire(platform.EventDidFinishLaunching)

	assert.Equal(t, 0, len(api.Registered))
	assert.Equal(t, 0, len(api.Unregistered))
	assert.Equal(t, 0, api.Created)
	assert.Equal(t, "value", restored.Context["custom"])
	_, ok := p.(*Platform).controllers[restored.UUID]
	assert.True(t, ok)
}

// Tests that a stale accessory is removed.
func TestDiscoverStaleDevice(t *testing.T) {
	data, api := initData("irrigationSystems: []\n")
	p, err := NewPlatform(data)
	require.NoError(t, err)

	stale := platform.NewPlatformAccessory("Old", platform.GenerateUUID("OLDDEVICEIrrSys"), categorySprinkler)
	p.ConfigureAccessory(stale)

	api.Fire(platform.EventDidFinishLaunching)

	assert.Equal(t, 0, len(api.Registered))
	require.Equal(t, 1, len(api.Unregistered))
	assert.Equal(t, "998792f8-3182-4712-bd0c-0038b0fbb78b", api.Unregistered[0].UUID.String())
}

// Tests that excluded restored device is removed.
func TestDiscoverExcludedDevice(t *testing.T) {
	data, api := initData(backyardConfig)
	p, err := NewPlatform(data)
	require.NoError(t, err)

	excluded := platform.NewPlatformAccessory("Garage", platform.GenerateUUID("IGNORED-1IrrSys"), categorySprinkler)
	p.ConfigureAccessory(excluded)

	api.Fire(platform.EventDidFinishLaunching)

	require.Equal(t, 1, len(api.Unregistered))
	assert.Equal(t, excluded.UUID, api.Unregistered[0].UUID)
}

// Tests device source and host failures.
func TestDiscoverErrors(t *testing.T) {
	data, api := initData(backyardConfig)
	s, err := loadSettings(data)
	require.NoError(t, err)

	p := newPlatform(data, s, &fakeSource{err: errors.New("source")})
	assert.Error(t, p.DiscoverDevices())

	api.RegisterError = errors.New("register")
	p = newPlatform(data, s, NewConfigSource(s.IrrigationSystems))
	assert.Error(t, p.DiscoverDevices())
}

// Tests that shutdown cancels countdowns.
func TestShutdown(t *testing.T) {
	data, api := initData(backyardConfig)
	p, err := NewPlatform(data)
	require.NoError(t, err)

	api.Fire(platform.EventDidFinishLaunching)
	for _, v := range p.(*Platform).controllers {
		v.setValveActive(0, active)
	}

	cron := data.Cron.(mocks.IFakeCron)
	assert.Equal(t, 1, cron.Jobs())

	api.Fire(platform.EventShutdown)
	assert.Equal(t, 0, cron.Jobs())
}

// Tests exposed metrics.
func TestCollectors(t *testing.T) {
	data, _ := initData(backyardConfig)
	p, err := NewPlatform(data)
	require.NoError(t, err)

	m, ok := p.(platform.IMetricsProvider)
	require.True(t, ok)
	assert.NotEmpty(t, m.Collectors())
}

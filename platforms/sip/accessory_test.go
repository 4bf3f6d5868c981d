package sip

import (
	"testing"

	"github.com/go-home-io/sip-bridge/mocks"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccessory(systemActive int) (*irrigationAccessory, *mocks.FakeAPI, mocks.IFakeCron) {
	api := mocks.FakeNewAPI()
	cron := mocks.FakeNewCron()
	device := &IrrigationSystem{
		UniqueID:    "LMNOp",
		DisplayName: "Backyard2",
		Active:      systemActive,
		Valves: []*Valve{
			{Name: "Zone 1", SetDuration: 3},
			{Name: "Zone 2"},
		},
	}

	c := newIrrigationAccessory(&constructIrrigationAccessory{
		Logger:    mocks.FakeNewLogger(nil),
		API:       api,
		Cron:      cron,
		Accessory: platform.NewPlatformAccessory(device.DisplayName, platform.GenerateUUID("LMNOpIrrSys"), categorySprinkler),
		Device:    device,
	})

	return c, api, cron
}

// Tests initial state.
func TestAccessoryInitialState(t *testing.T) {
	c, api, cron := newTestAccessory(active)

	require.Equal(t, 2, len(c.valves))
	assert.Equal(t, 0, cron.Jobs())

	system := api.LastState(serviceIrrigationSystem, 0)
	require.NotNil(t, system)
	assert.Equal(t, active, system.State[charActive])
	assert.Equal(t, notInUse, system.State[charInUse])

	zone2 := api.LastState(serviceValve, 2)
	require.NotNil(t, zone2)
	assert.Equal(t, "Zone 2", zone2.Name)
	assert.Equal(t, defaultSetDuration, zone2.State[charSetDuration])
	assert.Equal(t, 0, zone2.State[charRemainingDuration])

	assert.Equal(t, 1, c.valves[0].label.Value())
	assert.Equal(t, 2, c.valves[1].label.Value())
	assert.Equal(t, configured, c.valves[1].configured.Value())
}

// Tests valve run with the countdown.
func TestAccessoryValveRun(t *testing.T) {
	c, api, cron := newTestAccessory(active)

	c.setValveActive(0, active)
	assert.Equal(t, 1, cron.Jobs())
	assert.Equal(t, inUse, c.valves[0].InUse.Value())
	assert.Equal(t, 3, c.valves[0].remaining.Value())
	assert.Equal(t, inUse, api.LastState(serviceIrrigationSystem, 0).State[charInUse])

	cron.Fire()
	assert.Equal(t, 2, api.LastState(serviceValve, 1).State[charRemainingDuration])
	cron.Fire()
	cron.Fire()

	zone1 := api.LastState(serviceValve, 1)
	assert.Equal(t, inactive, zone1.State[charActive])
	assert.Equal(t, notInUse, zone1.State[charInUse])
	assert.Equal(t, 0, zone1.State[charRemainingDuration])
	assert.Equal(t, notInUse, api.LastState(serviceIrrigationSystem, 0).State[charInUse])
	assert.Equal(t, 0, cron.Jobs())
}

// Tests that only one countdown job exists.
func TestAccessorySingleCountdown(t *testing.T) {
	c, _, cron := newTestAccessory(active)

	c.setValveActive(0, active)
	c.setValveActive(1, active)
	assert.Equal(t, 1, cron.Jobs())

	c.setValveActive(0, inactive)
	assert.Equal(t, 1, cron.Jobs())
	assert.Equal(t, inUse, c.system.InUse.Value())

	c.setValveActive(1, inactive)
	assert.Equal(t, 0, cron.Jobs())
	assert.Equal(t, notInUse, c.system.InUse.Value())
}

// Tests that system deactivation closes valves.
func TestAccessorySystemOff(t *testing.T) {
	c, api, cron := newTestAccessory(active)

	c.setValveActive(0, active)
	c.setValveActive(1, active)
	c.setSystemActive(inactive)

	for _, v := range c.valves {
		assert.Equal(t, inactive, v.Active.Value())
		assert.Equal(t, notInUse, v.InUse.Value())
	}

	system := api.LastState(serviceIrrigationSystem, 0)
	assert.Equal(t, inactive, system.State[charActive])
	assert.Equal(t, notInUse, system.State[charInUse])
	assert.Equal(t, 0, cron.Jobs())
}

// Tests that valve doesn't open on inactive system.
func TestAccessoryValveOnInactiveSystem(t *testing.T) {
	c, api, cron := newTestAccessory(inactive)

	c.setValveActive(0, active)
	assert.Equal(t, inactive, c.valves[0].Active.Value())
	assert.Equal(t, notInUse, c.valves[0].InUse.Value())
	assert.Equal(t, inactive, api.LastState(serviceValve, 1).State[charActive])
	assert.Equal(t, 0, cron.Jobs())
}

// Tests run time change.
func TestAccessorySetDuration(t *testing.T) {
	c, api, _ := newTestAccessory(active)

	c.setValveDuration(1, 120)
	assert.Equal(t, 120, api.LastState(serviceValve, 2).State[charSetDuration])

	c.setValveActive(1, active)
	assert.Equal(t, 120, c.valves[1].remaining.Value())

	c.setValveDuration(5, 10)
	c.setValveActive(-1, active)
}

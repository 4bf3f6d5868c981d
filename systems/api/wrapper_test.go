package api

import (
	"testing"

	"github.com/go-home-io/sip-bridge/mocks"
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/go-home-io/sip-bridge/systems/fanout"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getProvider() (*provider, mocks.IFakeCache) {
	c := mocks.FakeNewCache(nil)
	p := NewAPIProvider(&ConstructAPI{
		Logger: mocks.FakeNewLogger(nil),
		Cache:  c,
		Gauge:  NewAccessoriesGauge(),
	}).(*provider)

	return p, c
}

func newAccessory(id string) *platform.PlatformAccessory {
	return platform.NewPlatformAccessory(id, platform.GenerateUUID(id), 28)
}

// Tests that events fire once.
func TestEmitOnce(t *testing.T) {
	p, _ := getProvider()
	calls := 0
	p.On(platform.EventDidFinishLaunching, func() { calls++ })
	p.On(platform.EventDidFinishLaunching, func() { calls++ })

	p.Emit(platform.EventDidFinishLaunching)
	p.Emit(platform.EventDidFinishLaunching)
	assert.Equal(t, 2, calls)

	p.On(platform.EventDidFinishLaunching, func() { calls++ })
	p.Emit(platform.EventDidFinishLaunching)
	assert.Equal(t, 2, calls, "late subscription")

	shutdown := false
	p.On(platform.EventShutdown, func() { shutdown = true })
	p.Emit(platform.EventShutdown)
	assert.True(t, shutdown)
}

// Tests registration and AID assignment.
func TestRegister(t *testing.T) {
	p, c := getProvider()

	restored := newAccessory("restored")
	restored.AID = 5
	require.NoError(t, p.Restore(restored))
	assert.Error(t, p.Restore(restored), "duplicate restore")

	a1 := newAccessory("a1")
	a2 := newAccessory("a2")
	require.NoError(t, p.RegisterPlatformAccessories("homebridge-SIP", "SIPHomebridgePlugin",
		[]*platform.PlatformAccessory{a1, a2}))

	assert.Equal(t, uint64(6), a1.AID)
	assert.Equal(t, uint64(7), a2.AID)
	assert.Equal(t, "SIPHomebridgePlugin", a1.PlatformName)
	assert.Equal(t, "homebridge-SIP", a2.PluginName)
	assert.Len(t, c.Records(), 2)
	assert.Equal(t, 1, c.Saved())
	assert.Equal(t, float64(3), testutil.ToFloat64(p.gauge))

	all := p.Accessories()
	require.Len(t, all, 3)
	assert.Equal(t, restored.UUID, all[0].UUID)

	got, ok := p.Accessory(a2.UUID)
	assert.True(t, ok)
	assert.True(t, got == a2)
}

// Tests duplicate registration.
func TestRegisterDuplicate(t *testing.T) {
	p, c := getProvider()
	a := newAccessory("a")
	require.NoError(t, p.RegisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{a}))

	err := p.RegisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{newAccessory("b"), a})
	require.Error(t, err)
	_, ok := err.(*ErrDuplicateUUID)
	assert.True(t, ok)
	assert.Len(t, p.Accessories(), 1, "batch is not applied")

	b := newAccessory("b")
	err = p.RegisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{b, b})
	assert.Error(t, err)
	assert.Len(t, c.Records(), 1)
}

// Tests removal.
func TestUnregister(t *testing.T) {
	p, c := getProvider()
	a := newAccessory("a")
	require.NoError(t, p.RegisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{a}))

	err := p.UnregisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{newAccessory("unknown")})
	require.Error(t, err)
	_, ok := err.(*ErrUnknownAccessory)
	assert.True(t, ok)

	require.NoError(t, p.UnregisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{a}))
	assert.Empty(t, p.Accessories())
	assert.Empty(t, c.Records())
	assert.Equal(t, float64(0), testutil.ToFloat64(p.gauge))
}

// Tests context updates.
func TestUpdate(t *testing.T) {
	p, c := getProvider()
	a := newAccessory("a")
	require.NoError(t, p.RegisterPlatformAccessories("p", "P", []*platform.PlatformAccessory{a}))

	a.Context["device"] = "changed"
	require.NoError(t, p.UpdatePlatformAccessories([]*platform.PlatformAccessory{a}))
	assert.Equal(t, "changed", c.Records()[a.UUID].Context["device"])

	assert.Error(t, p.UpdatePlatformAccessories([]*platform.PlatformAccessory{newAccessory("b")}))
}

// Tests state forwarding.
func TestReportState(t *testing.T) {
	p, _ := getProvider()
	p.ReportState(&common.MsgAccessoryUpdate{UUID: "no fan-out"})

	fo := fanout.NewFanOut()
	defer fo.Stop()
	p.fanOut = fo

	_, ch := fo.SubscribeAccessoryUpdates()
	p.ReportState(&common.MsgAccessoryUpdate{UUID: "1"})
	msg := <-ch
	assert.Equal(t, "1", msg.UUID)
}

// Tests errors output.
func TestErrors(t *testing.T) {
	assert.Contains(t, (&ErrDuplicateUUID{UUID: "x"}).Error(), "x")
	assert.Contains(t, (&ErrUnknownAccessory{UUID: "y"}).Error(), "y")
}

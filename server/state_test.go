package server

import (
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/sip-bridge/mocks"
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/systems/fanout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests state ordering and isolation.
func TestStateGetAccessory(t *testing.T) {
	s := newServerState(mocks.FakeNewLogger(nil), nil)
	s.start()

	s.Update(&common.MsgAccessoryUpdate{UUID: "a", Service: "Valve", Index: 2})
	s.Update(&common.MsgAccessoryUpdate{UUID: "a", Service: "Valve", Index: 1})
	s.Update(&common.MsgAccessoryUpdate{UUID: "a", Service: "IrrigationSystem"})
	s.Update(&common.MsgAccessoryUpdate{UUID: "ab", Service: "Valve", Index: 1})
	s.Update(&common.MsgAccessoryUpdate{UUID: "a", Service: "Valve", Index: 1, State: map[string]int{"InUse": 1}})

	states := s.GetAccessory("a")
	require.Equal(t, 3, len(states))
	assert.Equal(t, "IrrigationSystem", states[0].Service)
	assert.Equal(t, 1, states[1].Index)
	assert.Equal(t, 1, states[1].State["InUse"])
	assert.Equal(t, 2, states[2].Index)

	assert.Equal(t, 0, len(s.GetAccessory("missing")))
}

// Tests fan-out subscription.
func TestStateSubscription(t *testing.T) {
	defer leaktest.Check(t)()

	f := fanout.NewFanOut()
	s := newServerState(mocks.FakeNewLogger(nil), f)
	s.start()

	f.ChannelInAccessoryUpdates() <- &common.MsgAccessoryUpdate{UUID: "a", Service: "Valve", Index: 1}

	assert.Eventually(t, func() bool {
		return 1 == len(s.GetAccessory("a"))
	}, time.Second, 10*time.Millisecond)

	s.close()
	s.close()
	f.Stop()
}

package reconciler

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/go-home-io/sip-bridge/mocks"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	id   string
	name string
}

func (d *fakeDevice) ID() string {
	return d.id
}

func (d *fakeDevice) Name() string {
	return d.name
}

type controllerCall struct {
	UUID   string
	Device string
}

func newReconciler(api *mocks.FakeAPI, calls *[]controllerCall) *Reconciler {
	return NewReconciler(&ConstructReconciler{
		Namespace:    "IrrSys",
		PluginName:   "homebridge-SIP",
		PlatformName: "SIPHomebridgePlugin",
		Category:     28,
		Host:         api,
		Logger:       mocks.FakeNewLogger(nil),
		Metrics:      NewMetrics(),
		Controller: func(a *platform.PlatformAccessory, d IDescriptor) {
			if calls != nil {
				*calls = append(*calls, controllerCall{UUID: a.UUID.String(), Device: d.ID()})
			}
		},
	})
}

func restoredAccessory(id string) *platform.PlatformAccessory {
	a := platform.NewPlatformAccessory(id, platform.GenerateUUID(id+"IrrSys"), 28)
	a.Context[ContextDeviceKey] = "cached " + id
	return a
}

func uuids(accessories []*platform.PlatformAccessory) []string {
	out := make([]string, 0, len(accessories))
	for _, v := range accessories {
		out = append(out, v.UUID.String())
	}

	return out
}

// Tests a brand new device.
func TestCreate(t *testing.T) {
	api := mocks.FakeNewAPI()
	calls := make([]controllerCall, 0)
	r := newReconciler(api, &calls)

	plan, err := r.Reconcile([]IDescriptor{&fakeDevice{id: "LMNOp", name: "Backyard2"}}, nil)
	require.NoError(t, err)

	expected := platform.GenerateUUID("LMNOpIrrSys")
	require.Len(t, plan.Create, 1)
	assert.Equal(t, expected, plan.Create[0].UUID)
	assert.Empty(t, plan.Reuse)
	assert.Empty(t, plan.Remove)

	require.Len(t, api.Registered, 1)
	a := api.Registered[0]
	assert.Equal(t, expected, a.UUID)
	assert.Equal(t, "Backyard2", a.DisplayName)
	assert.Equal(t, byte(28), a.Category)
	assert.Equal(t, "homebridge-SIP", a.PluginName)
	assert.Equal(t, "SIPHomebridgePlugin", a.PlatformName)
	assert.Equal(t, "LMNOp", a.Context[ContextDeviceKey].(IDescriptor).ID())

	if diff := cmp.Diff([]controllerCall{{UUID: expected.String(), Device: "LMNOp"}}, calls); diff != "" {
		t.Errorf("controller calls mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.actions.WithLabelValues(actionCreate)))
}

// Tests restored device.
func TestReuse(t *testing.T) {
	api := mocks.FakeNewAPI()
	calls := make([]controllerCall, 0)
	r := newReconciler(api, &calls)
	existing := restoredAccessory("LMNOp")

	plan, err := r.Reconcile([]IDescriptor{&fakeDevice{id: "LMNOp", name: "Backyard2"}},
		[]*platform.PlatformAccessory{existing})
	require.NoError(t, err)

	require.Len(t, plan.Reuse, 1)
	assert.True(t, existing == plan.Reuse[0].Accessory)
	assert.Empty(t, plan.Create)
	assert.Empty(t, plan.Remove)

	assert.Empty(t, api.Registered)
	assert.Empty(t, api.Unregistered)
	assert.Equal(t, 0, api.Created)
	assert.Equal(t, "cached LMNOp", existing.Context[ContextDeviceKey], "context is untouched")
	assert.Len(t, calls, 1)
}

// Tests stale accessory.
func TestRemove(t *testing.T) {
	api := mocks.FakeNewAPI()
	calls := make([]controllerCall, 0)
	r := newReconciler(api, &calls)
	old := restoredAccessory("OLDDEVICE")

	plan, err := r.Reconcile([]IDescriptor{}, []*platform.PlatformAccessory{old})
	require.NoError(t, err)

	assert.Empty(t, plan.Create)
	assert.Empty(t, plan.Reuse)
	assert.Equal(t, []string{"998792f8-3182-4712-bd0c-0038b0fbb78b"}, uuids(plan.Remove))
	assert.Equal(t, []string{"998792f8-3182-4712-bd0c-0038b0fbb78b"}, uuids(api.Unregistered))
	assert.Empty(t, calls, "removed accessories get no controller")
}

// Tests mixed pass.
func TestMixed(t *testing.T) {
	api := mocks.FakeNewAPI()
	r := newReconciler(api, nil)

	restored := []*platform.PlatformAccessory{restoredAccessory("A"), restoredAccessory("B")}
	plan := r.Plan([]IDescriptor{
		&fakeDevice{id: "B", name: "b"},
		&fakeDevice{id: "C", name: "c"},
	}, restored)

	require.Len(t, plan.Reuse, 1)
	assert.Equal(t, restored[1].UUID, plan.Reuse[0].Accessory.UUID)
	assert.Equal(t, platform.GenerateUUID("CIrrSys"), plan.Create[0].UUID)
	assert.Equal(t, []string{restored[0].UUID.String()}, uuids(plan.Remove))
	assert.Empty(t, api.Registered, "plan does not touch the host")
}

// Tests that duplicate devices map to a single accessory.
func TestDuplicateDevices(t *testing.T) {
	api := mocks.FakeNewAPI()
	r := newReconciler(api, nil)

	plan, err := r.Reconcile([]IDescriptor{
		&fakeDevice{id: "LMNOp", name: "first"},
		&fakeDevice{id: "LMNOp", name: "second"},
	}, nil)

	require.NoError(t, err)
	require.Len(t, plan.Create, 1)
	assert.Equal(t, "first", plan.Create[0].Descriptor.Name())
	assert.Len(t, api.Registered, 1)
}

// Tests host errors propagation.
func TestHostErrors(t *testing.T) {
	api := mocks.FakeNewAPI()
	api.RegisterError = errors.New("duplicate uuid")
	r := newReconciler(api, nil)

	_, err := r.Reconcile([]IDescriptor{&fakeDevice{id: "LMNOp", name: "Backyard2"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate uuid")

	api = mocks.FakeNewAPI()
	api.UnregisterError = errors.New("unknown accessory")
	r = newReconciler(api, nil)

	_, err = r.Reconcile(nil, []*platform.PlatformAccessory{restoredAccessory("OLDDEVICE")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown accessory")
}

// Tests set properties over random inputs.
func TestPlanProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	r := newReconciler(mocks.FakeNewAPI(), nil)

	for round := 0; round < 200; round++ {
		descriptors := make([]IDescriptor, 0)
		for ii, n := 0, rnd.Intn(8); ii < n; ii++ {
			id := fmt.Sprintf("dev%d", rnd.Intn(10))
			descriptors = append(descriptors, &fakeDevice{id: id, name: id})
		}

		restored := make([]*platform.PlatformAccessory, 0)
		seen := make(map[string]bool)
		for ii, n := 0, rnd.Intn(8); ii < n; ii++ {
			id := fmt.Sprintf("dev%d", rnd.Intn(10))
			if seen[id] {
				continue
			}
			seen[id] = true
			restored = append(restored, restoredAccessory(id))
		}

		plan := r.Plan(descriptors, restored)

		discovered := make(map[uuid.UUID]bool)
		for _, d := range descriptors {
			discovered[r.UUID(d)] = true
		}

		handled := make(map[uuid.UUID]int)
		for _, v := range plan.Create {
			handled[v.UUID]++
		}
		for _, v := range plan.Reuse {
			handled[v.Accessory.UUID]++
		}

		assert.Equal(t, len(discovered), len(handled), "round %d", round)
		for id, cnt := range handled {
			assert.True(t, discovered[id], "round %d", round)
			assert.Equal(t, 1, cnt, "round %d", round)
		}

		removed := make(map[uuid.UUID]bool)
		for _, a := range plan.Remove {
			removed[a.UUID] = true
			assert.False(t, discovered[a.UUID], "round %d: matched accessory removed", round)
		}

		for _, a := range restored {
			assert.Equal(t, !discovered[a.UUID], removed[a.UUID], "round %d", round)
		}
	}
}

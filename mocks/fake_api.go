//+build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
)

// FakeAPI is a recording platform.IAPI.
type FakeAPI struct {
	sync.Mutex

	RegisterError   error
	UnregisterError error

	Handlers     map[platform.Event][]func()
	Registered   []*platform.PlatformAccessory
	Unregistered []*platform.PlatformAccessory
	Updated      []*platform.PlatformAccessory
	States       []*common.MsgAccessoryUpdate
	Created      int
}

// On records lifecycle handler.
func (f *FakeAPI) On(event platform.Event, handler func()) {
	f.Lock()
	defer f.Unlock()
	f.Handlers[event] = append(f.Handlers[event], handler)
}

// Fire invokes recorded handlers.
func (f *FakeAPI) Fire(event platform.Event) {
	f.Lock()
	handlers := f.Handlers[event]
	f.Unlock()

	for _, v := range handlers {
		v()
	}
}

// NewPlatformAccessory constructs a real accessory handle.
func (f *FakeAPI) NewPlatformAccessory(displayName string, id uuid.UUID, category byte) *platform.PlatformAccessory {
	f.Lock()
	defer f.Unlock()
	f.Created++
	return platform.NewPlatformAccessory(displayName, id, category)
}

// RegisterPlatformAccessories records registration.
func (f *FakeAPI) RegisterPlatformAccessories(pluginName, platformName string,
	accessories []*platform.PlatformAccessory) error {
	f.Lock()
	defer f.Unlock()
	if f.RegisterError != nil {
		return f.RegisterError
	}

	for _, v := range accessories {
		v.PluginName = pluginName
		v.PlatformName = platformName
	}

	f.Registered = append(f.Registered, accessories...)
	return nil
}

// UpdatePlatformAccessories records update.
func (f *FakeAPI) UpdatePlatformAccessories(accessories []*platform.PlatformAccessory) error {
	f.Lock()
	defer f.Unlock()
	f.Updated = append(f.Updated, accessories...)
	return nil
}

// UnregisterPlatformAccessories records removal.
func (f *FakeAPI) UnregisterPlatformAccessories(pluginName, platformName string,
	accessories []*platform.PlatformAccessory) error {
	f.Lock()
	defer f.Unlock()
	if f.UnregisterError != nil {
		return f.UnregisterError
	}

	f.Unregistered = append(f.Unregistered, accessories...)
	return nil
}

// ReportState records state.
func (f *FakeAPI) ReportState(update *common.MsgAccessoryUpdate) {
	f.Lock()
	defer f.Unlock()
	f.States = append(f.States, update)
}

// LastState returns the latest reported state for the service.
func (f *FakeAPI) LastState(service string, index int) *common.MsgAccessoryUpdate {
	f.Lock()
	defer f.Unlock()

	for ii := len(f.States) - 1; ii >= 0; ii-- {
		if f.States[ii].Service == service && f.States[ii].Index == index {
			return f.States[ii]
		}
	}

	return nil
}

// FakeNewAPI creates a fake platform API.
func FakeNewAPI() *FakeAPI {
	return &FakeAPI{
		Handlers: make(map[platform.Event][]func()),
	}
}

package sip

import (
	"sync"

	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
)

// Valve service with optional characteristics.
type valveService struct {
	*service.Valve

	name        *characteristic.Name
	label       *characteristic.ServiceLabelIndex
	configured  *characteristic.IsConfigured
	setDuration *characteristic.SetDuration
	remaining   *characteristic.RemainingDuration
}

// Irrigation system accessory controller.
type irrigationAccessory struct {
	sync.Mutex

	logger    common.ILoggerProvider
	api       platform.IAPI
	cron      platform.ICron
	accessory *platform.PlatformAccessory

	system *service.IrrigationSystem
	valves []*valveService
	tickID int
}

type constructIrrigationAccessory struct {
	Logger    common.ILoggerProvider
	API       platform.IAPI
	Cron      platform.ICron
	Accessory *platform.PlatformAccessory
	Device    *IrrigationSystem
}

// Binds HAP services to the accessory.
func newIrrigationAccessory(ctor *constructIrrigationAccessory) *irrigationAccessory {
	c := &irrigationAccessory{
		logger:    ctor.Logger,
		api:       ctor.API,
		cron:      ctor.Cron,
		accessory: ctor.Accessory,
		system:    service.NewIrrigationSystem(),
		valves:    make([]*valveService, 0, len(ctor.Device.Valves)),
	}

	c.system.Active.SetValue(ctor.Device.Active)
	c.system.ProgramMode.SetValue(ctor.Device.ProgramMode)
	c.system.InUse.SetValue(ctor.Device.InUse)
	c.system.Active.OnValueRemoteUpdate(c.setSystemActive)

	hap := c.accessory.HAP()
	hap.AddS(c.system.S)

	for ii, v := range ctor.Device.Valves {
		vs := newValveService(ii+1, v)
		index := ii
		vs.Active.OnValueRemoteUpdate(func(value int) {
			c.setValveActive(index, value)
		})
		vs.setDuration.OnValueRemoteUpdate(func(value int) {
			c.setValveDuration(index, value)
		})

		c.valves = append(c.valves, vs)
		hap.AddS(vs.S)
	}

	c.Lock()
	c.updateSystemInUse()
	c.schedule()
	c.reportAll()
	c.Unlock()

	return c
}

func newValveService(index int, v *Valve) *valveService {
	vs := &valveService{
		Valve:       service.NewValve(),
		name:        characteristic.NewName(),
		label:       characteristic.NewServiceLabelIndex(),
		configured:  characteristic.NewIsConfigured(),
		setDuration: characteristic.NewSetDuration(),
		remaining:   characteristic.NewRemainingDuration(),
	}

	vs.Active.SetValue(v.Active)
	vs.InUse.SetValue(v.InUse)
	vs.ValveType.SetValue(v.ValveType)
	vs.name.SetValue(v.Name)
	vs.label.SetValue(index)
	vs.configured.SetValue(configured)
	vs.setDuration.SetValue(v.Duration())
	if v.InUse == inUse {
		vs.remaining.SetValue(v.Duration())
	}

	vs.AddC(vs.name.C)
	vs.AddC(vs.label.C)
	vs.AddC(vs.configured.C)
	vs.AddC(vs.setDuration.C)
	vs.AddC(vs.remaining.C)

	return vs
}

// Handles system activation change.
func (c *irrigationAccessory) setSystemActive(value int) {
	c.Lock()
	defer c.Unlock()

	c.system.Active.SetValue(value)
	if value == inactive {
		for ii := range c.valves {
			c.closeValve(ii)
		}
	}

	c.updateSystemInUse()
	c.schedule()
	c.reportSystem()
}

// Handles valve activation change.
func (c *irrigationAccessory) setValveActive(index int, value int) {
	c.Lock()
	defer c.Unlock()

	if index < 0 || index >= len(c.valves) {
		return
	}

	v := c.valves[index]
	if value == active && c.system.Active.Value() == inactive {
		c.logger.Warn("Irrigation system is not active, valve won't open",
			common.LogAccessoryNameToken, c.accessory.DisplayName, common.LogServiceToken, v.name.Value())
		v.Active.SetValue(inactive)
		c.reportValve(index)
		return
	}

	if value == active {
		v.Active.SetValue(active)
		v.InUse.SetValue(inUse)
		v.remaining.SetValue(v.setDuration.Value())
	} else {
		c.closeValve(index)
	}

	c.updateSystemInUse()
	c.schedule()
	c.reportValve(index)
	c.reportSystem()
}

// Handles valve run time change, applies to the next run.
func (c *irrigationAccessory) setValveDuration(index int, value int) {
	c.Lock()
	defer c.Unlock()

	if index < 0 || index >= len(c.valves) {
		return
	}

	c.valves[index].setDuration.SetValue(value)
	c.reportValve(index)
}

// Countdown tick.
func (c *irrigationAccessory) tick() {
	c.Lock()
	defer c.Unlock()

	for ii, v := range c.valves {
		if v.InUse.Value() != inUse {
			continue
		}

		left := v.remaining.Value() - 1
		if left <= 0 {
			c.logger.Debug("Valve run is finished",
				common.LogAccessoryNameToken, c.accessory.DisplayName, common.LogServiceToken, v.name.Value())
			c.closeValve(ii)
		} else {
			v.remaining.SetValue(left)
		}

		c.reportValve(ii)
	}

	c.updateSystemInUse()
	c.schedule()
	c.reportSystem()
}

// Cancels countdown.
func (c *irrigationAccessory) stop() {
	c.Lock()
	defer c.Unlock()

	if c.tickID != 0 {
		c.cron.RemoveFunc(c.tickID)
		c.tickID = 0
	}
}

// Should be called under the lock.
func (c *irrigationAccessory) closeValve(index int) {
	v := c.valves[index]
	v.Active.SetValue(inactive)
	v.InUse.SetValue(notInUse)
	v.remaining.SetValue(0)
}

// Should be called under the lock.
func (c *irrigationAccessory) running() bool {
	for _, v := range c.valves {
		if v.InUse.Value() == inUse {
			return true
		}
	}

	return false
}

// Should be called under the lock.
func (c *irrigationAccessory) updateSystemInUse() {
	if c.running() {
		c.system.InUse.SetValue(inUse)
	} else {
		c.system.InUse.SetValue(notInUse)
	}
}

// Keeps a single countdown job while any valve is running.
// Should be called under the lock.
func (c *irrigationAccessory) schedule() {
	running := c.running()
	if running && c.tickID == 0 {
		id, err := c.cron.AddFunc(tickSpec, c.tick)
		if err != nil {
			c.logger.Error("Failed to schedule valve countdown", err,
				common.LogAccessoryNameToken, c.accessory.DisplayName)
			return
		}

		c.tickID = id
		return
	}

	if !running && c.tickID != 0 {
		c.cron.RemoveFunc(c.tickID)
		c.tickID = 0
	}
}

func (c *irrigationAccessory) reportAll() {
	c.reportSystem()
	for ii := range c.valves {
		c.reportValve(ii)
	}
}

func (c *irrigationAccessory) reportSystem() {
	c.api.ReportState(&common.MsgAccessoryUpdate{
		UUID:    c.accessory.UUID.String(),
		Name:    c.accessory.DisplayName,
		Service: serviceIrrigationSystem,
		State: map[string]int{
			charActive:      c.system.Active.Value(),
			charProgramMode: c.system.ProgramMode.Value(),
			charInUse:       c.system.InUse.Value(),
		},
	})
}

func (c *irrigationAccessory) reportValve(index int) {
	v := c.valves[index]
	c.api.ReportState(&common.MsgAccessoryUpdate{
		UUID:    c.accessory.UUID.String(),
		Name:    v.name.Value(),
		Service: serviceValve,
		Index:   index + 1,
		State: map[string]int{
			charActive:            v.Active.Value(),
			charInUse:             v.InUse.Value(),
			charSetDuration:       v.setDuration.Value(),
			charRemainingDuration: v.remaining.Value(),
		},
	})
}

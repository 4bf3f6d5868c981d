// Package reconciler matches discovered devices against restored accessories.
package reconciler

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ContextDeviceKey is the accessory context key holding device descriptor.
const ContextDeviceKey = "device"

// IDescriptor defines a discovered device.
type IDescriptor interface {
	ID() string
	Name() string
}

// IAccessoryHost defines host calls required for applying a plan.
type IAccessoryHost interface {
	NewPlatformAccessory(displayName string, id uuid.UUID, category byte) *platform.PlatformAccessory
	RegisterPlatformAccessories(pluginName, platformName string, accessories []*platform.PlatformAccessory) error
	UnregisterPlatformAccessories(pluginName, platformName string, accessories []*platform.PlatformAccessory) error
}

// ControllerFunc binds accessory services for the device.
// It's invoked once per handle, both for new and reused ones.
type ControllerFunc func(accessory *platform.PlatformAccessory, descriptor IDescriptor)

// CreateAction describes a device without an accessory.
type CreateAction struct {
	UUID       uuid.UUID
	Descriptor IDescriptor
}

// ReuseAction describes a device with a restored accessory.
type ReuseAction struct {
	Accessory  *platform.PlatformAccessory
	Descriptor IDescriptor
}

// Plan has result of a single reconciliation pass.
type Plan struct {
	Create []*CreateAction
	Reuse  []*ReuseAction
	Remove []*platform.PlatformAccessory
}

// Reconciler implementation.
type Reconciler struct {
	namespace    string
	pluginName   string
	platformName string
	category     byte

	host       IAccessoryHost
	controller ControllerFunc
	logger     common.ILoggerProvider
	metrics    *Metrics
}

// ConstructReconciler has data required for a new reconciler.
type ConstructReconciler struct {
	Namespace    string
	PluginName   string
	PlatformName string
	Category     byte
	Host         IAccessoryHost
	Controller   ControllerFunc
	Logger       common.ILoggerProvider
	Metrics      *Metrics
}

// NewReconciler constructs a new reconciler.
func NewReconciler(ctor *ConstructReconciler) *Reconciler {
	return &Reconciler{
		namespace:    ctor.Namespace,
		pluginName:   ctor.PluginName,
		platformName: ctor.PlatformName,
		category:     ctor.Category,
		host:         ctor.Host,
		controller:   ctor.Controller,
		logger:       ctor.Logger,
		metrics:      ctor.Metrics,
	}
}

// UUID derives stable accessory identifier of the device.
func (r *Reconciler) UUID(descriptor IDescriptor) uuid.UUID {
	return platform.GenerateUUID(descriptor.ID() + r.namespace)
}

// Plan computes actions for discovered devices against restored accessories.
// Neither input is modified.
func (r *Reconciler) Plan(descriptors []IDescriptor, restored []*platform.PlatformAccessory) *Plan {
	plan := &Plan{
		Create: make([]*CreateAction, 0),
		Reuse:  make([]*ReuseAction, 0),
		Remove: make([]*platform.PlatformAccessory, 0),
	}

	discovered := make(map[uuid.UUID]bool, len(descriptors))
	for _, d := range descriptors {
		id := r.UUID(d)
		if discovered[id] {
			r.logger.Warn("Skipping duplicate device", common.LogDeviceIDToken, d.ID(),
				common.LogUUIDToken, id.String())
			continue
		}

		discovered[id] = true
		r.logger.Debug("Discovered device", common.LogAccessoryNameToken, d.Name(),
			common.LogDeviceIDToken, d.ID(), common.LogUUIDToken, id.String())

		if existing := find(restored, id); existing != nil {
			plan.Reuse = append(plan.Reuse, &ReuseAction{Accessory: existing, Descriptor: d})
			continue
		}

		plan.Create = append(plan.Create, &CreateAction{UUID: id, Descriptor: d})
	}

	for _, a := range restored {
		if !discovered[a.UUID] {
			r.logger.Debug("Restored accessory was not discovered", common.LogAccessoryNameToken, a.DisplayName,
				common.LogUUIDToken, a.UUID.String())
			plan.Remove = append(plan.Remove, a)
		}
	}

	return plan
}

// Apply executes the plan against the host.
// The first host error stops the pass and is returned.
func (r *Reconciler) Apply(plan *Plan) error {
	for _, v := range plan.Reuse {
		r.logger.Info("Restoring existing accessory from cache",
			common.LogAccessoryNameToken, v.Accessory.DisplayName)
		r.bind(v.Accessory, v.Descriptor)
		r.metrics.observe(actionReuse)
	}

	for _, v := range plan.Create {
		r.logger.Info("Adding new accessory", common.LogAccessoryNameToken, v.Descriptor.Name())

		a := r.host.NewPlatformAccessory(v.Descriptor.Name(), v.UUID, r.category)
		a.Context[ContextDeviceKey] = v.Descriptor
		r.bind(a, v.Descriptor)

		err := r.host.RegisterPlatformAccessories(r.pluginName, r.platformName, []*platform.PlatformAccessory{a})
		if err != nil {
			return errors.Wrapf(err, "register accessory %s", v.Descriptor.Name())
		}

		r.metrics.observe(actionCreate)
	}

	for _, a := range plan.Remove {
		r.logger.Info("Removing accessory which is no longer present",
			common.LogAccessoryNameToken, a.DisplayName)

		err := r.host.UnregisterPlatformAccessories(r.pluginName, r.platformName, []*platform.PlatformAccessory{a})
		if err != nil {
			return errors.Wrapf(err, "unregister accessory %s", a.DisplayName)
		}

		r.metrics.observe(actionRemove)
	}

	return nil
}

// Reconcile plans and applies in a single pass.
func (r *Reconciler) Reconcile(descriptors []IDescriptor,
	restored []*platform.PlatformAccessory) (*Plan, error) {
	plan := r.Plan(descriptors, restored)
	return plan, r.Apply(plan)
}

func (r *Reconciler) bind(a *platform.PlatformAccessory, d IDescriptor) {
	if r.controller != nil {
		r.controller(a, d)
	}
}

// Linear scan, identifiers are unique.
func find(accessories []*platform.PlatformAccessory, id uuid.UUID) *platform.PlatformAccessory {
	for _, a := range accessories {
		if a.UUID == id {
			return a
		}
	}

	return nil
}

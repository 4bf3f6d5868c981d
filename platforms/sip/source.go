package sip

// IDeviceSource defines where irrigation systems come from.
type IDeviceSource interface {
	Devices() ([]*IrrigationSystem, error)
}

// Devices listed in the platform config.
type configSource struct {
	devices []*IrrigationSystem
}

// NewConfigSource creates device source backed by a static list.
func NewConfigSource(devices []*IrrigationSystem) IDeviceSource {
	return &configSource{devices: devices}
}

// Devices returns configured irrigation systems.
func (s *configSource) Devices() ([]*IrrigationSystem, error) {
	out := make([]*IrrigationSystem, len(s.devices))
	copy(out, s.devices)
	return out, nil
}

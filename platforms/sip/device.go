package sip

// IrrigationSystem describes a single irrigation controller.
type IrrigationSystem struct {
	UniqueID    string   `yaml:"uniqueId" validate:"required"`
	DisplayName string   `yaml:"displayName" validate:"required"`
	Active      int      `yaml:"active" validate:"gte=0,lte=1"`
	ProgramMode int      `yaml:"programMode" validate:"gte=0,lte=2"`
	InUse       int      `yaml:"inUse" validate:"gte=0,lte=1"`
	Valves      []*Valve `yaml:"valves" validate:"dive,required"`
}

// Valve describes a single irrigation zone.
type Valve struct {
	Name        string `yaml:"name" validate:"required"`
	Active      int    `yaml:"active" validate:"gte=0,lte=1"`
	InUse       int    `yaml:"inUse" validate:"gte=0,lte=1"`
	ValveType   int    `yaml:"valveType" validate:"gte=0,lte=3"`
	SetDuration int    `yaml:"setDuration" validate:"gte=0,lte=3600"`
}

// ID returns device unique ID.
func (d *IrrigationSystem) ID() string {
	return d.UniqueID
}

// Name returns device display name.
func (d *IrrigationSystem) Name() string {
	return d.DisplayName
}

// Duration returns configured run time with a fallback to the default one.
func (v *Valve) Duration() int {
	if v.SetDuration <= 0 {
		return defaultSetDuration
	}

	return v.SetDuration
}

package sip

const (
	// PluginName is the name of this plugin.
	PluginName = "homebridge-SIP"
	// PlatformName is the name users register the platform with.
	PlatformName = "SIPHomebridgePlugin"

	// Appended to the device unique ID before deriving accessory UUID.
	uuidNamespace = "IrrSys"
	// HomeKit sprinkler accessory category.
	categorySprinkler byte = 28

	// Default valve run time, seconds.
	defaultSetDuration = 300
	// Countdown schedule.
	tickSpec = "@every 1s"
)

// Reported service names.
const (
	serviceIrrigationSystem = "IrrigationSystem"
	serviceValve            = "Valve"
)

// Reported characteristic names.
const (
	charActive            = "Active"
	charInUse             = "InUse"
	charProgramMode       = "ProgramMode"
	charSetDuration       = "SetDuration"
	charRemainingDuration = "RemainingDuration"
)

// Characteristic values.
const (
	inactive = 0
	active   = 1

	notInUse = 0
	inUse    = 1

	configured = 1
)

package systems

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysBridge describes bridge host system.
	SysBridge SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysPlatform describes platform plugins system.
	SysPlatform
	// SysCache describes accessory cache system.
	SysCache
	// SysAPI describes host API system.
	SysAPI
	// SysHAP describes HomeKit transport system.
	SysHAP
)

var systemNames = map[SystemType]string{
	SysBridge:   "bridge",
	SysLogger:   "logger",
	SysPlatform: "platform",
	SysCache:    "cache",
	SysAPI:      "api",
	SysHAP:      "hap",
}

// String returns system name.
func (s SystemType) String() string {
	if n, ok := systemNames[s]; ok {
		return n
	}

	return "unknown"
}

// SystemTypeString parses system name.
func SystemTypeString(s string) (SystemType, error) {
	for k, v := range systemNames {
		if v == s {
			return k, nil
		}
	}

	return 0, &ErrUnknownSystem{Name: s}
}

// ErrUnknownSystem defines unknown system error.
type ErrUnknownSystem struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownSystem) Error() string {
	return "unknown system " + e.Name
}

package common

// ILoggerProvider defines logger provider which will be passed to every plugin.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}

// MsgAccessoryUpdate contains reported state of a single accessory service.
type MsgAccessoryUpdate struct {
	UUID    string         `json:"uuid"`
	Name    string         `json:"name"`
	Service string         `json:"service"`
	Index   int            `json:"index"`
	State   map[string]int `json:"state"`
}

//+build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
)

// Fake logger
type fakeLogger struct {
	sync.Mutex
	callback       func(string)
	fieldsCallback func(string, []string)
}

// Prints debug level message.
func (p *fakeLogger) Debug(msg string, fields ...string) {
	p.invoke(msg, fields)
}

// Prints info level message.
func (p *fakeLogger) Info(msg string, fields ...string) {
	p.invoke(msg, fields)
}

// Prints warning level message.
func (p *fakeLogger) Warn(msg string, fields ...string) {
	p.invoke(msg, fields)
}

// Prints error level message.
func (p *fakeLogger) Error(msg string, err error, fields ...string) {
	p.invoke(msg, fields)
}

// Prints fatal level message.
func (p *fakeLogger) Fatal(msg string, err error, fields ...string) {
	p.invoke(msg, fields)
}

func (p *fakeLogger) invoke(msg string, fields []string) {
	p.Lock()
	defer p.Unlock()

	if p.callback != nil {
		p.callback(msg)
	}

	if p.fieldsCallback != nil {
		p.fieldsCallback(msg, fields)
	}
}

// FakeNewLogger creates a fake logger provider.
func FakeNewLogger(callback func(string)) common.ILoggerProvider {
	return &fakeLogger{
		callback: callback,
	}
}

// FakeNewLoggerWithFields creates a fake logger provider which exposes fields.
func FakeNewLoggerWithFields(callback func(string, []string)) common.ILoggerProvider {
	return &fakeLogger{
		fieldsCallback: callback,
	}
}

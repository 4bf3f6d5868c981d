package logger

import (
	"github.com/go-home-io/sip-bridge/plugins/common"
)

// Decorates every line with the emitting system and provider.
type pluginLogger struct {
	systemLogger common.ILoggerProvider
	system       string
	provider     string
}

// ConstructPluginLogger has data required for a new plugin logger.
type ConstructPluginLogger struct {
	SystemLogger common.ILoggerProvider
	System       string
	Provider     string
}

// NewPluginLogger wraps system logger for a single system provider:
// platform instance, cache, host API or HAP transport.
func NewPluginLogger(ctor *ConstructPluginLogger) common.ILoggerProvider {
	return &pluginLogger{
		systemLogger: ctor.SystemLogger,
		system:       ctor.System,
		provider:     ctor.Provider,
	}
}

// Debug sends debug level message.
func (l *pluginLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, l.with(fields)...)
}

// Info sends info level message.
func (l *pluginLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, l.with(fields)...)
}

// Warn sends warning level message.
func (l *pluginLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, l.with(fields)...)
}

// Error sends error level message.
func (l *pluginLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, l.with(fields)...)
}

// Fatal sends fatal level message and exits.
func (l *pluginLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, l.with(fields)...)
}

// Own fields go first, a dangling caller key stays last and is dropped by the output.
// Callers can't override system and provider.
func (l *pluginLogger) with(fields []string) []string {
	out := make([]string, 0, len(fields)+4)
	out = append(out, common.LogSystemToken, l.system, common.LogProviderToken, l.provider)
	for ii := 0; ii+1 < len(fields); ii += 2 {
		if fields[ii] == common.LogSystemToken || fields[ii] == common.LogProviderToken {
			continue
		}

		out = append(out, fields[ii], fields[ii+1])
	}

	return out
}

// Package common contains shared data available for all platform plugins.
package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogPlatformToken describes platform log entry.
	LogPlatformToken = "platform"
	// LogPluginToken describes plugin log entry.
	LogPluginToken = "plugin"
	// LogAccessoryNameToken describes accessory display name log entry.
	LogAccessoryNameToken = "accessory_name"
	// LogUUIDToken describes accessory UUID log entry.
	LogUUIDToken = "uuid"
	// LogDeviceIDToken describes source device ID log entry.
	LogDeviceIDToken = "device_id"
	// LogServiceToken describes HAP service log entry.
	LogServiceToken = "service"
	// LogEventToken describes lifecycle event log entry.
	LogEventToken = "event"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)

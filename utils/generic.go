package utils

import (
	"os"
	"path/filepath"
)

// Default storage folder name under user's home.
const defaultStorageDir = ".sip-bridge"

// GetDefaultStorageDir returns default storage directory, which is ~/.sip-bridge.
// Falls back to cwd/.sip-bridge if home is unknown.
func GetDefaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = GetCurrentWorkingDir()
	}

	return filepath.Join(home, defaultStorageDir)
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigFile returns default config file which is cwd/configs/config.yaml.
func GetDefaultConfigFile() string {
	return filepath.Join(GetCurrentWorkingDir(), "configs", "config.yaml")
}

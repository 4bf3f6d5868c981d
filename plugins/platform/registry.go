package platform

import (
	"sort"
	"sync"
)

// Factory builds a platform plugin instance.
type Factory func(*InitDataPlatform) (IDynamicPlatform, error)

// Registration describes compiled-in platform plugin.
type Registration struct {
	PluginName   string
	PlatformName string
	Factory      Factory
}

var (
	registryMutex sync.Mutex
	registry      = make(map[string]*Registration)
)

// Register adds a compiled-in platform plugin.
// Plugins call it from init.
func Register(pluginName, platformName string, factory Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, ok := registry[platformName]; ok {
		panic("platform " + platformName + " is registered twice")
	}

	registry[platformName] = &Registration{
		PluginName:   pluginName,
		PlatformName: platformName,
		Factory:      factory,
	}
}

// Get returns registered platform plugin.
func Get(platformName string) (*Registration, bool) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	r, ok := registry[platformName]
	return r, ok
}

// Known returns names of all registered platforms.
func Known() []string {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}

package providers

import (
	"sort"
	"strings"
	"sync"
)

const unknownProviderMessageConstant = "no such provider registered"

// Factory constructs a Provider from its configuration. Construction
// validates configuration and credentials so failures surface before any
// repository work starts.
type Factory func(config Config) (Provider, error)

// Registry maps provider names to factories. The zero value is not usable;
// construct with NewRegistry.
type Registry struct {
	mutex     sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register installs a factory under the given name, replacing any previous
// registration. Names are matched case-insensitively.
func (registry *Registry) Register(providerName string, factory Factory) {
	normalizedName := strings.ToLower(strings.TrimSpace(providerName))
	if len(normalizedName) == 0 || factory == nil {
		return
	}
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.factories[normalizedName] = factory
}

// Create builds the named provider. Unknown names yield a ConfigurationError.
func (registry *Registry) Create(providerName string, config Config) (Provider, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(providerName))
	registry.mutex.RLock()
	factory, found := registry.factories[normalizedName]
	registry.mutex.RUnlock()
	if !found {
		return nil, &ConfigurationError{ProviderName: providerName, Message: unknownProviderMessageConstant}
	}
	return factory(config.sanitized())
}

// Names lists the registered provider names in sorted order.
func (registry *Registry) Names() []string {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for providerName := range registry.factories {
		names = append(names, providerName)
	}
	sort.Strings(names)
	return names
}

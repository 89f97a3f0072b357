// pkg/deploy/registry.go
package deploy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// supportedAPI is the plugin API constraint backends must satisfy. Bumped on
// breaking changes to the Plugin contract.
var supportedAPI = mustConstraint("^1.0")

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Factory creates a new plugin instance.
type Factory func() (Plugin, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register adds a plugin factory under the given target type. Backends call
// this from init; registering the same type twice is a programming error.
func Register(targetType string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := factories[targetType]; exists {
		panic(fmt.Sprintf("deploy: plugin type %q registered twice", targetType))
	}
	factories[targetType] = factory
}

// RegisteredTypes returns the sorted list of registered target types.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// InstantiateAll builds one plugin per registered factory, validating each
// plugin's declared API version against the supported constraint. A factory
// error or an incompatible API version fails instantiation outright; a
// half-loaded plugin set would make target resolution unpredictable.
func InstantiateAll() ([]Plugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)

	plugins := make([]Plugin, 0, len(types))
	for _, t := range types {
		p, err := factories[t]()
		if err != nil {
			return nil, fmt.Errorf("instantiate plugin %q: %w", t, err)
		}
		if err := CheckAPIVersion(p.Info().APIVersion); err != nil {
			return nil, fmt.Errorf("plugin %q: %w", t, err)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// CheckAPIVersion validates a backend's declared plugin API version against
// the supported constraint.
func CheckAPIVersion(version string) error {
	if version == "" {
		return fmt.Errorf("plugin API version is required")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid plugin API version %q: %w", version, err)
	}
	if !supportedAPI.Check(v) {
		return fmt.Errorf("plugin API version %s does not satisfy %s", version, supportedAPI)
	}
	return nil
}

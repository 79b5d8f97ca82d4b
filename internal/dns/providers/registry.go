package providers

import (
	"fmt"
	"sync"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/services/auth"
	"github.com/QsSama-W/aliddns/internal/util"
)

// Factory builds a DNS Provider from stored credentials.
type Factory func(store auth.Store) (domain.Provider, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a provider factory to the registry. It panics on empty name,
// nil factory, or duplicate registration (programmer errors detected at
// startup).
func Register(name string, factory Factory) {
	normalized := util.NormalizeKey(name)
	if normalized == "" {
		panic("dns/providers: empty provider name")
	}
	if factory == nil {
		panic("dns/providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalized]; exists {
		panic(fmt.Sprintf("dns/providers: provider %q already registered", name))
	}

	registry[normalized] = factory
}

// Get constructs the DNS Provider for the given name, using the store to
// retrieve credentials.
func Get(name string, store auth.Store) (domain.Provider, error) {
	normalized := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalized]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("dns/providers: unknown provider %q", name)
	}

	return factory(store)
}

// List returns the names of all registered DNS providers.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

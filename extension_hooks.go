package dynauth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

// SchemePack bundles related scheme registrations so downstream modules
// can ship a named set of authentication schemes and apply them in one
// call during bootstrap.
type SchemePack struct {
	Name    string
	Schemes []core.AddSchemeRequest
}

type CommandQueryBundleFactory func(service CommandQueryService) (any, error)

type ExtensionHooks struct {
	mu sync.RWMutex

	schemePacks map[string]SchemePack
	bundles     map[string]CommandQueryBundleFactory
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{
		schemePacks: map[string]SchemePack{},
		bundles:     map[string]CommandQueryBundleFactory{},
	}
}

func (h *ExtensionHooks) RegisterSchemePack(pack SchemePack) error {
	if h == nil {
		return fmt.Errorf("dynauth: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("dynauth: scheme pack name is required")
	}
	if len(pack.Schemes) == 0 {
		return fmt.Errorf("dynauth: scheme pack %q has no schemes", name)
	}

	normalized := SchemePack{
		Name:    name,
		Schemes: append([]core.AddSchemeRequest(nil), pack.Schemes...),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.schemePacks[name]; exists {
		return fmt.Errorf("dynauth: scheme pack %q already registered", name)
	}
	h.schemePacks[name] = normalized
	return nil
}

func (h *ExtensionHooks) RegisterCommandQueryBundle(
	name string,
	factory CommandQueryBundleFactory,
) error {
	if h == nil {
		return fmt.Errorf("dynauth: extension hooks are nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("dynauth: command/query bundle name is required")
	}
	if factory == nil {
		return fmt.Errorf("dynauth: command/query bundle %q factory is required", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.bundles[name]; exists {
		return fmt.Errorf("dynauth: command/query bundle %q already registered", name)
	}
	h.bundles[name] = factory
	return nil
}

// ApplySchemePacks registers every pack's schemes on the manager in
// deterministic pack order. A failing registration aborts the apply and
// leaves earlier registrations in place.
func (h *ExtensionHooks) ApplySchemePacks(ctx context.Context, manager *core.Manager) error {
	if h == nil {
		return nil
	}
	if manager == nil {
		return fmt.Errorf("dynauth: manager is required")
	}

	for _, pack := range h.SchemePacks() {
		for _, req := range pack.Schemes {
			if err := manager.AddScheme(ctx, req); err != nil {
				return fmt.Errorf("dynauth: scheme pack %q: %w", pack.Name, err)
			}
		}
	}
	return nil
}

func (h *ExtensionHooks) BuildCommandQueryBundles(
	service CommandQueryService,
) (map[string]any, error) {
	if h == nil {
		return map[string]any{}, nil
	}
	if service == nil {
		return nil, fmt.Errorf("dynauth: command/query service is required")
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	factories := make(map[string]CommandQueryBundleFactory, len(h.bundles))
	for name, factory := range h.bundles {
		factories[name] = factory
	}
	h.mu.RUnlock()

	result := make(map[string]any, len(names))
	for _, name := range names {
		bundle, err := factories[name](service)
		if err != nil {
			return nil, err
		}
		result[name] = bundle
	}
	return result, nil
}

func (h *ExtensionHooks) SchemePacks() []SchemePack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.schemePacks))
	for name := range h.schemePacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]SchemePack, 0, len(names))
	for _, name := range names {
		pack := h.schemePacks[name]
		out = append(out, SchemePack{
			Name:    pack.Name,
			Schemes: append([]core.AddSchemeRequest(nil), pack.Schemes...),
		})
	}
	return out
}

func (h *ExtensionHooks) BundleNames() []string {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

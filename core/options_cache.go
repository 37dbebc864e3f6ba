package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// CachedOptionsEntry is the settled resolution for one scheme name. The
// generation changes whenever the entry is re-resolved after Clear.
type CachedOptionsEntry struct {
	SchemeName string
	Generation string
	Value      any
}

type registeredScheme struct {
	factory   OptionsFactory
	configure ConfigureFunc
}

type resolveCall struct {
	done  chan struct{}
	value any
	err   error
}

// OptionsCache resolves and caches the configuration value for every scheme
// of one options type. Resolution is exactly-once per scheme name under
// concurrent first access: one factory invocation, one configure pass, one
// hook pass, all callers observing the same value or the same error. A
// failed resolution leaves no entry behind, so the next call retries from
// scratch.
//
// Synchronization is per name: the cache mutex only guards map bookkeeping,
// never factory or hook execution, so unrelated schemes resolve in parallel
// and hooks may peek at settled entries without deadlocking the in-flight
// resolution that invoked them.
type OptionsCache struct {
	optionsType OptionsTypeID
	hooks       *PostConfigureCoordinator

	mu       sync.Mutex
	entries  map[string]CachedOptionsEntry
	inflight map[string]*resolveCall
	schemes  map[string]registeredScheme
}

func NewOptionsCache(optionsType OptionsTypeID, hooks *PostConfigureCoordinator) (*OptionsCache, error) {
	id := OptionsTypeID(strings.TrimSpace(string(optionsType)))
	if id == "" {
		return nil, fmt.Errorf("core: options type is required")
	}
	return &OptionsCache{
		optionsType: id,
		hooks:       hooks,
		entries:     make(map[string]CachedOptionsEntry),
		inflight:    make(map[string]*resolveCall),
		schemes:     make(map[string]registeredScheme),
	}, nil
}

func (c *OptionsCache) OptionsType() OptionsTypeID {
	if c == nil {
		return ""
	}
	return c.optionsType
}

// RegisterScheme captures the factory and configure function supplied at
// scheme registration time. Re-registering a name replaces both; combined
// with Clear this is how a scheme is reconfigured after initial setup.
func (c *OptionsCache) RegisterScheme(name string, factory OptionsFactory, configure ConfigureFunc) error {
	if c == nil {
		return fmt.Errorf("core: options cache is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("core: scheme name is required")
	}
	if factory == nil {
		return fmt.Errorf("core: options factory is required for scheme %q", name)
	}
	c.mu.Lock()
	c.schemes[name] = registeredScheme{factory: factory, configure: configure}
	c.mu.Unlock()
	return nil
}

// Resolve is GetOrAdd with the factory captured by RegisterScheme.
func (c *OptionsCache) Resolve(ctx context.Context, name string) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("core: options cache is nil")
	}
	name = strings.TrimSpace(name)
	c.mu.Lock()
	reg, ok := c.schemes[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("core: scheme not registered with options cache: %s", name)
	}
	return c.GetOrAdd(ctx, name, reg.factory)
}

// GetOrAdd returns the settled value for name, or resolves it by invoking
// factory, the registered configure function, and the post-configure hook
// chain. Concurrent first-time callers for the same name share one
// resolution and one result.
func (c *OptionsCache) GetOrAdd(ctx context.Context, name string, factory OptionsFactory) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("core: options cache is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("core: scheme name is required")
	}
	if factory == nil {
		return nil, fmt.Errorf("core: options factory is required for scheme %q", name)
	}

	c.mu.Lock()
	if entry, ok := c.entries[name]; ok {
		c.mu.Unlock()
		return entry.Value, nil
	}
	if call, ok := c.inflight[name]; ok {
		c.mu.Unlock()
		<-call.done
		return call.value, call.err
	}
	call := &resolveCall{done: make(chan struct{})}
	c.inflight[name] = call
	c.mu.Unlock()

	call.value, call.err = c.resolve(ctx, name, factory)

	c.mu.Lock()
	delete(c.inflight, name)
	if call.err == nil {
		c.entries[name] = CachedOptionsEntry{
			SchemeName: name,
			Generation: uuid.NewString(),
			Value:      call.value,
		}
	}
	c.mu.Unlock()
	close(call.done)

	return call.value, call.err
}

func (c *OptionsCache) resolve(ctx context.Context, name string, factory OptionsFactory) (any, error) {
	value := factory()
	if value == nil {
		return nil, fmt.Errorf("core: options factory produced no value for scheme %q", name)
	}

	c.mu.Lock()
	configure := c.schemes[name].configure
	c.mu.Unlock()
	if configure != nil {
		if err := configure(value); err != nil {
			return nil, fmt.Errorf("core: configure failed for scheme %q: %w", name, err)
		}
	}

	if c.hooks != nil {
		if err := c.hooks.Execute(ctx, c.optionsType, name, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Peek returns the settled value for name without forcing a resolution.
// Names that are absent or still resolving report false.
func (c *OptionsCache) Peek(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	entry, ok := c.entries[strings.TrimSpace(name)]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// Entry is Peek with generation metadata.
func (c *OptionsCache) Entry(name string) (CachedOptionsEntry, bool) {
	if c == nil {
		return CachedOptionsEntry{}, false
	}
	c.mu.Lock()
	entry, ok := c.entries[strings.TrimSpace(name)]
	c.mu.Unlock()
	return entry, ok
}

// Clear drops the settled entry so the next GetOrAdd re-resolves and
// re-validates. An in-flight resolution is unaffected.
func (c *OptionsCache) Clear(name string) bool {
	if c == nil {
		return false
	}
	name = strings.TrimSpace(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[name]; !ok {
		return false
	}
	delete(c.entries, name)
	return true
}

// Entries returns a name-sorted snapshot of the settled entries.
func (c *OptionsCache) Entries() []CachedOptionsEntry {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CachedOptionsEntry, 0, len(names))
	for _, name := range names {
		out = append(out, c.entries[name])
	}
	c.mu.Unlock()
	return out
}

package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// HandlerTypeRegistry records which handler types participate in dynamic
// scheme management. Registration is purely additive: multiple scheme
// instances may share a handler type, so duplicates coexist.
type HandlerTypeRegistry struct {
	mu       sync.RWMutex
	handlers []HandlerTypeID
}

func NewHandlerTypeRegistry() *HandlerTypeRegistry {
	return &HandlerTypeRegistry{handlers: make([]HandlerTypeID, 0)}
}

func (r *HandlerTypeRegistry) Register(handlerType HandlerTypeID) error {
	if r == nil {
		return fmt.Errorf("core: handler type registry is nil")
	}
	id := HandlerTypeID(strings.TrimSpace(string(handlerType)))
	if id == "" {
		return fmt.Errorf("core: handler type is required")
	}
	r.mu.Lock()
	r.handlers = append(r.handlers, id)
	r.mu.Unlock()
	return nil
}

// HandlerTypes returns a snapshot in registration order.
func (r *HandlerTypeRegistry) HandlerTypes() []HandlerTypeID {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]HandlerTypeID, len(r.handlers))
	copy(out, r.handlers)
	r.mu.RUnlock()
	return out
}

func (r *HandlerTypeRegistry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// SchemeDefinitionRegistry tracks registered scheme definitions by name and
// doubles as the default SchemeProvider implementation.
type SchemeDefinitionRegistry struct {
	mu      sync.RWMutex
	schemes map[string]SchemeDefinition
}

func NewSchemeDefinitionRegistry() *SchemeDefinitionRegistry {
	return &SchemeDefinitionRegistry{schemes: make(map[string]SchemeDefinition)}
}

func (r *SchemeDefinitionRegistry) Register(def SchemeDefinition) error {
	if r == nil {
		return fmt.Errorf("core: scheme definition registry is nil")
	}
	def.Name = strings.TrimSpace(def.Name)
	if err := def.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemes[def.Name]; exists {
		return fmt.Errorf("core: scheme already registered: %s", def.Name)
	}
	r.schemes[def.Name] = def
	return nil
}

func (r *SchemeDefinitionRegistry) Get(name string) (SchemeDefinition, bool) {
	name = strings.TrimSpace(name)
	if r == nil || name == "" {
		return SchemeDefinition{}, false
	}
	r.mu.RLock()
	def, ok := r.schemes[name]
	r.mu.RUnlock()
	return def, ok
}

func (r *SchemeDefinitionRegistry) Remove(name string) bool {
	name = strings.TrimSpace(name)
	if r == nil || name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemes[name]; !ok {
		return false
	}
	delete(r.schemes, name)
	return true
}

func (r *SchemeDefinitionRegistry) List() []SchemeDefinition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]SchemeDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, r.schemes[name])
	}
	r.mu.RUnlock()
	return out
}

func (r *SchemeDefinitionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *SchemeDefinitionRegistry) ListSchemeNames(context.Context) ([]string, error) {
	return r.Names(), nil
}

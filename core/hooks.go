package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// PostConfigureHook runs after an options value has been constructed and
// configured, before it is cached. Hooks are the extension point for
// cross-scheme validation.
type PostConfigureHook interface {
	Name() string
	AfterConfigure(ctx context.Context, schemeName string, options any) error
}

type PostConfigureHookFunc struct {
	HookName string
	Fn       func(ctx context.Context, schemeName string, options any) error
}

func (h PostConfigureHookFunc) Name() string { return h.HookName }

func (h PostConfigureHookFunc) AfterConfigure(ctx context.Context, schemeName string, options any) error {
	if h.Fn == nil {
		return nil
	}
	return h.Fn(ctx, schemeName, options)
}

// PostConfigureCoordinator holds the ordered hook chains, one per options
// type. Registration is idempotent by hook name: installing the same hook
// twice must not double-validate.
type PostConfigureCoordinator struct {
	mu    sync.RWMutex
	hooks map[OptionsTypeID][]PostConfigureHook
}

func NewPostConfigureCoordinator() *PostConfigureCoordinator {
	return &PostConfigureCoordinator{hooks: make(map[OptionsTypeID][]PostConfigureHook)}
}

func (c *PostConfigureCoordinator) Register(optionsType OptionsTypeID, hook PostConfigureHook) error {
	if c == nil {
		return fmt.Errorf("core: post-configure coordinator is nil")
	}
	if hook == nil {
		return fmt.Errorf("core: post-configure hook is required")
	}
	id := OptionsTypeID(strings.TrimSpace(string(optionsType)))
	if id == "" {
		return fmt.Errorf("core: options type is required")
	}
	name := hookName(hook)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.hooks[id] {
		if hookName(existing) == name {
			return nil
		}
	}
	c.hooks[id] = append(c.hooks[id], hook)
	return nil
}

// Execute runs the chain for one options type in registration order. The
// first hook error aborts the chain so callers can reject the resolution.
func (c *PostConfigureCoordinator) Execute(ctx context.Context, optionsType OptionsTypeID, schemeName string, options any) error {
	for _, hook := range c.chain(optionsType) {
		if hook == nil {
			continue
		}
		if err := hook.AfterConfigure(ctx, schemeName, options); err != nil {
			return fmt.Errorf("core: post-configure hook %q failed for scheme %q: %w", hookName(hook), schemeName, err)
		}
	}
	return nil
}

func (c *PostConfigureCoordinator) chain(optionsType OptionsTypeID) []PostConfigureHook {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	registered := c.hooks[optionsType]
	out := make([]PostConfigureHook, len(registered))
	copy(out, registered)
	return out
}

func hookName(hook PostConfigureHook) string {
	if hook == nil {
		return "unknown"
	}
	name := strings.TrimSpace(hook.Name())
	if name == "" {
		return "unnamed"
	}
	return name
}

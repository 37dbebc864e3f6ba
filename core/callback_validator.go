package core

import (
	"context"
	"fmt"
	"strings"
)

// CallbackPathValidatorName identifies the uniqueness validator in hook
// chains; registering it twice for one options type is a no-op.
const CallbackPathValidatorName = "callback-path-uniqueness"

// OptionsPeeker is the read-only cache view the validator scans: settled
// entries only, never forcing resolution of schemes that have no options yet.
type OptionsPeeker interface {
	Peek(schemeName string) (any, bool)
}

// CallbackPathValidator enforces that no two remote schemes share a
// non-empty callback path. It runs as a post-configure hook at the moment a
// remote scheme's options settle.
//
// The scan covers schemes whose options have already been resolved; a scheme
// registered but not yet resolved is skipped, so registration order
// determines validation completeness. That matches the source behavior and
// keeps resolution O(n) once per scheme instead of re-validating the world
// on every registration.
type CallbackPathValidator struct {
	provider SchemeProvider
	cache    OptionsPeeker
}

func NewCallbackPathValidator(provider SchemeProvider, cache OptionsPeeker) (*CallbackPathValidator, error) {
	if provider == nil {
		return nil, fmt.Errorf("core: scheme provider is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("core: options peeker is required")
	}
	return &CallbackPathValidator{provider: provider, cache: cache}, nil
}

func (v *CallbackPathValidator) Name() string { return CallbackPathValidatorName }

func (v *CallbackPathValidator) AfterConfigure(ctx context.Context, schemeName string, options any) error {
	if v == nil || v.provider == nil || v.cache == nil {
		return fmt.Errorf("core: callback path validator is not configured")
	}
	remote, ok := options.(RemoteOptions)
	if !ok {
		return nil
	}
	path := strings.TrimSpace(remote.RemoteCallbackPath())
	if path == "" {
		return nil
	}

	names, err := v.provider.ListSchemeNames(ctx)
	if err != nil {
		return NewProviderQueryError(schemeName, err)
	}

	schemeName = strings.TrimSpace(schemeName)
	for _, other := range names {
		other = strings.TrimSpace(other)
		if other == "" || other == schemeName {
			continue
		}
		cached, ok := v.cache.Peek(other)
		if !ok {
			continue
		}
		otherRemote, ok := cached.(RemoteOptions)
		if !ok {
			continue
		}
		if strings.TrimSpace(otherRemote.RemoteCallbackPath()) == path {
			return NewCallbackConflictError(schemeName, other, path)
		}
	}
	return nil
}

var _ PostConfigureHook = (*CallbackPathValidator)(nil)

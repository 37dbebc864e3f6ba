package core

import (
	"context"
	"fmt"
	"strings"
)

// HandlerTypeID tags the protocol handler that processes a scheme. The core
// never inspects handler behavior; the tag exists for bookkeeping and so a
// host can route scheme dispatch to the right handler implementation.
type HandlerTypeID string

// OptionsTypeID tags the shape of a scheme's configuration. Schemes sharing
// an options type share one options cache and one post-configure hook chain.
type OptionsTypeID string

// RemoteOptionsType is the default options type for redirect-based schemes.
const RemoteOptionsType OptionsTypeID = "remote"

type SchemeDefinition struct {
	Name        string
	DisplayName string
	HandlerType HandlerTypeID
	OptionsType OptionsTypeID
}

func (d SchemeDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("core: scheme name is required")
	}
	if strings.TrimSpace(string(d.HandlerType)) == "" {
		return fmt.Errorf("core: handler type is required for scheme %q", d.Name)
	}
	if strings.TrimSpace(string(d.OptionsType)) == "" {
		return fmt.Errorf("core: options type is required for scheme %q", d.Name)
	}
	return nil
}

// RemoteOptions marks an options value as belonging to a redirect-based
// scheme. Any options value implementing it participates in callback-path
// uniqueness validation; everything else is opaque to the core.
type RemoteOptions interface {
	RemoteCallbackPath() string
}

// RemoteSchemeOptions is the stock configuration for a scheme that performs a
// redirect handshake. Handler-specific settings ride along in Extra and are
// never interpreted here.
type RemoteSchemeOptions struct {
	CallbackPath string
	Extra        map[string]any
}

func (o *RemoteSchemeOptions) RemoteCallbackPath() string {
	if o == nil {
		return ""
	}
	return o.CallbackPath
}

// SchemeProvider lists every scheme name known so far, including schemes
// registered after the process started serving traffic.
type SchemeProvider interface {
	ListSchemeNames(ctx context.Context) ([]string, error)
}

type SchemeProviderFunc func(ctx context.Context) ([]string, error)

func (fn SchemeProviderFunc) ListSchemeNames(ctx context.Context) ([]string, error) {
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

// OptionsFactory produces a fresh, unconfigured options value for one scheme.
type OptionsFactory func() any

// ConfigureFunc is the caller-supplied customization captured at scheme
// registration time; it runs against the factory output before any
// post-configure hooks.
type ConfigureFunc func(options any) error

type AddSchemeRequest struct {
	Name        string
	DisplayName string
	HandlerType HandlerTypeID
	OptionsType OptionsTypeID

	// Remote installs the callback-path uniqueness validator for the
	// request's options type. Factory may be nil for remote schemes, in
	// which case a *RemoteSchemeOptions factory is used.
	Remote    bool
	Factory   OptionsFactory
	Configure ConfigureFunc
}

type RemoteSchemeRequest struct {
	Name        string
	DisplayName string
	HandlerType HandlerTypeID
	OptionsType OptionsTypeID
	Factory     OptionsFactory
	Configure   ConfigureFunc

	// CallbackPath, when set, is applied to the resolved options before
	// Configure runs. The options value must implement RemoteOptions with
	// a settable path or be a *RemoteSchemeOptions.
	CallbackPath string
}

// SchemeDescription is the redacted read view served by DescribeScheme. It
// exposes resolution state and the callback path but never the options value
// itself.
type SchemeDescription struct {
	Name         string
	DisplayName  string
	HandlerType  HandlerTypeID
	OptionsType  OptionsTypeID
	Resolved     bool
	Generation   string
	Remote       bool
	CallbackPath string
}

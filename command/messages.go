package command

import (
	"fmt"
	"strings"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

const (
	TypeRegisterScheme       = "dynauth.command.scheme.register"
	TypeRegisterRemoteScheme = "dynauth.command.scheme.register_remote"
	TypeRemoveScheme         = "dynauth.command.scheme.remove"
	TypeReconfigureScheme    = "dynauth.command.scheme.reconfigure"
	TypeResolveOptions       = "dynauth.command.options.resolve"
	TypeClearOptions         = "dynauth.command.options.clear"
)

type RegisterSchemeMessage struct {
	Request core.AddSchemeRequest
}

func (RegisterSchemeMessage) Type() string { return TypeRegisterScheme }

func (m RegisterSchemeMessage) Validate() error {
	if strings.TrimSpace(m.Request.Name) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	if strings.TrimSpace(string(m.Request.HandlerType)) == "" {
		return fmt.Errorf("command: handler type is required")
	}
	if strings.TrimSpace(string(m.Request.OptionsType)) == "" {
		return fmt.Errorf("command: options type is required")
	}
	if m.Request.Factory == nil && !m.Request.Remote {
		return fmt.Errorf("command: options factory is required for non-remote schemes")
	}
	return nil
}

type RegisterRemoteSchemeMessage struct {
	Request core.RemoteSchemeRequest
}

func (RegisterRemoteSchemeMessage) Type() string { return TypeRegisterRemoteScheme }

func (m RegisterRemoteSchemeMessage) Validate() error {
	if strings.TrimSpace(m.Request.Name) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	if strings.TrimSpace(string(m.Request.HandlerType)) == "" {
		return fmt.Errorf("command: handler type is required")
	}
	return nil
}

type RemoveSchemeMessage struct {
	SchemeName string
}

func (RemoveSchemeMessage) Type() string { return TypeRemoveScheme }

func (m RemoveSchemeMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	return nil
}

type ReconfigureSchemeMessage struct {
	SchemeName string
	Configure  core.ConfigureFunc
}

func (ReconfigureSchemeMessage) Type() string { return TypeReconfigureScheme }

func (m ReconfigureSchemeMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	if m.Configure == nil {
		return fmt.Errorf("command: configure function is required")
	}
	return nil
}

type ResolveOptionsMessage struct {
	SchemeName string
}

func (ResolveOptionsMessage) Type() string { return TypeResolveOptions }

func (m ResolveOptionsMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	return nil
}

type ClearOptionsMessage struct {
	SchemeName string
}

func (ClearOptionsMessage) Type() string { return TypeClearOptions }

func (m ClearOptionsMessage) Validate() error {
	if strings.TrimSpace(m.SchemeName) == "" {
		return fmt.Errorf("command: scheme name is required")
	}
	return nil
}

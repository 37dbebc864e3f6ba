package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

// MutatingService is the scheme-management surface the commands delegate to.
type MutatingService interface {
	AddScheme(ctx context.Context, req core.AddSchemeRequest) error
	AddRemoteScheme(ctx context.Context, req core.RemoteSchemeRequest) error
	RemoveScheme(ctx context.Context, name string) error
	ReconfigureScheme(ctx context.Context, name string, configure core.ConfigureFunc) error
	ResolveOptions(ctx context.Context, name string) (any, error)
	ClearOptions(ctx context.Context, name string) error
}

type RegisterSchemeCommand struct {
	service MutatingService
}

func NewRegisterSchemeCommand(service MutatingService) *RegisterSchemeCommand {
	return &RegisterSchemeCommand{service: service}
}

func (c *RegisterSchemeCommand) Execute(ctx context.Context, msg RegisterSchemeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: scheme registration service is required")
	}
	return c.service.AddScheme(ctx, msg.Request)
}

type RegisterRemoteSchemeCommand struct {
	service MutatingService
}

func NewRegisterRemoteSchemeCommand(service MutatingService) *RegisterRemoteSchemeCommand {
	return &RegisterRemoteSchemeCommand{service: service}
}

func (c *RegisterRemoteSchemeCommand) Execute(ctx context.Context, msg RegisterRemoteSchemeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: remote scheme registration service is required")
	}
	return c.service.AddRemoteScheme(ctx, msg.Request)
}

type RemoveSchemeCommand struct {
	service MutatingService
}

func NewRemoveSchemeCommand(service MutatingService) *RemoveSchemeCommand {
	return &RemoveSchemeCommand{service: service}
}

func (c *RemoveSchemeCommand) Execute(ctx context.Context, msg RemoveSchemeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: scheme removal service is required")
	}
	return c.service.RemoveScheme(ctx, msg.SchemeName)
}

type ReconfigureSchemeCommand struct {
	service MutatingService
}

func NewReconfigureSchemeCommand(service MutatingService) *ReconfigureSchemeCommand {
	return &ReconfigureSchemeCommand{service: service}
}

func (c *ReconfigureSchemeCommand) Execute(ctx context.Context, msg ReconfigureSchemeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: scheme reconfiguration service is required")
	}
	return c.service.ReconfigureScheme(ctx, msg.SchemeName, msg.Configure)
}

type ResolveOptionsCommand struct {
	service MutatingService
}

func NewResolveOptionsCommand(service MutatingService) *ResolveOptionsCommand {
	return &ResolveOptionsCommand{service: service}
}

func (c *ResolveOptionsCommand) Execute(ctx context.Context, msg ResolveOptionsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: options resolution service is required")
	}
	out, err := c.service.ResolveOptions(ctx, msg.SchemeName)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ClearOptionsCommand struct {
	service MutatingService
}

func NewClearOptionsCommand(service MutatingService) *ClearOptionsCommand {
	return &ClearOptionsCommand{service: service}
}

func (c *ClearOptionsCommand) Execute(ctx context.Context, msg ClearOptionsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: options invalidation service is required")
	}
	return c.service.ClearOptions(ctx, msg.SchemeName)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}

package dynauth

import (
	"fmt"

	dynauthcommand "github.com/WasimAhmad/DymamicAuthProviders/command"
	dynauthquery "github.com/WasimAhmad/DymamicAuthProviders/query"
)

type CommandQueryService interface {
	dynauthcommand.MutatingService
	dynauthquery.SchemeReader
	dynauthquery.SchemeViewReader
}

type Commands struct {
	RegisterScheme       *dynauthcommand.RegisterSchemeCommand
	RegisterRemoteScheme *dynauthcommand.RegisterRemoteSchemeCommand
	RemoveScheme         *dynauthcommand.RemoveSchemeCommand
	ReconfigureScheme    *dynauthcommand.ReconfigureSchemeCommand
	ResolveOptions       *dynauthcommand.ResolveOptionsCommand
	ClearOptions         *dynauthcommand.ClearOptionsCommand
}

type Queries struct {
	ListSchemes    *dynauthquery.ListSchemesQuery
	GetScheme      *dynauthquery.GetSchemeQuery
	DescribeScheme *dynauthquery.DescribeSchemeQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	schemeViewReader dynauthquery.SchemeViewReader
}

// WithSchemeViewReader swaps the reader backing DescribeScheme, typically
// for a caching decorator wrapped around the manager.
func WithSchemeViewReader(reader dynauthquery.SchemeViewReader) FacadeOption {
	return func(options *facadeOptions) {
		options.schemeViewReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("dynauth: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	viewReader := cfg.schemeViewReader
	if viewReader == nil {
		viewReader = service
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		RegisterScheme:       dynauthcommand.NewRegisterSchemeCommand(service),
		RegisterRemoteScheme: dynauthcommand.NewRegisterRemoteSchemeCommand(service),
		RemoveScheme:         dynauthcommand.NewRemoveSchemeCommand(service),
		ReconfigureScheme:    dynauthcommand.NewReconfigureSchemeCommand(service),
		ResolveOptions:       dynauthcommand.NewResolveOptionsCommand(service),
		ClearOptions:         dynauthcommand.NewClearOptionsCommand(service),
	}
	facade.queries = Queries{
		ListSchemes:    dynauthquery.NewListSchemesQuery(service),
		GetScheme:      dynauthquery.NewGetSchemeQuery(service),
		DescribeScheme: dynauthquery.NewDescribeSchemeQuery(viewReader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

package dynauth

import "github.com/WasimAhmad/DymamicAuthProviders/core"

type Config = core.Config

type ValidationConfig = core.ValidationConfig

type Option = core.Option

type Manager = core.Manager

type HandlerTypeID = core.HandlerTypeID
type OptionsTypeID = core.OptionsTypeID
type SchemeDefinition = core.SchemeDefinition
type SchemeDescription = core.SchemeDescription
type RemoteOptions = core.RemoteOptions
type RemoteSchemeOptions = core.RemoteSchemeOptions
type SchemeProvider = core.SchemeProvider
type PostConfigureHook = core.PostConfigureHook
type MetricsRecorder = core.MetricsRecorder
type OptionsFactory = core.OptionsFactory
type ConfigureFunc = core.ConfigureFunc

type AddSchemeRequest = core.AddSchemeRequest
type RemoteSchemeRequest = core.RemoteSchemeRequest

const RemoteOptionsType = core.RemoteOptionsType

var (
	WithLogger                   = core.WithLogger
	WithLoggerProvider           = core.WithLoggerProvider
	WithMetricsRecorder          = core.WithMetricsRecorder
	WithErrorFactory             = core.WithErrorFactory
	WithErrorMapper              = core.WithErrorMapper
	WithConfigProvider           = core.WithConfigProvider
	WithOptionsResolver          = core.WithOptionsResolver
	WithSchemeProvider           = core.WithSchemeProvider
	WithHandlerTypeRegistry      = core.WithHandlerTypeRegistry
	WithPostConfigureCoordinator = core.WithPostConfigureCoordinator
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	return core.NewManager(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Manager, error) {
	return core.Setup(cfg, opts...)
}

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

var (
	ErrSchemeNotFound = errors.New("core: scheme not registered")
)

// Manager owns the dynamic scheme lifecycle: definition and handler-type
// registration, per-options-type caches, and validator installation. It is
// safe for concurrent use by a multi-threaded host.
type Manager struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	schemeProvider  SchemeProvider
	definitions     *SchemeDefinitionRegistry
	handlerTypes    *HandlerTypeRegistry
	hooks           *PostConfigureCoordinator

	cacheMu    sync.Mutex
	caches     map[OptionsTypeID]*OptionsCache
	validators map[OptionsTypeID]bool
}

// Setup builds a manager with the same semantics as NewManager. It exists
// for callers wiring the module through a bootstrap phase.
func Setup(cfg Config, options ...Option) (*Manager, error) {
	return NewManager(cfg, options...)
}

func NewManager(cfg Config, options ...Option) (*Manager, error) {
	builder := defaultManagerBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("dynauth", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("dynauth"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.handlerRegistry == nil {
		builder.handlerRegistry = NewHandlerTypeRegistry()
	}
	if builder.hooks == nil {
		builder.hooks = NewPostConfigureCoordinator()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	m := &Manager{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		definitions:     NewSchemeDefinitionRegistry(),
		handlerTypes:    builder.handlerRegistry,
		hooks:           builder.hooks,
		caches:          make(map[OptionsTypeID]*OptionsCache),
		validators:      make(map[OptionsTypeID]bool),
	}
	m.schemeProvider = builder.schemeProvider
	if m.schemeProvider == nil {
		m.schemeProvider = m.definitions
	}
	return m, nil
}

func (m *Manager) Config() Config {
	if m == nil {
		return Config{}
	}
	return m.config
}

// HandlerTypes exposes the handler-type registry snapshot.
func (m *Manager) HandlerTypes() []HandlerTypeID {
	if m == nil {
		return nil
	}
	return m.handlerTypes.HandlerTypes()
}

// AddScheme registers a scheme definition, records its handler type, and
// captures the options factory and configure function for lazy resolution.
// Remote schemes additionally get the callback-path uniqueness validator
// installed for their options type, once, idempotently.
func (m *Manager) AddScheme(ctx context.Context, req AddSchemeRequest) error {
	startedAt := time.Now()
	fields := map[string]any{
		"scheme_name":  req.Name,
		"handler_type": string(req.HandlerType),
		"options_type": string(req.OptionsType),
		"remote":       req.Remote,
	}

	err := m.addScheme(ctx, req)
	m.observeOperation(ctx, startedAt, "add_scheme", err, fields)
	if err != nil {
		return m.mapError(err)
	}
	return nil
}

func (m *Manager) addScheme(ctx context.Context, req AddSchemeRequest) error {
	if m == nil {
		return fmt.Errorf("core: manager is nil")
	}
	req.Name = strings.TrimSpace(req.Name)

	factory := req.Factory
	if factory == nil && req.Remote {
		factory = func() any { return &RemoteSchemeOptions{} }
	}
	if factory == nil {
		return fmt.Errorf("core: options factory is required for scheme %q", req.Name)
	}

	def := SchemeDefinition{
		Name:        req.Name,
		DisplayName: strings.TrimSpace(req.DisplayName),
		HandlerType: req.HandlerType,
		OptionsType: req.OptionsType,
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if err := m.definitions.Register(def); err != nil {
		return err
	}
	if err := m.handlerTypes.Register(def.HandlerType); err != nil {
		return err
	}

	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return err
	}
	if err := cache.RegisterScheme(def.Name, factory, req.Configure); err != nil {
		return err
	}

	if req.Remote && !m.config.Validation.DisableCallbackUniqueness {
		if err := m.installCallbackValidator(def.OptionsType, cache); err != nil {
			return err
		}
	}
	return nil
}

// AddRemoteScheme is the convenience registration for redirect-based
// schemes; the validator is always installed.
func (m *Manager) AddRemoteScheme(ctx context.Context, req RemoteSchemeRequest) error {
	optionsType := req.OptionsType
	if strings.TrimSpace(string(optionsType)) == "" {
		optionsType = RemoteOptionsType
	}
	configure := req.Configure
	if callbackPath := strings.TrimSpace(req.CallbackPath); callbackPath != "" {
		userConfigure := configure
		schemeName := req.Name
		configure = func(options any) error {
			switch target := options.(type) {
			case *RemoteSchemeOptions:
				target.CallbackPath = callbackPath
			case interface{ SetRemoteCallbackPath(string) }:
				target.SetRemoteCallbackPath(callbackPath)
			default:
				return fmt.Errorf("core: scheme %q options %T cannot accept a callback path", schemeName, options)
			}
			if userConfigure != nil {
				return userConfigure(options)
			}
			return nil
		}
	}
	return m.AddScheme(ctx, AddSchemeRequest{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		HandlerType: req.HandlerType,
		OptionsType: optionsType,
		Remote:      true,
		Factory:     req.Factory,
		Configure:   configure,
	})
}

// ResolveOptions forces the lazy resolution for one scheme. The first call
// runs the factory, configure function, and validation hooks; later calls
// return the cached value.
func (m *Manager) ResolveOptions(ctx context.Context, name string) (any, error) {
	startedAt := time.Now()
	name = strings.TrimSpace(name)
	fields := map[string]any{"scheme_name": name}

	value, err := m.resolveOptions(ctx, name)
	m.observeOperation(ctx, startedAt, "resolve_options", err, fields)
	if err != nil {
		return nil, m.mapError(err)
	}
	return value, nil
}

func (m *Manager) resolveOptions(ctx context.Context, name string) (any, error) {
	def, ok := m.definitions.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemeNotFound, name)
	}
	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return nil, err
	}
	return cache.Resolve(ctx, name)
}

// ClearOptions invalidates a scheme's cached options so the next resolution
// re-runs configuration and validation.
func (m *Manager) ClearOptions(ctx context.Context, name string) error {
	startedAt := time.Now()
	name = strings.TrimSpace(name)
	fields := map[string]any{"scheme_name": name}

	err := m.clearOptions(name)
	m.observeOperation(ctx, startedAt, "clear_options", err, fields)
	if err != nil {
		return m.mapError(err)
	}
	return nil
}

func (m *Manager) clearOptions(name string) error {
	def, ok := m.definitions.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemeNotFound, name)
	}
	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return err
	}
	cache.Clear(name)
	return nil
}

// ReconfigureScheme replaces a scheme's configure function and invalidates
// the cached options so the new configuration takes effect on the next
// resolution.
func (m *Manager) ReconfigureScheme(ctx context.Context, name string, configure ConfigureFunc) error {
	startedAt := time.Now()
	name = strings.TrimSpace(name)
	fields := map[string]any{"scheme_name": name}

	err := m.reconfigureScheme(name, configure)
	m.observeOperation(ctx, startedAt, "reconfigure_scheme", err, fields)
	if err != nil {
		return m.mapError(err)
	}
	return nil
}

func (m *Manager) reconfigureScheme(name string, configure ConfigureFunc) error {
	def, ok := m.definitions.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemeNotFound, name)
	}
	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return err
	}
	cache.mu.Lock()
	reg, ok := cache.schemes[name]
	cache.mu.Unlock()
	if !ok {
		return fmt.Errorf("core: scheme not registered with options cache: %s", name)
	}
	if err := cache.RegisterScheme(name, reg.factory, configure); err != nil {
		return err
	}
	cache.Clear(name)
	return nil
}

// RemoveScheme de-registers a scheme and drops its cached options. The
// handler-type registry is additive and keeps its record.
func (m *Manager) RemoveScheme(ctx context.Context, name string) error {
	startedAt := time.Now()
	name = strings.TrimSpace(name)
	fields := map[string]any{"scheme_name": name}

	err := m.removeScheme(name)
	m.observeOperation(ctx, startedAt, "remove_scheme", err, fields)
	if err != nil {
		return m.mapError(err)
	}
	return nil
}

func (m *Manager) removeScheme(name string) error {
	def, ok := m.definitions.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemeNotFound, name)
	}
	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return err
	}
	cache.Clear(name)
	cache.mu.Lock()
	delete(cache.schemes, name)
	cache.mu.Unlock()
	m.definitions.Remove(name)
	return nil
}

func (m *Manager) ListSchemes(context.Context) ([]SchemeDefinition, error) {
	if m == nil {
		return nil, fmt.Errorf("core: manager is nil")
	}
	return m.definitions.List(), nil
}

func (m *Manager) GetScheme(_ context.Context, name string) (SchemeDefinition, error) {
	if m == nil {
		return SchemeDefinition{}, fmt.Errorf("core: manager is nil")
	}
	def, ok := m.definitions.Get(name)
	if !ok {
		return SchemeDefinition{}, m.mapError(fmt.Errorf("%w: %s", ErrSchemeNotFound, name))
	}
	return def, nil
}

// DescribeScheme returns the redacted read view of one scheme, including its
// resolution state and, for settled remote options, the callback path.
func (m *Manager) DescribeScheme(_ context.Context, name string) (SchemeDescription, error) {
	if m == nil {
		return SchemeDescription{}, fmt.Errorf("core: manager is nil")
	}
	name = strings.TrimSpace(name)
	def, ok := m.definitions.Get(name)
	if !ok {
		return SchemeDescription{}, m.mapError(fmt.Errorf("%w: %s", ErrSchemeNotFound, name))
	}

	desc := SchemeDescription{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		HandlerType: def.HandlerType,
		OptionsType: def.OptionsType,
	}
	cache, err := m.ensureCache(def.OptionsType)
	if err != nil {
		return SchemeDescription{}, m.mapError(err)
	}
	entry, ok := cache.Entry(name)
	if !ok {
		return desc, nil
	}
	desc.Resolved = true
	desc.Generation = entry.Generation
	if remote, isRemote := entry.Value.(RemoteOptions); isRemote {
		desc.Remote = true
		desc.CallbackPath = remote.RemoteCallbackPath()
	}
	return desc, nil
}

// OptionsCacheFor exposes the cache for one options type, creating it on
// first use. Hosts use it to wire additional post-configure hooks or to
// drive GetOrAdd directly.
func (m *Manager) OptionsCacheFor(optionsType OptionsTypeID) (*OptionsCache, error) {
	cache, err := m.ensureCache(optionsType)
	if err != nil {
		return nil, m.mapError(err)
	}
	return cache, nil
}

func (m *Manager) ensureCache(optionsType OptionsTypeID) (*OptionsCache, error) {
	if m == nil {
		return nil, fmt.Errorf("core: manager is nil")
	}
	id := OptionsTypeID(strings.TrimSpace(string(optionsType)))
	if id == "" {
		return nil, fmt.Errorf("core: options type is required")
	}
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()
	if cache, ok := m.caches[id]; ok {
		return cache, nil
	}
	cache, err := NewOptionsCache(id, m.hooks)
	if err != nil {
		return nil, err
	}
	m.caches[id] = cache
	return cache, nil
}

func (m *Manager) installCallbackValidator(optionsType OptionsTypeID, cache *OptionsCache) error {
	m.cacheMu.Lock()
	installed := m.validators[optionsType]
	m.cacheMu.Unlock()
	if installed {
		return nil
	}

	validator, err := NewCallbackPathValidator(m.schemeProvider, cache)
	if err != nil {
		return err
	}
	// The coordinator also dedupes by hook name, so a racing double install
	// still yields a single validation pass.
	if err := m.hooks.Register(optionsType, validator); err != nil {
		return err
	}
	m.cacheMu.Lock()
	m.validators[optionsType] = true
	m.cacheMu.Unlock()
	return nil
}

func (m *Manager) mapError(err error) error {
	if err == nil {
		return nil
	}
	if m == nil || m.errorMapper == nil {
		return err
	}
	if mapped := m.errorMapper(err); mapped != nil {
		return mapped
	}
	return err
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	if mapped := mapper(err); mapped != nil {
		return mapped
	}
	return err
}

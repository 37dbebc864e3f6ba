package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
	"github.com/WasimAhmad/DymamicAuthProviders/query"
)

const schemeViewCacheKeyPrefix = "dynauth::scheme_view::v1"

// CachedSchemeViewStore decorates a SchemeViewReader with a read-through
// cache for DescribeScheme. Callers that mutate a scheme must invalidate
// its view with InvalidateScheme or they will keep reading the stale
// resolution state until the cache TTL expires.
type CachedSchemeViewStore struct {
	base  query.SchemeViewReader
	cache repositorycache.CacheService
}

func NewCachedSchemeViewStore(
	base query.SchemeViewReader,
	cacheService repositorycache.CacheService,
) (*CachedSchemeViewStore, error) {
	if base == nil {
		return nil, fmt.Errorf("store: base scheme view reader is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("store: scheme view cache service is required")
	}
	return &CachedSchemeViewStore{base: base, cache: cacheService}, nil
}

// SchemeViewCacheKey returns the deterministic cache key contract for
// scheme view reads: dynauth::scheme_view::v1::<scheme_name> with the
// scheme name trimmed and URL-path escaped.
func SchemeViewCacheKey(schemeName string) (string, error) {
	trimmed := strings.TrimSpace(schemeName)
	if trimmed == "" {
		return "", fmt.Errorf("store: scheme name is required")
	}
	return schemeViewCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedSchemeViewStore) DescribeScheme(ctx context.Context, name string) (core.SchemeDescription, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.SchemeDescription{}, fmt.Errorf("store: cached scheme view store is not configured")
	}
	cacheKey, err := SchemeViewCacheKey(name)
	if err != nil {
		return core.SchemeDescription{}, err
	}

	view, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.SchemeDescription, error) {
		return s.base.DescribeScheme(ctx, strings.TrimSpace(name))
	})
	if err != nil {
		return core.SchemeDescription{}, err
	}
	return view, nil
}

// InvalidateScheme drops the cached view for a scheme so the next
// DescribeScheme re-reads the live resolution state.
func (s *CachedSchemeViewStore) InvalidateScheme(ctx context.Context, name string) error {
	if s == nil || s.cache == nil {
		return fmt.Errorf("store: cached scheme view store is not configured")
	}
	cacheKey, err := SchemeViewCacheKey(name)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ query.SchemeViewReader = (*CachedSchemeViewStore)(nil)

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

type stubSchemeViewReader struct {
	mu            sync.Mutex
	view          core.SchemeDescription
	describeCalls int
	describeErr   error
}

func (s *stubSchemeViewReader) DescribeScheme(_ context.Context, name string) (core.SchemeDescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.describeCalls++
	if s.describeErr != nil {
		return core.SchemeDescription{}, s.describeErr
	}
	view := s.view
	view.Name = name
	return view, nil
}

func TestCachedSchemeViewStore_Describe_MissFetchThenHit(t *testing.T) {
	cacheService := newTestSchemeViewCacheService(t)
	base := &stubSchemeViewReader{
		view: core.SchemeDescription{
			HandlerType:  "oauth",
			OptionsType:  core.RemoteOptionsType,
			Remote:       true,
			Resolved:     true,
			CallbackPath: "/signin-github",
		},
	}

	store, err := NewCachedSchemeViewStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached scheme view store: %v", err)
	}

	if _, err := store.DescribeScheme(context.Background(), "github"); err != nil {
		t.Fatalf("first describe: %v", err)
	}
	if base.describeCalls != 1 {
		t.Fatalf("expected first describe to hit the base reader once, got %d", base.describeCalls)
	}

	view, err := store.DescribeScheme(context.Background(), "github")
	if err != nil {
		t.Fatalf("second describe: %v", err)
	}
	if base.describeCalls != 1 {
		t.Fatalf("expected second describe to be a cache hit, base calls=%d", base.describeCalls)
	}
	if view.CallbackPath != "/signin-github" {
		t.Fatalf("unexpected cached view: %+v", view)
	}
}

func TestCachedSchemeViewStore_InvalidateForcesRefetch(t *testing.T) {
	cacheService := newTestSchemeViewCacheService(t)
	base := &stubSchemeViewReader{view: core.SchemeDescription{Remote: true}}

	store, err := NewCachedSchemeViewStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached scheme view store: %v", err)
	}

	if _, err := store.DescribeScheme(context.Background(), "github"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if err := store.InvalidateScheme(context.Background(), "github"); err != nil {
		t.Fatalf("invalidate scheme: %v", err)
	}
	if _, err := store.DescribeScheme(context.Background(), "github"); err != nil {
		t.Fatalf("describe after invalidate: %v", err)
	}
	if base.describeCalls != 2 {
		t.Fatalf("expected refetch after invalidation, base calls=%d", base.describeCalls)
	}
}

func TestSchemeViewCacheKey_Contract(t *testing.T) {
	key, err := SchemeViewCacheKey("corp/internal sso")
	if err != nil {
		t.Fatalf("build cache key: %v", err)
	}
	const expected = "dynauth::scheme_view::v1::corp%2Finternal%20sso"
	if key != expected {
		t.Fatalf("unexpected cache key contract: got %q want %q", key, expected)
	}

	if _, err := SchemeViewCacheKey("   "); err == nil {
		t.Fatalf("expected error for blank scheme name")
	}
}

func TestCachedSchemeViewStore_PropagatesBaseErrors(t *testing.T) {
	cacheService := newTestSchemeViewCacheService(t)
	baseErr := errors.New("scheme view unavailable")
	base := &stubSchemeViewReader{describeErr: baseErr}

	store, err := NewCachedSchemeViewStore(base, cacheService)
	if err != nil {
		t.Fatalf("new cached scheme view store: %v", err)
	}

	if _, err := store.DescribeScheme(context.Background(), "github"); !errors.Is(err, baseErr) {
		t.Fatalf("expected base error propagation, got %v", err)
	}
}

func newTestSchemeViewCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

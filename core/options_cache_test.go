package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func newTestOptionsCache(t *testing.T, hooks *PostConfigureCoordinator) *OptionsCache {
	t.Helper()
	cache, err := NewOptionsCache(RemoteOptionsType, hooks)
	if err != nil {
		t.Fatalf("new options cache: %v", err)
	}
	return cache
}

func TestOptionsCache_GetOrAddInvokesFactoryOnce(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	calls := 0
	factory := func() any {
		calls++
		return &RemoteSchemeOptions{CallbackPath: "/signin"}
	}

	first, err := cache.GetOrAdd(context.Background(), "github", factory)
	if err != nil {
		t.Fatalf("first get-or-add: %v", err)
	}
	second, err := cache.GetOrAdd(context.Background(), "github", factory)
	if err != nil {
		t.Fatalf("second get-or-add: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one factory invocation, got %d", calls)
	}
	if first != second {
		t.Fatalf("expected both calls to return the identical instance")
	}
}

func TestOptionsCache_ConcurrentFirstAccessSharesOneResolution(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	var calls atomic.Int64
	factory := func() any {
		calls.Add(1)
		return &RemoteSchemeOptions{CallbackPath: "/signin"}
	}

	const workers = 32
	results := make([]any, workers)
	errs := make([]error, workers)
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer done.Done()
			start.Wait()
			results[idx], errs[idx] = cache.GetOrAdd(context.Background(), "github", factory)
		}(i)
	}
	start.Done()
	done.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one factory invocation under concurrency, got %d", got)
	}
	for idx := 0; idx < workers; idx++ {
		if errs[idx] != nil {
			t.Fatalf("worker %d got error: %v", idx, errs[idx])
		}
		if results[idx] != results[0] {
			t.Fatalf("worker %d observed a different instance", idx)
		}
	}
}

func TestOptionsCache_ConfigureRunsBeforeHooks(t *testing.T) {
	var order []string
	hooks := NewPostConfigureCoordinator()
	err := hooks.Register(RemoteOptionsType, PostConfigureHookFunc{
		HookName: "record",
		Fn: func(_ context.Context, _ string, options any) error {
			remote := options.(*RemoteSchemeOptions)
			if remote.CallbackPath != "/configured" {
				t.Fatalf("expected hook to observe configured options, got %q", remote.CallbackPath)
			}
			order = append(order, "hook")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register hook: %v", err)
	}

	cache := newTestOptionsCache(t, hooks)
	err = cache.RegisterScheme("github",
		func() any { return &RemoteSchemeOptions{CallbackPath: "/factory"} },
		func(options any) error {
			options.(*RemoteSchemeOptions).CallbackPath = "/configured"
			order = append(order, "configure")
			return nil
		},
	)
	if err != nil {
		t.Fatalf("register scheme: %v", err)
	}

	value, err := cache.Resolve(context.Background(), "github")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if value.(*RemoteSchemeOptions).CallbackPath != "/configured" {
		t.Fatalf("expected configured callback path, got %q", value.(*RemoteSchemeOptions).CallbackPath)
	}
	if len(order) != 2 || order[0] != "configure" || order[1] != "hook" {
		t.Fatalf("expected configure before hook, got %v", order)
	}
}

func TestOptionsCache_RejectedResolutionIsNotCached(t *testing.T) {
	hooks := NewPostConfigureCoordinator()
	attempts := 0
	err := hooks.Register(RemoteOptionsType, PostConfigureHookFunc{
		HookName: "flaky",
		Fn: func(context.Context, string, any) error {
			attempts++
			if attempts == 1 {
				return fmt.Errorf("rejected")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register hook: %v", err)
	}

	cache := newTestOptionsCache(t, hooks)
	factory := func() any { return &RemoteSchemeOptions{CallbackPath: "/signin"} }

	if _, err := cache.GetOrAdd(context.Background(), "github", factory); err == nil {
		t.Fatalf("expected first resolution to be rejected")
	}
	if _, ok := cache.Peek("github"); ok {
		t.Fatalf("expected no cached entry after rejection")
	}

	value, err := cache.GetOrAdd(context.Background(), "github", factory)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if value == nil {
		t.Fatalf("expected resolved options on retry")
	}
	if attempts != 2 {
		t.Fatalf("expected two hook passes, got %d", attempts)
	}
}

func TestOptionsCache_ClearForcesReResolution(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	calls := 0
	factory := func() any {
		calls++
		return &RemoteSchemeOptions{CallbackPath: fmt.Sprintf("/signin-%d", calls)}
	}

	if _, err := cache.GetOrAdd(context.Background(), "github", factory); err != nil {
		t.Fatalf("first resolution: %v", err)
	}
	firstEntry, ok := cache.Entry("github")
	if !ok {
		t.Fatalf("expected settled entry")
	}

	if !cache.Clear("github") {
		t.Fatalf("expected clear to drop the entry")
	}
	if cache.Clear("github") {
		t.Fatalf("expected second clear to report false")
	}

	value, err := cache.GetOrAdd(context.Background(), "github", factory)
	if err != nil {
		t.Fatalf("re-resolution: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected factory to run again after clear, got %d calls", calls)
	}
	if value.(*RemoteSchemeOptions).CallbackPath != "/signin-2" {
		t.Fatalf("expected fresh options after clear")
	}
	secondEntry, ok := cache.Entry("github")
	if !ok {
		t.Fatalf("expected settled entry after re-resolution")
	}
	if secondEntry.Generation == firstEntry.Generation {
		t.Fatalf("expected a new generation after clear")
	}
}

func TestOptionsCache_PeekSkipsInFlightResolution(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	factoryEntered := make(chan struct{})
	releaseFactory := make(chan struct{})
	factory := func() any {
		close(factoryEntered)
		<-releaseFactory
		return &RemoteSchemeOptions{CallbackPath: "/signin"}
	}

	var resolveErr error
	resolved := make(chan struct{})
	go func() {
		_, resolveErr = cache.GetOrAdd(context.Background(), "github", factory)
		close(resolved)
	}()

	<-factoryEntered
	if _, ok := cache.Peek("github"); ok {
		t.Fatalf("expected peek to skip the in-flight resolution")
	}
	close(releaseFactory)
	<-resolved
	if resolveErr != nil {
		t.Fatalf("resolution failed: %v", resolveErr)
	}
	if _, ok := cache.Peek("github"); !ok {
		t.Fatalf("expected peek to find the settled entry")
	}
}

func TestOptionsCache_EntriesSnapshotSorted(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	for _, name := range []string{"zeta", "alpha"} {
		path := "/" + name
		_, err := cache.GetOrAdd(context.Background(), name, func() any {
			return &RemoteSchemeOptions{CallbackPath: path}
		})
		if err != nil {
			t.Fatalf("resolve %q: %v", name, err)
		}
	}
	entries := cache.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SchemeName != "alpha" || entries[1].SchemeName != "zeta" {
		t.Fatalf("unexpected entry order: %v", entries)
	}
	for _, entry := range entries {
		if entry.Generation == "" {
			t.Fatalf("expected generation id on entry %q", entry.SchemeName)
		}
	}
}

func TestOptionsCache_NilFactoryValueRejected(t *testing.T) {
	cache := newTestOptionsCache(t, nil)
	if _, err := cache.GetOrAdd(context.Background(), "github", func() any { return nil }); err == nil {
		t.Fatalf("expected nil factory output to fail")
	}
}

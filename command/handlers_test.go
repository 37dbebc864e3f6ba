package command

import (
	"context"
	"testing"

	gocmd "github.com/goliatone/go-command"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

type stubMutatingService struct {
	addSchemeFn       func(ctx context.Context, req core.AddSchemeRequest) error
	addRemoteSchemeFn func(ctx context.Context, req core.RemoteSchemeRequest) error
	removeSchemeFn    func(ctx context.Context, name string) error
	reconfigureFn     func(ctx context.Context, name string, configure core.ConfigureFunc) error
	resolveOptionsFn  func(ctx context.Context, name string) (any, error)
	clearOptionsFn    func(ctx context.Context, name string) error
}

func (s stubMutatingService) AddScheme(ctx context.Context, req core.AddSchemeRequest) error {
	if s.addSchemeFn == nil {
		return nil
	}
	return s.addSchemeFn(ctx, req)
}

func (s stubMutatingService) AddRemoteScheme(ctx context.Context, req core.RemoteSchemeRequest) error {
	if s.addRemoteSchemeFn == nil {
		return nil
	}
	return s.addRemoteSchemeFn(ctx, req)
}

func (s stubMutatingService) RemoveScheme(ctx context.Context, name string) error {
	if s.removeSchemeFn == nil {
		return nil
	}
	return s.removeSchemeFn(ctx, name)
}

func (s stubMutatingService) ReconfigureScheme(ctx context.Context, name string, configure core.ConfigureFunc) error {
	if s.reconfigureFn == nil {
		return nil
	}
	return s.reconfigureFn(ctx, name, configure)
}

func (s stubMutatingService) ResolveOptions(ctx context.Context, name string) (any, error) {
	if s.resolveOptionsFn == nil {
		return nil, nil
	}
	return s.resolveOptionsFn(ctx, name)
}

func (s stubMutatingService) ClearOptions(ctx context.Context, name string) error {
	if s.clearOptionsFn == nil {
		return nil
	}
	return s.clearOptionsFn(ctx, name)
}

func TestRegisterSchemeCommand_Delegates(t *testing.T) {
	called := false
	svc := stubMutatingService{
		addSchemeFn: func(_ context.Context, req core.AddSchemeRequest) error {
			called = true
			if req.Name != "github" {
				t.Fatalf("expected scheme github, got %q", req.Name)
			}
			return nil
		},
	}

	cmd := NewRegisterSchemeCommand(svc)
	err := cmd.Execute(context.Background(), RegisterSchemeMessage{Request: core.AddSchemeRequest{
		Name:        "github",
		HandlerType: "oauth",
		OptionsType: core.RemoteOptionsType,
		Remote:      true,
	}})
	if err != nil {
		t.Fatalf("execute register scheme: %v", err)
	}
	if !called {
		t.Fatalf("expected service invocation")
	}
}

func TestResolveOptionsCommand_StoresResult(t *testing.T) {
	expected := &core.RemoteSchemeOptions{CallbackPath: "/signin-github"}
	svc := stubMutatingService{
		resolveOptionsFn: func(_ context.Context, name string) (any, error) {
			if name != "github" {
				t.Fatalf("expected scheme github, got %q", name)
			}
			return expected, nil
		},
	}

	cmd := NewResolveOptionsCommand(svc)
	collector := gocmd.NewResult[any]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, ResolveOptionsMessage{SchemeName: "github"}); err != nil {
		t.Fatalf("execute resolve options: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result != any(expected) {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestMutationCommands_Delegate(t *testing.T) {
	t.Run("remove scheme", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			removeSchemeFn: func(_ context.Context, name string) error {
				called = true
				if name != "github" {
					t.Fatalf("unexpected scheme %q", name)
				}
				return nil
			},
		}
		cmd := NewRemoveSchemeCommand(svc)
		if err := cmd.Execute(context.Background(), RemoveSchemeMessage{SchemeName: "github"}); err != nil {
			t.Fatalf("execute remove scheme: %v", err)
		}
		if !called {
			t.Fatalf("expected remove invocation")
		}
	})

	t.Run("clear options", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			clearOptionsFn: func(_ context.Context, name string) error {
				called = true
				return nil
			},
		}
		cmd := NewClearOptionsCommand(svc)
		if err := cmd.Execute(context.Background(), ClearOptionsMessage{SchemeName: "github"}); err != nil {
			t.Fatalf("execute clear options: %v", err)
		}
		if !called {
			t.Fatalf("expected clear invocation")
		}
	})

	t.Run("reconfigure scheme", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			reconfigureFn: func(_ context.Context, name string, configure core.ConfigureFunc) error {
				called = true
				if configure == nil {
					t.Fatalf("expected configure function to pass through")
				}
				return nil
			},
		}
		cmd := NewReconfigureSchemeCommand(svc)
		msg := ReconfigureSchemeMessage{
			SchemeName: "github",
			Configure:  func(any) error { return nil },
		}
		if err := cmd.Execute(context.Background(), msg); err != nil {
			t.Fatalf("execute reconfigure: %v", err)
		}
		if !called {
			t.Fatalf("expected reconfigure invocation")
		}
	})
}

func TestMessages_Validate(t *testing.T) {
	cases := []struct {
		name    string
		msg     interface{ Validate() error }
		wantErr bool
	}{
		{"register missing name", RegisterSchemeMessage{Request: core.AddSchemeRequest{HandlerType: "oauth", OptionsType: "remote", Remote: true}}, true},
		{"register non-remote missing factory", RegisterSchemeMessage{Request: core.AddSchemeRequest{Name: "x", HandlerType: "h", OptionsType: "o"}}, true},
		{"register remote default factory ok", RegisterSchemeMessage{Request: core.AddSchemeRequest{Name: "x", HandlerType: "h", OptionsType: "o", Remote: true}}, false},
		{"register remote message missing handler", RegisterRemoteSchemeMessage{Request: core.RemoteSchemeRequest{Name: "x"}}, true},
		{"remove missing name", RemoveSchemeMessage{}, true},
		{"reconfigure missing configure", ReconfigureSchemeMessage{SchemeName: "x"}, true},
		{"resolve ok", ResolveOptionsMessage{SchemeName: "x"}, false},
		{"clear missing name", ClearOptionsMessage{SchemeName: "  "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

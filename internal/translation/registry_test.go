package translation

import (
	"context"
	"strings"
	"testing"

	"horse.fit/gist/internal/fault"
)

type stubProvider struct {
	name  string
	calls int
	resp  TranslateResponse
	err   error
}

func (p *stubProvider) Translate(_ context.Context, _ TranslateRequest) (*TranslateResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	resp := p.resp
	if resp.ProviderName == "" {
		resp.ProviderName = p.name
	}
	return &resp, nil
}

func (p *stubProvider) Name() string {
	return p.name
}

func TestRegistryResolvesByName(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{name: "stub"}
	registry := NewRegistry("stub")
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}

	got, err := registry.Provider("STUB")
	if err != nil {
		t.Fatalf("resolve provider: %v", err)
	}
	if got.Name() != "stub" {
		t.Fatalf("resolved %q, want stub", got.Name())
	}

	got, err = registry.Provider("")
	if err != nil {
		t.Fatalf("resolve default provider: %v", err)
	}
	if got.Name() != "stub" {
		t.Fatalf("default resolved %q, want stub", got.Name())
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("stub")
	if err := registry.Register(&stubProvider{name: "stub"}); err != nil {
		t.Fatalf("register provider: %v", err)
	}

	_, err := registry.Provider("bogus")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if fault.KindOf(err) != fault.Validation {
		t.Fatalf("kind = %q, want %q", fault.KindOf(err), fault.Validation)
	}
	if !strings.Contains(err.Error(), "available: stub") {
		t.Fatalf("error %q does not list available providers", err)
	}
}

func TestRegistryFromEnvFallsBackToRegistered(t *testing.T) {
	t.Setenv(ProviderEnvVar, "bogus")

	registry := NewRegistryFromEnv(&stubProvider{name: "stub"})
	if got := registry.DefaultProvider(); got != "stub" {
		t.Fatalf("default provider = %q, want stub", got)
	}
}

func TestRegistryFromEnvHonorsSelection(t *testing.T) {
	t.Setenv(ProviderEnvVar, "second")

	registry := NewRegistryFromEnv(&stubProvider{name: "first"}, &stubProvider{name: "second"})
	if got := registry.DefaultProvider(); got != "second" {
		t.Fatalf("default provider = %q, want second", got)
	}

	provider, err := registry.Provider("")
	if err != nil {
		t.Fatalf("resolve default provider: %v", err)
	}
	if provider.Name() != "second" {
		t.Fatalf("resolved %q, want second", provider.Name())
	}
}

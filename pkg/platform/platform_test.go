package platform

import (
	"context"
	"testing"

	"github.com/txn2/mcp-zoom-rooms/pkg/toolkits/zoomrooms"
)

func testConfig() *Config {
	cfg := &Config{
		Zoom: zoomrooms.Config{
			AccountID:    "acct-1",
			ClientID:     "client-1",
			ClientSecret: "secret-1",
		},
	}
	applyDefaults(cfg)
	return cfg
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Error("expected error without config")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Zoom.AccountID = ""

	_, err := New(WithConfig(cfg))
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestNew_BuildsServerAndToolkit(t *testing.T) {
	p, err := New(WithConfig(testConfig()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if p.MCPServer() == nil {
		t.Error("MCPServer() = nil")
	}
	if p.Toolkit() == nil {
		t.Error("Toolkit() = nil")
	}
	if p.Config() == nil {
		t.Error("Config() = nil")
	}
	if got := p.Toolkit().Kind(); got != "zoomrooms" {
		t.Errorf("Toolkit().Kind() = %q", got)
	}
}

func TestNew_WithToolkitOverride(t *testing.T) {
	tk, err := zoomrooms.New("injected", zoomrooms.Config{
		AccountID:    "acct-x",
		ClientID:     "client-x",
		ClientSecret: "secret-x",
	})
	if err != nil {
		t.Fatalf("creating toolkit: %v", err)
	}

	p, err := New(WithConfig(testConfig()), WithToolkit(tk))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Toolkit() != tk {
		t.Error("injected toolkit was not used")
	}
}

func TestPlatform_HealthFollowsLifecycle(t *testing.T) {
	p, err := New(WithConfig(testConfig()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if p.Health().IsReady() {
		t.Error("platform must not be ready before Start")
	}

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !p.Health().IsReady() {
		t.Error("platform must be ready after Start")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if p.Health().IsReady() {
		t.Error("platform must drain on Close")
	}
	if got := p.Health().State(); got != "draining" {
		t.Errorf("State() = %q, want draining", got)
	}
}

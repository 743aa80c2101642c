package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer("")
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Transport != TransportStdio {
		t.Errorf("default transport = %q, want stdio", cfg.Transport)
	}
	if cfg.Name != "rspace-mcp" {
		t.Errorf("default name = %q", cfg.Name)
	}
}

func TestLoadServerFile(t *testing.T) {
	path := writeConfig(t, `
name: lab-mcp
transport: http
listen: "0.0.0.0:9000"
log_level: debug
disabled_groups:
  - group:movement
disabled_tools:
  - delete_form
`)
	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Name != "lab-mcp" || cfg.Transport != TransportHTTP || cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.DisabledGroups) != 1 || cfg.DisabledGroups[0] != "group:movement" {
		t.Errorf("disabled groups = %v", cfg.DisabledGroups)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "delete_form" {
		t.Errorf("disabled tools = %v", cfg.DisabledTools)
	}
}

func TestLoadServerRejectsUnknownTransport(t *testing.T) {
	path := writeConfig(t, "transport: carrier-pigeon\n")
	if _, err := LoadServer(path); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestLoadPlatform(t *testing.T) {
	t.Setenv("RSPACE_URL", "https://research.example.com")
	t.Setenv("RSPACE_API_KEY", "abc123")
	t.Setenv("RSPACE_TIMEOUT_SECONDS", "10")

	p, err := LoadPlatform(context.Background())
	if err != nil {
		t.Fatalf("LoadPlatform: %v", err)
	}
	if p.URL != "https://research.example.com" || p.APIKey != "abc123" {
		t.Errorf("platform = %+v", p)
	}
	if p.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", p.Timeout())
	}
}

func TestLoadPlatformRequiresCredentials(t *testing.T) {
	// t.Setenv registers the restore; the vars must then be truly unset.
	t.Setenv("RSPACE_URL", "")
	t.Setenv("RSPACE_API_KEY", "")
	os.Unsetenv("RSPACE_URL")
	os.Unsetenv("RSPACE_API_KEY")

	if _, err := LoadPlatform(context.Background()); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if !cfg.Output.Values {
		t.Errorf("Output.Values should default to true")
	}
	if !cfg.Errors.Pretty {
		t.Errorf("Errors.Pretty should default to true")
	}
	if cfg.Watch.Debounce.Std() != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %s, want 100ms", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".fn" {
		t.Errorf("Watch.Extensions = %v, want [.fn]", cfg.Watch.Extensions)
	}
}

func TestUnmarshal(t *testing.T) {
	yamlData := `
output:
  format: json
  values: false
errors:
  pretty: false
  limit: 20
watch:
  debounce: 250ms
  extensions: [".fn", ".fern"]
`
	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(yamlData), cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.Values {
		t.Errorf("Output.Values should be false")
	}
	if cfg.Errors.Limit != 20 {
		t.Errorf("Errors.Limit = %d, want 20", cfg.Errors.Limit)
	}
	if cfg.Watch.Debounce.Std() != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %s, want 250ms", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("Watch.Extensions = %v, want two entries", cfg.Watch.Extensions)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fern.yaml")
	content := "output:\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	// Defaults survive for unset sections
	if !cfg.Errors.Pretty {
		t.Errorf("Errors.Pretty default lost on load")
	}
	if cfg.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, dir)
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fern.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error for format xml")
	}
	if !strings.Contains(err.Error(), "output.format") {
		t.Errorf("error should name the bad field: %v", err)
	}
}

func TestDiscoverMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected defaults when fern.yaml is absent")
	}
}

func TestDiscoverFindsConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("errors:\n  limit: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Errors.Limit != 5 {
		t.Errorf("Errors.Limit = %d, want 5", cfg.Errors.Limit)
	}
}

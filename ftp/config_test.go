package ftp

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mavftp.yaml")
	contents := "target_system: 5\ntarget_component: 9\nretries: 7\ntimeout: 3s\nroot_directory: /missions\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TargetSystem != 5 || cfg.TargetComponent != 9 {
		t.Fatalf("target ids = %d/%d, want 5/9", cfg.TargetSystem, cfg.TargetComponent)
	}
	if cfg.Retries != 7 {
		t.Fatalf("Retries = %d, want 7", cfg.Retries)
	}
	if cfg.Timeout.Duration != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout.Duration)
	}
	if cfg.RootDirectory != "/missions" {
		t.Fatalf("RootDirectory = %q, want /missions", cfg.RootDirectory)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigOptionsCarryRetriesAndTimeout(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.Options()

	var c Client
	for _, opt := range opts {
		opt(&c)
	}
	if c.retries != DefaultRetries {
		t.Fatalf("retries = %d, want %d", c.retries, DefaultRetries)
	}
	if c.timeout != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", c.timeout, DefaultTimeout)
	}
}

func TestConfigOptionsOmitUnsetRootDirectory(t *testing.T) {
	cfg := DefaultConfig()
	var c Client
	for _, opt := range cfg.Options() {
		opt(&c)
	}
	if c.rootDirectory != "" {
		t.Fatalf("rootDirectory = %q, want empty (not set in DefaultConfig)", c.rootDirectory)
	}
}

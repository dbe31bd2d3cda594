package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/provgraph/provgraph/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Defaults.Direction != "LR" {
		t.Errorf("Direction = %q, want LR", cfg.Defaults.Direction)
	}
	if cfg.Defaults.Font != "Helvetica" {
		t.Errorf("Font = %q, want Helvetica", cfg.Defaults.Font)
	}
	if !cfg.Defaults.ShowLabels {
		t.Error("ShowLabels should default to true")
	}
	if cfg.Defaults.ShowAttributes {
		t.Error("ShowAttributes should default to false")
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should be enabled by default")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[defaults]
direction = "TB"
show_attributes = true
formats = ["dot", "svg"]

[cache]
enabled = false
ttl = "48h"

[server]
addr = ":9090"
redis_addr = "localhost:6379"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Defaults.Direction != "TB" {
		t.Errorf("Direction = %q, want TB", cfg.Defaults.Direction)
	}
	if !cfg.Defaults.ShowAttributes {
		t.Error("ShowAttributes should be true")
	}
	if len(cfg.Defaults.Formats) != 2 || cfg.Defaults.Formats[1] != "svg" {
		t.Errorf("Formats = %v, want [dot svg]", cfg.Defaults.Formats)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache should be disabled")
	}
	if cfg.Cache.TTL.Duration != 48*time.Hour {
		t.Errorf("TTL = %v, want 48h", cfg.Cache.TTL.Duration)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.Server.RedisAddr)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[defaults]
direction = "RL"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Defaults.Direction != "RL" {
		t.Errorf("Direction = %q, want RL", cfg.Defaults.Direction)
	}

	// Everything the file doesn't mention keeps its default
	if cfg.Defaults.Font != "Helvetica" {
		t.Errorf("Font = %q, want default Helvetica", cfg.Defaults.Font)
	}
	if !cfg.Defaults.ShowLabels {
		t.Error("ShowLabels should keep its default")
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should keep its default")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default :8080", cfg.Server.Addr)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Missing explicit file should fail")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadMissingUserFile(t *testing.T) {
	// Point XDG at an empty directory so no user file is found
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Missing user file should not fail: %v", err)
	}
	if cfg.Defaults.Direction != "LR" {
		t.Errorf("Direction = %q, want default LR", cfg.Defaults.Direction)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("direction = [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Malformed TOML should fail")
	}
}

func TestLoadBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Unparseable duration should fail")
	}
}

func TestPathXDG(t *testing.T) {
	customConfig := "/tmp/custom-config"
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", customConfig)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	expected := filepath.Join(customConfig, appName, "config.toml")
	if path != expected {
		t.Errorf("Path() with XDG_CONFIG_HOME = %q, want %q", path, expected)
	}
}

func TestPathDefault(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Unsetenv("XDG_CONFIG_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		}
	}()

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(path, home) {
		t.Errorf("Path() = %q, should be under home %q", path, home)
	}
	if !strings.Contains(path, filepath.Join(".config", appName)) {
		t.Errorf("Path() = %q, should contain .config/%s", path, appName)
	}
}

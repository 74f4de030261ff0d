package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = 32
default_limit = 8

[dict]
path = "/usr/share/dict/words"

[history]
capacity = 7
path = "/tmp/history.msgpack"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 32 || cfg.Server.DefaultLimit != 8 {
		t.Errorf("server section not applied: %+v", cfg.Server)
	}
	if cfg.Server.MaxPrefix != 60 || !cfg.Server.EnableFilter {
		t.Errorf("unset server keys should keep defaults: %+v", cfg.Server)
	}
	if cfg.Dict.Path != "/usr/share/dict/words" {
		t.Errorf("dict path: got %q", cfg.Dict.Path)
	}
	if cfg.History.Capacity != 7 || cfg.History.Path != "/tmp/history.msgpack" {
		t.Errorf("history section not applied: %+v", cfg.History)
	}
	if cfg.CLI != DefaultConfig().CLI {
		t.Errorf("missing cli section should keep defaults: %+v", cfg.CLI)
	}
}

// A type error breaks strict decoding; the other keys must still be picked up.
func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = "lots"
min_prefix = 2

[history]
capacity = 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("bad max_limit should fall back to default, got %d", cfg.Server.MaxLimit)
	}
	if cfg.Server.MinPrefix != 2 {
		t.Errorf("min_prefix should be recovered, got %d", cfg.Server.MinPrefix)
	}
	if cfg.History.Capacity != 3 {
		t.Errorf("history capacity should be recovered, got %d", cfg.History.Capacity)
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [not toml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 0
	cfg.Server.DefaultLimit = 500
	cfg.Server.MinPrefix = 3
	cfg.Server.MaxPrefix = 2
	cfg.History.Capacity = -1
	cfg.Validate()

	if cfg.Server.MaxLimit != 64 {
		t.Errorf("max_limit: got %d", cfg.Server.MaxLimit)
	}
	if cfg.Server.DefaultLimit != 10 {
		t.Errorf("default_limit: got %d", cfg.Server.DefaultLimit)
	}
	if cfg.Server.MaxPrefix != 60 {
		t.Errorf("max_prefix: got %d", cfg.Server.MaxPrefix)
	}
	if cfg.History.Capacity != 5 {
		t.Errorf("history capacity: got %d", cfg.History.Capacity)
	}
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file not written: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("written defaults do not load back: %+v", reloaded)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 3\n")
	cfg, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path {
		t.Errorf("expected custom path %s, got %s", path, used)
	}
	if cfg.CLI.DefaultLimit != 3 {
		t.Errorf("custom config not applied: %+v", cfg.CLI)
	}
}

func TestRebuildConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("GetDefaultConfigPath: %v", err)
	}
	if err := os.WriteFile(path, []byte("[server]\nmax_limit = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RebuildConfigFile(); err != nil {
		t.Fatalf("RebuildConfigFile: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("rebuilt file should hold defaults, got %+v", cfg)
	}
}

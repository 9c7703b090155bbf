package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("got provider %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.Sync.Port != 3306 {
		t.Errorf("got port %d, want 3306", cfg.Sync.Port)
	}
	if cfg.Sync.Enabled {
		t.Error("sync should be disabled by default")
	}
	if !strings.HasSuffix(cfg.Storage.DataDir, "TODOapp") {
		t.Errorf("unexpected data dir: %q", cfg.Storage.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("got provider %q, want default", cfg.LLM.Provider)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
data_dir = "/tmp/taskdeck-test"

[llm]
provider = "lmstudio"
model = "qwen2.5"
base_url = "http://localhost:1234/v1"

[sync]
enabled = true
host = "192.168.1.10"
port = 3307
user = "todo"
database = "todo_app"

[ui]
theme = "latte"
use_24h_clock = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LLM.Provider != "lmstudio" {
		t.Errorf("got provider %q, want lmstudio", cfg.LLM.Provider)
	}
	if cfg.Sync.Port != 3307 {
		t.Errorf("got port %d, want 3307", cfg.Sync.Port)
	}
	if !cfg.Sync.Enabled {
		t.Error("sync should be enabled")
	}
	if cfg.UI.Use24Hour {
		t.Error("use_24h_clock should be false")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKDECK_LLM_PROVIDER", "openai")
	t.Setenv("TASKDECK_MYSQL_PORT", "3310")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("got provider %q, want openai", cfg.LLM.Provider)
	}
	if cfg.Sync.Port != 3310 {
		t.Errorf("got port %d, want 3310", cfg.Sync.Port)
	}
}

func TestValidate(t *testing.T) {
	t.Run("bad provider", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Provider = "skynet"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := Default()
		cfg.Sync.Port = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for port 0")
		}
	})

	t.Run("sync enabled needs host and database", func(t *testing.T) {
		cfg := Default()
		cfg.Sync.Enabled = true
		cfg.Sync.Host = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty host")
		}
	})
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.UI.Theme = "macchiato"
	cfg.Storage.DataDir = "/tmp/taskdeck-test"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.UI.Theme != "macchiato" {
		t.Errorf("got theme %q, want macchiato", loaded.UI.Theme)
	}
}

// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
	Sync    SyncConfig    `toml:"sync"`
	Update  UpdateConfig  `toml:"update"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig holds flat-file storage settings.
type StorageConfig struct {
	DataDir string `toml:"data_dir"` // home of todo.txt, dailytask.txt, character.txt
}

// LLMConfig holds assistant provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", "openai"
	Model    string `toml:"model"`    // e.g., "llama3.2"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// SyncConfig holds MySQL LAN sync settings.
type SyncConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// UpdateConfig holds self-update settings.
type UpdateConfig struct {
	Owner string `toml:"owner"` // GitHub repository owner
	Repo  string `toml:"repo"`  // GitHub repository name
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme         string `toml:"theme"`           // "mocha", "macchiato", "frappe", "latte"
	Use24Hour     bool   `toml:"use_24h_clock"`   // daily task time display
	ShowAssistant bool   `toml:"show_assistant"`  // chat tab visible on startup
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434",
		},
		Sync: SyncConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Database: "todo_app",
		},
		Update: UpdateConfig{
			Owner: "taskdeck",
			Repo:  "taskdeck",
		},
		UI: UIConfig{
			Theme:         "mocha",
			Use24Hour:     true,
			ShowAssistant: false,
		},
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "TODOapp"
	}
	return filepath.Join(home, "TODOapp")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskdeck", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKDECK_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("TASKDECK_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TASKDECK_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TASKDECK_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("TASKDECK_MYSQL_HOST"); v != "" {
		cfg.Sync.Host = v
	}
	if v := os.Getenv("TASKDECK_MYSQL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Sync.Port = port
		}
	}
	if v := os.Getenv("TASKDECK_MYSQL_USER"); v != "" {
		cfg.Sync.User = v
	}
	if v := os.Getenv("TASKDECK_MYSQL_PASSWORD"); v != "" {
		cfg.Sync.Password = v
	}
	if v := os.Getenv("TASKDECK_MYSQL_DATABASE"); v != "" {
		cfg.Sync.Database = v
	}

	if v := os.Getenv("TASKDECK_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	if c.LLM.Provider != "" && !isValidProvider(c.LLM.Provider) {
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.Sync.Port < 1 || c.Sync.Port > 65535 {
		return fmt.Errorf("sync port out of range: %d", c.Sync.Port)
	}
	if c.Sync.Enabled {
		if c.Sync.Host == "" {
			return errors.New("sync host must be set when sync is enabled")
		}
		if c.Sync.Database == "" {
			return errors.New("sync database must be set when sync is enabled")
		}
	}
	return nil
}

var validProviders = map[string]bool{
	"ollama":   true,
	"lmstudio": true,
	"openai":   true,
}

func isValidProvider(p string) bool {
	return validProviders[strings.ToLower(strings.TrimSpace(p))]
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

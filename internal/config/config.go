package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidValue is wrapped by Validate failures.
var ErrInvalidValue = errors.New("invalid config value")

// APIConfig locates the search service.
type APIConfig struct {
	// BaseURL overrides the address selection below when set.
	BaseURL     string `yaml:"base_url"`
	Origin      string `yaml:"origin"`
	PagesSuffix string `yaml:"pages_suffix"`
	DevAddress  string `yaml:"dev_address"`
	TopK        int    `yaml:"top_k"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// StorageConfig selects where preferences and history are kept.
type StorageConfig struct {
	Type string `yaml:"type"` // bolt, memory
	Path string `yaml:"path"`
}

// HistoryConfig bounds the query history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// SuggestionsConfig configures autocomplete. An empty curated list keeps the
// built-in questions.
type SuggestionsConfig struct {
	Limit   int      `yaml:"limit"`
	Curated []string `yaml:"curated,omitempty"`
}

// PagerConfig sets the page size of the result pager.
type PagerConfig struct {
	PageSize int `yaml:"page_size"`
}

// SummaryConfig holds the default summary length.
type SummaryConfig struct {
	DefaultLength string `yaml:"default_length"`
}

// UIConfig holds presentation defaults.
type UIConfig struct {
	Theme string `yaml:"theme"`
}

// LoggingConfig selects the zap preset, level and output file.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // dev, prod
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// MetricsConfig toggles request metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Textfile receives the registry in exposition format on exit.
	Textfile string `yaml:"textfile"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	API         APIConfig         `yaml:"api"`
	Storage     StorageConfig     `yaml:"storage"`
	History     HistoryConfig     `yaml:"history"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Pager       PagerConfig       `yaml:"pager"`
	Summary     SummaryConfig     `yaml:"summary"`
	UI          UIConfig          `yaml:"ui"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig()
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expanding ${VAR} and ${VAR:-default} first.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ragclient/config.yaml.
// If neither exists, it writes defaults to ~/.config/ragclient/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg, err := defaultConfig()
	if err != nil {
		return nil, "", err
	}
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Dir is the per-user directory for config, state and logs.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragclient"), nil
}

func defaultUserConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func defaultConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *AppConfig) ApplyDefaults() error {
	if c.API.Origin == "" && c.API.BaseURL == "" {
		c.API.Origin = "http://127.0.0.1:5000"
	}
	if c.API.PagesSuffix == "" {
		c.API.PagesSuffix = "github.io"
	}
	if c.API.DevAddress == "" {
		c.API.DevAddress = "http://127.0.0.1:5000"
	}
	if c.API.TopK <= 0 {
		c.API.TopK = 5
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 120
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "bolt"
	}
	if c.History.Capacity <= 0 {
		c.History.Capacity = 20
	}
	if c.Suggestions.Limit <= 0 {
		c.Suggestions.Limit = 5
	}
	if c.Pager.PageSize <= 0 {
		c.Pager.PageSize = 1
	}
	if c.Summary.DefaultLength == "" {
		c.Summary.DefaultLength = "medium"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Storage.Path == "" || c.Logging.File == "" || c.Metrics.Textfile == "" {
		dir, err := Dir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		if c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(dir, "state.db")
		}
		if c.Logging.File == "" {
			c.Logging.File = filepath.Join(dir, "ragclient.log")
		}
		if c.Metrics.Textfile == "" {
			c.Metrics.Textfile = filepath.Join(dir, "metrics.prom")
		}
	}
	return nil
}

// Validate checks the configuration for correctness.
func (c *AppConfig) Validate() error {
	switch c.Storage.Type {
	case "bolt", "memory":
	default:
		return fmt.Errorf("%w: storage.type must be bolt or memory, got %q", ErrInvalidValue, c.Storage.Type)
	}
	switch c.Summary.DefaultLength {
	case "short", "medium", "long":
	default:
		return fmt.Errorf("%w: summary.default_length must be short, medium or long, got %q", ErrInvalidValue, c.Summary.DefaultLength)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: ui.theme must be dark or light, got %q", ErrInvalidValue, c.UI.Theme)
	}
	switch c.Logging.Env {
	case "dev", "prod":
	default:
		return fmt.Errorf("%w: logging.env must be dev or prod, got %q", ErrInvalidValue, c.Logging.Env)
	}
	if c.History.Capacity > 1000 {
		return fmt.Errorf("%w: history.capacity must be at most 1000, got %d", ErrInvalidValue, c.History.Capacity)
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}

// Package config handles the XDG configuration directory, the config file
// and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// StorageFile is the persisted client storage database filename.
	StorageFile = "storage.db"

	// EnvPrefix prefixes environment overrides, e.g. TASKLIST_BASE_URL.
	EnvPrefix = "TASKLIST"

	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 5 * time.Second
	DefaultListen  = "127.0.0.1:8090"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the root of the REST backend, without the /api prefix.
	BaseURL string

	// Timeout bounds every backend request.
	Timeout time.Duration

	// Listen is the address the web front end binds to.
	Listen string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// JSONLogs switches log output to JSON.
	JSONLogs bool
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Timeout string `yaml:"timeout" mapstructure:"timeout"`
	Listen  string `yaml:"listen" mapstructure:"listen"`
}

// New creates a Config with default settings and the default or specified
// config directory. It does not read the config file; see Load.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Listen:  DefaultListen,
	}, nil
}

// Load creates a Config like New, then applies config.yaml (if present) and
// TASKLIST_* environment variables, in that order of precedence.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("timeout", cfg.Timeout.String())
	v.SetDefault("listen", cfg.Listen)

	if cfg.HasConfigFile() {
		v.SetConfigFile(cfg.ConfigPath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	timeout, err := time.ParseDuration(fc.Timeout)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %q", fc.Timeout)
	}
	if fc.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}

	cfg.BaseURL = fc.BaseURL
	cfg.Timeout = timeout
	cfg.Listen = fc.Listen
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// StoragePath returns the path to the persisted client storage database.
func (c *Config) StoragePath() string {
	return filepath.Join(c.Dir, StorageFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if config.yaml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// WriteDefault writes a config.yaml holding the default settings.
func (c *Config) WriteDefault() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(fileConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout.String(),
		Listen:  DefaultListen,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath(), data, 0600)
}

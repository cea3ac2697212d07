// Package config loads logsweep settings from a YAML file, LOGSWEEP_* environment
// variables and defaults, and persists the model credential.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/logsweep/internal/llm"
)

const (
	DefaultModel       = "deepseek-chat"
	DefaultMaxTokens   = 1000
	DefaultConcurrency = 4
	DefaultInclude     = "**/*.{js,ts,jsx,tsx,vue,py,java,cpp,c,cs,php,rb,go,rs,swift}"

	// FileName is the config file looked up in the home directory.
	FileName = ".logsweep.yaml"

	envPrefix = "LOGSWEEP"
)

// DefaultExclude lists the globs skipped by workspace runs unless configured otherwise.
var DefaultExclude = []string{"**/node_modules/**", "**/.git/**"}

// Config holds the resolved settings.
type Config struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Include     []string      `mapstructure:"include"`
	Exclude     []string      `mapstructure:"exclude"`
	Concurrency int           `mapstructure:"concurrency"`
	Redact      bool          `mapstructure:"redact"`

	// File is where the configuration was read from and where it is saved.
	File string `mapstructure:"-"`

	mu sync.Mutex
	v  *viper.Viper
}

// Load reads configuration from file, or from $HOME/.logsweep.yaml when file is empty.
// A missing default file is not an error; a missing explicit file is.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	explicit := file != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		file = filepath.Join(home, FileName)
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: read %s: %w", file, err)
		}
	}

	cfg := &Config{File: file, v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: decode %s: %w", file, err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(llm.KeyEnv(cfg.Model))
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("model", DefaultModel)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("include", []string{DefaultInclude})
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("redact", true)
}

// Credential returns the configured API key.
func (c *Config) Credential() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.APIKey
}

// SaveCredential stores key in the config file, readable by the owner only. Only the
// keys already in the file and api_key are written; defaults and environment
// overrides stay out of it.
func (c *Config) SaveCredential(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v == nil {
		return errors.New("config.SaveCredential: config was not loaded from a file")
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0700); err != nil {
		return fmt.Errorf("config.SaveCredential: %w", err)
	}

	onDisk := viper.New()
	onDisk.SetConfigFile(c.File)
	onDisk.SetConfigType("yaml")
	onDisk.SetConfigPermissions(0600)
	if err := onDisk.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.SaveCredential: read %s: %w", c.File, err)
	}
	onDisk.Set("api_key", key)
	if err := onDisk.WriteConfigAs(c.File); err != nil {
		return fmt.Errorf("config.SaveCredential: write %s: %w", c.File, err)
	}
	// An existing file keeps its mode on write.
	if err := os.Chmod(c.File, 0600); err != nil {
		return fmt.Errorf("config.SaveCredential: chmod %s: %w", c.File, err)
	}

	c.v.Set("api_key", key)
	c.APIKey = key
	return nil
}

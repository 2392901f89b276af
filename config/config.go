// Package config manages application configuration from various sources.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revi-dev/revi/fs"
	"github.com/revi-dev/revi/lru"
	"github.com/spf13/viper"
)

// CacheConfig defines the diff result cache.
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// GitConfig defines how git is invoked.
type GitConfig struct {
	Binary string `mapstructure:"binary"`
}

// Config is the main configuration structure for the application.
type Config struct {
	Cache   CacheConfig `mapstructure:"cache"`
	Log     LogConfig   `mapstructure:"log"`
	Git     GitConfig   `mapstructure:"git"`
	Workers int         `mapstructure:"workers"`
}

// Application constants
const (
	appName          = "revi"
	defaultLogLevel  = "info"
	defaultWorkers   = 4
	defaultGitBinary = "git"
)

// Load reads configuration from defaults, an optional config file and
// REVI_* environment variables, in increasing order of precedence.
// If path is empty, a file named config.{yaml,json,toml} is looked up in
// fs.DefaultConfigDir and may be absent; an explicit path must exist.
// If debug is true the log level is forced to debug.
func Load(path string, debug bool) (*Config, error) {
	v := viper.New()
	configure(v, path)
	setDefaults(v, debug)

	if err := readConfig(v.ReadInConfig()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("cache.capacity must be positive, got %d", c.Cache.Capacity))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Git.Binary == "" {
		errs = append(errs, errors.New("git.binary must not be empty"))
	}
	return errors.Join(errs...)
}

// configure sets up the config file location and environment variables.
func configure(v *viper.Viper, path string) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(fs.DefaultConfigDir())
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(v *viper.Viper, debug bool) {
	v.SetDefault("cache.capacity", lru.DefaultCapacity)
	v.SetDefault("workers", defaultWorkers)
	v.SetDefault("git.binary", defaultGitBinary)

	if debug {
		v.Set("log.level", "debug")
	} else {
		v.SetDefault("log.level", defaultLogLevel)
	}
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

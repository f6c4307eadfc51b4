package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sessionlab/cxv/internal/builder"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for the convert command
type DefaultsConfig struct {
	Title    string `mapstructure:"title"`    // Document title override
	Truncate int    `mapstructure:"truncate"` // Tool output collapse threshold, in chars
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Truncate: builder.DefaultTruncate,
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("cxv")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "cxv"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".cxv")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("CXV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("quiet", "CXV_QUIET")
	v.BindEnv("verbose", "CXV_VERBOSE")
	v.BindEnv("defaults.title", "CXV_TITLE")
	v.BindEnv("defaults.truncate", "CXV_TRUNCATE")

	// Set defaults
	cfg := Default()
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.title", cfg.Defaults.Title)
	v.SetDefault("defaults.truncate", cfg.Defaults.Truncate)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

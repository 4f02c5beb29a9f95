// Package config loads project-level styler configuration from
// .styler.yml, with environment variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the styler configuration
type Config struct {
	Style StyleConfig `mapstructure:"style"`
	Cache CacheConfig `mapstructure:"cache"`
	Walk  WalkConfig  `mapstructure:"walk"`
}

// StyleConfig holds the knobs fed into the style guide
type StyleConfig struct {
	Scope          string `mapstructure:"scope"`
	Strict         bool   `mapstructure:"strict"`
	IndentBy       int    `mapstructure:"indent_by"`
	BaseIndention  int    `mapstructure:"base_indention"`
	RoxygenExample bool   `mapstructure:"include_roxygen_examples"`
	IgnoreStart    string `mapstructure:"ignore_start"`
	IgnoreStop     string `mapstructure:"ignore_stop"`
}

// CacheConfig selects and parameterizes the cache backend
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	Backend string `mapstructure:"backend"` // fs or redis
	Redis   struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

// WalkConfig bounds directory walks
type WalkConfig struct {
	Filetypes    []string `mapstructure:"filetypes"`
	ExcludeFiles []string `mapstructure:"exclude_files"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs"`
}

// Load reads .styler.yml from the working directory, falling back to
// defaults when absent. STYLER_CACHE_DIR, STYLER_IGNORE_START and
// STYLER_IGNORE_STOP override the matching file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("style.scope", "tokens")
	v.SetDefault("style.strict", true)
	v.SetDefault("style.indent_by", 2)
	v.SetDefault("style.include_roxygen_examples", true)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", "fs")
	v.SetDefault("walk.filetypes", []string{"r", "rprofile"})
	v.SetDefault("walk.exclude_dirs", []string{".git", "renv", "packrat"})

	v.SetConfigName(".styler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("styler")
	v.AutomaticEnv()
	_ = v.BindEnv("cache.dir", "STYLER_CACHE_DIR")
	_ = v.BindEnv("style.ignore_start", "STYLER_IGNORE_START")
	_ = v.BindEnv("style.ignore_stop", "STYLER_IGNORE_STOP")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

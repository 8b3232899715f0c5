// Package config provides Viper-based configuration loading for wayfarer.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig holds settings for the world being played.
type GameConfig struct {
	// World is a directory of .lua files or a single .yaml world.
	World string `mapstructure:"world"`
	// Seed seeds the dice. Zero means seed from the clock.
	Seed int64 `mapstructure:"seed"`
	// SaveDB is the sqlite file holding save slots.
	SaveDB string `mapstructure:"save_db"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, sends logs to a rotated file instead of stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// UIConfig selects the front end.
type UIConfig struct {
	// Plain forces the line-oriented CLI even on a terminal.
	Plain bool `mapstructure:"plain"`
	// Trace prints the parsed command groups before each turn.
	Trace bool `mapstructure:"trace"`
	// Echo repeats each input line, for scripted playthroughs.
	Echo bool `mapstructure:"echo"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	if g.SaveDB == "" {
		return errors.New("game.save_db must not be empty")
	}
	if g.Seed < 0 {
		return fmt.Errorf("game.seed must be >= 0, got %d", g.Seed)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.max_size_mb must be >= 1, got %d", l.MaxSizeMB))
	}
	if l.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_backups must be >= 0, got %d", l.MaxBackups))
	}
	if l.MaxAgeDays < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_age_days must be >= 0, got %d", l.MaxAgeDays))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the
// file and uses defaults plus the environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// New returns a Viper instance with defaults and the WAYFARER_ environment
// prefix applied, ready for flags to be bound onto it.
func New() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with WAYFARER_ prefix
	v.SetEnvPrefix("WAYFARER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.world", "games/lantern")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.save_db", "wayfarer.db")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("ui.plain", false)
	v.SetDefault("ui.trace", false)
	v.SetDefault("ui.echo", false)
}

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete limber configuration
type Config struct {
	Routine  RoutineConfig  `mapstructure:"routine" yaml:"routine"`
	Feedback FeedbackConfig `mapstructure:"feedback" yaml:"feedback"`
	TUI      TUIConfig      `mapstructure:"tui" yaml:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// RoutineConfig controls routine lengths, phase timing and the exercise catalog
type RoutineConfig struct {
	// AllowedLengths are the routine lengths offered on the setup screen (default: [3, 5, 7])
	AllowedLengths []int `mapstructure:"allowed_lengths" yaml:"allowed_lengths"`
	// DefaultLength is the preselected routine length; must be one of AllowedLengths (default: 3)
	DefaultLength int `mapstructure:"default_length" yaml:"default_length"`
	// WarmupSeconds is the preparation time before the first stretch (default: 15)
	WarmupSeconds int `mapstructure:"warmup_seconds" yaml:"warmup_seconds"`
	// StretchSeconds is how long each side is held (default: 120)
	StretchSeconds int `mapstructure:"stretch_seconds" yaml:"stretch_seconds"`
	// RestSeconds is the pause between sides and exercises (default: 15)
	RestSeconds int `mapstructure:"rest_seconds" yaml:"rest_seconds"`
	// CatalogFile is a YAML exercise catalog. Empty uses the built-in catalog.
	CatalogFile string `mapstructure:"catalog_file" yaml:"catalog_file"`
	// WatchCatalog reloads CatalogFile when it changes (default: true)
	WatchCatalog bool `mapstructure:"watch_catalog" yaml:"watch_catalog"`
}

// FeedbackConfig controls the cue played when a side finishes
type FeedbackConfig struct {
	// Enabled turns all cues on or off (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Bell rings the terminal bell (default: true)
	Bell bool `mapstructure:"bell" yaml:"bell"`
	// UseSound plays a sound file as well (default: false)
	UseSound bool `mapstructure:"use_sound" yaml:"use_sound"`
	// SoundPath is the sound file to play. Empty uses the system alert.
	SoundPath string `mapstructure:"sound_path" yaml:"sound_path"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// AltScreen runs the TUI in the terminal's alternate screen (default: true)
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"`
	// FlashThresholdSeconds highlights the timer during the last seconds of a stretch (default: 10)
	FlashThresholdSeconds int `mapstructure:"flash_threshold_seconds" yaml:"flash_threshold_seconds"`
	// PlainStatusIntervalSeconds is how often plain mode prints the countdown (default: 10)
	PlainStatusIntervalSeconds int `mapstructure:"plain_status_interval_seconds" yaml:"plain_status_interval_seconds"`
	// Theme is the color theme for the TUI (default: "default")
	Theme string `mapstructure:"theme" yaml:"theme"`
	// Keys rebinds commands, e.g. {"skip": "tab", "reset": "x"}. Unset commands keep their defaults.
	Keys map[string]string `mapstructure:"keys" yaml:"keys,omitempty"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory debug.log is written to. Empty uses <config dir>/logs.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Routine: RoutineConfig{
			AllowedLengths: []int{3, 5, 7},
			DefaultLength:  3,
			WarmupSeconds:  15,
			StretchSeconds: 120,
			RestSeconds:    15,
			CatalogFile:    "",
			WatchCatalog:   true,
		},
		Feedback: FeedbackConfig{
			Enabled:   true,
			Bell:      true,
			UseSound:  false,
			SoundPath: "",
		},
		TUI: TUIConfig{
			AltScreen:                  true,
			FlashThresholdSeconds:      10,
			PlainStatusIntervalSeconds: 10,
			Theme:                      "default",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// ResolveDir returns the log directory, falling back to <config dir>/logs
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return expandHome(c.Dir)
	}
	return filepath.Join(ConfigDir(), "logs")
}

// ResolveCatalogFile returns CatalogFile with a leading ~ expanded
func (c *RoutineConfig) ResolveCatalogFile() string {
	return expandHome(c.CatalogFile)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Routine defaults
	viper.SetDefault("routine.allowed_lengths", defaults.Routine.AllowedLengths)
	viper.SetDefault("routine.default_length", defaults.Routine.DefaultLength)
	viper.SetDefault("routine.warmup_seconds", defaults.Routine.WarmupSeconds)
	viper.SetDefault("routine.stretch_seconds", defaults.Routine.StretchSeconds)
	viper.SetDefault("routine.rest_seconds", defaults.Routine.RestSeconds)
	viper.SetDefault("routine.catalog_file", defaults.Routine.CatalogFile)
	viper.SetDefault("routine.watch_catalog", defaults.Routine.WatchCatalog)

	// Feedback defaults
	viper.SetDefault("feedback.enabled", defaults.Feedback.Enabled)
	viper.SetDefault("feedback.bell", defaults.Feedback.Bell)
	viper.SetDefault("feedback.use_sound", defaults.Feedback.UseSound)
	viper.SetDefault("feedback.sound_path", defaults.Feedback.SoundPath)

	// TUI defaults
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.flash_threshold_seconds", defaults.TUI.FlashThresholdSeconds)
	viper.SetDefault("tui.plain_status_interval_seconds", defaults.TUI.PlainStatusIntervalSeconds)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "limber")
	}
	// Fall back to ~/.config/limber
	home, err := os.UserHomeDir()
	if err != nil {
		return ".limber"
	}
	return filepath.Join(home, ".config", "limber")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

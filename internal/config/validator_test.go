package config

import (
	"strings"
	"testing"
)

func hasFieldError(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "routine.stretch_seconds",
		Value:   0,
		Message: "must be at least 1",
	}

	expected := "routine.stretch_seconds: must be at least 1 (got: 0)"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("empty ValidationErrors.Error() = %q, want empty", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: 1, Message: "error1"},
		}
		expected := "field1: error1 (got: 1)"
		if errs.Error() != expected {
			t.Errorf("single ValidationErrors.Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: 1, Message: "error1"},
			{Field: "field2", Value: 2, Message: "error2"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("multiple ValidationErrors.Error() should contain count, got %q", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("multiple ValidationErrors.Error() should contain all fields, got %q", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate_Routine(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "no allowed lengths",
			modify:    func(c *Config) { c.Routine.AllowedLengths = nil },
			wantField: "routine.allowed_lengths",
		},
		{
			name:      "zero length",
			modify:    func(c *Config) { c.Routine.AllowedLengths = []int{0, 3} },
			wantField: "routine.allowed_lengths[0]",
		},
		{
			name:      "too long",
			modify:    func(c *Config) { c.Routine.AllowedLengths = []int{3, 100} },
			wantField: "routine.allowed_lengths[1]",
		},
		{
			name:      "duplicate length",
			modify:    func(c *Config) { c.Routine.AllowedLengths = []int{3, 5, 3} },
			wantField: "routine.allowed_lengths[2]",
		},
		{
			name:      "default not allowed",
			modify:    func(c *Config) { c.Routine.DefaultLength = 4 },
			wantField: "routine.default_length",
		},
		{
			name:      "zero warmup",
			modify:    func(c *Config) { c.Routine.WarmupSeconds = 0 },
			wantField: "routine.warmup_seconds",
		},
		{
			name:      "negative stretch",
			modify:    func(c *Config) { c.Routine.StretchSeconds = -5 },
			wantField: "routine.stretch_seconds",
		},
		{
			name:      "rest over an hour",
			modify:    func(c *Config) { c.Routine.RestSeconds = 4000 },
			wantField: "routine.rest_seconds",
		},
		{
			name:      "null byte in catalog file",
			modify:    func(c *Config) { c.Routine.CatalogFile = "a\x00b" },
			wantField: "routine.catalog_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if !hasFieldError(errs, tt.wantField) {
				t.Errorf("expected error for %s, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestConfig_Validate_CustomLengths(t *testing.T) {
	cfg := Default()
	cfg.Routine.AllowedLengths = []int{1, 2, 10}
	cfg.Routine.DefaultLength = 2
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("custom lengths should be valid, got %v", errs)
	}
}

func TestConfig_Validate_Feedback(t *testing.T) {
	cfg := Default()
	cfg.Feedback.SoundPath = "/tmp/\x00.wav"
	if !hasFieldError(cfg.Validate(), "feedback.sound_path") {
		t.Error("expected error for feedback.sound_path")
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
		wantErr   bool
	}{
		{"zero flash threshold disables flashing", func(c *Config) { c.TUI.FlashThresholdSeconds = 0 }, "tui.flash_threshold_seconds", false},
		{"negative flash threshold", func(c *Config) { c.TUI.FlashThresholdSeconds = -1 }, "tui.flash_threshold_seconds", true},
		{"flash threshold too large", func(c *Config) { c.TUI.FlashThresholdSeconds = 61 }, "tui.flash_threshold_seconds", true},
		{"zero plain interval", func(c *Config) { c.TUI.PlainStatusIntervalSeconds = 0 }, "tui.plain_status_interval_seconds", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if got := hasFieldError(cfg.Validate(), tt.wantField); got != tt.wantErr {
				t.Errorf("error for %s = %v, want %v", tt.wantField, got, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", ""} {
			cfg := Default()
			cfg.Logging.Level = level
			if hasFieldError(cfg.Validate(), "logging.level") {
				t.Errorf("level %q should be valid", level)
			}
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "invalid"
		if !hasFieldError(cfg.Validate(), "logging.level") {
			t.Error("expected error for invalid log level")
		}
	})

	t.Run("case sensitive log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "INFO"
		if !hasFieldError(cfg.Validate(), "logging.level") {
			t.Error("expected error for uppercase log level")
		}
	})

	t.Run("max size bounds", func(t *testing.T) {
		for _, size := range []int{0, -1, 1001} {
			cfg := Default()
			cfg.Logging.MaxSizeMB = size
			if !hasFieldError(cfg.Validate(), "logging.max_size_mb") {
				t.Errorf("expected error for max_size_mb=%d", size)
			}
		}
	})

	t.Run("negative backups", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxBackups = -1
		if !hasFieldError(cfg.Validate(), "logging.max_backups") {
			t.Error("expected error for negative max_backups")
		}
	})

	t.Run("zero backups allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxBackups = 0
		if hasFieldError(cfg.Validate(), "logging.max_backups") {
			t.Error("max_backups=0 should be valid")
		}
	})
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	expected := []string{"debug", "info", "warn", "error"}
	if len(levels) != len(expected) {
		t.Fatalf("ValidLogLevels() returned %d levels, want %d", len(levels), len(expected))
	}
	for i, level := range expected {
		if levels[i] != level {
			t.Errorf("ValidLogLevels()[%d] = %q, want %q", i, levels[i], level)
		}
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Routine.StretchSeconds = 0
	cfg.TUI.PlainStatusIntervalSeconds = 0
	cfg.Logging.Level = "nope"

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

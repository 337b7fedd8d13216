package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "routine.stretch_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Upper bounds enforced by Validate
const (
	maxPhaseSeconds   = 3600
	maxRoutineLength  = 50
	maxFlashThreshold = 60
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateRoutine()...)
	errors = append(errors, c.validateFeedback()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateRoutine validates the RoutineConfig
func (c *Config) validateRoutine() []ValidationError {
	var errors []ValidationError
	r := c.Routine

	if len(r.AllowedLengths) == 0 {
		errors = append(errors, ValidationError{
			Field:   "routine.allowed_lengths",
			Value:   r.AllowedLengths,
			Message: "must list at least one length",
		})
	}

	seen := make(map[int]bool, len(r.AllowedLengths))
	for i, n := range r.AllowedLengths {
		field := fmt.Sprintf("routine.allowed_lengths[%d]", i)
		switch {
		case n < 1:
			errors = append(errors, ValidationError{Field: field, Value: n, Message: "must be positive"})
		case n > maxRoutineLength:
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   n,
				Message: fmt.Sprintf("exceeds maximum of %d", maxRoutineLength),
			})
		case seen[n]:
			errors = append(errors, ValidationError{Field: field, Value: n, Message: "duplicate length"})
		}
		seen[n] = true
	}

	if len(r.AllowedLengths) > 0 && !slices.Contains(r.AllowedLengths, r.DefaultLength) {
		errors = append(errors, ValidationError{
			Field:   "routine.default_length",
			Value:   r.DefaultLength,
			Message: fmt.Sprintf("must be one of routine.allowed_lengths %v", r.AllowedLengths),
		})
	}

	for _, d := range []struct {
		field string
		value int
	}{
		{"routine.warmup_seconds", r.WarmupSeconds},
		{"routine.stretch_seconds", r.StretchSeconds},
		{"routine.rest_seconds", r.RestSeconds},
	} {
		if d.value < 1 {
			errors = append(errors, ValidationError{Field: d.field, Value: d.value, Message: "must be at least 1"})
		} else if d.value > maxPhaseSeconds {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("exceeds maximum of %d", maxPhaseSeconds),
			})
		}
	}

	if strings.ContainsRune(r.CatalogFile, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "routine.catalog_file",
			Value:   r.CatalogFile,
			Message: "contains invalid null character",
		})
	}

	return errors
}

// validateFeedback validates the FeedbackConfig
func (c *Config) validateFeedback() []ValidationError {
	var errors []ValidationError

	if strings.ContainsRune(c.Feedback.SoundPath, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "feedback.sound_path",
			Value:   c.Feedback.SoundPath,
			Message: "contains invalid null character",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.FlashThresholdSeconds < 0 || c.TUI.FlashThresholdSeconds > maxFlashThreshold {
		errors = append(errors, ValidationError{
			Field:   "tui.flash_threshold_seconds",
			Value:   c.TUI.FlashThresholdSeconds,
			Message: fmt.Sprintf("must be between 0 and %d", maxFlashThreshold),
		})
	}

	if c.TUI.PlainStatusIntervalSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.plain_status_interval_seconds",
			Value:   c.TUI.PlainStatusIntervalSeconds,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "contains invalid null character",
		})
	}

	return errors
}

package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ConfigurationError Tests
// -----------------------------------------------------------------------------

func TestConfigurationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigurationError
		want string
	}{
		{
			name: "message only",
			err:  NewConfigurationError("bad routine", nil),
			want: "configuration error: bad routine",
		},
		{
			name: "with length and allowed",
			err:  NewConfigurationError("routine length not allowed", ErrLengthNotAllowed).WithLength(4).WithAllowed([]int{3, 5, 7}),
			want: "configuration error [length=4, allowed=[3 5 7]]: routine length not allowed: routine length not allowed",
		},
		{
			name: "with catalog size",
			err:  NewConfigurationError("not enough exercises", ErrCatalogTooSmall).WithLength(7).WithCatalogSize(5),
			want: "configuration error [length=7, catalog=5]: not enough exercises: catalog has too few exercises",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigurationError_Is(t *testing.T) {
	err := NewConfigurationError("not enough exercises", ErrCatalogTooSmall)

	if !Is(err, ErrCatalogTooSmall) {
		t.Error("ConfigurationError should match its cause")
	}
	if Is(err, ErrLengthNotAllowed) {
		t.Error("ConfigurationError should not match an unrelated sentinel")
	}
	if !Is(err, &ConfigurationError{}) {
		t.Error("ConfigurationError should match the type")
	}

	wrapped := fmt.Errorf("start routine: %w", err)
	if !IsConfigurationError(wrapped) {
		t.Error("IsConfigurationError should see through wrapping")
	}
}

func TestConfigurationError_WithAllowedCopies(t *testing.T) {
	allowed := []int{3, 5, 7}
	err := NewConfigurationError("x", nil).WithAllowed(allowed)
	allowed[0] = 99

	if err.Allowed[0] != 3 {
		t.Errorf("Allowed should be copied, got %v", err.Allowed)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("name cannot be empty"),
			want: "validation error: name cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("duplicate exercise").WithField("exercises[3].name").WithValue("Lunge"),
			want: "validation error [field=exercises[3].name, value=Lunge]: duplicate exercise",
		},
		{
			name: "with cause",
			err:  NewValidationError("cannot parse catalog").WithCause(ErrCatalogInvalid),
			want: "validation error: cannot parse catalog: catalog is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("duplicate").WithCause(ErrDuplicateExercise)

	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !Is(err, ErrDuplicateExercise) {
		t.Error("ValidationError should match its cause")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", New("boom"), false},
		{"configuration error", NewConfigurationError("x", nil), true},
		{"wrapped validation error", Wrap(NewValidationError("x"), "load"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityInfo {
		t.Errorf("GetSeverity(nil) = %v, want info", got)
	}
	if got := GetSeverity(New("boom")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want error", got)
	}
	if got := GetSeverity(NewConfigurationError("x", nil)); got != SeverityWarning {
		t.Errorf("GetSeverity(config) = %v, want warning", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrCatalogInvalid, "load %s", "stretches.yaml")
	if !strings.HasPrefix(err.Error(), "load stretches.yaml: ") {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !Is(err, ErrCatalogInvalid) {
		t.Error("Wrapf should preserve the chain")
	}
}

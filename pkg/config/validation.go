package config

import (
	"fmt"
	"strings"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ValidationResult contains the result of a configuration validation
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
}

// IsValid returns true if there are no errors
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ErrorMessages returns all error messages as a slice
func (r *ValidationResult) ErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		messages[i] = err.Error()
	}
	return messages
}

// CombinedError returns all errors as a single error
func (r *ValidationResult) CombinedError() error {
	if len(r.Errors) == 0 {
		return nil
	}

	messages := r.ErrorMessages()
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(messages, "\n"))
}
// Validate validates all configuration sections
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	for _, validate := range []func() error{c.Widget.Validate, c.Server.Validate} {
		if err := validate(); err != nil {
			if vErr, ok := err.(*ValidationError); ok {
				result.Errors = append(result.Errors, *vErr)
			} else {
				result.Errors = append(result.Errors, ValidationError{Field: "config", Message: err.Error()})
			}
		}
	}

	// Add warnings for potentially problematic configurations
	if c.Widget.Capacity > 100 {
		result.Warnings = append(result.Warnings, "Large capacity (>100) materializes many rows per frame")
	}
	if c.Widget.Mode == dropdown.Single && strings.Contains(strings.ToLower(c.Widget.Placeholder), "items") {
		result.Warnings = append(result.Warnings, "Placeholder mentions items but mode is single")
	}

	return result
}

// Validate method for WidgetConfig
func (w WidgetConfig) Validate() error {
	if err := w.Viewport().Validate(); err != nil {
		return NewValidationError("widget", err.Error())
	}
	if w.Mode != dropdown.Single && w.Mode != dropdown.Multiple {
		return NewValidationError("mode", fmt.Sprintf("unknown mode %d", int(w.Mode)))
	}
	return nil
}

// Validate method for ServerConfig
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return NewValidationError("port", "must be between 0 and 65535")
	}
	return nil
}

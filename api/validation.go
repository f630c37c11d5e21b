// Package api provides the HTTP surface of the composer engine along with
// request validation utilities.
package api

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-composer-engine/config"
	"github.com/gcbaptista/go-composer-engine/model"
	"github.com/gcbaptista/go-composer-engine/services"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateName validates a composer or dictionary name parameter
func ValidateName(field, name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == "" {
		result.AddError(field, "Name is required")
		return result
	}

	if strings.TrimSpace(name) != name {
		result.AddError(field, "Name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateComposerSettings validates composer settings for creation
func ValidateComposerSettings(settings *config.ComposerSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Composer settings are required")
		return result
	}

	for _, problem := range settings.Validate() {
		result.AddError("settings", problem)
	}

	return result
}

// ValidateDictionaryEntries validates a batch of dictionary entries
func ValidateDictionaryEntries(entries []model.DictionaryEntry) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(entries) == 0 {
		result.AddError("entries", "No entries provided")
		return result
	}

	for i, entry := range entries {
		if entry.Reading == "" {
			result.AddError(fmt.Sprintf("entries[%d].reading", i), "Entry must have a reading")
		}
		if entry.Value == "" {
			result.AddError(fmt.Sprintf("entries[%d].value", i), "Entry must have a value")
		}
	}

	return result
}

// ValidateOverrideRequest validates a candidate override request
func ValidateOverrideRequest(req *services.OverrideRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Override request is required")
		return result
	}

	if req.Value == "" {
		result.AddError("value", "Override value is required")
	}
	if req.Location < 0 {
		result.AddError("location", "Location cannot be negative")
	}
	if req.Type != services.OverrideTypeHighScore && req.Type != services.OverrideTypeTopUnigramScore {
		result.AddError("type", fmt.Sprintf("Type must be '%s' or '%s'",
			services.OverrideTypeHighScore, services.OverrideTypeTopUnigramScore))
	}

	return result
}

package configloader

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "completion.providers.foo").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown provider IDs).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownLogLevels lists valid log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	config.LogLevelDebug: true,
	config.LogLevelInfo:  true,
	config.LogLevelWarn:  true,
	config.LogLevelError: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks a configuration for errors and warnings.
//
// Custom catalogs are read so that their IDs count as known providers. A
// missing or malformed catalog is a warning; the loader skips it later.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !IsValidLanguageID(cfg.LanguageID) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "language_id",
			Value:   cfg.LanguageID,
			Message: fmt.Sprintf("invalid language id %q; use lowercase letters, digits, '-' or '_'", cfg.LanguageID),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[cfg.LogLevel] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	known := validateCustomData(cfg, result)
	validateProviders(cfg, known, result)

	return result
}

// validateCustomData warns about unreadable catalogs and returns every
// provider ID that is known, built-in or custom.
func validateCustomData(cfg *config.Config, result *ValidationResult) []string {
	known := tags.BuiltinIDs()

	for i, path := range cfg.CustomData {
		field := fmt.Sprintf("custom_data[%d]", i)

		catalog, err := tags.LoadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   path,
				Message: fmt.Sprintf("custom data file %s does not exist; it will be ignored", path),
			})
		case err != nil:
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   path,
				Message: fmt.Sprintf("%v; it will be ignored", err),
			})
		default:
			known = append(known, catalog.ID())
		}
	}

	return known
}

func validateProviders(cfg *config.Config, known []string, result *ValidationResult) {
	ids := slices.Sorted(maps.Keys(cfg.Completion.Providers))
	for _, id := range ids {
		if !slices.Contains(known, id) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "completion.providers." + id,
				Value:   id,
				Message: fmt.Sprintf("unknown provider %q; it will be ignored", id),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidLanguageID reports whether id is a non-empty lowercase identifier.
func IsValidLanguageID(id string) bool {
	if id == "" {
		return false
	}
	for i := range len(id) {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// IsValidLogLevel returns true if the log level is valid.
func IsValidLogLevel(level string) bool {
	return knownLogLevels[level]
}

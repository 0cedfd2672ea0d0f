package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// envVarPrefix is the prefix for all gomarkup environment variables.
const envVarPrefix = "GOMARKUP_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
	envTypeToggles
)

type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LANGUAGE_ID":                  {field: "language_id", typ: envTypeString},
	"FORMAT":                       {field: "format", typ: envTypeString},
	"LOG_LEVEL":                    {field: "log_level", typ: envTypeString},
	"DEBUG":                        {field: "debug", typ: envTypeBool},
	"HIDE_AUTO_COMPLETE_PROPOSALS": {field: "completion.hide_auto_complete_proposals", typ: envTypeBool},
	"CUSTOM_DATA":                  {field: "custom_data", typ: envTypeSlice},
	"PROVIDERS":                    {field: "completion.providers", typ: envTypeToggles},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMARKUP_ (e.g., GOMARKUP_LANGUAGE_ID).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		cfg.CustomData = parseSliceValue(value)
		return nil
	case envTypeToggles:
		toggles, err := parseToggles(value)
		if err != nil {
			return fmt.Errorf("invalid provider list for %s: %w", envVar, err)
		}
		if cfg.Completion.Providers == nil {
			cfg.Completion.Providers = make(map[string]bool, len(toggles))
		}
		for id, enabled := range toggles {
			cfg.Completion.Providers[id] = enabled
		}
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseToggles parses "html5=false,visualforce" into provider switches.
// A bare ID enables the provider.
func parseToggles(value string) (map[string]bool, error) {
	toggles := make(map[string]bool)
	for _, part := range parseSliceValue(value) {
		id, raw, found := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("empty provider id in %q", part)
		}
		if !found {
			toggles[id] = true
			continue
		}
		enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("provider %s: %q is not a boolean", id, raw)
		}
		toggles[id] = enabled
	}
	return toggles, nil
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "language_id":
		cfg.LanguageID = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "debug":
		cfg.Debug = value
	case "completion.hide_auto_complete_proposals":
		cfg.Completion.HideAutoCompleteProposals = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOMARKUP_LANGUAGE_ID":                  "Default dialect, e.g. html or visualforce",
		"GOMARKUP_FORMAT":                       "Output format: text or json",
		"GOMARKUP_LOG_LEVEL":                    "Log level: debug, info, warn, or error",
		"GOMARKUP_DEBUG":                        "Enable debug logging: true or false",
		"GOMARKUP_HIDE_AUTO_COMPLETE_PROPOSALS": "Hide auto-close proposals: true or false",
		"GOMARKUP_CUSTOM_DATA":                  "Comma-separated list of tag catalog files",
		"GOMARKUP_PROVIDERS":                    "Comma-separated provider switches, e.g. html5=false",
	}
}

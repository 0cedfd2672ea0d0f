// Package config defines core configuration types for gomarkup.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

// OutputFormat specifies the output format for CLI results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Log levels accepted by log_level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// DefaultLanguageID is the dialect assumed when neither the config nor the
// document names one.
const DefaultLanguageID = "html"

// CompletionConfig holds completion settings.
type CompletionConfig struct {
	// HideAutoCompleteProposals suppresses the "$0</tag>" proposal offered
	// right after a start tag's '>'.
	HideAutoCompleteProposals *bool `mapstructure:"hide_auto_complete_proposals" yaml:"hide_auto_complete_proposals,omitempty"`

	// Providers enables or disables tag providers by ID. A provider that is
	// not listed is enabled.
	Providers map[string]bool `mapstructure:"providers" yaml:"providers,omitempty"`
}

// HideAutoClose reports whether auto-close proposals are hidden.
func (c CompletionConfig) HideAutoClose() bool {
	return c.HideAutoCompleteProposals != nil && *c.HideAutoCompleteProposals
}

// Config is the root configuration structure for gomarkup.
type Config struct {
	// LanguageID is the default dialect for documents whose language cannot
	// be determined otherwise.
	LanguageID string `mapstructure:"language_id" yaml:"language_id"`

	// Completion configures the completion engine.
	Completion CompletionConfig `mapstructure:"completion" yaml:"completion"`

	// CustomData lists YAML tag catalogs loaded next to the built-in ones.
	CustomData []string `mapstructure:"custom_data" yaml:"custom_data,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging.
	Debug bool `mapstructure:"-" yaml:"-"`

	// Color is the color mode: auto, always or never.
	Color string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LanguageID: DefaultLanguageID,
		Completion: CompletionConfig{
			Providers: make(map[string]bool),
		},
		Format:   FormatText,
		LogLevel: LogLevelInfo,
		Color:    "auto",
	}
}

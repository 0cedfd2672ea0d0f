package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every known tag provider with its description.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Providers describes the tag providers a full template documents.
	Providers []ProviderInfo
}

// ProviderInfo contains tag provider metadata for template generation.
type ProviderInfo struct {
	ID          string
	Description string
	Languages   []string
	Tags        int

	// Sample holds a few tag names shown next to the count.
	Sample []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Dialect used when a document's language cannot be detected
language_id: html

# Output format for CLI commands: text or json
format: text

# Log level: debug, info, warn, or error
log_level: info

# completion:
#   hide_auto_complete_proposals: false
#   providers:
#     html5: true
#     visualforce: false

# Extra tag catalogs (YAML)
# custom_data:
#   - ./tags/handlebars.yaml
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every tag provider with its default setting.
# Uncomment and modify settings as needed.

# Dialect used when a document's language cannot be detected
language_id: html

# Output format for CLI commands: text or json
format: text

# Log level: debug, info, warn, or error
log_level: info

# Extra tag catalogs (YAML)
custom_data: []

completion:
  # Do not propose "</tag>" right after a start tag is closed
  hide_auto_complete_proposals: false

  # Enable or disable tag providers by ID
  providers:
`)

	providers := slices.Clone(opts.Providers)
	slices.SortFunc(providers, func(a, b ProviderInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, p := range providers {
		if p.Description != "" {
			fmt.Fprintf(&buf, "    # %s\n", wrapComment(p.Description, commentWrapWidth))
		}
		if len(p.Languages) > 0 {
			fmt.Fprintf(&buf, "    # Languages: %s\n", strings.Join(p.Languages, ", "))
		}
		if p.Tags > 0 {
			fmt.Fprintf(&buf, "    # Tags: %d%s\n", p.Tags, sampleSuffix(p.Sample))
		}
		fmt.Fprintf(&buf, "    %s: true\n", p.ID)
	}

	return buf.Bytes()
}

// sampleSuffix formats sample tag names as " (a, b, ...)".
func sampleSuffix(sample []string) string {
	if len(sample) == 0 {
		return ""
	}
	return " (" + strings.Join(sample, ", ") + ", ...)"
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n    # ")
}

// templateToJSON renders the default configuration as JSON. JSON has no
// comments, so provider descriptions are dropped.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	providers := make(map[string]bool)
	if opts.Full {
		for _, p := range opts.Providers {
			providers[p.ID] = true
		}
	}

	cfg := map[string]any{
		"language_id": DefaultLanguageID,
		"format":      string(FormatText),
		"log_level":   LogLevelInfo,
		"custom_data": []string{},
		"completion": map[string]any{
			"hide_auto_complete_proposals": false,
			"providers":                    providers,
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomarkup configuration
# See: https://github.com/yaklabco/gomarkup`
}

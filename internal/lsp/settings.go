package lsp

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// SettingsSection is the key clients nest gomarkup settings under.
const SettingsSection = "gomarkup"

// settings mirrors the configuration file layout, so clients send the same
// keys a .gomarkup.yml uses.
type settings struct {
	Gomarkup *struct {
		Completion *config.CompletionConfig `yaml:"completion"`
	} `yaml:"gomarkup"`
}

// parseCompletionSettings extracts completion settings from the payload of
// workspace/didChangeConfiguration. ok is false when the payload carries no
// gomarkup completion section.
func parseCompletionSettings(raw any) (cfg config.CompletionConfig, ok bool, err error) {
	if raw == nil {
		return cfg, false, nil
	}

	// The payload is decoded JSON; re-encode it and let the YAML decoder,
	// which accepts JSON, apply the config field names.
	data, err := json.Marshal(raw)
	if err != nil {
		return cfg, false, fmt.Errorf("encode settings: %w", err)
	}

	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return cfg, false, fmt.Errorf("decode settings: %w", err)
	}
	if s.Gomarkup == nil || s.Gomarkup.Completion == nil {
		return cfg, false, nil
	}
	return *s.Gomarkup.Completion, true, nil
}

package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.LanguageID != "" {
		result.LanguageID = override.LanguageID
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	// CLI --debug can only switch debugging on.
	if override.Debug {
		result.Debug = true
	}

	if override.Completion.HideAutoCompleteProposals != nil {
		hide := *override.Completion.HideAutoCompleteProposals
		result.Completion.HideAutoCompleteProposals = &hide
	}
	result.Completion.Providers = mergeToggles(base.Completion.Providers, override.Completion.Providers)

	if override.CustomData != nil {
		result.CustomData = slices.Clone(override.CustomData)
	}

	return &result
}

// mergeToggles returns a fresh map holding base overlaid by override.
func mergeToggles(base, override map[string]bool) map[string]bool {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]bool, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

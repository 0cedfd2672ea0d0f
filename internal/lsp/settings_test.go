package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletionSettings(t *testing.T) {
	t.Parallel()

	t.Run("full section", func(t *testing.T) {
		t.Parallel()

		raw := map[string]any{
			"gomarkup": map[string]any{
				"completion": map[string]any{
					"hide_auto_complete_proposals": true,
					"providers":                    map[string]any{"visualforce": false},
				},
			},
		}

		cfg, ok, err := parseCompletionSettings(raw)
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, cfg.HideAutoCompleteProposals)
		assert.True(t, *cfg.HideAutoCompleteProposals)
		assert.Equal(t, map[string]bool{"visualforce": false}, cfg.Providers)
	})

	t.Run("other sections", func(t *testing.T) {
		t.Parallel()

		_, ok, err := parseCompletionSettings(map[string]any{"html": map[string]any{"format": true}})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		_, ok, err := parseCompletionSettings(nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseCompletionSettings(map[string]any{
			"gomarkup": map[string]any{"completion": map[string]any{"providers": "html5"}},
		})
		assert.Error(t, err)
	})
}

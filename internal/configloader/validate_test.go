package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*config.Config)
		errField string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"empty language", func(c *config.Config) { c.LanguageID = "" }, "language_id"},
		{"uppercase language", func(c *config.Config) { c.LanguageID = "HTML" }, "language_id"},
		{"bad format", func(c *config.Config) { c.Format = "table" }, "format"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "trace" }, "log_level"},
		{"bad color", func(c *config.Config) { c.Color = "sometimes" }, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			if tt.errField == "" {
				assert.True(t, result.Valid(), result.AllMessages())
				return
			}
			require.False(t, result.Valid())
			assert.Equal(t, tt.errField, result.Errors[0].Field)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("tags: []\n"), 0o644))

	cfg := config.NewConfig()
	cfg.CustomData = []string{filepath.Join(dir, "missing.yaml"), broken}
	cfg.Completion.Providers = map[string]bool{"html5": false, "zzz": true}

	result := ValidateWithFile(cfg, ".gomarkup.yml")
	require.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	require.Len(t, result.Warnings, 3)

	assert.Equal(t, "custom_data[0]", result.Warnings[0].Field)
	assert.Equal(t, "custom_data[1]", result.Warnings[1].Field)
	assert.Contains(t, result.Warnings[1].Message, "missing id")
	assert.Equal(t, "completion.providers.zzz", result.Warnings[2].Field)
	assert.Equal(t, `.gomarkup.yml: completion.providers.zzz: unknown provider "zzz"; it will be ignored`,
		result.Warnings[2].Error())

	messages := result.AllMessages()
	assert.Len(t, messages, 3)
	assert.Regexp(t, `^warning: `, messages[0])
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	assert.True(t, Validate(nil).Valid())
}

func TestIsValidLanguageID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"html", "visualforce", "vue-html", "x_1"} {
		assert.True(t, IsValidLanguageID(id), id)
	}
	for _, id := range []string{"", "HTML", "my lang", "c++"} {
		assert.False(t, IsValidLanguageID(id), id)
	}
	assert.True(t, IsValidLogLevel("warn"))
	assert.False(t, IsValidLogLevel("verbose"))
}

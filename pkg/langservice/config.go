package langservice

import (
	"maps"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// CompletionOptions converts completion settings to engine options.
func CompletionOptions(cfg config.CompletionConfig) complete.Options {
	return complete.Options{
		HideAutoCompleteProposals: cfg.HideAutoClose(),
		Providers:                 maps.Clone(cfg.Providers),
	}
}

// LoadProviders returns the built-in providers followed by every custom data
// catalog in paths that loads. Catalogs that fail are skipped and their
// errors returned in order.
func LoadProviders(paths []string) ([]tags.Provider, []error) {
	providers := tags.Builtin()
	var errs []error
	for _, path := range paths {
		c, err := tags.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		providers = append(providers, c)
	}
	return providers, errs
}

// NewFromConfig builds a Service from cfg. Custom data errors do not stop
// construction; they are returned alongside the Service.
func NewFromConfig(cfg *config.Config) (*Service, []error) {
	providers, errs := LoadProviders(cfg.CustomData)
	return New(providers, CompletionOptions(cfg.Completion)), errs
}

// Package langservice bundles parsing, completion, hover and highlighting
// behind one value that hosts such as the LSP server and the CLI share.
package langservice

import (
	"maps"
	"sync"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// Service answers editor queries. Its provider list and options may be
// replaced while queries run; each query sees one consistent snapshot.
type Service struct {
	mu        sync.RWMutex
	providers []tags.Provider
	opts      complete.Options
}

// New returns a Service over providers.
func New(providers []tags.Provider, opts complete.Options) *Service {
	s := &Service{}
	s.SetProviders(providers)
	s.SetOptions(opts)
	return s
}

// SetProviders replaces the provider list.
func (s *Service) SetProviders(providers []tags.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append([]tags.Provider(nil), providers...)
}

// SetOptions replaces the completion options.
func (s *Service) SetOptions(opts complete.Options) {
	opts.Providers = maps.Clone(opts.Providers)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// Options returns the current completion options.
func (s *Service) Options() complete.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := s.opts
	opts.Providers = maps.Clone(opts.Providers)
	return opts
}

// Providers returns the enabled providers that apply to languageID.
func (s *Service) Providers(languageID string) []tags.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tags.Applicable(s.providers, languageID, s.opts.Providers)
}

// Parse builds the element tree for text.
func (s *Service) Parse(text string) *markup.Document {
	return markup.Parse(text)
}

// Complete returns completion proposals at offset.
func (s *Service) Complete(languageID, text string, offset int, doc *markup.Document) *complete.List {
	return complete.Complete(text, offset, doc, s.Providers(languageID), s.Options())
}

// TagComplete returns the text to insert automatically after a typed '>'
// or '/'.
func (s *Service) TagComplete(text string, offset int, doc *markup.Document) (string, bool) {
	return complete.TagComplete(text, offset, doc)
}

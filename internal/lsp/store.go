package lsp

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// ErrUnknownDocument is returned when a change targets a document that is
// not open.
var ErrUnknownDocument = errors.New("document not open")

// Document is an immutable snapshot of an open text document together with
// its element tree and line index.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Text       string

	Tree  *markup.Document
	Lines *markup.Lines
}

func newDocument(uri, languageID string, version int32, text string) *Document {
	return &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
		Tree:       markup.Parse(text),
		Lines:      markup.NewLines(text),
	}
}

// Offset converts an editor position to a byte offset.
func (d *Document) Offset(pos markup.Position) int {
	return d.Lines.Offset(pos)
}

// Change is one content change of a didChange notification. A nil Range
// replaces the whole text.
type Change struct {
	Range *Range
	Text  string
}

// Range is a span between two editor positions.
type Range struct {
	Start markup.Position
	End   markup.Position
}

// Store holds the open documents. It is safe for concurrent use; readers get
// snapshots that later changes do not mutate.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Open records a document, replacing any previous one with the same URI.
func (s *Store) Open(uri, languageID string, version int32, text string) *Document {
	doc := newDocument(uri, languageID, version, text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc
}

// Get returns the current snapshot of uri.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Close forgets uri.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// URIs returns the open document URIs in sorted order.
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	slices.Sort(uris)
	return uris
}

// Change applies changes in order and stores the result as version. Each
// ranged change is resolved against the text produced by the changes before
// it.
func (s *Store) Change(uri string, version int32, changes []Change) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}

	text := prev.Text
	for i, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}

		lines := markup.NewLines(text)
		start := lines.Offset(change.Range.Start)
		end := lines.Offset(change.Range.End)
		if end < start {
			start, end = end, start
		}

		next, err := fix.Apply(text, fix.Replace(start, end, change.Text))
		if err != nil {
			return nil, fmt.Errorf("apply change %d to %s: %w", i, uri, err)
		}
		text = next
	}

	doc := newDocument(uri, prev.LanguageID, version, text)
	s.docs[uri] = doc
	return doc, nil
}

// Package complete computes completion proposals for a cursor position in a
// markup document.
//
// Completion is a pure function of the text, its parsed Document and the
// cursor offset. The Document must have been built from the same text.
package complete

import (
	"github.com/yaklabco/gomarkup/pkg/fix"
)

// ItemKind classifies a completion item. Values match the Language Server
// Protocol's CompletionItemKind.
type ItemKind int

const (
	KindFunction ItemKind = 3
	KindProperty ItemKind = 10
	KindUnit     ItemKind = 11
	KindValue    ItemKind = 12
)

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	case KindUnit:
		return "unit"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// InsertFormat tells how NewText of an item's edit is interpreted. Values
// match the Language Server Protocol's InsertTextFormat.
type InsertFormat int

const (
	// PlainText inserts the text as is.
	PlainText InsertFormat = 1

	// Snippet text may contain tab stops such as $0 and $1.
	Snippet InsertFormat = 2
)

// String returns the format name.
func (f InsertFormat) String() string {
	if f == Snippet {
		return "snippet"
	}
	return "plaintext"
}

// Item is one completion proposal.
type Item struct {
	Label         string
	Kind          ItemKind
	Documentation string

	// FilterText is matched against the typed prefix. Empty means Label.
	FilterText string

	// Edit replaces a byte range of the document.
	Edit   fix.TextEdit
	Format InsertFormat
}

// List is the result of a completion request.
type List struct {
	IsIncomplete bool
	Items        []Item
}

// Labels returns the item labels in order.
func (l *List) Labels() []string {
	labels := make([]string, len(l.Items))
	for i := range l.Items {
		labels[i] = l.Items[i].Label
	}
	return labels
}

// Find returns the first item with the given label.
func (l *List) Find(label string) (Item, bool) {
	for _, item := range l.Items {
		if item.Label == label {
			return item, true
		}
	}
	return Item{}, false
}

// Options tune completion. The zero value enables every provider and the
// auto-close proposal.
type Options struct {
	// HideAutoCompleteProposals suppresses the end tag proposal offered
	// right after a start tag's '>'.
	HideAutoCompleteProposals bool

	// Providers disables individual tag providers by ID when set to false.
	Providers map[string]bool
}

package langservice

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// Hover describes the tag under the cursor.
type Hover struct {
	// Tag is the tag as written in markup, "<div>" or "</div>".
	Tag           string
	Documentation string

	// Range covers the tag name the hover belongs to.
	Range markup.SourceRange
}

// Markdown renders the hover for display.
func (h *Hover) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "```html\n%s\n```", h.Tag)
	if h.Documentation != "" {
		b.WriteString("\n\n")
		b.WriteString(h.Documentation)
	}
	return b.String()
}

// Hover returns documentation for the tag name under offset, either the
// start tag's or the end tag's. ok is false when offset is not on a tag name
// or no provider documents the tag.
func (s *Service) Hover(languageID, text string, offset int, doc *markup.Document) (*Hover, bool) {
	node := doc.NodeAt(offset)
	if node.Tag == "" {
		return nil, false
	}

	open := true
	var (
		nameRange markup.SourceRange
		found     bool
	)
	if node.HasEndTag() && offset >= node.EndTagStart {
		open = false
		nameRange, found = tagNameRange(text, node.EndTagStart, markup.TokenEndTag)
	} else {
		nameRange, found = tagNameRange(text, node.Start, markup.TokenStartTag)
	}
	if !found || !nameRange.Covers(offset) {
		return nil, false
	}

	tag := strings.ToLower(node.Tag)
	documentation, ok := tags.Documentation(s.Providers(languageID), tag)
	if !ok {
		return nil, false
	}

	label := "<" + tag + ">"
	if !open {
		label = "</" + tag + ">"
	}
	return &Hover{Tag: label, Documentation: documentation, Range: nameRange}, true
}

// tagNameRange finds the first token of kind scanning from start.
func tagNameRange(text string, start int, kind markup.TokenKind) (markup.SourceRange, bool) {
	s := markup.NewScanner(text, start, markup.WithinContent)
	for k := s.Scan(); k != markup.TokenEOS; k = s.Scan() {
		if k == kind {
			return markup.SourceRange{StartOffset: s.TokenOffset(), EndOffset: s.TokenEnd()}, true
		}
	}
	return markup.SourceRange{}, false
}

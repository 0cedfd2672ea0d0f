package complete

import (
	"fmt"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// TagComplete returns the snippet an editor inserts automatically after the
// user types a '>' or '/' at offset.
//
// Right after the '>' of a start tag whose element is not void and has no
// end tag yet it returns "$0</tag>". Right after "</" it returns "tag>" for
// the nearest unclosed element. Otherwise ok is false.
func TagComplete(text string, offset int, doc *markup.Document) (snippet string, ok bool) {
	if offset <= 0 || offset > len(text) {
		return "", false
	}

	switch text[offset-1] {
	case '>':
		node := doc.NodeBefore(offset)
		if node.Tag == "" || markup.IsVoidElement(node.Tag) || node.Start >= offset {
			return "", false
		}
		if node.HasEndTag() {
			return "", false
		}
		if scanFor(text, node.Start, offset, markup.TokenStartTagClose) {
			return fmt.Sprintf("$0</%s>", node.Tag), true
		}

	case '/':
		node := doc.NodeBefore(offset)
		for node != nil && node.Closed {
			node = node.Parent
		}
		if node == nil || node.Tag == "" {
			return "", false
		}
		if scanFor(text, node.Start, offset, markup.TokenEndTagOpen) {
			return node.Tag + ">", true
		}
	}
	return "", false
}

// scanFor reports whether a token of kind ending exactly at offset is found
// scanning from start.
func scanFor(text string, start, offset int, kind markup.TokenKind) bool {
	s := markup.NewScanner(text, start, markup.WithinContent)
	for k := s.Scan(); k != markup.TokenEOS && s.TokenEnd() <= offset; k = s.Scan() {
		if k == kind && s.TokenEnd() == offset {
			return true
		}
	}
	return false
}

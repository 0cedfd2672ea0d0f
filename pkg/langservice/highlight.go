package langservice

import "github.com/yaklabco/gomarkup/pkg/markup"

// Highlights returns the start and end tag name ranges of the element at
// offset when offset touches either name. Unclosed elements yield only the
// start tag range.
func (s *Service) Highlights(text string, offset int, doc *markup.Document) []markup.SourceRange {
	node := doc.NodeAt(offset)
	if node.Tag == "" {
		return nil
	}

	startRange, hasStart := tagNameRange(text, node.Start, markup.TokenStartTag)
	var (
		endRange markup.SourceRange
		hasEnd   bool
	)
	if node.HasEndTag() {
		endRange, hasEnd = tagNameRange(text, node.EndTagStart, markup.TokenEndTag)
	}

	if !(hasStart && startRange.Covers(offset)) && !(hasEnd && endRange.Covers(offset)) {
		return nil
	}

	var result []markup.SourceRange
	if hasStart {
		result = append(result, startRange)
	}
	if hasEnd {
		result = append(result, endRange)
	}
	return result
}

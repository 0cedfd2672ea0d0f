package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// tokenKindWidth fits the longest token kind name, "ProcessingInstruction".
const tokenKindWidth = 21

// TokenStyle returns the style used for tokens of kind.
func (s *Styles) TokenStyle(kind markup.TokenKind) lipgloss.Style {
	switch kind {
	case markup.TokenStartTag, markup.TokenEndTag:
		return s.TagName
	case markup.TokenAttributeName:
		return s.AttrName
	case markup.TokenAttributeValue:
		return s.AttrValue
	case markup.TokenStartTagOpen, markup.TokenStartTagClose, markup.TokenStartTagSelfClose,
		markup.TokenEndTagOpen, markup.TokenEndTagClose, markup.TokenDelimiterAssign:
		return s.Delimiter
	case markup.TokenStartCommentTag, markup.TokenComment, markup.TokenEndCommentTag,
		markup.TokenStartDoctypeTag, markup.TokenDoctype, markup.TokenEndDoctypeTag,
		markup.TokenProcessingInstruction:
		return s.Comment
	case markup.TokenUnknown:
		return s.Unknown
	default:
		return s.Content
	}
}

// FormatTokens renders one line per token: its span, kind and quoted text.
func (s *Styles) FormatTokens(src string, tokens []markup.Token) string {
	spanWidth := len(strconv.Itoa(len(src)))*2 + 1

	var builder strings.Builder
	for _, tok := range tokens {
		span := fmt.Sprintf("%d:%d", tok.Offset, tok.End)
		fmt.Fprintf(&builder, "%s  %s  %s\n",
			s.Span.Render(fmt.Sprintf("%-*s", spanWidth, span)),
			s.TokenKind.Render(fmt.Sprintf("%-*s", tokenKindWidth, tok.Kind)),
			s.TokenStyle(tok.Kind).Render(strconv.Quote(tok.Text(src))),
		)
	}
	return builder.String()
}

// HighlightSource re-renders src with every token styled by its kind.
func (s *Styles) HighlightSource(src string, tokens []markup.Token) string {
	var builder strings.Builder
	last := 0
	for _, tok := range tokens {
		if tok.Offset > last {
			builder.WriteString(src[last:tok.Offset])
		}
		builder.WriteString(s.TokenStyle(tok.Kind).Render(tok.Text(src)))
		last = max(last, tok.End)
	}
	if last < len(src) {
		builder.WriteString(src[last:])
	}
	return builder.String()
}

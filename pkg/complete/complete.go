package complete

import (
	"strings"

	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/markup"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// Complete returns the proposals for offset in text.
//
// providers should already be filtered for the document's language; those
// disabled in opts are skipped. Complete re-scans only from the start of the
// node preceding offset and emits at most one category of proposals.
func Complete(text string, offset int, doc *markup.Document, providers []tags.Provider, opts Options) *List {
	c := &completer{
		text:      text,
		offset:    offset,
		doc:       doc,
		providers: enabled(providers, opts.Providers),
		opts:      opts,
		result:    &List{Items: []Item{}},
	}
	return c.run()
}

func enabled(providers []tags.Provider, settings map[string]bool) []tags.Provider {
	result := make([]tags.Provider, 0, len(providers))
	for _, p := range providers {
		if on, ok := settings[p.ID()]; ok && !on {
			continue
		}
		result = append(result, p)
	}
	return result
}

type completer struct {
	text      string
	offset    int
	doc       *markup.Document
	providers []tags.Provider
	opts      Options
	result    *List

	node    *markup.Node
	scanner *markup.Scanner

	currentTag           string
	currentTagStart      int
	currentAttributeName string
}

//nolint:gocognit,cyclop,funlen // one case per token kind
func (c *completer) run() *List {
	c.node = c.doc.NodeBefore(c.offset)
	c.scanner = markup.NewScanner(c.text, c.node.Start, markup.WithinContent)
	s := c.scanner
	offset := c.offset

	for kind := s.Scan(); kind != markup.TokenEOS && s.TokenOffset() <= offset; kind = s.Scan() {
		switch kind {
		case markup.TokenStartTagOpen:
			c.currentTagStart = s.TokenOffset()
			if s.TokenEnd() == offset {
				end := c.scanNextForEndPos(markup.TokenStartTag)
				return c.collectTagSuggestions(offset, end)
			}

		case markup.TokenStartTag:
			if s.TokenOffset() <= offset && offset <= s.TokenEnd() {
				return c.collectOpenTagSuggestions(s.TokenOffset(), s.TokenEnd())
			}
			c.currentTag = s.TokenText()

		case markup.TokenAttributeName:
			if s.TokenOffset() <= offset && offset <= s.TokenEnd() {
				return c.collectAttributeNameSuggestions(s.TokenOffset(), s.TokenEnd())
			}
			c.currentAttributeName = s.TokenText()

		case markup.TokenDelimiterAssign:
			if s.TokenEnd() == offset {
				return c.collectAttributeValueSuggestions(s.TokenEnd(), offset)
			}

		case markup.TokenAttributeValue:
			if s.TokenOffset() <= offset && offset <= s.TokenEnd() {
				return c.collectAttributeValueSuggestions(s.TokenOffset(), s.TokenEnd())
			}

		case markup.TokenWhitespace:
			if offset > s.TokenEnd() {
				break
			}
			switch s.State() {
			case markup.AfterOpeningStartTag:
				start := s.TokenOffset()
				end := c.scanNextForEndPos(markup.TokenStartTag)
				return c.collectTagSuggestions(start, end)
			case markup.WithinTag, markup.AfterAttributeName:
				return c.collectAttributeNameSuggestions(s.TokenEnd(), offset)
			case markup.BeforeAttributeValue:
				return c.collectAttributeValueSuggestions(s.TokenEnd(), offset)
			case markup.AfterOpeningEndTag:
				return c.collectCloseTagSuggestions(s.TokenOffset()-1, false, offset)
			}

		case markup.TokenEndTagOpen:
			if offset <= s.TokenEnd() {
				afterOpenBracket := s.TokenOffset() + 1
				end := c.scanNextForEndPos(markup.TokenEndTag)
				return c.collectCloseTagSuggestions(afterOpenBracket, false, end)
			}

		case markup.TokenEndTag:
			if offset > s.TokenEnd() {
				break
			}
			for start := s.TokenOffset() - 1; start >= 0; start-- {
				ch := c.text[start]
				if ch == '/' {
					return c.collectCloseTagSuggestions(start, false, s.TokenEnd())
				}
				if !isWhitespace(ch) {
					break
				}
			}

		case markup.TokenStartTagClose:
			if offset <= s.TokenEnd() && c.currentTag != "" {
				return c.collectAutoCloseTagSuggestion(s.TokenEnd(), c.currentTag)
			}

		default:
			if offset <= s.TokenEnd() {
				return c.result
			}
		}
	}
	return c.result
}

// replaceEdit builds an edit over [start, end). A start past the cursor is
// pulled back to it.
func (c *completer) replaceEdit(start, end int, text string) fix.TextEdit {
	return fix.Replace(min(start, c.offset), end, text)
}

// stopAtTagOpen returns the first offset in [from, end) holding '<', or end.
func (c *completer) stopAtTagOpen(from, end int) int {
	for i := from; i < end; i++ {
		if c.text[i] == '<' {
			return i
		}
	}
	return max(from, end)
}

// afterTagOpen returns the position just past the last '<' in [from, to),
// or from when there is none.
func (c *completer) afterTagOpen(from, to int) int {
	for i := to - 1; i >= from; i-- {
		if c.text[i] == '<' {
			return i + 1
		}
	}
	return from
}

// scanNextForEndPos returns the end of the next token when it is of kind
// next and starts at the cursor, otherwise the cursor.
func (c *completer) scanNextForEndPos(next markup.TokenKind) int {
	if c.offset == c.scanner.TokenEnd() {
		if c.scanner.Scan() == next && c.scanner.TokenOffset() == c.offset {
			return c.scanner.TokenEnd()
		}
	}
	return c.offset
}

func (c *completer) collectOpenTagSuggestions(afterOpenBracket, tagNameEnd int) *List {
	for _, p := range c.providers {
		p.CollectTags(func(tag, documentation string) {
			c.result.Items = append(c.result.Items, Item{
				Label:         tag,
				Kind:          KindProperty,
				Documentation: documentation,
				Edit:          c.replaceEdit(afterOpenBracket, tagNameEnd, tag),
				Format:        PlainText,
			})
		})
	}
	return c.result
}

func (c *completer) collectTagSuggestions(tagStart, tagEnd int) *List {
	c.collectOpenTagSuggestions(tagStart, tagEnd)
	c.collectCloseTagSuggestions(tagStart, true, tagEnd)
	return c.result
}

// collectCloseTagSuggestions offers to close the nearest open ancestor. When
// inOpenTag is set the node being typed is skipped, and nothing else is
// offered if no ancestor qualifies.
func (c *completer) collectCloseTagSuggestions(afterOpenBracket int, inOpenTag bool, tagNameEnd int) *List {
	closeTag := ">"
	if isFollowedBy(c.text, tagNameEnd, markup.WithinEndTag, markup.TokenEndTagClose) {
		closeTag = ""
	}

	curr := c.node
	if inOpenTag {
		curr = curr.Parent
	}
	for ; curr != nil; curr = curr.Parent {
		if curr.Tag == "" || (curr.Closed && curr.EndTagStart <= c.offset) {
			continue
		}
		item := Item{
			Label:      "/" + curr.Tag,
			Kind:       KindProperty,
			FilterText: "/" + curr.Tag + closeTag,
			Edit:       c.replaceEdit(afterOpenBracket, tagNameEnd, "/"+curr.Tag+closeTag),
			Format:     PlainText,
		}
		startIndent, startOK := lineIndent(c.text, curr.Start)
		endIndent, endOK := lineIndent(c.text, afterOpenBracket-1)
		if startOK && endOK && startIndent != endIndent {
			item.Edit = c.replaceEdit(afterOpenBracket-1-len(endIndent), c.offset,
				startIndent+"</"+curr.Tag+closeTag)
			item.FilterText = endIndent + "</" + curr.Tag + closeTag
		}
		c.result.Items = append(c.result.Items, item)
		return c.result
	}
	if inOpenTag {
		return c.result
	}

	for _, p := range c.providers {
		p.CollectTags(func(tag, documentation string) {
			c.result.Items = append(c.result.Items, Item{
				Label:         "/" + tag,
				Kind:          KindProperty,
				Documentation: documentation,
				FilterText:    "/" + tag + closeTag,
				Edit:          c.replaceEdit(afterOpenBracket, tagNameEnd, "/"+tag+closeTag),
				Format:        PlainText,
			})
		})
	}
	return c.result
}

// collectAutoCloseTagSuggestion offers the end tag right after a start
// tag's '>' unless the element is void or already has an end tag.
func (c *completer) collectAutoCloseTagSuggestion(tagCloseEnd int, tag string) *List {
	if c.opts.HideAutoCompleteProposals || markup.IsVoidElement(tag) {
		return c.result
	}
	if node := c.doc.NodeAt(c.currentTagStart + 1); node.Start == c.currentTagStart && node.HasEndTag() {
		return c.result
	}
	c.result.Items = append(c.result.Items, Item{
		Label:      "</" + tag + ">",
		Kind:       KindProperty,
		FilterText: "</" + tag + ">",
		Edit:       fix.Insert(tagCloseEnd, "$0</"+tag+">"),
		Format:     Snippet,
	})
	return c.result
}

// collectAttributeNameSuggestions offers the current tag's attributes. The
// replaced range never extends past a '<', which is a legal attribute name
// character but far more likely starts the next tag.
func (c *completer) collectAttributeNameSuggestions(nameStart, nameEnd int) *List {
	replaceEnd := c.stopAtTagOpen(c.offset, nameEnd)

	value := `="$1"`
	if isFollowedBy(c.text, nameEnd, markup.AfterAttributeName, markup.TokenDelimiterAssign) {
		value = ""
	}

	tag := strings.ToLower(c.currentTag)
	for _, p := range c.providers {
		p.CollectAttributes(tag, func(attribute, valueSet string) {
			snippet := attribute
			if valueSet != tags.ValueSetValueless {
				snippet += value
			}
			kind := KindValue
			if valueSet == tags.ValueSetEvent {
				kind = KindFunction
			}
			c.result.Items = append(c.result.Items, Item{
				Label:  attribute,
				Kind:   kind,
				Edit:   c.replaceEdit(nameStart, replaceEnd, snippet),
				Format: Snippet,
			})
		})
	}
	return c.result
}

// collectAttributeValueSuggestions offers values for the current attribute.
// With the cursor inside a double-quoted value only the word under the
// cursor is replaced; otherwise the whole value is replaced with a quoted
// one. Neither range extends past a '<'.
func (c *completer) collectAttributeValueSuggestions(valueStart, valueEnd int) *List {
	var (
		edit      func(string) fix.TextEdit
		addQuotes bool
	)
	if c.offset > valueStart && c.offset <= valueEnd && c.text[valueStart] == '"' {
		if valueEnd > c.offset && c.text[valueEnd-1] == '"' {
			valueEnd--
		}
		start := wordStart(c.text, c.offset, c.afterTagOpen(valueStart+1, c.offset))
		end := wordEnd(c.text, c.offset, c.stopAtTagOpen(c.offset, valueEnd))
		edit = func(s string) fix.TextEdit { return c.replaceEdit(start, end, s) }
	} else {
		end := c.stopAtTagOpen(max(c.offset, valueStart), valueEnd)
		edit = func(s string) fix.TextEdit { return c.replaceEdit(valueStart, end, s) }
		addQuotes = true
	}

	tag := strings.ToLower(c.currentTag)
	attribute := strings.ToLower(c.currentAttributeName)
	for _, p := range c.providers {
		p.CollectValues(tag, attribute, func(value string) {
			insert := value
			if addQuotes {
				insert = `"` + value + `"`
			}
			c.result.Items = append(c.result.Items, Item{
				Label:      value,
				Kind:       KindUnit,
				FilterText: insert,
				Edit:       edit(insert),
				Format:     PlainText,
			})
		})
	}
	return c.result
}

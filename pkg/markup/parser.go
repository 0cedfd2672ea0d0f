// Package markup tokenizes tag-based markup and builds a recovery-tolerant
// element tree with offset queries.
package markup

// Parse builds the element tree for text in a single pass.
//
// Parse never fails. An end tag closes the nearest open element with the same
// name, ignoring case; open elements it skips are left unclosed and end
// where that end tag begins. Elements still open at the end of text are
// unclosed and end at len(text).
func Parse(text string) *Document {
	scanner := NewScanner(text, 0, WithinContent)
	root := newNode(0, len(text), nil)
	curr := root
	endTagStart := -1
	pendingAttribute := ""

	for kind := scanner.Scan(); kind != TokenEOS; kind = scanner.Scan() {
		switch kind {
		case TokenStartTagOpen:
			child := newNode(scanner.TokenOffset(), len(text), curr)
			curr.Children = append(curr.Children, child)
			curr = child

		case TokenStartTag:
			curr.Tag = scanner.TokenText()

		case TokenStartTagClose:
			if curr == root {
				break
			}
			// May move to the end tag later.
			curr.End = scanner.TokenEnd()
			if IsVoidElement(curr.Tag) {
				curr.Closed = true
				curr = curr.Parent
			}

		case TokenEndTagOpen:
			endTagStart = scanner.TokenOffset()

		case TokenEndTag:
			closeTag := scanner.TokenText()
			for curr != root && !curr.IsSameTag(closeTag) {
				curr.End = endTagStart
				curr.Closed = false
				curr = curr.Parent
			}
			if curr != root {
				curr.Closed = true
				curr.EndTagStart = endTagStart
			}

		case TokenStartTagSelfClose:
			if curr != root {
				curr.Closed = true
				curr.End = scanner.TokenEnd()
				curr = curr.Parent
			}

		case TokenEndTagClose:
			if curr != root {
				curr.End = scanner.TokenEnd()
				curr = curr.Parent
			}

		case TokenAttributeName:
			pendingAttribute = scanner.TokenText()
			if curr.Attributes == nil {
				curr.Attributes = make(map[string]*string)
			}
			curr.Attributes[pendingAttribute] = nil

		case TokenAttributeValue:
			if curr.Attributes != nil && pendingAttribute != "" {
				value := scanner.TokenText()
				curr.Attributes[pendingAttribute] = &value
				pendingAttribute = ""
			}
		}
	}

	for ; curr != root; curr = curr.Parent {
		curr.End = len(text)
		curr.Closed = false
	}

	return &Document{Root: root}
}

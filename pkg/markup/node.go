package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Node is one element occurrence in a markup document, or the synthetic root.
//
// Children are disjoint and sorted by Start. Parent is a non-owning
// back-reference used for upward traversal only.
type Node struct {
	// Tag is the element name as written. Empty for the root.
	Tag string

	// Start is the offset of the element's '<'.
	Start int

	// End is the offset just past the element. For a closed element this
	// is the end of its end tag; for an unclosed one it is where an ancestor's
	// end tag or the end of the document forced it shut.
	End int

	// EndTagStart is the offset of the matching end tag's '<', or -1.
	EndTagStart int

	// Closed reports whether a matching end tag, a self-close or the void
	// element rule terminated this element.
	Closed bool

	Children []*Node
	Parent   *Node

	// Attributes maps names, as written, to raw values including quotes.
	// A nil value marks a valueless attribute such as "checked".
	Attributes map[string]*string
}

func newNode(start, end int, parent *Node) *Node {
	return &Node{Start: start, End: end, EndTagStart: -1, Parent: parent}
}

// IsRoot reports whether n is the document root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// HasEndTag reports whether EndTagStart is set.
func (n *Node) HasEndTag() bool {
	return n.EndTagStart >= 0
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// IsSameTag compares the node's tag to name ignoring case.
func (n *Node) IsSameTag(name string) bool {
	return n.Tag != "" && strings.EqualFold(n.Tag, name)
}

// Depth returns the number of ancestors between n and the root.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent; p != nil && p.Parent != nil; p = p.Parent {
		depth++
	}
	return depth
}

// HasAttr reports whether the attribute is present, ignoring name case.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.lookupAttr(name)
	return ok
}

// Attr returns the attribute's value with quotes removed and character
// references decoded. A valueless attribute returns ("", true).
func (n *Node) Attr(name string) (string, bool) {
	raw, ok := n.lookupAttr(name)
	if !ok {
		return "", false
	}
	if raw == nil {
		return "", true
	}
	return html.UnescapeString(unquote(*raw)), true
}

func (n *Node) lookupAttr(name string) (*string, bool) {
	if v, ok := n.Attributes[name]; ok {
		return v, true
	}
	for k, v := range n.Attributes {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	if len(s) >= 1 && (s[0] == '"' || s[0] == '\'') {
		return s[1:]
	}
	return s
}

// firstChildFrom returns the index of the first child with offset <= Start.
func (n *Node) firstChildFrom(offset int) int {
	return sort.Search(len(n.Children), func(i int) bool {
		return offset <= n.Children[i].Start
	})
}

// NodeBefore returns the deepest node whose content precedes offset.
func (n *Node) NodeBefore(offset int) *Node {
	idx := n.firstChildFrom(offset) - 1
	if idx >= 0 {
		child := n.Children[idx]
		if offset > child.Start {
			if offset < child.End {
				return child.NodeBefore(offset)
			}
			if last := child.LastChild(); last != nil && last.End == child.End {
				return child.NodeBefore(offset)
			}
			return child
		}
	}
	return n
}

// NodeAt returns the deepest node whose (Start, End] span contains offset.
func (n *Node) NodeAt(offset int) *Node {
	idx := n.firstChildFrom(offset) - 1
	if idx >= 0 {
		child := n.Children[idx]
		if offset > child.Start && offset <= child.End {
			return child.NodeAt(offset)
		}
	}
	return n
}

// Document is the tree built from one snapshot of a text. Queries are only
// meaningful against the exact text that produced it.
type Document struct {
	Root *Node
}

// Roots returns the top-level elements.
func (d *Document) Roots() []*Node {
	return d.Root.Children
}

// NodeBefore returns the deepest node whose content precedes offset.
// Used to seed completion.
func (d *Document) NodeBefore(offset int) *Node {
	return d.Root.NodeBefore(offset)
}

// NodeAt returns the innermost node containing offset. Used for hover and
// highlighting.
func (d *Document) NodeAt(offset int) *Node {
	return d.Root.NodeAt(offset)
}

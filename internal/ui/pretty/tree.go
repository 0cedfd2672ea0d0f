package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/markup"
)

// FormatTree renders the element tree of doc, one element per line, indented
// by depth. Each line shows the span, the end tag position and whether the
// element was closed.
func (s *Styles) FormatTree(doc *markup.Document) string {
	var builder strings.Builder
	for _, root := range doc.Roots() {
		s.writeNode(&builder, root, 0)
	}
	return builder.String()
}

func (s *Styles) writeNode(builder *strings.Builder, node *markup.Node, depth int) {
	builder.WriteString(strings.Repeat("  ", depth))

	tag := node.Tag
	if tag == "" {
		tag = "?"
	}
	builder.WriteString(s.TagName.Render("<" + tag + ">"))

	span := fmt.Sprintf(" [%d,%d)", node.Start, node.End)
	if node.HasEndTag() {
		span += fmt.Sprintf(" end@%d", node.EndTagStart)
	}
	builder.WriteString(s.Span.Render(span))

	if node.Closed {
		builder.WriteString(" " + s.Closed.Render("closed"))
	} else {
		builder.WriteString(" " + s.Unclosed.Render("unclosed"))
	}

	if attrs := formatAttributes(node); attrs != "" {
		builder.WriteString(" " + s.AttrName.Render(attrs))
	}
	builder.WriteString("\n")

	for _, child := range node.Children {
		s.writeNode(builder, child, depth+1)
	}
}

// formatAttributes lists attributes sorted by name, values as written.
func formatAttributes(node *markup.Node) string {
	if len(node.Attributes) == 0 {
		return ""
	}

	names := make([]string, 0, len(node.Attributes))
	for name := range node.Attributes {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if value := node.Attributes[name]; value != nil {
			parts = append(parts, name+"="+*value)
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// FormatUnclosed renders a one-line summary of elements left open.
func (s *Styles) FormatUnclosed(nodes []*markup.Node) string {
	if len(nodes) == 0 {
		return s.Success.Render("All elements closed") + "\n"
	}

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, fmt.Sprintf("<%s>@%d", n.Tag, n.Start))
	}

	word := "elements"
	if len(nodes) == 1 {
		word = "element"
	}
	return s.Warning.Render(fmt.Sprintf("%d unclosed %s", len(nodes), word)) +
		s.Dim.Render(": "+strings.Join(names, ", ")) + "\n"
}

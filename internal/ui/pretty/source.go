package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/langservice"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// FormatLocation renders path:line:col with one-based line and column.
func (s *Styles) FormatLocation(path string, pos markup.Position) string {
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", pos.Line+1, pos.Character+1))
}

// FormatSourceContext formats the source line with a caret under the
// one-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatCursor renders the location of offset in text and the line holding
// it with a caret under the cursor.
func (s *Styles) FormatCursor(path, text string, offset int) string {
	lines := markup.NewLines(text)
	pos := lines.Position(offset)

	info, _ := lines.Line(pos.Line)
	line := text[info.StartOffset:info.NewlineStart]

	return s.FormatLocation(path, pos) + "\n" + s.FormatSourceContext(line, pos.Character+1)
}

// FormatHover renders a hover result for the terminal.
func (s *Styles) FormatHover(hover *langservice.Hover) string {
	var builder strings.Builder

	builder.WriteString(s.TagName.Render(hover.Tag))
	builder.WriteString(s.Span.Render(fmt.Sprintf("  [%d,%d)", hover.Range.StartOffset, hover.Range.EndOffset)))
	builder.WriteString("\n")

	if hover.Documentation != "" {
		builder.WriteString("\n")
		builder.WriteString(s.Docs.Render(hover.Documentation))
		builder.WriteString("\n")
	}

	return builder.String()
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomarkup/pkg/complete"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // #, LABEL, KIND, RANGE, INSERT
	minIndexWidth    = 2
	minLabelWidth    = 12
	minKindWidth     = 8
	minRangeWidth    = 7
	minInsertWidth   = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	snippetMarker    = "*"
)

// TableRow represents a single completion item in the table.
type TableRow struct {
	Index   string
	Label   string
	Kind    string
	Range   string
	Insert  string
	Snippet bool
}

// TableFormatter formats completion lists as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatList formats a completion list. Rows are numbered from zero, matching
// the index taken by "complete --apply".
func (t *TableFormatter) FormatList(list *complete.List) string {
	if list == nil || len(list.Items) == 0 {
		return t.styles.Dim.Render("No completions") + "\n"
	}

	rows := make([]TableRow, 0, len(list.Items))
	for i, item := range list.Items {
		rows = append(rows, ItemToTableRow(i, item))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatFooter(list))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	index  int
	label  int
	kind   int
	rng    int
	insert int
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		index:  minIndexWidth,
		label:  minLabelWidth,
		kind:   minKindWidth,
		rng:    minRangeWidth,
		insert: minInsertWidth,
	}

	for _, row := range rows {
		widths.index = max(widths.index, len(row.Index))
		widths.label = max(widths.label, len(row.Label))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.rng = max(widths.rng, len(row.Range))
		widths.insert = max(widths.insert, len(row.Insert))
	}

	// Constrain to terminal width: shrink INSERT first, then LABEL.
	totalWidth := calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.insert = max(minInsertWidth, widths.insert-excess)

		totalWidth = calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.label = max(minLabelWidth, widths.label-excess)
		}
	}

	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.index + widths.label + widths.kind + widths.rng + widths.insert +
		tablePadding*tableColumnCount + len(snippetMarker)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s ",
		widths.index, "#",
		widths.label, "LABEL",
		widths.kind, "KIND",
		widths.rng, "RANGE",
		widths.insert, "INSERT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	marker := " "
	if row.Snippet {
		marker = t.styles.Snippet.Render(snippetMarker)
	}

	return fmt.Sprintf(" %s  %s  %s  %s  %s %s",
		t.styles.Dim.Render(fmt.Sprintf("%*s", widths.index, row.Index)),
		t.styles.Label.Render(fmt.Sprintf("%-*s", widths.label, truncateString(row.Label, widths.label))),
		t.styles.ItemKind.Render(fmt.Sprintf("%-*s", widths.kind, row.Kind)),
		t.styles.Span.Render(fmt.Sprintf("%-*s", widths.rng, row.Range)),
		fmt.Sprintf("%-*s", widths.insert, truncateString(row.Insert, widths.insert)),
		marker,
	)
}

func (t *TableFormatter) formatFooter(list *complete.List) string {
	word := "items"
	if len(list.Items) == 1 {
		word = "item"
	}
	parts := []string{fmt.Sprintf("%d %s", len(list.Items), word)}

	snippets := 0
	for _, item := range list.Items {
		if item.Format == complete.Snippet {
			snippets++
		}
	}
	if snippets > 0 {
		if t.colorEnabled {
			parts = append(parts, t.styles.Snippet.Render(fmt.Sprintf("%d snippets", snippets)))
		} else {
			parts = append(parts, fmt.Sprintf("%d snippets (%s)", snippets, snippetMarker))
		}
	}
	if list.IsIncomplete {
		parts = append(parts, t.styles.Incomplete.Render("incomplete"))
	}

	return " " + strings.Join(parts, " | ")
}

// ItemToTableRow converts a completion item to a table row.
func ItemToTableRow(index int, item complete.Item) TableRow {
	return TableRow{
		Index:   strconv.Itoa(index),
		Label:   item.Label,
		Kind:    item.Kind.String(),
		Range:   fmt.Sprintf("%d:%d", item.Edit.StartOffset, item.Edit.EndOffset),
		Insert:  strconv.Quote(item.Edit.NewText),
		Snippet: item.Format == complete.Snippet,
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

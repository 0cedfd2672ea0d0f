// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the output is not a terminal.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token styles
	TagName   lipgloss.Style
	AttrName  lipgloss.Style
	AttrValue lipgloss.Style
	Delimiter lipgloss.Style
	Comment   lipgloss.Style
	Content   lipgloss.Style
	Unknown   lipgloss.Style
	TokenKind lipgloss.Style

	// Tree styles
	Closed   lipgloss.Style
	Unclosed lipgloss.Style
	Span     lipgloss.Style

	// Completion styles
	Label      lipgloss.Style
	ItemKind   lipgloss.Style
	Snippet    lipgloss.Style
	Docs       lipgloss.Style
	Title      lipgloss.Style
	Incomplete lipgloss.Style

	// Source context
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		TagName:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		AttrName:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		AttrValue: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Delimiter: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Comment:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Content:   lipgloss.NewStyle(),
		Unknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		TokenKind: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		Closed:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Unclosed: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Span:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Label:      lipgloss.NewStyle().Bold(true),
		ItemKind:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Snippet:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Docs:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Title:      lipgloss.NewStyle().Bold(true).Underline(true),
		Incomplete: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		TagName:        plain,
		AttrName:       plain,
		AttrValue:      plain,
		Delimiter:      plain,
		Comment:        plain,
		Content:        plain,
		Unknown:        plain,
		TokenKind:      plain,
		Closed:         plain,
		Unclosed:       plain,
		Span:           plain,
		Label:          plain,
		ItemKind:       plain,
		Snippet:        plain,
		Docs:           plain,
		Title:          plain,
		Incomplete:     plain,
		FilePath:       plain,
		Location:       plain,
		SourceLine:     plain,
		Caret:          plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// and a fixed default otherwise.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

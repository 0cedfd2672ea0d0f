package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

type hoverFlags struct {
	cursor cursorFlags
	format string
}

func newHoverCommand(global *globalFlags) *cobra.Command {
	flags := &hoverFlags{}

	cmd := &cobra.Command{
		Use:   "hover FILE",
		Short: "Show tag documentation and matching tags at a cursor position",
		Long: `Show the documentation of the element under the cursor and the ranges of
its start and end tag names, which editors highlight together.

Examples:
  gomarkup hover --offset 3 index.html
  gomarkup hover --at 12:5 page.html
  echo '<d|iv></div>' | gomarkup hover --cursor '|' -`,
		Args: exactlyOneDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHover(cmd, global, flags, args[0])
		},
		Annotations: map[string]string{annotationProviders: ""},
	}

	addCursorFlags(cmd, &flags.cursor)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

type sourceRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type hoverOutput struct {
	Found         bool          `json:"found"`
	Tag           string        `json:"tag,omitempty"`
	Documentation string        `json:"documentation,omitempty"`
	Range         *sourceRange  `json:"range,omitempty"`
	Highlights    []sourceRange `json:"highlights"`
}

func runHover(cmd *cobra.Command, global *globalFlags, flags *hoverFlags, path string) error {
	cfg, err := loadConfig(cmd, global, formatOverride(cmd, flags.format))
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd, global, cfg, path)
	if err != nil {
		return err
	}

	text, offset, err := flags.cursor.resolve(doc.text)
	if err != nil {
		return err
	}

	service := newService(cfg)
	tree := service.Parse(text)
	hover, found := service.Hover(doc.language, text, offset, tree)
	highlights := service.Highlights(text, offset, tree)
	out := cmd.OutOrStdout()

	if cfg.Format == config.FormatJSON {
		result := hoverOutput{Found: found, Highlights: []sourceRange{}}
		if found {
			result.Tag = hover.Tag
			result.Documentation = hover.Documentation
			result.Range = &sourceRange{Start: hover.Range.StartOffset, End: hover.Range.EndOffset}
		}
		for _, r := range highlights {
			result.Highlights = append(result.Highlights, sourceRange{Start: r.StartOffset, End: r.EndOffset})
		}
		return writeJSON(out, result)
	}

	styles := newStyles(cmd, cfg)
	if found {
		_, err = fmt.Fprint(out, styles.FormatHover(hover))
	} else {
		_, err = fmt.Fprintln(out, styles.Dim.Render("No hover information"))
	}
	if err != nil {
		return err
	}

	if len(highlights) > 0 {
		lines := markup.NewLines(text)
		parts := make([]string, 0, len(highlights))
		for _, r := range highlights {
			pos := lines.Position(r.StartOffset)
			parts = append(parts, styles.Span.Render(fmt.Sprintf("%d:%d", pos.Line+1, pos.Character+1))+
				" "+styles.TagName.Render(text[r.StartOffset:r.EndOffset]))
		}
		_, err = fmt.Fprintf(out, "\n%s %s\n", styles.Label.Render("highlights:"), strings.Join(parts, ", "))
	}
	return err
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

type parseFlags struct {
	format string
	offset int
}

func newParseCommand(global *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the element tree of a document",
		Long: `Parse a document and print its element tree. Each element shows its byte
span, where its end tag starts and whether it was closed. Elements left open
by missing or misnested end tags are listed at the end.

With --offset the command also reports the element before and at that
offset, the queries completion and hover are built on.

Examples:
  gomarkup parse index.html
  gomarkup parse --offset 42 index.html
  gomarkup parse --format json page.html`,
		Args: exactlyOneDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.offset, "offset", -1, "report the elements before and at this byte offset")

	return cmd
}

// parsedNode is the JSON form of an element.
type parsedNode struct {
	Tag         string             `json:"tag"`
	Start       int                `json:"start"`
	End         int                `json:"end"`
	EndTagStart *int               `json:"endTagStart,omitempty"`
	Closed      bool               `json:"closed"`
	Attributes  map[string]*string `json:"attributes,omitempty"`
	Children    []parsedNode       `json:"children"`
}

type parseOutput struct {
	Roots    []parsedNode `json:"roots"`
	Unclosed []parsedNode `json:"unclosed"`
	Before   *parsedNode  `json:"before,omitempty"`
	At       *parsedNode  `json:"at,omitempty"`
}

func toParsedNode(n *markup.Node, withChildren bool) parsedNode {
	result := parsedNode{
		Tag:        n.Tag,
		Start:      n.Start,
		End:        n.End,
		Closed:     n.Closed,
		Attributes: n.Attributes,
		Children:   []parsedNode{},
	}
	if n.HasEndTag() {
		endTagStart := n.EndTagStart
		result.EndTagStart = &endTagStart
	}
	if withChildren {
		for _, child := range n.Children {
			result.Children = append(result.Children, toParsedNode(child, true))
		}
	}
	return result
}

func runParse(cmd *cobra.Command, global *globalFlags, flags *parseFlags, path string) error {
	cfg, err := loadConfig(cmd, global, formatOverride(cmd, flags.format))
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd, global, cfg, path)
	if err != nil {
		return err
	}
	if flags.offset > len(doc.text) {
		return usageErrorf("offset %d is past the end of the input (%d bytes)", flags.offset, len(doc.text))
	}

	tree := markup.Parse(doc.text)
	unclosed := markup.Unclosed(tree)
	out := cmd.OutOrStdout()

	if cfg.Format == config.FormatJSON {
		result := parseOutput{Roots: []parsedNode{}, Unclosed: []parsedNode{}}
		for _, root := range tree.Roots() {
			result.Roots = append(result.Roots, toParsedNode(root, true))
		}
		for _, n := range unclosed {
			result.Unclosed = append(result.Unclosed, toParsedNode(n, false))
		}
		if flags.offset >= 0 {
			before := toParsedNode(tree.NodeBefore(flags.offset), false)
			at := toParsedNode(tree.NodeAt(flags.offset), false)
			result.Before, result.At = &before, &at
		}
		return writeJSON(out, result)
	}

	styles := newStyles(cmd, cfg)
	if _, err := fmt.Fprint(out, styles.FormatTree(tree)); err != nil {
		return err
	}
	if _, err := fmt.Fprint(out, styles.FormatUnclosed(unclosed)); err != nil {
		return err
	}
	if flags.offset >= 0 {
		writeQuery(out, styles, "before", tree.NodeBefore(flags.offset))
		writeQuery(out, styles, "at", tree.NodeAt(flags.offset))
	}
	return nil
}

func writeQuery(w io.Writer, styles *pretty.Styles, label string, n *markup.Node) {
	name := "(document)"
	if !n.IsRoot() {
		name = "<" + n.Tag + ">"
	}
	fmt.Fprintf(w, "%s %s %s\n",
		styles.Label.Render(fmt.Sprintf("%-6s", label+":")),
		styles.TagName.Render(name),
		styles.Span.Render(fmt.Sprintf("[%d,%d)", n.Start, n.End)),
	)
}

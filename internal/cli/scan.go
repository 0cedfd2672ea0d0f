package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

type scanFlags struct {
	format    string
	offset    int
	state     string
	highlight bool
}

func newScanCommand(global *globalFlags) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "Print the token stream of a document",
		Long: `Tokenize a document and print one line per token with its byte span,
kind and text. Scanning may start mid-document in a given scanner state,
which is how the completion engine resumes scanning at an element.

Examples:
  gomarkup scan index.html
  gomarkup scan --offset 12 --state WithinTag index.html
  gomarkup scan --highlight page.html
  echo '<div id=a>' | gomarkup scan --format json -`,
		Args: exactlyOneDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "byte offset to start scanning at")
	cmd.Flags().StringVar(&flags.state, "state", markup.WithinContent.String(), "scanner state to start in")
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "print the source with tokens colored by kind")

	return cmd
}

// scannedToken is the JSON form of a token.
type scannedToken struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	End    int    `json:"end"`
	Text   string `json:"text"`
	Error  string `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, global *globalFlags, flags *scanFlags, path string) error {
	cfg, err := loadConfig(cmd, global, formatOverride(cmd, flags.format))
	if err != nil {
		return err
	}

	state, ok := markup.ParseScannerState(flags.state)
	if !ok {
		return usageErrorf("unknown scanner state %q", flags.state)
	}

	doc, err := readDocument(cmd, global, cfg, path)
	if err != nil {
		return err
	}
	if flags.offset < 0 || flags.offset > len(doc.text) {
		return usageErrorf("offset %d is outside the input (%d bytes)", flags.offset, len(doc.text))
	}

	var (
		tokens  []markup.Token
		scanned []scannedToken
	)
	scanner := markup.NewScanner(doc.text, flags.offset, state)
	for kind := scanner.Scan(); kind != markup.TokenEOS; kind = scanner.Scan() {
		tok := scanner.Token()
		tokens = append(tokens, tok)
		scanned = append(scanned, scannedToken{
			Kind:   kind.String(),
			Offset: tok.Offset,
			End:    tok.End,
			Text:   tok.Text(doc.text),
			Error:  scanner.TokenError(),
		})
	}

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatJSON {
		if scanned == nil {
			scanned = []scannedToken{}
		}
		return writeJSON(out, scanned)
	}

	styles := newStyles(cmd, cfg)
	if flags.highlight {
		source := styles.HighlightSource(doc.text, tokens)
		if !strings.HasSuffix(source, "\n") {
			source += "\n"
		}
		_, err = fmt.Fprint(out, source)
		return err
	}

	_, err = fmt.Fprint(out, styles.FormatTokens(doc.text, tokens))
	return err
}

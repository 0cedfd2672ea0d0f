package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/fsutil"
	"github.com/yaklabco/gomarkup/pkg/langservice"
)

type completeFlags struct {
	cursor      cursorFlags
	format      string
	apply       int
	write       bool
	backup      bool
	tagComplete bool
	hideClose   bool
	noProviders []string
}

func newCompleteCommand(global *globalFlags) *cobra.Command {
	flags := &completeFlags{}

	cmd := &cobra.Command{
		Use:   "complete FILE",
		Short: "List completion proposals at a cursor position",
		Long: `Run the completion engine at a cursor position and list the proposals:
tag names, closing tags, attribute names and attribute values.

The cursor is given as a byte offset, a 1-based LINE:COLUMN, or a marker
string inside the input that is removed before completing. With --apply the
chosen proposal is applied and the resulting text printed; --write stores it
back into FILE instead, refusing if the file changed meanwhile.

Examples:
  gomarkup complete --offset 14 index.html
  gomarkup complete --at 3:7 index.html
  echo '<div><inp|' | gomarkup complete --cursor '|' -
  gomarkup complete --cursor '|' --apply 0 page.html
  gomarkup complete --offset 14 --apply 2 --write --backup index.html
  gomarkup complete --offset 5 --tag-complete index.html`,
		Args: exactlyOneDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, global, flags, args[0])
		},
		Annotations: map[string]string{annotationProviders: ""},
	}

	addCursorFlags(cmd, &flags.cursor)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.apply, "apply", -1, "apply the proposal with this index and print the result")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "with --apply, write the result back to FILE")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "with --write, keep the original as FILE"+fsutil.BackupSuffix)
	cmd.Flags().BoolVar(&flags.tagComplete, "tag-complete", false,
		"print the text that closes the tag just typed instead of proposals")
	cmd.Flags().BoolVar(&flags.hideClose, "hide-auto-close", false, "hide the end tag proposal after a start tag")
	cmd.Flags().StringSliceVar(&flags.noProviders, "disable-provider", nil, "tag providers to disable, by ID")

	return cmd
}

// completionItem is the JSON form of a completion proposal.
type completionItem struct {
	Index         int    `json:"index"`
	Label         string `json:"label"`
	Kind          string `json:"kind"`
	Documentation string `json:"documentation,omitempty"`
	FilterText    string `json:"filterText,omitempty"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	NewText       string `json:"newText"`
	Format        string `json:"format"`
}

type completionOutput struct {
	Language     string           `json:"language"`
	Offset       int              `json:"offset"`
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []completionItem `json:"items"`
}

type applyOutput struct {
	Item   completionItem `json:"item"`
	Text   string         `json:"text"`
	Cursor int            `json:"cursor"`
}

func toCompletionItem(index int, item complete.Item) completionItem {
	return completionItem{
		Index:         index,
		Label:         item.Label,
		Kind:          item.Kind.String(),
		Documentation: item.Documentation,
		FilterText:    item.FilterText,
		Start:         item.Edit.StartOffset,
		End:           item.Edit.EndOffset,
		NewText:       item.Edit.NewText,
		Format:        item.Format.String(),
	}
}

func (f *completeFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cliCfg := formatOverride(cmd, f.format)
	if cmd.Flags().Changed("hide-auto-close") {
		hide := f.hideClose
		cliCfg.Completion.HideAutoCompleteProposals = &hide
	}
	if len(f.noProviders) > 0 {
		cliCfg.Completion.Providers = make(map[string]bool, len(f.noProviders))
		for _, id := range f.noProviders {
			cliCfg.Completion.Providers[id] = false
		}
	}
	return cliCfg
}

func runComplete(cmd *cobra.Command, global *globalFlags, flags *completeFlags, path string) error {
	if flags.write && flags.apply < 0 {
		return usageErrorf("--write requires --apply")
	}
	if flags.backup && !flags.write {
		return usageErrorf("--backup requires --write")
	}

	cfg, err := loadConfig(cmd, global, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd, global, cfg, path)
	if err != nil {
		return err
	}
	if flags.write && doc.snapshot == nil {
		return usageErrorf("--write needs a file, not stdin")
	}

	text, offset, err := flags.cursor.resolve(doc.text)
	if err != nil {
		return err
	}

	service := newService(cfg)
	tree := service.Parse(text)
	out := cmd.OutOrStdout()

	if flags.tagComplete {
		snippet, ok := service.TagComplete(text, offset, tree)
		if cfg.Format == config.FormatJSON {
			return writeJSON(out, map[string]any{"found": ok, "snippet": snippet})
		}
		if !ok {
			_, err = fmt.Fprintln(out, newStyles(cmd, cfg).Dim.Render("No tag completion"))
			return err
		}
		_, err = fmt.Fprintln(out, snippet)
		return err
	}

	list := service.Complete(doc.language, text, offset, tree)
	logging.Default().Debug("completed",
		logging.FieldOffset, offset,
		logging.FieldLanguage, doc.language,
		logging.FieldItems, len(list.Items),
	)

	if flags.apply >= 0 {
		return applyCompletion(cmd, cfg, doc, text, list, flags)
	}

	if cfg.Format == config.FormatJSON {
		result := completionOutput{
			Language:     doc.language,
			Offset:       offset,
			IsIncomplete: list.IsIncomplete,
			Items:        make([]completionItem, 0, len(list.Items)),
		}
		for i, item := range list.Items {
			result.Items = append(result.Items, toCompletionItem(i, item))
		}
		return writeJSON(out, result)
	}

	styles := newStyles(cmd, cfg)
	colorEnabled := pretty.IsColorEnabled(cfg.Color, out)
	table := pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(out))

	if _, err := fmt.Fprint(out, styles.FormatCursor(doc.displayPath(), text, offset)); err != nil {
		return err
	}
	_, err = fmt.Fprint(out, "\n"+table.FormatList(list))
	return err
}

func applyCompletion(cmd *cobra.Command, cfg *config.Config, doc *document, text string,
	list *complete.List, flags *completeFlags,
) error {
	if flags.apply >= len(list.Items) {
		return usageErrorf("--apply %d: only %d proposals", flags.apply, len(list.Items))
	}
	item := list.Items[flags.apply]

	insert, cursor := item.Edit.NewText, len(item.Edit.NewText)
	if item.Format == complete.Snippet {
		insert, cursor = fix.ExpandSnippet(insert)
	}

	result, err := fix.Apply(text, fix.Replace(item.Edit.StartOffset, item.Edit.EndOffset, insert))
	if err != nil {
		return fmt.Errorf("apply %q: %w", item.Label, err)
	}

	if flags.write {
		return writeCompletion(cmd, doc, result, flags.backup)
	}

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatJSON {
		return writeJSON(out, applyOutput{
			Item:   toCompletionItem(flags.apply, item),
			Text:   result,
			Cursor: item.Edit.StartOffset + cursor,
		})
	}
	_, err = fmt.Fprint(out, result)
	return err
}

func writeCompletion(cmd *cobra.Command, doc *document, result string, backup bool) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	if backup {
		created, err := fsutil.CreateBackup(ctx, doc.snapshot, []byte(doc.text))
		if err != nil {
			return err
		}
		if created {
			logger.Info("created backup", logging.FieldPath, fsutil.BackupPath(doc.path))
		}
	}

	written, err := fsutil.WriteSnapshot(ctx, doc.snapshot, []byte(result))
	if err != nil {
		return fmt.Errorf("write %s: %w", doc.path, err)
	}
	if written {
		logger.Info("applied completion", logging.FieldPath, doc.path)
	} else {
		logger.Info("file unchanged", logging.FieldPath, doc.path)
	}
	return nil
}

// newService builds the language service for cfg, logging custom data that
// fails to load.
func newService(cfg *config.Config) *langservice.Service {
	service, errs := langservice.NewFromConfig(cfg)
	for _, err := range errs {
		logging.Default().Warn("skipping custom data", logging.FieldError, err)
	}
	return service
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/configloader"
	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/fsutil"
	"github.com/yaklabco/gomarkup/pkg/langdetect"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// stdinPath names standard input as a document argument.
const stdinPath = "-"

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with the global flags and
// cliCfg on top. Warnings are logged; the first validation error fails.
func loadConfig(cmd *cobra.Command, flags *globalFlags, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	cliCfg.LanguageID = flags.language
	cliCfg.Debug = flags.debug
	cliCfg.Color = flags.color

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, result.LoadedFrom)
	}

	cfg := result.Config
	if cfg.Debug {
		logging.SetLevel(config.LogLevelDebug)
	} else {
		logging.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}

// formatOverride returns a CLI config carrying the --format flag when it
// was given.
func formatOverride(cmd *cobra.Command, format string) *config.Config {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(format)
	}
	return cliCfg
}

// document is an input file loaded for a command.
type document struct {
	path     string
	text     string
	language string

	// snapshot is nil for standard input.
	snapshot *fsutil.Snapshot
}

// displayPath is the name used in output.
func (d *document) displayPath() string {
	if d.path == stdinPath {
		return "<stdin>"
	}
	return d.path
}

// readDocument loads path, or standard input for "-", and resolves its
// language: the --language flag wins, then detection from the file name and
// content, then the configured language ID for standard input.
func readDocument(cmd *cobra.Command, flags *globalFlags, cfg *config.Config, path string) (*document, error) {
	doc := &document{path: path}

	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		doc.text = string(content)
	} else {
		content, snapshot, err := fsutil.ReadFile(commandContext(cmd), path)
		if err != nil {
			return nil, err
		}
		doc.text = string(content)
		doc.snapshot = snapshot
	}

	switch {
	case flags.language != "":
		doc.language = cfg.LanguageID
	case path != stdinPath:
		doc.language = langdetect.Detect(path, []byte(doc.text))
	default:
		doc.language = cfg.LanguageID
	}

	logging.Default().Debug("read document",
		logging.FieldPath, doc.displayPath(),
		logging.FieldLanguage, doc.language,
		logging.FieldLength, len(doc.text),
	)
	return doc, nil
}

func newStyles(cmd *cobra.Command, cfg *config.Config) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, cmd.OutOrStdout()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// cursorFlags locate the position a query applies to. Exactly one must be
// set.
type cursorFlags struct {
	offset int
	at     string
	cursor string
}

func addCursorFlags(cmd *cobra.Command, flags *cursorFlags) {
	cmd.Flags().IntVar(&flags.offset, "offset", -1, "byte offset of the cursor")
	cmd.Flags().StringVar(&flags.at, "at", "", "cursor position as LINE:COLUMN, both 1-based")
	cmd.Flags().StringVar(&flags.cursor, "cursor", "",
		"marker in the input that stands for the cursor; it is removed before the query")
}

// resolve returns the text to query, with any cursor marker removed, and the
// cursor's byte offset in it.
func (f *cursorFlags) resolve(text string) (string, int, error) {
	set := 0
	for _, given := range []bool{f.offset >= 0, f.at != "", f.cursor != ""} {
		if given {
			set++
		}
	}
	if set != 1 {
		return "", 0, usageErrorf("exactly one of --offset, --at or --cursor is required")
	}

	switch {
	case f.cursor != "":
		idx := strings.Index(text, f.cursor)
		if idx < 0 {
			return "", 0, usageErrorf("cursor marker %q not found in input", f.cursor)
		}
		return text[:idx] + text[idx+len(f.cursor):], idx, nil

	case f.at != "":
		line, column, err := parseLineColumn(f.at)
		if err != nil {
			return "", 0, err
		}
		pos := markup.Position{Line: line - 1, Character: column - 1}
		return text, markup.NewLines(text).Offset(pos), nil

	default:
		if f.offset > len(text) {
			return "", 0, usageErrorf("offset %d is past the end of the input (%d bytes)", f.offset, len(text))
		}
		return text, f.offset, nil
	}
}

func parseLineColumn(value string) (int, int, error) {
	lineText, columnText, found := strings.Cut(value, ":")
	if !found {
		return 0, 0, usageErrorf("invalid position %q: expected LINE:COLUMN", value)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return 0, 0, usageErrorf("invalid line in %q", value)
	}
	column, err := strconv.Atoi(columnText)
	if err != nil || column < 1 {
		return 0, 0, usageErrorf("invalid column in %q", value)
	}
	return line, column, nil
}

// exactlyOneDocument validates the positional FILE argument.
func exactlyOneDocument(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageErrorf("expected exactly one FILE argument (use - for stdin), got %d", len(args))
	}
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("%s takes no arguments, got %q", cmd.Name(), args)
	}
	return nil
}

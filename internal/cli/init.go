package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/fsutil"
	"github.com/yaklabco/gomarkup/pkg/tags"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomarkup configuration file",
		Long: `Create a new .gomarkup.yml configuration file in the current directory
with sensible defaults. The full template lists every built-in tag provider
so it can be switched off.

Examples:
  gomarkup init                      Create minimal .gomarkup.yml
  gomarkup init --full               Create full config with all providers documented
  gomarkup init --format json        Create .gomarkup.json instead (load it with --config)
  gomarkup init --output custom.yml  Write to a custom file path`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all providers documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gomarkup.yml or .gomarkup.json)")

	return cmd
}

// providerSampleSize is how many tag names providerInfo samples per catalog.
const providerSampleSize = 3

// providerInfo describes the built-in providers for the full template and
// the help output.
func providerInfo() []config.ProviderInfo {
	var infos []config.ProviderInfo
	for _, p := range tags.Builtin() {
		info := config.ProviderInfo{ID: p.ID()}
		if c, ok := p.(*tags.Catalog); ok {
			info.Languages = c.Languages()
			info.Tags = c.Len()
			for _, tag := range c.Tags()[:min(providerSampleSize, c.Len())] {
				info.Sample = append(info.Sample, tag.DisplayName())
			}
		}
		switch p.ID() {
		case tags.HTML5ID:
			info.Description = "HTML5 elements, attributes and values."
		case tags.VisualforceID:
			info.Description = "Salesforce Visualforce apex: components."
		}
		infos = append(infos, info)
	}
	return infos
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), config.LogLevelInfo)

	if flags.format != "yaml" && flags.format != "json" {
		return usageErrorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomarkup.json"
		} else {
			outputPath = ".gomarkup.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:      flags.full,
		Format:    flags.format,
		Providers: providerInfo(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template lists every built-in tag provider")
	}
	logger.Info("add custom_data entries to load your own tag catalogs")

	return nil
}

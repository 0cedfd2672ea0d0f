// Package cli provides the Cobra command structure for gomarkup.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	language   string
}

// NewRootCommand creates the root gomarkup command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomarkup",
		Short: "Scan, parse and complete tag-based markup",
		Long: `gomarkup is a toolkit for HTML-like markup written in Go.

It tokenizes documents with a mode-aware scanner, builds an element tree that
tolerates missing and misnested tags, and answers editor queries: completion
of tags, attributes and values, hover documentation and matching tag
highlights. The same engine is served to editors over the Language Server
Protocol with "gomarkup serve".`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel(config.LogLevelDebug)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&flags.language, "language", "l", "",
		"language ID of the input, e.g. html or visualforce (default: detected)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newScanCommand(flags))
	rootCmd.AddCommand(newParseCommand(flags))
	rootCmd.AddCommand(newCompleteCommand(flags))
	rootCmd.AddCommand(newHoverCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags, info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	newHelpFormatter(flags.color, os.Stdout).apply(rootCmd)

	return rootCmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/internal/lsp"
	"github.com/yaklabco/gomarkup/pkg/config"
)

func newServeCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"lsp"},
		Short:   "Run the language server on stdio",
		Long: `Run a Language Server Protocol server on standard input and output.

The server offers completion, hover and document highlights for every
document the client opens, plus the "gomarkup/tagComplete" request for
closing tags as they are typed. Custom data catalogs named in the
configuration are reloaded when their files change. Logs go to stderr.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, global, nil)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if cfg.Debug {
				level = config.LogLevelDebug
			}
			logger := logging.NewServer(level)
			logging.SetDefault(logger)

			server := lsp.New(lsp.Options{
				Version: info.Version,
				Config:  cfg,
				Logger:  logger,
				Debug:   cfg.Debug,
			})
			return server.RunStdio(logging.WithLogger(commandContext(cmd), logger))
		},
		Annotations: map[string]string{annotationProviders: ""},
	}
}

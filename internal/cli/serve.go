package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vk/pipecheck/internal/app"
)

func newServeCommand() *cobra.Command {
	var opts app.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline validation API",
		Long: `Serve the pipeline API over HTTP and socket.io until interrupted.

Flags override the matching settings of the configuration file.

Examples:
  pipecheck serve
  pipecheck serve --config pipecheck.hcl
  pipecheck serve --addr :9000 --log-level debug --log-format text`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.NewConfig(opts)
			if err != nil {
				return usageError(err)
			}
			a, err := app.NewApp(cmd.OutOrStdout(), cfg)
			if errors.Is(err, app.ErrConfig) {
				return usageError(err)
			}
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to an HCL service configuration file.")
	flags.StringVar(&opts.ListenAddr, "addr", "", "Listen address, e.g. ':8000'.")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")
	return cmd
}

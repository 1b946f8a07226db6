package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RunFunc runs an example with the final configuration.
type RunFunc func(cmd *cobra.Command, config Config) error

// NewCommand creates the root command of an example. The logger is set up
// before run is called and profiling wraps the call.
func NewCommand(use, short string, run RunFunc) *cobra.Command {
	config, configErr := LoadConfig()

	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		SilenceUsage: true,
		Args:         cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return configErr
			}

			logger, err := NewLogger(config.LogLevel, config.LogFormat)
			if err != nil {
				return err
			}

			InstallLogger(logger)

			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := StartProfile(config.Profile)
			if err != nil {
				return err
			}

			defer stop()

			slog.Debug("Starting", slog.String("command", cmd.Name()), slog.Any("config", config))

			return run(cmd, config)
		},
	}

	config.RegisterFlags(cmd)

	return cmd
}

// Execute runs the command and exits the process on error.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"pelada/internal/config"
	"pelada/internal/logger"
)

// Loader supplies the configuration commands run against.
type Loader func() (*config.Config, error)

func NewRootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "peladactl",
		Short:         "peladactl operates a Craque da Pelada deployment",
		Long:          "peladactl inspects configuration, runs database migrations and opens checkout sessions from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level, "text")
		logger.SetOutput(cmd.ErrOrStderr())
	}

	root.AddCommand(
		newConfigCmd(load),
		newMigrateCmd(load),
		newCheckoutCmd(load),
	)
	return root
}

package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirgrowth/internal/config"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirgrowth [flags] [path]",
		Short: "Compute the amount of data generated in a directory between two time points",
		Long: heredoc.Doc(`
			dirgrowth sums the sizes of all files below a directory whose
			modification time lies inside a time window.

			Positional Arguments:
			  path                   Directory to measure. Defaults to current directory if not specified.

			Both bounds are inclusive and optional. A missing start or end leaves
			the window open on that side; with neither, every file is counted.
			Timestamps are RFC 3339 (2024-01-01T00:00:00+00:00), or a local
			date-time (2024-01-01T12:00:00) or date (2024-01-01).

			Every flag can also be set through a DIRGROWTH_* environment
			variable, e.g. DIRGROWTH_WORKERS=4 or DIRGROWTH_LOG_LEVEL=debug.
		`),
		Example: heredoc.Doc(`
			dirgrowth --start-time 2024-03-01 /data
			dirgrowth -s 2024-01-01T00:00:00+00:00 -e 2024-06-30T23:59:59+00:00 -o json .
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			return logic(cmd, cfg, path)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringP(config.KeyStartTime, "s", "", "Only count files modified at or after this time")
	flags.StringP(config.KeyEndTime, "e", "", "Only count files modified at or before this time")
	flags.BoolP(config.KeyFollowLinks, "f", false, "Follow symbolic links")
	flags.StringP(config.KeyOutput, "o", "human", fmt.Sprintf("Output format: one of %v", config.Outputs))
	flags.IntP(config.KeyWorkers, "w", 0, "Number of parallel workers (0=number of CPUs)")
	flags.StringP(config.KeyLogLevel, "l", "info", "Log level: trace, debug, info, warn, error or disabled")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirgrowth/internal/config"
	"github.com/idelchi/dirgrowth/internal/dirgrowth"
)

func logic(cmd *cobra.Command, cfg config.Config, path string) error {
	stderr := cmd.ErrOrStderr()

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	log := newLogger(stderr, level)

	start, err := dirgrowth.ParseOptionalTime(cfg.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}

	end, err := dirgrowth.ParseOptionalTime(cfg.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}

	options := dirgrowth.Options{
		Path:        path,
		Window:      dirgrowth.NewWindow(start, end),
		FollowLinks: cfg.FollowLinks,
		Workers:     cfg.Workers,
		Logger:      &log,
	}

	enableProgress := cfg.Output != "json" &&
		level > zerolog.DebugLevel &&
		isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := dirgrowth.Run(cmd.Context(), options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	return Print(result, cfg.Output, cmd.OutOrStdout())
}

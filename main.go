// Command dirgrowth reports how many bytes below a directory were modified inside a time window.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/idelchi/dirgrowth/internal/cli"
)

// Version is set at build time.
//
//nolint:gochecknoglobals // Build-time variable
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()
		log.Error().Err(err).Msg("dirgrowth failed")

		os.Exit(1)
	}
}

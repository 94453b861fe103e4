package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirgrowth/internal/dirgrowth"
)

// Print writes result to writer in the requested output format.
func Print(result *dirgrowth.Result, output string, writer io.Writer) error {
	switch output {
	case "json":
		return PrintJSON(result, writer)
	case "bytes":
		return PrintBytes(result, writer)
	case "human":
		return PrintHuman(result, writer)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

// PrintJSON outputs the result in JSON format.
func PrintJSON(result *dirgrowth.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintBytes outputs the exact byte count with a "b" suffix.
func PrintBytes(result *dirgrowth.Result, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "%db\n", result.Bytes)

	return err
}

// PrintHuman outputs the byte count scaled to a readable magnitude, followed by the exact count.
func PrintHuman(result *dirgrowth.Result, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "%s (%d bytes)\n", humanize.IBytes(result.Bytes), result.Bytes)

	return err
}

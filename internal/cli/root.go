// Package cli provides the Cobra command structure for gojsonlint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojsonlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gojsonlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gojsonlint",
		Short: "A JSON and JSONC linter with JSON Schema validation",
		Long: `gojsonlint parses JSON and JSON-with-comments files into a
position-annotated syntax tree and validates them against JSON Schema
(draft-07 subset) documents.

The parser never gives up on malformed input: it reports precise syntax
diagnostics and recovers, so schema validation still runs over the largest
well-formed tree it can build. Schema violations are reported with exact
byte ranges and line/column positions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand(&color))
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

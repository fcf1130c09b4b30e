package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojsonlint/internal/logging"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// configTemplate is the starter configuration written by init.
const configTemplate = `# gojsonlint configuration.

# Default schema applied to files no mapping matches (optional).
# schema: schemas/default.schema.json

# Map file patterns to schema documents. The first match wins.
schemas: []
#  - patterns: ["package.json"]
#    schema: schemas/package.schema.json
#  - patterns: ["*.config.json"]
#    schema: schemas/config.schema.yaml

# Permit comments in plain .json files (JSONC files always allow them).
allow_comments: false

# Severity for schema violations: error, warning or ignore.
schema_severity: warning

# Glob patterns to skip.
ignore: []
#  - "testdata/*"
`

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gojsonlint configuration file",
		Long: `Create a new .gojsonlint.yaml configuration file in the current
directory with documented defaults. Customize it to associate schemas with
files, tolerate comments, and adjust severities.

Examples:
  gojsonlint init                     Create .gojsonlint.yaml
  gojsonlint init --output custom.yaml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gojsonlint.yaml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gojsonlint.yaml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
	}

	if err := os.WriteFile(absPath, []byte(configTemplate), configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration", logging.FieldPath, outputPath)
	return nil
}

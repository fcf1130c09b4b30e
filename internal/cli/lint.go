package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojsonlint/internal/configloader"
	"github.com/yaklabco/gojsonlint/internal/logging"
	"github.com/yaklabco/gojsonlint/pkg/config"
	"github.com/yaklabco/gojsonlint/pkg/reporter"
	"github.com/yaklabco/gojsonlint/pkg/runner"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format        string
	schemaPath    string
	ignore        []string
	jobs          int
	strict        bool
	allowComments bool
	noContext     bool
	noSummary     bool
}

func newLintCommand(color *string) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JSON and JSONC files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, *color)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "schema document applied to every file")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVar(&flags.allowComments, "allow-comments", false, "permit comments in plain .json files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source line context")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the trailing summary")

	return cmd
}

const lintLongDescription = `Lint JSON and JSONC files for syntax and schema issues.

By default, lints all .json, .jsonc and .json5 files in the current
directory and subdirectories. Specify paths to lint specific files or
directories. Schema associations come from .gojsonlint.yaml or --schema.

Examples:
  gojsonlint lint                          # Lint current directory
  gojsonlint lint config/                  # Lint a directory
  gojsonlint lint settings.json            # Lint a single file
  gojsonlint lint --schema api.schema.json data.json
  gojsonlint lint --format json            # Machine-readable output for CI
  gojsonlint lint --strict                 # Treat warnings as failures`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, color string) error {
	logger := logging.Default()

	cliCfg := config.NewConfig()
	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.Jobs = flags.jobs
	cliCfg.Strict = flags.strict
	cliCfg.AllowComments = flags.allowComments
	cliCfg.Schema = flags.schemaPath
	cliCfg.Ignore = flags.ignore

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStrict, cfg.Strict,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	})
	if err != nil {
		return fmt.Errorf("lint run: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      os.Stdout,
		Format:      reporter.Format(cfg.Format),
		Color:       color,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		WorkingDir:  workDir,
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return ErrLintIssuesFound
	}
	return nil
}

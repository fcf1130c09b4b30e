// Package configloader provides configuration discovery, loading and
// merging for gojsonlint.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojsonlint/pkg/config"
)

// ConfigFileNames are the project configuration file names searched for, in
// order of preference.
var ConfigFileNames = []string{".gojsonlint.yaml", ".gojsonlint.yml"}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// CLIConfig contains configuration from CLI flags; these take
	// precedence over file values.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom lists the files that were actually loaded.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration. Precedence (highest to lowest):
// CLI flags, explicit config file, project config found by upward search,
// defaults.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.NewConfig()}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	path := opts.ExplicitPath
	if path == "" {
		path = discover(workDir)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		mergeFile(result.Config, fileCfg)
		resolveSchemaPaths(result.Config, filepath.Dir(path))
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if opts.CLIConfig != nil {
		mergeCLI(result.Config, opts.CLIConfig)
	}

	if err := validate(result.Config, result); err != nil {
		return nil, err
	}
	return result, nil
}

// discover searches workDir and its ancestors for a project config file.
func discover(workDir string) string {
	dir := workDir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &config.Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Join(fmt.Errorf("parse config %s", path), err)
	}
	return cfg, nil
}

// mergeFile applies file-backed settings onto the defaults.
func mergeFile(dst, src *config.Config) {
	if src.Schema != "" {
		dst.Schema = src.Schema
	}
	if len(src.Schemas) > 0 {
		dst.Schemas = src.Schemas
	}
	if src.AllowComments {
		dst.AllowComments = true
	}
	if src.SchemaSeverity != "" {
		dst.SchemaSeverity = src.SchemaSeverity
	}
	if len(src.Ignore) > 0 {
		dst.Ignore = append(dst.Ignore, src.Ignore...)
	}
}

// mergeCLI applies CLI-only settings, which always win.
func mergeCLI(dst, src *config.Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Jobs > 0 {
		dst.Jobs = src.Jobs
	}
	if src.Strict {
		dst.Strict = true
	}
	if src.AllowComments {
		dst.AllowComments = true
	}
	if src.Schema != "" {
		dst.Schema = src.Schema
	}
	if len(src.Ignore) > 0 {
		dst.Ignore = append(dst.Ignore, src.Ignore...)
	}
}

// resolveSchemaPaths makes relative schema paths relative to the config
// file's directory.
func resolveSchemaPaths(cfg *config.Config, baseDir string) {
	if cfg.Schema != "" && !filepath.IsAbs(cfg.Schema) {
		cfg.Schema = filepath.Join(baseDir, cfg.Schema)
	}
	for i := range cfg.Schemas {
		if cfg.Schemas[i].Schema != "" && !filepath.IsAbs(cfg.Schemas[i].Schema) {
			cfg.Schemas[i].Schema = filepath.Join(baseDir, cfg.Schemas[i].Schema)
		}
	}
}

func validate(cfg *config.Config, result *LoadResult) error {
	if !cfg.SchemaSeverity.IsValid() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown schema_severity %q, using %q", cfg.SchemaSeverity, config.SeverityWarning))
		cfg.SchemaSeverity = config.SeverityWarning
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		return fmt.Errorf("unsupported format: %s", cfg.Format)
	}
	for _, mapping := range cfg.Schemas {
		if mapping.Schema == "" {
			result.Warnings = append(result.Warnings, "schema mapping without a schema path ignored")
		}
	}
	return nil
}

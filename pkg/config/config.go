// Package config defines core configuration types for gojsonlint.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "path/filepath"

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityIgnore  Severity = "ignore"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityIgnore:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// SchemaMapping associates file glob patterns with a schema document.
type SchemaMapping struct {
	// Patterns are glob patterns matched against the file's base name and
	// against its whole slash-separated path as passed to SchemaFor. The
	// lint runner passes absolute paths, so a pattern with a directory part
	// matches there only when it matches the whole absolute path.
	Patterns []string `yaml:"patterns"`

	// Schema is the path of the schema document (JSON or YAML), relative to
	// the configuration file unless absolute.
	Schema string `yaml:"schema"`
}

// Config is the root configuration structure for gojsonlint.
type Config struct {
	// Schema is the default schema applied to files no mapping matches.
	// Empty means syntax-only linting for those files.
	Schema string `yaml:"schema"`

	// Schemas maps file patterns to schema documents.
	Schemas []SchemaMapping `yaml:"schemas"`

	// AllowComments permits comments in plain .json files. Files
	// recognized as JSONC always permit comments.
	AllowComments bool `yaml:"allow_comments"`

	// SchemaSeverity overrides the severity reported for schema
	// violations. Defaults to warning.
	SchemaSeverity Severity `yaml:"schema_severity"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict treats warnings as failures for the exit code.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		SchemaSeverity: SeverityWarning,
		Format:         FormatText,
	}
}

// SchemaFor resolves the schema document path for a file, or "" when no
// schema applies. Mappings are consulted in order; the first match wins.
func (c *Config) SchemaFor(path string) string {
	base := filepath.Base(path)
	slashed := filepath.ToSlash(path)
	for _, mapping := range c.Schemas {
		for _, pattern := range mapping.Patterns {
			if ok, err := filepath.Match(pattern, base); err == nil && ok {
				return mapping.Schema
			}
			if ok, err := filepath.Match(pattern, slashed); err == nil && ok {
				return mapping.Schema
			}
		}
	}
	return c.Schema
}

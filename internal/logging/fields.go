package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOffset     = "offset"
	FieldSchema     = "schema"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldStrict = "strict"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldSyntaxErrors     = "syntax_errors"
	FieldSchemaWarnings   = "schema_warnings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

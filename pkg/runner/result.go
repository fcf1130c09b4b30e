package runner

import (
	"github.com/yaklabco/gojsonlint/pkg/document"
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/langdetect"
)

// FileOutcome is the result of linting a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Flavor is the detected file flavor.
	Flavor langdetect.Flavor

	// Document is the parsed document. Nil when reading failed.
	Document *document.Document

	// SchemaPath is the schema document applied, if any.
	SchemaPath string

	// Problems contains the merged syntax and schema diagnostics, in
	// source order.
	Problems []jsonast.Problem

	// Error is set if the file could not be processed at all.
	Error error
}

// HasIssues returns true if any diagnostics were found.
func (fo *FileOutcome) HasIssues() bool {
	return len(fo.Problems) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered
	// deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(jsonast.SeverityError)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++
	if outcome.HasIssues() {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(outcome.Problems)
	for _, p := range outcome.Problems {
		r.Stats.DiagnosticsBySeverity[string(p.Severity)]++
	}
}

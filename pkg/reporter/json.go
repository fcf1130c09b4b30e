package reporter

import (
	"bufio"
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Flavor      string           `json:"flavor,omitempty"`
	Schema      string           `json:"schema,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Offsets are byte offsets
// into the file; line/column positions are 1-based.
type JSONDiagnostic struct {
	Severity    string `json:"severity"`
	Code        int    `json:"code,omitempty"`
	Message     string `json:"message"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("report cancelled: %w", err)
	}

	output := JSONOutput{
		Version: "1",
		Files:   make([]JSONFileResult, 0, len(result.Files)),
		Summary: JSONSummary{
			FilesChecked:    result.Stats.FilesProcessed,
			FilesWithIssues: result.Stats.FilesWithIssues,
			FilesErrored:    result.Stats.FilesErrored,
			TotalIssues:     result.Stats.DiagnosticsTotal,
			BySeverity:      result.Stats.DiagnosticsBySeverity,
		},
	}

	issues := 0
	for _, outcome := range result.Files {
		fileResult := JSONFileResult{
			Path:        outcome.Path,
			Flavor:      string(outcome.Flavor),
			Schema:      outcome.SchemaPath,
			Diagnostics: make([]JSONDiagnostic, 0, len(outcome.Problems)),
		}
		if outcome.Error != nil {
			fileResult.Error = outcome.Error.Error()
		}
		for _, problem := range outcome.Problems {
			var lines jsonast.LineIndex
			if outcome.Document != nil {
				lines = outcome.Document.Lines
			}
			start := lines.PositionAt(problem.Location.Start)
			end := lines.PositionAt(problem.Location.End)
			fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
				Severity:    string(problem.Severity),
				Code:        int(problem.Code),
				Message:     problem.Message,
				StartOffset: problem.Location.Start,
				EndOffset:   problem.Location.End,
				StartLine:   start.Line,
				StartColumn: start.Column,
				EndLine:     end.Line,
				EndColumn:   end.Column,
			})
			issues++
		}
		output.Files = append(output.Files, fileResult)
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	encoder := json.NewEncoder(bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return issues, fmt.Errorf("encode output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return issues, fmt.Errorf("flush output: %w", err)
	}
	return issues, nil
}

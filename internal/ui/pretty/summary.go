package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojsonlint/pkg/runner"
)

// FormatSummary renders aggregate run statistics.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(fmt.Sprintf("  %s %d\n", s.SummaryValue.Render("files checked:"), stats.FilesProcessed))
	builder.WriteString(fmt.Sprintf("  %s %d\n", s.SummaryValue.Render("files with issues:"), stats.FilesWithIssues))
	builder.WriteString(fmt.Sprintf("  %s %d\n", s.SummaryValue.Render("total issues:"), stats.DiagnosticsTotal))

	for _, severity := range []string{"error", "warning"} {
		if n := stats.DiagnosticsBySeverity[severity]; n > 0 {
			builder.WriteString(fmt.Sprintf("    %s %d\n", s.SummaryValue.Render(severity+":"), n))
		}
	}
	if stats.FilesErrored > 0 {
		builder.WriteString(fmt.Sprintf("  %s %d\n", s.Failure.Render("files errored:"), stats.FilesErrored))
	}

	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		builder.WriteString("  " + s.Success.Render("no issues found") + "\n")
	}

	return builder.String()
}

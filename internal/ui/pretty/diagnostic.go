package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
)

// FormatProblem formats a single diagnostic for terminal output:
//
//	path:line:col  severity  message  (code)
//
// followed by the source line and a caret marker when showContext is set.
func (s *Styles) FormatProblem(path string, problem jsonast.Problem, lines jsonast.LineIndex, sourceLine string, showContext bool) string {
	var builder strings.Builder

	pos := lines.PositionAt(problem.Location.Start)
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), pos.Line, pos.Column)

	severity := s.FormatSeverity(problem.Severity)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s",
		location,
		severity,
		s.Message.Render(problem.Message),
	))
	if problem.Code != jsonast.CodeUndefined {
		builder.WriteString("  " + s.Code.Render(fmt.Sprintf("(0x%x)", int(problem.Code))))
	}
	builder.WriteByte('\n')

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, pos.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev jsonast.Severity) string {
	switch sev {
	case jsonast.SeverityError:
		return s.Error.Render("error")
	case jsonast.SeverityWarning:
		return s.Warning.Render("warning")
	case jsonast.SeverityIgnore:
		return s.Ignore.Render("ignore")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	label := "issues"
	if issueCount == 1 {
		label = "issue"
	}
	return fmt.Sprintf("%s %s\n", s.FilePath.Render(path),
		s.Dim.Render(fmt.Sprintf("(%d %s)", issueCount, label)))
}

// FormatSchemaDetail renders a schema's title and description (markdown
// flattened) as a dimmed detail line, or "" when there is nothing to show.
func (s *Styles) FormatSchemaDetail(title, description string) string {
	parts := make([]string, 0, 2)
	if title != "" {
		parts = append(parts, RenderMarkdown(title))
	}
	if description != "" {
		parts = append(parts, RenderMarkdown(description))
	}
	if len(parts) == 0 {
		return ""
	}
	return "    " + s.Detail.Render(strings.Join(parts, ": "))
}

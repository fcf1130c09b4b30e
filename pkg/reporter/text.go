package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gojsonlint/internal/ui/pretty"
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/runner"
)

// TextReporter renders results as human-readable text, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.ColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	issues := 0

	for _, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return issues, fmt.Errorf("report cancelled: %w", err)
		}

		path := r.displayPath(outcome.Path)

		if outcome.Error != nil {
			fmt.Fprintf(bw, "%s %s\n", r.styles.FilePath.Render(path),
				r.styles.Failure.Render(outcome.Error.Error()))
			continue
		}
		if !outcome.HasIssues() {
			continue
		}

		fmt.Fprint(bw, r.styles.FormatFileHeader(path, len(outcome.Problems)))
		for _, problem := range outcome.Problems {
			sourceLine := ""
			if r.opts.ShowContext && outcome.Document != nil {
				sourceLine = lineText(outcome.Document.Content, outcome.Document.Lines, problem)
			}
			fmt.Fprint(bw, r.styles.FormatProblem(path, problem, outcome.Document.Lines, sourceLine, r.opts.ShowContext))
			issues++
		}
		fmt.Fprintln(bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummary(result.Stats))
	}

	if err := bw.Flush(); err != nil {
		return issues, fmt.Errorf("flush output: %w", err)
	}
	return issues, nil
}

func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// lineText extracts the source line containing the problem's start offset,
// without its trailing newline.
func lineText(content []byte, lines jsonast.LineIndex, problem jsonast.Problem) string {
	pos := lines.PositionAt(problem.Location.Start)
	if pos.Line <= 0 || pos.Line > len(lines) {
		return ""
	}
	info := lines[pos.Line-1]
	if info.StartOffset > len(content) || info.NewlineStart > len(content) {
		return ""
	}
	return string(content[info.StartOffset:info.NewlineStart])
}

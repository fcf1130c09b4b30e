package runner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/yaklabco/gojsonlint/pkg/config"
	"github.com/yaklabco/gojsonlint/pkg/document"
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/langdetect"
	"github.com/yaklabco/gojsonlint/pkg/parser/jsonc"
	"github.com/yaklabco/gojsonlint/pkg/schema"
)

// Linter performs per-file processing: read, detect flavor, parse, apply
// the comment policy and validate against the configured schema. Schema
// documents are loaded once and shared across workers.
type Linter struct {
	cfg *config.Config

	mu      sync.Mutex
	schemas map[string]*schemaEntry
}

type schemaEntry struct {
	schema *schema.Schema
	err    error
}

// NewLinter creates a Linter for the given configuration.
func NewLinter(cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Linter{
		cfg:     cfg,
		schemas: make(map[string]*schemaEntry),
	}
}

// LintFile processes a single file. I/O and schema-loading failures are
// reported through the outcome's Error; malformed content never is.
func (l *Linter) LintFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	if err := ctx.Err(); err != nil {
		outcome.Error = fmt.Errorf("linting cancelled: %w", err)
		return outcome
	}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	outcome.Flavor = langdetect.Detect(path, content)
	doc := document.Parse(path, content, jsonc.Options{CollectComments: true})
	outcome.Document = doc

	var s *schema.Schema
	if schemaPath := l.cfg.SchemaFor(path); schemaPath != "" {
		outcome.SchemaPath = schemaPath
		s, err = l.loadSchema(schemaPath)
		if err != nil {
			outcome.Error = err
			return outcome
		}
	}

	problems := make([]jsonast.Problem, 0, len(doc.SyntaxErrors))
	problems = append(problems, doc.SyntaxErrors...)
	problems = append(problems, l.applySeverity(doc.Validate(s))...)
	problems = append(problems, l.commentProblems(doc, outcome.Flavor)...)
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Location.Start < problems[j].Location.Start
	})
	outcome.Problems = problems
	return outcome
}

// loadSchema returns the cached schema for the path, loading it on first
// use.
func (l *Linter) loadSchema(path string) (*schema.Schema, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.schemas[path]; ok {
		return entry.schema, entry.err
	}
	s, err := schema.Load(path)
	l.schemas[path] = &schemaEntry{schema: s, err: err}
	return s, err
}

// commentProblems flags comments in files whose flavor forbids them, unless
// the configuration allows comments everywhere.
func (l *Linter) commentProblems(doc *document.Document, flavor langdetect.Flavor) []jsonast.Problem {
	if l.cfg.AllowComments || flavor.AllowsComments() {
		return nil
	}
	problems := make([]jsonast.Problem, 0, len(doc.Comments))
	for _, r := range doc.Comments {
		problems = append(problems, jsonast.Problem{
			Location: r,
			Severity: jsonast.SeverityError,
			Message:  "Comments are not permitted in JSON.",
		})
	}
	return problems
}

// applySeverity maps schema warnings onto the configured severity and drops
// ignored diagnostics.
func (l *Linter) applySeverity(problems []jsonast.Problem) []jsonast.Problem {
	severity := l.cfg.SchemaSeverity
	if severity == "" || severity == config.SeverityWarning {
		return problems
	}
	out := problems[:0]
	for _, p := range problems {
		if p.Severity == jsonast.SeverityWarning {
			if severity == config.SeverityIgnore {
				continue
			}
			p.Severity = jsonast.Severity(severity)
		}
		out = append(out, p)
	}
	return out
}

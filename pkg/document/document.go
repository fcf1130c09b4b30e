// Package document provides the parse-then-validate surface of gojsonlint:
// a Document bundles the parsed AST, its syntax diagnostics and comment
// ranges, and answers schema validation and "which schemas apply at this
// offset" queries.
package document

import (
	"sort"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/parser/jsonc"
	"github.com/yaklabco/gojsonlint/pkg/schema"
	"github.com/yaklabco/gojsonlint/pkg/validate"
)

// Document is an immutable view of a parsed JSON or JSONC file.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full source bytes.
	Content []byte

	// Lines maps byte offsets to line/column positions.
	Lines jsonast.LineIndex

	// Root is the root AST node. Nil when the parser found no value (see
	// jsonc.Result.Root).
	Root *jsonast.Node

	// SyntaxErrors contains the parser's diagnostics, in source order.
	SyntaxErrors []jsonast.Problem

	// Comments contains comment ranges when collection was enabled.
	Comments []jsonast.Range
}

// Parse parses the content into a Document. It always succeeds; malformed
// input is reported through SyntaxErrors.
func Parse(path string, content []byte, opts jsonc.Options) *Document {
	result := jsonc.Parse(content, opts)
	return &Document{
		Path:         path,
		Content:      content,
		Lines:        jsonast.BuildLines(content),
		Root:         result.Root,
		SyntaxErrors: result.Problems,
		Comments:     result.Comments,
	}
}

// Validate runs schema validation and returns the schema diagnostics only.
// Returns nil when the document has no root or the schema is nil.
func (d *Document) Validate(s *schema.Schema) []jsonast.Problem {
	if d.Root == nil || s == nil {
		return nil
	}
	result := &validate.ValidationResult{}
	validate.Validate(d.Root, s, result, validate.NoopCollector)
	return result.Problems
}

// MatchingSchemas returns the node→schema associations recorded while
// validating against s. With a non-negative focusOffset, only nodes whose
// range contains the offset are reported; exclude removes one node from
// consideration.
func (d *Document) MatchingSchemas(s *schema.Schema, focusOffset int, exclude *jsonast.Node) []validate.ApplicableSchema {
	collector := validate.NewCollector(focusOffset, exclude)
	if d.Root != nil && s != nil {
		validate.Validate(d.Root, s, &validate.ValidationResult{}, collector)
	}
	return collector.Schemas()
}

// AllProblems returns the syntax diagnostics merged with the schema
// diagnostics for s (which may be nil), ordered by start offset.
func (d *Document) AllProblems(s *schema.Schema) []jsonast.Problem {
	problems := make([]jsonast.Problem, 0, len(d.SyntaxErrors))
	problems = append(problems, d.SyntaxErrors...)
	problems = append(problems, d.Validate(s)...)
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Location.Start < problems[j].Location.Start
	})
	return problems
}

// NodeAtOffset returns the deepest node containing the given byte offset.
func (d *Document) NodeAtOffset(offset int, endInclusive bool) *jsonast.Node {
	return jsonast.NodeAtOffset(d.Root, offset, endInclusive)
}

// PositionAt converts a byte offset into a 1-based line/column position.
func (d *Document) PositionAt(offset int) jsonast.Position {
	return d.Lines.PositionAt(offset)
}

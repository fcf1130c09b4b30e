package jsonc

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
)

// Options controls parsing behavior.
type Options struct {
	// CollectComments records the ranges of line and block comments on the
	// result. When false, comments are dropped.
	CollectComments bool
}

// Result is the outcome of parsing a single document.
type Result struct {
	// Root is the root AST node. Nil when the input holds no value: it is
	// empty or holds only whitespace and comments, or its first token cannot
	// start a value.
	Root *jsonast.Node

	// Problems contains the syntax diagnostics, in source order.
	Problems []jsonast.Problem

	// Comments contains the comment ranges, when collection was enabled.
	Comments []jsonast.Range
}

// Parse parses JSONC source text into an AST. It always returns: malformed
// input produces diagnostics and the largest well-formed tree the parser
// could recover.
func Parse(src []byte, opts Options) Result {
	p := &parser{
		src:               src,
		scanner:           NewScanner(src),
		opts:              opts,
		lastProblemOffset: -1,
	}
	return p.parse()
}

type parser struct {
	src     []byte
	scanner *Scanner
	opts    Options

	problems          []jsonast.Problem
	comments          []jsonast.Range
	lastProblemOffset int
}

func (p *parser) parse() Result {
	token := p.scanNext()

	var root *jsonast.Node
	if token != jsonast.TokEOF {
		root = p.parseValue(nil)
		if root == nil {
			p.error("Expected a JSON object, array or literal.", jsonast.CodeUndefined, nil, nil, nil)
		} else if p.scanner.Token() != jsonast.TokEOF {
			p.error("End of file expected.", jsonast.CodeUndefined, nil, nil, nil)
		}
	}

	sort.SliceStable(p.problems, func(i, j int) bool {
		return p.problems[i].Location.Start < p.problems[j].Location.Start
	})
	return Result{Root: root, Problems: p.problems, Comments: p.comments}
}

// scanNext advances past trivia, line breaks and comments to the next
// grammar-visible token, reporting lexical errors along the way.
func (p *parser) scanNext() jsonast.TokenKind {
	for {
		token := p.scanner.Scan()
		p.checkScanError()
		switch token {
		case jsonast.TokLineComment, jsonast.TokBlockComment:
			if p.opts.CollectComments {
				p.comments = append(p.comments, jsonast.NewRange(
					p.scanner.TokenOffset(),
					p.scanner.TokenOffset()+p.scanner.TokenLength(),
				))
			}
		case jsonast.TokTrivia, jsonast.TokLineBreak:
			// skip
		default:
			return token
		}
	}
}

func (p *parser) checkScanError() bool {
	switch p.scanner.TokenError() {
	case jsonast.ScanErrInvalidUnicode:
		p.error("Invalid unicode sequence in string.", jsonast.CodeInvalidUnicode, nil, nil, nil)
	case jsonast.ScanErrInvalidEscapeCharacter:
		p.error("Invalid escape character in string.", jsonast.CodeInvalidEscapeCharacter, nil, nil, nil)
	case jsonast.ScanErrUnexpectedEndOfNumber:
		p.error("Unexpected end of number.", jsonast.CodeUnexpectedEndOfNumber, nil, nil, nil)
	case jsonast.ScanErrUnexpectedEndOfComment:
		p.error("Unexpected end of comment.", jsonast.CodeUnexpectedEndOfComment, nil, nil, nil)
	case jsonast.ScanErrUnexpectedEndOfString:
		p.error("Unexpected end of string.", jsonast.CodeUnexpectedEndOfString, nil, nil, nil)
	case jsonast.ScanErrInvalidCharacter:
		p.error("Invalid characters in string. Control characters must be escaped.", jsonast.CodeInvalidCharacter, nil, nil, nil)
	default:
		return false
	}
	return true
}

// errorAtRange records a diagnostic, collapsing consecutive diagnostics at
// the same start offset.
func (p *parser) errorAtRange(message string, code jsonast.ErrorCode, start, end int, severity jsonast.Severity) {
	if len(p.problems) == 0 || start != p.lastProblemOffset {
		p.problems = append(p.problems, jsonast.Problem{
			Location: jsonast.NewRange(start, end),
			Severity: severity,
			Code:     code,
			Message:  message,
		})
		p.lastProblemOffset = start
	}
}

// error records a diagnostic at the current token. When the token is
// zero-width (EOF or synthesized), the range backs up to the previous
// non-whitespace byte so the squiggle lands on a visible character. The
// optional node is finalized at the current token's end, and tokens are then
// skipped until after a token in skipUntilAfter or up to a token in
// skipUntil, whichever fires first. EOF always terminates the skip.
func (p *parser) error(message string, code jsonast.ErrorCode, node *jsonast.Node, skipUntilAfter, skipUntil []jsonast.TokenKind) *jsonast.Node {
	start := p.scanner.TokenOffset()
	end := p.scanner.TokenOffset() + p.scanner.TokenLength()
	if start == end && start > 0 {
		start--
		for start > 0 && isWhitespaceByte(p.src[start]) {
			start--
		}
		end = start + 1
	}
	p.errorAtRange(message, code, start, end, jsonast.SeverityError)

	if node != nil {
		p.finalize(node, false)
	}
	if len(skipUntilAfter)+len(skipUntil) > 0 {
		token := p.scanner.Token()
		for token != jsonast.TokEOF {
			if containsToken(skipUntilAfter, token) {
				p.scanNext()
				break
			} else if containsToken(skipUntil, token) {
				break
			}
			token = p.scanNext()
		}
	}
	return node
}

// finalize sets the node's end to the current token's end, optionally
// consuming the token.
func (p *parser) finalize(node *jsonast.Node, scanNext bool) *jsonast.Node {
	node.End = p.scanner.TokenOffset() + p.scanner.TokenLength()
	if scanNext {
		p.scanNext()
	}
	return node
}

func (p *parser) parseValue(parent *jsonast.Node) *jsonast.Node {
	if node := p.parseArray(parent); node != nil {
		return node
	}
	if node := p.parseObject(parent); node != nil {
		return node
	}
	if node := p.parseString(parent, false); node != nil {
		return node
	}
	if node := p.parseNumber(parent); node != nil {
		return node
	}
	return p.parseLiteral(parent)
}

func (p *parser) parseArray(parent *jsonast.Node) *jsonast.Node {
	if p.scanner.Token() != jsonast.TokOpenBracket {
		return nil
	}
	node := &jsonast.Node{Kind: jsonast.NodeArray, Parent: parent, Start: p.scanner.TokenOffset()}
	p.scanNext()

	needsComma := false
	for p.scanner.Token() != jsonast.TokCloseBracket && p.scanner.Token() != jsonast.TokEOF {
		if p.scanner.Token() == jsonast.TokComma {
			if !needsComma {
				p.error("Value expected", jsonast.CodeValueExpected, nil, nil, nil)
			}
			commaOffset := p.scanner.TokenOffset()
			p.scanNext()
			if p.scanner.Token() == jsonast.TokCloseBracket {
				if needsComma {
					p.errorAtRange("Trailing comma", jsonast.CodeTrailingComma, commaOffset, commaOffset+1, jsonast.SeverityError)
				}
				continue
			}
		} else if needsComma {
			p.error("Expected comma", jsonast.CodeCommaExpected, nil, nil, nil)
		}
		item := p.parseValue(node)
		if item == nil {
			p.error("Value expected", jsonast.CodeValueExpected, nil, nil,
				[]jsonast.TokenKind{jsonast.TokCloseBracket, jsonast.TokComma})
		} else {
			node.Items = append(node.Items, item)
		}
		needsComma = true
	}

	if p.scanner.Token() != jsonast.TokCloseBracket {
		return p.error("Expected comma or closing bracket", jsonast.CodeCommaOrCloseBracketExpected, node, nil, nil)
	}
	return p.finalize(node, true)
}

func (p *parser) parseObject(parent *jsonast.Node) *jsonast.Node {
	if p.scanner.Token() != jsonast.TokOpenBrace {
		return nil
	}
	node := &jsonast.Node{Kind: jsonast.NodeObject, Parent: parent, Start: p.scanner.TokenOffset()}
	keysSeen := map[string]*jsonast.Node{}
	p.scanNext()

	needsComma := false
	for p.scanner.Token() != jsonast.TokCloseBrace && p.scanner.Token() != jsonast.TokEOF {
		if p.scanner.Token() == jsonast.TokComma {
			if !needsComma {
				p.error("Property expected", jsonast.CodePropertyExpected, nil, nil, nil)
			}
			commaOffset := p.scanner.TokenOffset()
			p.scanNext()
			if p.scanner.Token() == jsonast.TokCloseBrace {
				if needsComma {
					p.errorAtRange("Trailing comma", jsonast.CodeTrailingComma, commaOffset, commaOffset+1, jsonast.SeverityError)
				}
				continue
			}
		} else if needsComma {
			p.error("Expected comma", jsonast.CodeCommaExpected, nil, nil, nil)
		}
		property := p.parseProperty(node, keysSeen)
		if property == nil {
			p.error("Property expected", jsonast.CodePropertyExpected, nil, nil,
				[]jsonast.TokenKind{jsonast.TokCloseBrace, jsonast.TokComma})
		} else {
			node.Items = append(node.Items, property)
		}
		needsComma = true
	}

	if p.scanner.Token() != jsonast.TokCloseBrace {
		return p.error("Expected comma or closing brace", jsonast.CodeCommaOrCloseBraceExpected, node, nil, nil)
	}
	return p.finalize(node, true)
}

// parseProperty parses one key/value pair. keysSeen tracks the first
// property node per key; once a key has been flagged as duplicated, the
// stored node is cleared so a third occurrence does not re-flag the first.
func (p *parser) parseProperty(parent *jsonast.Node, keysSeen map[string]*jsonast.Node) *jsonast.Node {
	node := &jsonast.Node{Kind: jsonast.NodeProperty, Parent: parent, Start: p.scanner.TokenOffset(), ColonOffset: -1}
	key := p.parseString(node, true)
	if key == nil {
		if p.scanner.Token() == jsonast.TokUnknown {
			// Unquoted key. Manufacture a synthetic string node from the
			// token text and keep going.
			p.error("Property keys must be doublequoted", jsonast.CodeUndefined, nil, nil, nil)
			key = &jsonast.Node{
				Kind:        jsonast.NodeString,
				Parent:      node,
				Start:       p.scanner.TokenOffset(),
				End:         p.scanner.TokenOffset() + p.scanner.TokenLength(),
				StringValue: p.scanner.TokenValue(),
				IsKey:       true,
			}
			p.scanNext()
		} else {
			return nil
		}
	}
	node.Key = key

	// The key name "//" is a comment convention in plain-JSON files;
	// repeated instances are allowed.
	if key.StringValue != "//" {
		if seen, ok := keysSeen[key.StringValue]; ok {
			p.errorAtRange("Duplicate object key", jsonast.CodeUndefined,
				key.Start, key.End, jsonast.SeverityWarning)
			if seen != nil {
				p.errorAtRange("Duplicate object key", jsonast.CodeUndefined,
					seen.Key.Start, seen.Key.End, jsonast.SeverityWarning)
			}
			keysSeen[key.StringValue] = nil
		} else {
			keysSeen[key.StringValue] = node
		}
	}

	if p.scanner.Token() == jsonast.TokColon {
		node.ColonOffset = p.scanner.TokenOffset()
		p.scanNext()
	} else {
		p.error("Colon expected", jsonast.CodeColonExpected, nil, nil, nil)
		if p.scanner.Token() == jsonast.TokString && p.hasLineBreakBetween(key.End, p.scanner.TokenOffset()) {
			// The next string starts on a later line; treat it as the next
			// property and terminate this one at its key.
			node.End = key.End
			return node
		}
	}
	value := p.parseValue(node)
	if value == nil {
		p.error("Value expected", jsonast.CodeValueExpected, node, nil,
			[]jsonast.TokenKind{jsonast.TokCloseBrace, jsonast.TokComma})
		node.End = key.End
		return node
	}
	node.Value = value
	node.End = value.End
	return node
}

func (p *parser) parseString(parent *jsonast.Node, isKey bool) *jsonast.Node {
	if p.scanner.Token() != jsonast.TokString {
		return nil
	}
	node := &jsonast.Node{
		Kind:        jsonast.NodeString,
		Parent:      parent,
		Start:       p.scanner.TokenOffset(),
		StringValue: p.scanner.TokenValue(),
		IsKey:       isKey,
	}
	return p.finalize(node, true)
}

func (p *parser) parseNumber(parent *jsonast.Node) *jsonast.Node {
	if p.scanner.Token() != jsonast.TokNumber {
		return nil
	}
	node := &jsonast.Node{
		Kind:      jsonast.NodeNumber,
		Parent:    parent,
		Start:     p.scanner.TokenOffset(),
		IsInteger: true,
	}
	if p.scanner.TokenError() == jsonast.ScanErrNone {
		literal := p.scanner.TokenValue()
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil || math.IsInf(value, 0) {
			p.error("Invalid number format.", jsonast.CodeUndefined, nil, nil, nil)
			node.NumberValue = math.NaN()
		} else {
			node.NumberValue = value
		}
		node.IsInteger = !strings.Contains(literal, ".")
	}
	return p.finalize(node, true)
}

func (p *parser) parseLiteral(parent *jsonast.Node) *jsonast.Node {
	var node *jsonast.Node
	switch p.scanner.Token() {
	case jsonast.TokNull:
		node = &jsonast.Node{Kind: jsonast.NodeNull, Parent: parent, Start: p.scanner.TokenOffset()}
	case jsonast.TokTrue:
		node = &jsonast.Node{Kind: jsonast.NodeBoolean, BoolValue: true, Parent: parent, Start: p.scanner.TokenOffset()}
	case jsonast.TokFalse:
		node = &jsonast.Node{Kind: jsonast.NodeBoolean, BoolValue: false, Parent: parent, Start: p.scanner.TokenOffset()}
	default:
		return nil
	}
	return p.finalize(node, true)
}

// hasLineBreakBetween reports whether a line break occurs in src[from:to].
func (p *parser) hasLineBreakBetween(from, to int) bool {
	if from < 0 {
		from = 0
	}
	if to > len(p.src) {
		to = len(p.src)
	}
	for i := from; i < to; i++ {
		if p.src[i] == '\n' || p.src[i] == '\r' {
			return true
		}
	}
	return false
}

func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func containsToken(tokens []jsonast.TokenKind, token jsonast.TokenKind) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

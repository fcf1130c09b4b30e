// Package jsonc implements scanning and error-tolerant parsing of JSON and
// JSON-with-comments source text into the position-annotated AST of
// pkg/jsonast. The parser never aborts on malformed input: it emits
// positioned diagnostics, synchronizes on structural tokens, and always
// returns the largest well-formed tree it can.
package jsonc

import (
	"strings"

	"github.com/yaklabco/gojsonlint/pkg/jsonast"
)

// Scanner tokenizes JSONC source text. Offsets are byte offsets into the
// source. A fresh Scanner is positioned before the first token; each call to
// Scan advances to the next token and returns its kind.
type Scanner struct {
	src []byte
	pos int

	token       jsonast.TokenKind
	tokenOffset int
	value       string
	scanErr     jsonast.ScanError
}

// NewScanner creates a Scanner over the given source.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, token: jsonast.TokEOF}
}

// Token returns the kind of the current token.
func (s *Scanner) Token() jsonast.TokenKind {
	return s.token
}

// TokenOffset returns the byte offset of the current token.
func (s *Scanner) TokenOffset() int {
	return s.tokenOffset
}

// TokenLength returns the length of the current token in bytes.
func (s *Scanner) TokenLength() int {
	return s.pos - s.tokenOffset
}

// TokenValue returns the value of the current token: the unescaped content
// for strings, the literal text for numbers, keywords, comments and unknown
// runs.
func (s *Scanner) TokenValue() string {
	return s.value
}

// TokenError returns the lexical error recorded for the current token, or
// ScanErrNone.
func (s *Scanner) TokenError() jsonast.ScanError {
	return s.scanErr
}

// Scan advances to the next token and returns its kind.
func (s *Scanner) Scan() jsonast.TokenKind {
	s.value = ""
	s.scanErr = jsonast.ScanErrNone
	s.tokenOffset = s.pos

	if s.pos >= len(s.src) {
		s.tokenOffset = len(s.src)
		s.token = jsonast.TokEOF
		return s.token
	}

	c := s.src[s.pos]

	if c == ' ' || c == '\t' {
		for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
			s.pos++
		}
		s.value = string(s.src[s.tokenOffset:s.pos])
		s.token = jsonast.TokTrivia
		return s.token
	}

	if c == '\n' || c == '\r' {
		s.pos++
		if c == '\r' && s.pos < len(s.src) && s.src[s.pos] == '\n' {
			s.pos++
		}
		s.value = string(s.src[s.tokenOffset:s.pos])
		s.token = jsonast.TokLineBreak
		return s.token
	}

	switch c {
	case '{':
		s.pos++
		s.token = jsonast.TokOpenBrace
	case '}':
		s.pos++
		s.token = jsonast.TokCloseBrace
	case '[':
		s.pos++
		s.token = jsonast.TokOpenBracket
	case ']':
		s.pos++
		s.token = jsonast.TokCloseBracket
	case ':':
		s.pos++
		s.token = jsonast.TokColon
	case ',':
		s.pos++
		s.token = jsonast.TokComma
	case '"':
		s.pos++
		s.value = s.scanString()
		s.token = jsonast.TokString
	case '/':
		s.token = s.scanComment()
	case '-':
		s.pos++
		if s.pos >= len(s.src) || !isDigit(s.src[s.pos]) {
			s.token = s.scanUnknown()
			return s.token
		}
		s.scanNumber()
		s.value = string(s.src[s.tokenOffset:s.pos])
		s.token = jsonast.TokNumber
	default:
		if isDigit(c) {
			s.scanNumber()
			s.value = string(s.src[s.tokenOffset:s.pos])
			s.token = jsonast.TokNumber
			return s.token
		}
		s.token = s.scanUnknown()
	}

	return s.token
}

// scanString consumes a string body after the opening quote, returning the
// unescaped content. Lexical errors are recorded but never stop the scan
// except for end-of-input and an unescaped line break.
func (s *Scanner) scanString() string {
	var result strings.Builder
	start := s.pos

	for {
		if s.pos >= len(s.src) {
			result.Write(s.src[start:s.pos])
			s.scanErr = jsonast.ScanErrUnexpectedEndOfString
			break
		}
		c := s.src[s.pos]
		if c == '"' {
			result.Write(s.src[start:s.pos])
			s.pos++
			break
		}
		if c == '\\' {
			result.Write(s.src[start:s.pos])
			s.pos++
			if s.pos >= len(s.src) {
				s.scanErr = jsonast.ScanErrUnexpectedEndOfString
				break
			}
			esc := s.src[s.pos]
			s.pos++
			switch esc {
			case '"':
				result.WriteByte('"')
			case '\\':
				result.WriteByte('\\')
			case '/':
				result.WriteByte('/')
			case 'b':
				result.WriteByte('\b')
			case 'f':
				result.WriteByte('\f')
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case 'u':
				if code, ok := s.scanHexDigits(4); ok {
					result.WriteRune(rune(code))
				} else {
					s.scanErr = jsonast.ScanErrInvalidUnicode
				}
			default:
				s.scanErr = jsonast.ScanErrInvalidEscapeCharacter
			}
			start = s.pos
			continue
		}
		if c < 0x20 {
			if c == '\n' || c == '\r' {
				result.Write(s.src[start:s.pos])
				s.scanErr = jsonast.ScanErrUnexpectedEndOfString
				break
			}
			// Unescaped control character. Record and keep scanning.
			s.scanErr = jsonast.ScanErrInvalidCharacter
		}
		s.pos++
	}

	return result.String()
}

// scanHexDigits reads exactly count hex digits and returns their value.
func (s *Scanner) scanHexDigits(count int) (int, bool) {
	value := 0
	for i := 0; i < count; i++ {
		if s.pos >= len(s.src) {
			return 0, false
		}
		d := hexValue(s.src[s.pos])
		if d < 0 {
			return 0, false
		}
		value = value*16 + d
		s.pos++
	}
	return value, true
}

// scanNumber consumes the remainder of a numeric literal. The leading digit
// (or minus and first digit) has already been validated by the caller.
func (s *Scanner) scanNumber() {
	if s.src[s.pos] == '0' {
		s.pos++
	} else {
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.pos++
		if s.pos >= len(s.src) || !isDigit(s.src[s.pos]) {
			s.scanErr = jsonast.ScanErrUnexpectedEndOfNumber
			return
		}
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if s.pos >= len(s.src) || !isDigit(s.src[s.pos]) {
			s.scanErr = jsonast.ScanErrUnexpectedEndOfNumber
			return
		}
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
}

// scanComment consumes a // or /* comment. A bare slash scans as unknown.
func (s *Scanner) scanComment() jsonast.TokenKind {
	if s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
		s.pos += 2
		for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
			s.pos++
		}
		s.value = string(s.src[s.tokenOffset:s.pos])
		return jsonast.TokLineComment
	}
	if s.pos+1 < len(s.src) && s.src[s.pos+1] == '*' {
		s.pos += 2
		closed := false
		for s.pos+1 < len(s.src) {
			if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
				s.pos += 2
				closed = true
				break
			}
			s.pos++
		}
		if !closed {
			s.pos = len(s.src)
			s.scanErr = jsonast.ScanErrUnexpectedEndOfComment
		}
		s.value = string(s.src[s.tokenOffset:s.pos])
		return jsonast.TokBlockComment
	}
	return s.scanUnknown()
}

// scanUnknown consumes a run of content that matches no other token.
func (s *Scanner) scanUnknown() jsonast.TokenKind {
	for s.pos < len(s.src) && isUnknownContentByte(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == s.tokenOffset {
		// A lone '/' that starts no comment; consume it so the scanner
		// always makes progress.
		s.pos++
	}
	s.value = string(s.src[s.tokenOffset:s.pos])
	switch s.value {
	case "true":
		return jsonast.TokTrue
	case "false":
		return jsonast.TokFalse
	case "null":
		return jsonast.TokNull
	}
	return jsonast.TokUnknown
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func isUnknownContentByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '[', ']', '"', ':', ',', '/':
		return false
	}
	return true
}

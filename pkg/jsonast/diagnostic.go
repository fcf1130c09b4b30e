package jsonast

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityIgnore  Severity = "ignore"
)

// ErrorCode identifies the kind of a syntax or validation diagnostic.
// Codes in the 0x1xx block are lexical, codes in the 0x2xx block are
// syntactic. Schema diagnostics carry CodeUndefined or CodeEnumValueMismatch.
type ErrorCode int

const (
	CodeUndefined         ErrorCode = 0
	CodeEnumValueMismatch ErrorCode = 1

	CodeUnexpectedEndOfComment ErrorCode = 0x101
	CodeUnexpectedEndOfString  ErrorCode = 0x102
	CodeUnexpectedEndOfNumber  ErrorCode = 0x103
	CodeInvalidUnicode         ErrorCode = 0x104
	CodeInvalidEscapeCharacter ErrorCode = 0x105
	CodeInvalidCharacter       ErrorCode = 0x106

	CodePropertyExpected            ErrorCode = 0x201
	CodeCommaExpected               ErrorCode = 0x202
	CodeColonExpected               ErrorCode = 0x203
	CodeValueExpected               ErrorCode = 0x204
	CodeCommaOrCloseBracketExpected ErrorCode = 0x205
	CodeCommaOrCloseBraceExpected   ErrorCode = 0x206
	CodeTrailingComma               ErrorCode = 0x207
)

// Problem is a single positioned diagnostic over the source content.
// The parser produces problems with SeverityError, with a syntactic or
// lexical code where one applies (unquoted keys, invalid numbers and
// end-of-file errors carry CodeUndefined), plus SeverityWarning duplicate-key
// problems; the validator produces problems with SeverityWarning and either
// no code or CodeEnumValueMismatch.
type Problem struct {
	// Location is the byte range the diagnostic applies to.
	Location Range

	// Severity indicates the importance of the diagnostic.
	Severity Severity

	// Code classifies the diagnostic. CodeUndefined for most schema problems.
	Code ErrorCode

	// Message is the human-readable description of the issue.
	Message string
}

package jsonast

import "sort"

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// LineIndex maps byte offsets to 1-based line/column positions.
type LineIndex []LineInfo

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) LineIndex {
	if len(content) == 0 {
		return LineIndex{}
	}

	var lines LineIndex
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// PositionAt converts a byte offset to a 1-based line/column position.
// Column counts bytes, not runes. Returns the zero Position when the offset
// is negative or the index is empty.
func (li LineIndex) PositionAt(offset int) Position {
	if offset < 0 || len(li) == 0 {
		return Position{}
	}

	// An offset at or past the end of content falls on the last line, with
	// the column counted on from that line's start.
	last := li[len(li)-1]
	if offset >= last.EndOffset {
		return Position{Line: len(li), Column: offset - last.StartOffset + 1}
	}

	lineIdx := sort.Search(len(li), func(i int) bool {
		return li[i].EndOffset > offset
	})
	if lineIdx >= len(li) {
		lineIdx = len(li) - 1
	}

	info := li[lineIdx]
	if offset < info.StartOffset {
		return Position{}
	}

	return Position{Line: lineIdx + 1, Column: offset - info.StartOffset + 1}
}

// LineOf returns the 1-based line number containing the offset.
func (li LineIndex) LineOf(offset int) int {
	return li.PositionAt(offset).Line
}

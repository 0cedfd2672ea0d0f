package markup

import (
	"sort"
	"unicode/utf8"
)

// SourceRange is a byte range [StartOffset, EndOffset) in the source text.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// Covers reports whether offset lies within the range, end inclusive.
func (r SourceRange) Covers(offset int) bool {
	return offset >= r.StartOffset && offset <= r.EndOffset
}

// Position is a zero-based line and a character offset counted in UTF-16
// code units, the convention editors use.
type Position struct {
	Line      int
	Character int
}

// LineInfo describes one line of the text.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index of the line terminator, or the end of
	// the text for the last line.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Lines maps between byte offsets and line/character positions.
type Lines struct {
	text  string
	lines []LineInfo
}

// NewLines indexes text. LF, CRLF and lone CR terminate lines.
func NewLines(text string) *Lines {
	lines := make([]LineInfo, 0, 16)
	lineStart := 0
	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(text) && text[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}
	lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: len(text), EndOffset: len(text)})
	return &Lines{text: text, lines: lines}
}

// Text returns the indexed text.
func (l *Lines) Text() string { return l.text }

// Count returns the number of lines. An empty text has one empty line.
func (l *Lines) Count() int { return len(l.lines) }

// Line returns the info for a zero-based line.
func (l *Lines) Line(line int) (LineInfo, bool) {
	if line < 0 || line >= len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line], true
}

// Position converts a byte offset to a line/character position. Offsets are
// clamped to the text.
func (l *Lines) Position(offset int) Position {
	offset = max(0, min(offset, len(l.text)))
	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}
	info := l.lines[lineIdx]
	end := min(offset, info.NewlineStart)
	return Position{Line: lineIdx, Character: utf16Len(l.text[info.StartOffset:end])}
}

// Offset converts a line/character position to a byte offset. Lines past the
// end map to len(text); characters past the end of a line map to the line
// terminator.
func (l *Lines) Offset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(l.lines) {
		return len(l.text)
	}
	info := l.lines[pos.Line]
	offset := info.StartOffset
	units := 0
	for offset < info.NewlineStart && units < pos.Character {
		r, size := utf8.DecodeRuneInString(l.text[offset:info.NewlineStart])
		units += utf16Units(r)
		if units > pos.Character {
			break
		}
		offset += size
	}
	return offset
}

// Range converts a byte range to a pair of positions.
func (l *Lines) Range(r SourceRange) (Position, Position) {
	return l.Position(r.StartOffset), l.Position(r.EndOffset)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Units(r)
	}
	return n
}

func utf16Units(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

package complete

import "github.com/yaklabco/gomarkup/pkg/markup"

func isWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// lineIndent returns the text between the start of the line and offset when
// it is all whitespace. ok is false when a non-whitespace byte precedes
// offset on its line.
func lineIndent(text string, offset int) (indent string, ok bool) {
	offset = max(0, min(offset, len(text)))
	for start := offset; start > 0; start-- {
		ch := text[start-1]
		if ch == '\n' || ch == '\r' {
			return text[start:offset], true
		}
		if !isWhitespace(ch) {
			return "", false
		}
	}
	return text[:offset], true
}

// isFollowedBy reports whether the first non-whitespace token scanned from
// offset in state is of kind expected.
func isFollowedBy(text string, offset int, state markup.ScannerState, expected markup.TokenKind) bool {
	s := markup.NewScanner(text, offset, state)
	kind := s.Scan()
	for kind == markup.TokenWhitespace {
		kind = s.Scan()
	}
	return kind == expected
}

// wordStart moves offset back to the preceding whitespace, not below limit.
func wordStart(text string, offset, limit int) int {
	for offset > limit && !isWhitespace(text[offset-1]) {
		offset--
	}
	return offset
}

// wordEnd moves offset forward to the next whitespace, not past limit.
func wordEnd(text string, offset, limit int) int {
	for offset < limit && !isWhitespace(text[offset]) {
		offset++
	}
	return offset
}

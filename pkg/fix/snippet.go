package fix

import "strings"

// ExpandSnippet resolves snippet syntax in text to the plain text an editor
// would insert and the byte offset, within that text, where the cursor lands.
//
// Supported forms are $N, ${N} and ${N:placeholder}; a backslash escapes
// '$', '}' and '\'. The cursor goes to the lowest positive tab stop, then to
// $0, then to the end of the text.
func ExpandSnippet(text string) (string, int) {
	var out strings.Builder
	out.Grow(len(text))

	cursor, best := -1, -1 // best is the tab stop number the cursor is on
	mark := func(stop int) {
		if cursor < 0 || (stop > 0 && (best == 0 || stop < best)) {
			cursor, best = out.Len(), stop
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && strings.IndexByte(`$}\`, text[i+1]) >= 0:
			out.WriteByte(text[i+1])
			i++

		case c == '$':
			stop, placeholder, n := parseTabStop(text[i+1:])
			if n == 0 {
				out.WriteByte(c)
				continue
			}
			mark(stop)
			out.WriteString(placeholder)
			i += n

		default:
			out.WriteByte(c)
		}
	}

	if cursor < 0 {
		cursor = out.Len()
	}
	return out.String(), cursor
}

// parseTabStop reads a tab stop following a '$'. It returns the stop
// number, its placeholder text and the number of bytes consumed; n is zero
// when rest does not start with a tab stop.
func parseTabStop(rest string) (stop int, placeholder string, n int) {
	if rest == "" {
		return 0, "", 0
	}
	if rest[0] != '{' {
		digits := leadingDigits(rest)
		if digits == 0 {
			return 0, "", 0
		}
		return atoi(rest[:digits]), "", digits
	}

	digits := leadingDigits(rest[1:])
	if digits == 0 {
		return 0, "", 0
	}
	stop = atoi(rest[1 : 1+digits])
	pos := 1 + digits
	switch {
	case pos < len(rest) && rest[pos] == '}':
		return stop, "", pos + 1
	case pos < len(rest) && rest[pos] == ':':
		var text strings.Builder
		for j := pos + 1; j < len(rest); j++ {
			switch {
			case rest[j] == '\\' && j+1 < len(rest):
				text.WriteByte(rest[j+1])
				j++
			case rest[j] == '}':
				return stop, text.String(), j + 1
			default:
				text.WriteByte(rest[j])
			}
		}
	}
	return 0, "", 0
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func atoi(digits string) int {
	v := 0
	for i := range len(digits) {
		v = v*10 + int(digits[i]-'0')
	}
	return v
}

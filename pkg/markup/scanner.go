package markup

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner error messages reported through TokenError.
const (
	ErrMsgUnexpectedWhitespace = "Tag name must directly follow the open bracket."
	ErrMsgEndTagNameExpected   = "End tag name expected."
	ErrMsgStartTagNameExpected = "Start tag name expected."
	ErrMsgClosingBracket       = "Closing bracket expected."
	ErrMsgUnexpectedCharacter  = "Unexpected character in tag."
)

// htmlScriptTypes lists script types whose body is markup rather than raw text.
var htmlScriptTypes = map[string]bool{
	"text/x-handlebars-template": true,
}

// Scanner is a restartable tokenizer for tag-based markup.
//
// Each call to Scan produces exactly one token and advances past it. A Scanner
// never fails: malformed input yields Unknown tokens and every call before
// end of input consumes at least one byte. A Scanner is not safe for
// concurrent use, but any number of Scanners may read the same text.
type Scanner struct {
	src   string
	pos   int
	state ScannerState

	tokenOffset int
	tokenKind   TokenKind
	tokenError  string

	hasSpaceAfterTag  bool
	lastTag           string
	lastAttributeName string
	lastTypeValue     string
	rawTextTag        string
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithRawTextTag sets the element whose end tag terminates a WithinRawText
// region when the scanner starts in that state.
func WithRawTextTag(name string) ScannerOption {
	return func(s *Scanner) {
		s.rawTextTag = strings.ToLower(name)
	}
}

// NewScanner returns a scanner over src positioned at offset in the given state.
// Offsets outside src are clamped.
func NewScanner(src string, offset int, state ScannerState, opts ...ScannerOption) *Scanner {
	offset = max(0, min(offset, len(src)))
	s := &Scanner{
		src:         src,
		pos:         offset,
		state:       state,
		tokenOffset: offset,
		tokenKind:   TokenUnknown,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == WithinRawText && s.rawTextTag == "" {
		s.rawTextTag = "script"
	}
	return s
}

// Tokenize scans src from the beginning and returns every token before EOS.
func Tokenize(src string) []Token {
	var tokens []Token
	for tok := range NewScanner(src, 0, WithinContent).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// All returns the remaining tokens as a lazy sequence, ending before EOS.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for s.Scan() != TokenEOS {
			if !yield(s.Token()) {
				return
			}
		}
	}
}

// Source returns the text being scanned.
func (s *Scanner) Source() string { return s.src }

// State returns the current scanner state.
func (s *Scanner) State() ScannerState { return s.state }

// Token returns the most recently scanned token.
func (s *Scanner) Token() Token {
	return Token{Kind: s.tokenKind, Offset: s.tokenOffset, End: s.pos}
}

// TokenKind returns the kind of the most recently scanned token.
func (s *Scanner) TokenKind() TokenKind { return s.tokenKind }

// TokenOffset returns the start offset of the most recently scanned token.
func (s *Scanner) TokenOffset() int { return s.tokenOffset }

// TokenEnd returns the end offset of the most recently scanned token.
func (s *Scanner) TokenEnd() int { return s.pos }

// TokenLength returns the length of the most recently scanned token.
func (s *Scanner) TokenLength() int { return s.pos - s.tokenOffset }

// TokenText returns the text of the most recently scanned token.
func (s *Scanner) TokenText() string { return s.src[s.tokenOffset:s.pos] }

// TokenError returns a diagnostic for the most recent token, or "".
func (s *Scanner) TokenError() string { return s.tokenError }

// Scan advances to the next token and returns its kind.
func (s *Scanner) Scan() TokenKind {
	offset := s.pos
	kind := s.scan()
	if kind != TokenEOS && offset == s.pos {
		s.pos++
		return s.finish(offset, TokenUnknown, "")
	}
	return kind
}

func (s *Scanner) finish(offset int, kind TokenKind, errMsg string) TokenKind {
	s.tokenKind = kind
	s.tokenOffset = offset
	s.tokenError = errMsg
	return kind
}

//nolint:gocognit,gocyclo,cyclop,funlen // the state machine reads best as one switch
func (s *Scanner) scan() TokenKind {
	offset := s.pos
	for {
		if s.eos() {
			return s.finish(offset, TokenEOS, "")
		}

		var errMsg string
		switch s.state {
		case WithinComment:
			if s.advanceIfString("-->") {
				s.state = WithinContent
				return s.finish(offset, TokenEndCommentTag, "")
			}
			s.advanceUntilString("-->")
			return s.finish(offset, TokenComment, "")

		case WithinDoctype:
			if s.advanceIfByte('>') {
				s.state = WithinContent
				return s.finish(offset, TokenEndDoctypeTag, "")
			}
			s.advanceUntilByte('>')
			return s.finish(offset, TokenDoctype, "")

		case WithinContent:
			if s.advanceIfByte('<') {
				if !s.eos() && s.peek(0) == '!' {
					if s.advanceIfString("!--") {
						s.state = WithinComment
						return s.finish(offset, TokenStartCommentTag, "")
					}
					if s.advanceIfStringFold("!doctype") {
						s.state = WithinDoctype
						return s.finish(offset, TokenStartDoctypeTag, "")
					}
				}
				if !s.eos() && s.peek(0) == '?' {
					s.advanceProcessingInstruction()
					return s.finish(offset, TokenProcessingInstruction, "")
				}
				if s.advanceIfByte('/') {
					s.state = AfterOpeningEndTag
					return s.finish(offset, TokenEndTagOpen, "")
				}
				s.state = AfterOpeningStartTag
				return s.finish(offset, TokenStartTagOpen, "")
			}
			s.advanceUntilByte('<')
			return s.finish(offset, TokenContent, "")

		case AfterOpeningEndTag:
			if s.nextElementName() != "" {
				s.state = WithinEndTag
				return s.finish(offset, TokenEndTag, "")
			}
			if s.skipWhitespace() {
				return s.finish(offset, TokenWhitespace, ErrMsgUnexpectedWhitespace)
			}
			s.state = WithinEndTag
			s.advanceUntilByte('>')
			if offset < s.pos {
				return s.finish(offset, TokenUnknown, ErrMsgEndTagNameExpected)
			}
			continue

		case WithinEndTag:
			if s.skipWhitespace() {
				return s.finish(offset, TokenWhitespace, "")
			}
			if s.advanceIfByte('>') {
				s.state = WithinContent
				return s.finish(offset, TokenEndTagClose, "")
			}
			errMsg = ErrMsgClosingBracket

		case AfterOpeningStartTag:
			s.lastTag = strings.ToLower(s.nextElementName())
			s.lastTypeValue = ""
			s.lastAttributeName = ""
			if s.lastTag != "" {
				s.hasSpaceAfterTag = false
				s.state = WithinTag
				return s.finish(offset, TokenStartTag, "")
			}
			if s.skipWhitespace() {
				return s.finish(offset, TokenWhitespace, ErrMsgUnexpectedWhitespace)
			}
			s.state = WithinTag
			s.advanceUntilByte('>')
			if offset < s.pos {
				return s.finish(offset, TokenUnknown, ErrMsgStartTagNameExpected)
			}
			continue

		case WithinTag:
			if s.skipWhitespace() {
				s.hasSpaceAfterTag = true
				return s.finish(offset, TokenWhitespace, "")
			}
			if s.hasSpaceAfterTag {
				s.lastAttributeName = strings.ToLower(s.nextAttributeName())
				if s.lastAttributeName != "" {
					s.state = AfterAttributeName
					s.hasSpaceAfterTag = false
					return s.finish(offset, TokenAttributeName, "")
				}
			}
			if s.advanceIfString("/>") {
				s.state = WithinContent
				return s.finish(offset, TokenStartTagSelfClose, "")
			}
			if s.advanceIfByte('>') {
				s.state = WithinContent
				if _, ok := rawTextKind(s.lastTag); ok && !(s.lastTag == "script" && htmlScriptTypes[s.lastTypeValue]) {
					s.state = WithinRawText
					s.rawTextTag = s.lastTag
				}
				return s.finish(offset, TokenStartTagClose, "")
			}
			s.pos++
			return s.finish(offset, TokenUnknown, ErrMsgUnexpectedCharacter)

		case AfterAttributeName:
			if s.skipWhitespace() {
				s.hasSpaceAfterTag = true
				return s.finish(offset, TokenWhitespace, "")
			}
			if s.advanceIfByte('=') {
				s.state = BeforeAttributeValue
				return s.finish(offset, TokenDelimiterAssign, "")
			}
			s.state = WithinTag
			continue

		case BeforeAttributeValue:
			if s.skipWhitespace() {
				return s.finish(offset, TokenWhitespace, "")
			}
			if value := s.advanceWhileRune(isUnquotedValueRune); value != "" {
				if s.lastAttributeName == "type" {
					s.lastTypeValue = value
				}
				s.state = WithinTag
				s.hasSpaceAfterTag = false
				return s.finish(offset, TokenAttributeValue, "")
			}
			if quote := s.peek(0); quote == '"' || quote == '\'' {
				s.pos++
				if s.advanceUntilByte(quote) {
					s.pos++
				}
				if s.lastAttributeName == "type" {
					s.lastTypeValue = s.src[offset+1 : max(offset+1, s.pos-1)]
				}
				s.state = WithinTag
				s.hasSpaceAfterTag = false
				return s.finish(offset, TokenAttributeValue, "")
			}
			s.state = WithinTag
			s.hasSpaceAfterTag = false
			continue

		case WithinRawText:
			kind, ok := rawTextKind(s.rawTextTag)
			if !ok {
				// Elements outside the raw-text table, such as textarea, keep
				// their body as plain content up to the end tag.
				kind = TokenContent
			}
			if s.rawTextTag == "script" {
				s.advanceScriptContent()
			} else {
				s.advanceUntilEndTag(s.rawTextTag)
			}
			s.state = WithinContent
			if offset < s.pos {
				return s.finish(offset, kind, "")
			}
			continue
		}

		s.pos++
		s.state = WithinContent
		return s.finish(offset, TokenUnknown, errMsg)
	}
}

// advanceScriptContent consumes a script body up to its closing tag. Inside
// "<!--" a nested "<script" defers the next "</script" as browsers do.
func (s *Scanner) advanceScriptContent() {
	const (
		plain = iota
		escaped
		doubleEscaped
	)
	state := plain
	for !s.eos() {
		start, end, ok := s.findScriptMarker()
		if !ok {
			s.pos = len(s.src)
			return
		}
		match := s.src[start:end]
		switch {
		case match == "<!--":
			if state == plain {
				state = escaped
			}
		case match == "-->":
			state = plain
		case match[1] != '/':
			if state == escaped {
				state = doubleEscaped
			}
		default:
			if state != doubleEscaped {
				s.pos = start
				return
			}
			state = escaped
		}
		s.pos = end
	}
}

// findScriptMarker locates the next "<!--", "-->" or script tag at or after
// the cursor and returns its span.
func (s *Scanner) findScriptMarker() (int, int, bool) {
	for i := s.pos; i < len(s.src); i++ {
		switch s.src[i] {
		case '<':
			if strings.HasPrefix(s.src[i:], "<!--") {
				return i, i + 4, true
			}
			if end, ok := matchTagMarker(s.src, i, "script"); ok {
				return i, end, true
			}
		case '-':
			if strings.HasPrefix(s.src[i:], "-->") {
				return i, i + 3, true
			}
		}
	}
	return 0, 0, false
}

// matchTagMarker matches `</?name\s*/?>?` case-insensitively at src[i].
func matchTagMarker(src string, i int, name string) (int, bool) {
	j := i + 1
	if j < len(src) && src[j] == '/' {
		j++
	}
	if len(src)-j < len(name) || !strings.EqualFold(src[j:j+len(name)], name) {
		return 0, false
	}
	j += len(name)
	for j < len(src) && isSpaceByte(src[j]) {
		j++
	}
	if j < len(src) && src[j] == '/' {
		j++
	}
	if j < len(src) && src[j] == '>' {
		j++
	}
	return j, true
}

func (s *Scanner) advanceUntilEndTag(name string) {
	marker := "</" + name
	for i := s.pos; i+len(marker) <= len(s.src); i++ {
		if s.src[i] == '<' && strings.EqualFold(s.src[i:i+len(marker)], marker) {
			s.pos = i
			return
		}
	}
	s.pos = len(s.src)
}

func (s *Scanner) advanceProcessingInstruction() {
	if idx := strings.Index(s.src[s.pos:], "?>"); idx >= 0 {
		s.pos += idx + 2
		return
	}
	if s.advanceUntilByte('>') {
		s.pos++
	}
}

func (s *Scanner) eos() bool { return s.pos >= len(s.src) }

func (s *Scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *Scanner) advanceIfByte(ch byte) bool {
	if s.pos < len(s.src) && s.src[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

func (s *Scanner) advanceIfString(str string) bool {
	if strings.HasPrefix(s.src[s.pos:], str) {
		s.pos += len(str)
		return true
	}
	return false
}

func (s *Scanner) advanceIfStringFold(str string) bool {
	if len(s.src)-s.pos >= len(str) && strings.EqualFold(s.src[s.pos:s.pos+len(str)], str) {
		s.pos += len(str)
		return true
	}
	return false
}

// advanceUntilByte moves to the next ch and reports whether it was found.
// Without a match the cursor ends at the end of input.
func (s *Scanner) advanceUntilByte(ch byte) bool {
	if idx := strings.IndexByte(s.src[s.pos:], ch); idx >= 0 {
		s.pos += idx
		return true
	}
	s.pos = len(s.src)
	return false
}

func (s *Scanner) advanceUntilString(str string) bool {
	if idx := strings.Index(s.src[s.pos:], str); idx >= 0 {
		s.pos += idx
		return true
	}
	s.pos = len(s.src)
	return false
}

func (s *Scanner) skipWhitespace() bool {
	start := s.pos
	for s.pos < len(s.src) && isSpaceByte(s.src[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

func (s *Scanner) advanceWhileRune(accept func(rune) bool) string {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !accept(r) {
			break
		}
		s.pos += size
	}
	return s.src[start:s.pos]
}

// nextElementName consumes a name matching [_:\w][_:\w.\-\d]*.
func (s *Scanner) nextElementName() string {
	start := s.pos
	if s.pos >= len(s.src) || !isNameStartByte(s.src[s.pos]) {
		return ""
	}
	s.pos++
	for s.pos < len(s.src) && isNameByte(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *Scanner) nextAttributeName() string {
	return s.advanceWhileRune(isAttributeNameRune)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isNameStartByte(c byte) bool {
	return c == '_' || c == ':' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isNameByte(c byte) bool {
	return isNameStartByte(c) || c == '-' || c == '.'
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isAttributeNameRune(r rune) bool {
	switch {
	case isSpaceRune(r):
		return false
	case r == '"' || r == '\'' || r == '>' || r == '/' || r == '=':
		return false
	case r <= 0x0F, r == 0x7F, r >= 0x80 && r <= 0x9F:
		return false
	}
	return true
}

func isUnquotedValueRune(r rune) bool {
	if isSpaceRune(r) {
		return false
	}
	switch r {
	case '"', '\'', '`', '=', '<', '>', '/':
		return false
	}
	return true
}

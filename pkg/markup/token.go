package markup

import "fmt"

// TokenKind classifies a token produced by the Scanner.
type TokenKind uint16

// Token kinds.
const (
	TokenStartCommentTag TokenKind = iota // '<!--'
	TokenComment
	TokenEndCommentTag // '-->'
	TokenStartTagOpen  // '<'
	TokenStartTagClose // '>'
	TokenStartTagSelfClose
	TokenStartTag   // element name after '<'
	TokenEndTagOpen // '</'
	TokenEndTagClose
	TokenEndTag
	TokenDelimiterAssign // '='
	TokenAttributeName
	TokenAttributeValue
	TokenStartDoctypeTag // '<!doctype'
	TokenDoctype
	TokenEndDoctypeTag
	TokenContent
	TokenWhitespace
	TokenUnknown
	TokenScript // body of a script element
	TokenStyles // body of a style element
	TokenProcessingInstruction
	TokenEOS
)

var tokenKindNames = [...]string{
	TokenStartCommentTag:       "StartCommentTag",
	TokenComment:               "Comment",
	TokenEndCommentTag:         "EndCommentTag",
	TokenStartTagOpen:          "StartTagOpen",
	TokenStartTagClose:         "StartTagClose",
	TokenStartTagSelfClose:     "StartTagSelfClose",
	TokenStartTag:              "StartTag",
	TokenEndTagOpen:            "EndTagOpen",
	TokenEndTagClose:           "EndTagClose",
	TokenEndTag:                "EndTag",
	TokenDelimiterAssign:       "DelimiterAssign",
	TokenAttributeName:         "AttributeName",
	TokenAttributeValue:        "AttributeValue",
	TokenStartDoctypeTag:       "StartDoctypeTag",
	TokenDoctype:               "Doctype",
	TokenEndDoctypeTag:         "EndDoctypeTag",
	TokenContent:               "Content",
	TokenWhitespace:            "Whitespace",
	TokenUnknown:               "Unknown",
	TokenScript:                "Script",
	TokenStyles:                "Styles",
	TokenProcessingInstruction: "ProcessingInstruction",
	TokenEOS:                   "EOS",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint16(k))
}

// ParseTokenKind returns the kind whose String form is name.
func ParseTokenKind(name string) (TokenKind, bool) {
	for k, n := range tokenKindNames {
		if n == name {
			return TokenKind(k), true
		}
	}
	return 0, false
}

// Token is a classified span [Offset, End) of the source text.
type Token struct {
	Kind   TokenKind
	Offset int
	End    int
}

// Text returns the token's text from src.
// Returns "" if the span does not fit src.
func (t Token) Text(src string) string {
	if t.Offset < 0 || t.End > len(src) || t.Offset > t.End {
		return ""
	}
	return src[t.Offset:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Offset
}

// Contains reports whether offset lies within the token, end inclusive.
func (t Token) Contains(offset int) bool {
	return t.Offset <= offset && offset <= t.End
}

// ScannerState is the mode that decides how the Scanner reads the next bytes.
type ScannerState uint8

// Scanner states.
const (
	WithinContent ScannerState = iota
	AfterOpeningStartTag
	AfterOpeningEndTag
	WithinDoctype
	WithinTag
	WithinEndTag
	WithinComment
	WithinRawText
	AfterAttributeName
	BeforeAttributeValue
)

var scannerStateNames = [...]string{
	WithinContent:        "WithinContent",
	AfterOpeningStartTag: "AfterOpeningStartTag",
	AfterOpeningEndTag:   "AfterOpeningEndTag",
	WithinDoctype:        "WithinDoctype",
	WithinTag:            "WithinTag",
	WithinEndTag:         "WithinEndTag",
	WithinComment:        "WithinComment",
	WithinRawText:        "WithinRawText",
	AfterAttributeName:   "AfterAttributeName",
	BeforeAttributeValue: "BeforeAttributeValue",
}

func (s ScannerState) String() string {
	if int(s) < len(scannerStateNames) {
		return scannerStateNames[s]
	}
	return fmt.Sprintf("ScannerState(%d)", uint8(s))
}

// ParseScannerState returns the state whose String form is name.
func ParseScannerState(name string) (ScannerState, bool) {
	for s, n := range scannerStateNames {
		if n == name {
			return ScannerState(s), true
		}
	}
	return 0, false
}

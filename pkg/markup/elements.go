package markup

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements cannot have children and take no end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:     true,
	atom.Base:     true,
	atom.Br:       true,
	atom.Col:      true,
	atom.Embed:    true,
	atom.Hr:       true,
	atom.Img:      true,
	atom.Input:    true,
	atom.Keygen:   true,
	atom.Link:     true,
	atom.Menuitem: true,
	atom.Meta:     true,
	atom.Param:    true,
	atom.Source:   true,
	atom.Track:    true,
	atom.Wbr:      true,
}

// rawTextElements hold bodies that are not tokenized as markup.
var rawTextElements = map[atom.Atom]TokenKind{
	atom.Script: TokenScript,
	atom.Style:  TokenStyles,
}

func lookupAtom(tag string) atom.Atom {
	if tag == "" {
		return 0
	}
	return atom.Lookup([]byte(strings.ToLower(tag)))
}

// IsVoidElement reports whether tag, in any letter case, names a void element.
func IsVoidElement(tag string) bool {
	return voidElements[lookupAtom(tag)]
}

// VoidElements returns the void element names in lowercase.
func VoidElements() []string {
	names := make([]string, 0, len(voidElements))
	for a := range voidElements {
		names = append(names, a.String())
	}
	return names
}

// IsRawTextElement reports whether tag's body is scanned as raw text.
func IsRawTextElement(tag string) bool {
	_, ok := rawTextKind(tag)
	return ok
}

func rawTextKind(tag string) (TokenKind, bool) {
	kind, ok := rawTextElements[lookupAtom(tag)]
	return kind, ok
}

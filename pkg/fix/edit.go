// Package fix describes text edits over a document and applies them.
//
// Completion items carry a TextEdit whose NewText may contain snippet
// placeholders; ExpandSnippet turns that text into what an editor would
// insert.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Len is the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsert reports whether the edit replaces nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// Delta is the change in document length after applying the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - e.Len()
}

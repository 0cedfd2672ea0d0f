package fix

import "strings"

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content string, edits []TextEdit) string {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(max(len(content)+delta, 0))

	cursor := 0
	for _, e := range edits {
		out.WriteString(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(content[cursor:])

	return out.String()
}

// Apply prepares edits against content and applies them.
func Apply(content string, edits ...TextEdit) (string, error) {
	prepared, err := PrepareEdits(edits, len(content))
	if err != nil {
		return "", err
	}
	return ApplyEdits(content, prepared), nil
}

package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits returns the first edit whose range does not fit a document
// of contentLen bytes.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable so inserts at the same offset keep their relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// DetectConflicts returns the first pair of overlapping edits in a sorted
// slice. Touching edits do not overlap.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// PrepareEdits validates, sorts and checks edits for conflicts. The input
// slice is not modified.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

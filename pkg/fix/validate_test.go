package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr string
	}{
		{name: "empty", edits: nil},
		{name: "valid edits", edits: []fix.TextEdit{fix.Replace(0, 5, "x"), fix.Insert(10, "y")}},
		{name: "edit at content end", edits: []fix.TextEdit{fix.Insert(10, "z")}},
		{name: "negative start", edits: []fix.TextEdit{fix.Replace(-1, 2, "")}, wantErr: "start offset is negative"},
		{name: "inverted range", edits: []fix.TextEdit{fix.Replace(5, 2, "")}, wantErr: "end offset is before start offset"},
		{name: "past content end", edits: []fix.TextEdit{fix.Replace(5, 11, "")}, wantErr: "exceeds content length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, 10)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *fix.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.wantErr)
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		fix.Replace(5, 8, "c"),
		fix.Insert(2, "first"),
		fix.Replace(2, 4, "b"),
		fix.Insert(2, "second"),
	}
	fix.SortEdits(edits)

	assert.Equal(t, []fix.TextEdit{
		fix.Insert(2, "first"),
		fix.Insert(2, "second"),
		fix.Replace(2, 4, "b"),
		fix.Replace(5, 8, "c"),
	}, edits)
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	assert.NoError(t, fix.DetectConflicts(nil))
	assert.NoError(t, fix.DetectConflicts([]fix.TextEdit{fix.Replace(0, 2, ""), fix.Replace(2, 4, "")}))

	err := fix.DetectConflicts([]fix.TextEdit{fix.Replace(0, 3, "a"), fix.Replace(2, 4, "b")})
	var conflict *fix.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, fix.Replace(0, 3, "a"), conflict.Edit1)
	assert.Equal(t, "overlapping edits: [0:3] and [2:4]", conflict.Error())
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	input := []fix.TextEdit{fix.Replace(6, 8, "b"), fix.Replace(0, 2, "a")}
	got, err := fix.PrepareEdits(input, 10)
	require.NoError(t, err)
	assert.Equal(t, []fix.TextEdit{fix.Replace(0, 2, "a"), fix.Replace(6, 8, "b")}, got)
	assert.Equal(t, 6, input[0].StartOffset, "input is not reordered")

	empty, err := fix.PrepareEdits(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = fix.PrepareEdits([]fix.TextEdit{fix.Replace(0, 20, "")}, 10)
	assert.Error(t, err)
}

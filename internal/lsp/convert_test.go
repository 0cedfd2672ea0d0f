package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

func TestFromProtocolChanges(t *testing.T) {
	t.Parallel()

	changes := fromProtocolChanges([]any{
		protocol.TextDocumentContentChangeEventWhole{Text: "all"},
		protocol.TextDocumentContentChangeEvent{Text: "no range"},
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 2},
				End:   protocol.Position{Line: 1, Character: 4},
			},
			Text: "part",
		},
		"ignored",
	})

	require.Len(t, changes, 3)
	assert.Nil(t, changes[0].Range)
	assert.Nil(t, changes[1].Range)
	require.NotNil(t, changes[2].Range)
	assert.Equal(t, Range{Start: pos(1, 2), End: pos(1, 4)}, *changes[2].Range)
	assert.Equal(t, "part", changes[2].Text)
}

func TestToProtocolCompletionList(t *testing.T) {
	t.Parallel()

	lines := markup.NewLines("<div>\n  <")
	list := &complete.List{
		IsIncomplete: true,
		Items: []complete.Item{
			{
				Label:         "p",
				Kind:          complete.KindProperty,
				Documentation: "A paragraph.",
				FilterText:    "<p",
				Edit:          fix.Replace(9, 9, "p"),
				Format:        complete.PlainText,
			},
			{
				Label:  "</div>",
				Kind:   complete.KindProperty,
				Edit:   fix.Replace(8, 9, "</div>$0"),
				Format: complete.Snippet,
			},
		},
	}

	result := toProtocolCompletionList(lines, list)
	assert.True(t, result.IsIncomplete)
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	assert.Equal(t, "p", first.Label)
	assert.Equal(t, protocol.CompletionItemKindProperty, *first.Kind)
	assert.Equal(t, protocol.InsertTextFormatPlainText, *first.InsertTextFormat)
	require.NotNil(t, first.FilterText)
	assert.Equal(t, "<p", *first.FilterText)
	assert.Equal(t, protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: "A paragraph."}, first.Documentation)

	edit, ok := first.TextEdit.(protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, protocol.Position{Line: 1, Character: 3}, edit.Range.Start)

	second := result.Items[1]
	assert.Nil(t, second.FilterText)
	assert.Nil(t, second.Documentation)
	assert.Equal(t, protocol.InsertTextFormatSnippet, *second.InsertTextFormat)
	edit, ok = second.TextEdit.(protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, edit.Range.Start)
	assert.Equal(t, "</div>$0", edit.NewText)
}

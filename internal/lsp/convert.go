package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gomarkup/pkg/complete"
	"github.com/yaklabco/gomarkup/pkg/fix"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

func fromProtocolPosition(pos protocol.Position) markup.Position {
	return markup.Position{Line: int(pos.Line), Character: int(pos.Character)}
}

func toProtocolPosition(pos markup.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(pos.Line, 0)),
		Character: protocol.UInteger(max(pos.Character, 0)),
	}
}

func toProtocolRange(lines *markup.Lines, r markup.SourceRange) protocol.Range {
	start, end := lines.Range(r)
	return protocol.Range{Start: toProtocolPosition(start), End: toProtocolPosition(end)}
}

func fromProtocolChanges(events []any) []Change {
	changes := make([]Change, 0, len(events))
	for _, event := range events {
		switch e := event.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, Change{Text: e.Text})
		case protocol.TextDocumentContentChangeEvent:
			if e.Range == nil {
				changes = append(changes, Change{Text: e.Text})
				continue
			}
			changes = append(changes, Change{
				Range: &Range{
					Start: fromProtocolPosition(e.Range.Start),
					End:   fromProtocolPosition(e.Range.End),
				},
				Text: e.Text,
			})
		}
	}
	return changes
}

func toProtocolCompletionList(lines *markup.Lines, list *complete.List) *protocol.CompletionList {
	items := make([]protocol.CompletionItem, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, toProtocolCompletionItem(lines, item))
	}
	return &protocol.CompletionList{IsIncomplete: list.IsIncomplete, Items: items}
}

func toProtocolCompletionItem(lines *markup.Lines, item complete.Item) protocol.CompletionItem {
	kind := protocol.CompletionItemKind(item.Kind)
	format := protocol.InsertTextFormat(item.Format)

	result := protocol.CompletionItem{
		Label:            item.Label,
		Kind:             &kind,
		InsertTextFormat: &format,
		TextEdit:         toProtocolTextEdit(lines, item.Edit),
	}
	if item.FilterText != "" {
		filter := item.FilterText
		result.FilterText = &filter
	}
	if item.Documentation != "" {
		result.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: item.Documentation,
		}
	}
	return result
}

func toProtocolTextEdit(lines *markup.Lines, edit fix.TextEdit) protocol.TextEdit {
	return protocol.TextEdit{
		Range:   toProtocolRange(lines, markup.SourceRange{StartOffset: edit.StartOffset, EndOffset: edit.EndOffset}),
		NewText: edit.NewText,
	}
}

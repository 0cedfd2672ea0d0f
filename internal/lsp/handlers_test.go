package lsp

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/config"
)

const testURI = "file:///project/index.html"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{
		Version: "test",
		Config:  config.NewConfig(),
		Logger:  logging.NewWithWriter(io.Discard, "error"),
	})
}

func open(t *testing.T, s *Server, text string) {
	t.Helper()
	require.NoError(t, s.didOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "html", Version: 1, Text: text},
	}))
}

func position(line, character uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: line, Character: character},
	}
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	result, err := s.initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, Name, init.ServerInfo.Name)
	require.NotNil(t, init.Capabilities.CompletionProvider)
	assert.Contains(t, init.Capabilities.CompletionProvider.TriggerCharacters, "<")
	assert.NotNil(t, init.Capabilities.HoverProvider)
}

func TestServer_Completion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, "<div>\n  <")

	result, err := s.completion(nil, &protocol.CompletionParams{TextDocumentPositionParams: position(1, 3)})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "p")
	assert.Contains(t, labels, "/div")
}

func TestServer_CompletionUnknownDocument(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	result, err := s.completion(nil, &protocol.CompletionParams{TextDocumentPositionParams: position(0, 0)})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestServer_IncrementalChangeThenHover(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, "<div></div>")

	require.NoError(t, s.didChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 5},
					End:   protocol.Position{Line: 0, Character: 5},
				},
				Text: "<p>hi</p>",
			},
		},
	}))

	hover, err := s.hover(nil, &protocol.HoverParams{TextDocumentPositionParams: position(0, 7)})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "<p>")
	assert.Equal(t, protocol.Position{Line: 0, Character: 6}, hover.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, hover.Range.End)
}

func TestServer_DocumentHighlight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, "<div>\n</div>")

	highlights, err := s.documentHighlight(nil, &protocol.DocumentHighlightParams{TextDocumentPositionParams: position(0, 2)})
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, protocol.Position{Line: 0, Character: 1}, highlights[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, highlights[1].Range.Start)
}

func TestServer_TagComplete(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	open(t, s, "<div>")

	params := position(0, 5)
	result, err := s.tagComplete(&params)
	require.NoError(t, err)
	assert.Equal(t, "$0</div>", result)
}

func TestServer_DidChangeConfiguration(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.NoError(t, s.didChangeConfiguration(nil, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"gomarkup": map[string]any{
				"completion": map[string]any{"hide_auto_complete_proposals": true},
			},
		},
	}))
	assert.True(t, s.service.Options().HideAutoCompleteProposals)

	open(t, s, "<div>")
	result, err := s.completion(nil, &protocol.CompletionParams{TextDocumentPositionParams: position(0, 5)})
	require.NoError(t, err)
	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	assert.Empty(t, list.Items)
}

func TestLanguageFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "visualforce", languageFor("file:///p/Account.page", "", ""))
	assert.Equal(t, "html", languageFor("file:///p/a.txt", "plaintext", "<html>"))
	assert.Equal(t, "handlebars", languageFor("file:///p/a.html", "handlebars", ""))
}

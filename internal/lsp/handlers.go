package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gomarkup/internal/logging"
)

// triggerCharacters open completion automatically.
var triggerCharacters = []string{"<", "/", " ", "=", "\"", ":"}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindIncremental
	openClose := true
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerCharacters,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.stopWatcher()
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	language := languageFor(item.URI, item.LanguageID, item.Text)
	s.store.Open(item.URI, language, int32(item.Version), item.Text)
	s.logger.Debug("opened document",
		logging.FieldURI, item.URI,
		logging.FieldLanguage, language,
		logging.FieldVersion, item.Version,
	)
	return nil
}

func (s *Server) didChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc, err := s.store.Change(uri, int32(params.TextDocument.Version), fromProtocolChanges(params.ContentChanges))
	if err != nil {
		s.logger.Warn("change rejected", logging.FieldURI, uri, logging.FieldError, err)
		return err
	}
	s.logger.Debug("changed document",
		logging.FieldURI, uri,
		logging.FieldVersion, doc.Version,
		logging.FieldLength, len(doc.Text),
	)
	return nil
}

func (s *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.store.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) completion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := doc.Offset(fromProtocolPosition(params.Position))
	list := s.service.Complete(doc.LanguageID, doc.Text, offset, doc.Tree)
	s.logger.Debug("completion",
		logging.FieldURI, doc.URI,
		logging.FieldOffset, offset,
		logging.FieldItems, len(list.Items),
	)
	return toProtocolCompletionList(doc.Lines, list), nil
}

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := doc.Offset(fromProtocolPosition(params.Position))
	h, found := s.service.Hover(doc.LanguageID, doc.Text, offset, doc.Tree)
	if !found {
		return nil, nil
	}

	r := toProtocolRange(doc.Lines, h.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: h.Markdown(),
		},
		Range: &r,
	}, nil
}

func (s *Server) documentHighlight(_ *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := doc.Offset(fromProtocolPosition(params.Position))
	ranges := s.service.Highlights(doc.Text, offset, doc.Tree)
	if len(ranges) == 0 {
		return nil, nil
	}

	kind := protocol.DocumentHighlightKindRead
	highlights := make([]protocol.DocumentHighlight, 0, len(ranges))
	for _, r := range ranges {
		highlights = append(highlights, protocol.DocumentHighlight{
			Range: toProtocolRange(doc.Lines, r),
			Kind:  &kind,
		})
	}
	return highlights, nil
}

func (s *Server) didChangeConfiguration(_ *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	completion, ok, err := parseCompletionSettings(params.Settings)
	if err != nil {
		s.logger.Warn("ignoring settings", logging.FieldError, err)
		return nil
	}
	if !ok {
		return nil
	}

	opts := s.service.Options()
	if completion.HideAutoCompleteProposals != nil {
		opts.HideAutoCompleteProposals = *completion.HideAutoCompleteProposals
	}
	if completion.Providers != nil {
		opts.Providers = completion.Providers
	}
	s.service.SetOptions(opts)
	s.logger.Info("settings updated", logging.FieldProviders, opts.Providers)
	return nil
}

func (s *Server) tagComplete(params *protocol.TextDocumentPositionParams) (any, error) {
	doc, ok := s.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset := doc.Offset(fromProtocolPosition(params.Position))
	snippet, found := s.service.TagComplete(doc.Text, offset, doc.Tree)
	if !found {
		return nil, nil
	}
	return snippet, nil
}

// Package lsp serves completion, hover and highlights over the Language
// Server Protocol on stdio.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// Registers the backend glsp logs through.
	_ "github.com/tliron/commonlog/simple"

	"github.com/yaklabco/gomarkup/internal/logging"
	"github.com/yaklabco/gomarkup/pkg/config"
	"github.com/yaklabco/gomarkup/pkg/langdetect"
	"github.com/yaklabco/gomarkup/pkg/langservice"
)

// Name is the server name reported to clients.
const Name = "gomarkup"

// MethodTagComplete is the request a client sends after the user types '>'
// or '/' to ask for the text that closes the tag. Its params are
// TextDocumentPositionParams; the result is a snippet string or null.
const MethodTagComplete = "gomarkup/tagComplete"

// Options configures a Server.
type Options struct {
	Version string
	Config  *config.Config
	Logger  *log.Logger

	// Debug raises the verbosity of the protocol layer's own log.
	Debug bool
}

// Server is a language server over a shared langservice.Service.
type Server struct {
	version string
	logger  *log.Logger
	store   *Store
	service *langservice.Service

	mu         sync.Mutex
	customData []string
	watcher    *Watcher

	handler protocol.Handler
	server  *server.Server
}

// New builds a Server from opts. Custom data catalogs that fail to load are
// logged and skipped.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	service, errs := langservice.NewFromConfig(cfg)
	for _, err := range errs {
		logger.Warn("skipping custom data", logging.FieldError, err)
	}

	s := &Server{
		version:    opts.Version,
		logger:     logger,
		store:      NewStore(),
		service:    service,
		customData: append([]string(nil), cfg.CustomData...),
	}

	s.handler = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.didOpen,
		TextDocumentDidChange:           s.didChange,
		TextDocumentDidClose:            s.didClose,
		TextDocumentCompletion:          s.completion,
		TextDocumentHover:               s.hover,
		TextDocumentDocumentHighlight:   s.documentHighlight,
		WorkspaceDidChangeConfiguration: s.didChangeConfiguration,
	}

	verbosity := 0
	if opts.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	s.server = server.NewServer(&dispatcher{server: s}, Name, opts.Debug)
	return s
}

// RunStdio serves on stdin and stdout until the client disconnects. The
// custom data watcher runs until ctx is done.
func (s *Server) RunStdio(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.startWatcher(ctx)
	defer s.stopWatcher()

	s.logger.Info("language server starting", logging.FieldVersion, s.version)
	if err := s.server.RunStdio(); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}

// ReloadCustomData reloads the built-in and custom data providers.
func (s *Server) ReloadCustomData() {
	s.mu.Lock()
	paths := append([]string(nil), s.customData...)
	s.mu.Unlock()

	providers, errs := langservice.LoadProviders(paths)
	for _, err := range errs {
		s.logger.Warn("skipping custom data", logging.FieldError, err)
	}
	s.service.SetProviders(providers)
	s.logger.Info("reloaded tag providers", logging.FieldProviders, len(providers))
}

func (s *Server) startWatcher(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.customData) == 0 {
		return
	}
	w, err := NewWatcher(s.customData, 0, s.ReloadCustomData, s.logger)
	if err != nil {
		s.logger.Warn("custom data will not be reloaded", logging.FieldError, err)
		return
	}
	s.watcher = w
	go w.Run(ctx)
}

func (s *Server) stopWatcher() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
}

// languageFor picks the dialect of a document from the client's language
// ID, falling back to detection from its URI and content.
func languageFor(uri, clientLanguage, text string) string {
	switch clientLanguage {
	case "", "plaintext":
		return langdetect.FromURI(uri, []byte(text))
	default:
		return clientLanguage
	}
}

// dispatcher routes gomarkup requests and hands everything else to the
// protocol handler.
type dispatcher struct {
	server *Server
}

func (d *dispatcher) Handle(ctx *glsp.Context) (any, bool, bool, error) {
	if ctx.Method == MethodTagComplete {
		var params protocol.TextDocumentPositionParams
		if err := json.Unmarshal(ctx.Params, &params); err != nil {
			return nil, true, false, err
		}
		result, err := d.server.tagComplete(&params)
		return result, true, true, err
	}
	return d.server.handler.Handle(ctx)
}

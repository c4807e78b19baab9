package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/psai/php/position"
	"github.com/dhamidi/psai/project"
)

const lsName = "psai"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
	notify   glsp.NotifyFunc
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	p, err := project.Load(rootDir)
	if err != nil {
		log.Errorf("load project: %s", err)
		p = &project.Project{RootDir: rootDir, Config: project.DefaultConfig()}
	}
	ls.codebase = New(p)
	log.Infof("workspace root %s", p.RootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.notify = ctx.Notify
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.OnChange(func(path string, f *File) {
		if f == nil {
			ls.clearDiagnostics(path)
			return
		}
		ls.publishDiagnostics(f)
	})
	go func() {
		if err := ls.codebase.ScanAll(context.Background()); err != nil {
			log.Errorf("initial scan: %s", err)
		}
		ls.watcher.Start()
	}()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	if ls.codebase == nil {
		return
	}
	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("bad document URI %s: %s", uri, err)
		return
	}
	f := ls.codebase.UpdateFile(path, text)
	if ls.notify == nil {
		ls.notify = ctx.Notify
	}
	ls.publishDiagnostics(f)
}

func (ls *LSPServer) publishDiagnostics(f *File) {
	if ls.notify == nil {
		return
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: toProtocolDiagnostics(f),
	})
}

func (ls *LSPServer) clearDiagnostics(path string) {
	if ls.notify == nil {
		return
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	return toProtocolSymbols(f, f.Symbols), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	sym := SymbolAt(f.Symbols, fromProtocolPosition(f, params.Position))
	if sym == nil {
		return nil, nil
	}
	r := toProtocolRange(f, sym.NameRange)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: HoverText(sym),
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) file(uri protocol.DocumentUri) *File {
	if ls.codebase == nil {
		return nil
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.codebase.GetFile(path)
}

func toProtocolDiagnostics(f *File) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	source := lsName
	for _, d := range f.Diagnostics {
		severity := protocol.DiagnosticSeverity(d.Severity)
		diags = append(diags, protocol.Diagnostic{
			Range:    toProtocolRange(f, d.Range),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return diags
}

func toProtocolSymbols(f *File, symbols []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		name := sym.Name
		if name == "" {
			name = "(global)"
		}
		ds := protocol.DocumentSymbol{
			Name:           name,
			Kind:           toProtocolSymbolKind(sym.Kind),
			Range:          toProtocolRange(f, sym.Range),
			SelectionRange: toProtocolRange(f, sym.NameRange),
			Children:       toProtocolSymbols(f, sym.Children),
		}
		if sym.Doc != nil && sym.Doc.Deprecated() {
			ds.Tags = []protocol.SymbolTag{protocol.SymbolTagDeprecated}
		}
		out = append(out, ds)
	}
	return out
}

func toProtocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolNamespace:
		return protocol.SymbolKindNamespace
	case SymbolClass, SymbolTrait:
		return protocol.SymbolKindClass
	case SymbolInterface:
		return protocol.SymbolKindInterface
	case SymbolFunction:
		return protocol.SymbolKindFunction
	case SymbolMethod:
		return protocol.SymbolKindMethod
	case SymbolProperty:
		return protocol.SymbolKindProperty
	case SymbolConstant:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindVariable
	}
}

func toProtocolRange(f *File, r position.Range) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(f, r.Start),
		End:   toProtocolPosition(f, r.End),
	}
}

// toProtocolPosition converts a byte column into the UTF-16 column LSP
// clients count in.
func toProtocolPosition(f *File, p position.Position) protocol.Position {
	line, col := p.Line(), p.Column()
	start := f.Lines.LineStart(line)
	if start < 0 {
		return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
	}
	end := min(start+col, len(f.Content))
	units := 0
	for _, r := range f.Content[start:end] {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

func fromProtocolPosition(f *File, p protocol.Position) position.Position {
	line := int(p.Line)
	start := f.Lines.LineStart(line)
	if start < 0 {
		return position.Pack(line, int(p.Character))
	}
	col, units := 0, 0
	for units < int(p.Character) && start+col < len(f.Content) {
		r, size := utf8.DecodeRuneInString(f.Content[start+col:])
		if r == '\n' {
			break
		}
		units += utf16.RuneLen(r)
		col += size
	}
	return position.Pack(line, col)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(filepath.FromSlash(parsed.Path)), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}

// Package ui serves a small web browser over a scanned PHP project: files
// with their syntax errors, declarations with their doc blocks, and parse
// tree outlines.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/psai/php/codebase"
	"github.com/dhamidi/psai/php/parser"
	"github.com/dhamidi/psai/php/phpdoc"
	"github.com/dhamidi/psai/php/position"
)

var log = commonlog.GetLogger("psai.ui")

//go:embed all:templates
var embeddedFS embed.FS

const maxResults = 20

type Server struct {
	codebase   *codebase.Codebase
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(c *codebase.Codebase) (*Server, error) {
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"line": func(p position.Position) int {
			return p.Line() + 1
		},
		"column": func(p position.Position) int {
			return p.Column() + 1
		},
		"formatDoc": func(doc *phpdoc.DocBlock) template.HTML {
			text := phpdoc.Format(doc)
			if text == "" {
				return ""
			}
			lines := strings.Split(text, "\n")
			for i, line := range lines {
				lines[i] = template.HTMLEscapeString(line)
			}
			return template.HTML(strings.Join(lines, "<br>"))
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		codebase:   c,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.HandleFunc("POST /rescan", s.handleRescan)
	s.mux.HandleFunc("GET /f/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /sidebar", s.handleSidebar)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render parses the templates on every request so that edits below
// ui/templates show up without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

type FileSummary struct {
	Path    string `json:"path"`
	Errors  int    `json:"errors"`
	Symbols int    `json:"symbols"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var files []FileSummary
	var broken int
	for _, f := range s.codebase.Files() {
		summary := FileSummary{
			Path:    relPath(s.codebase.RootDir(), f.Path),
			Errors:  len(f.Diagnostics),
			Symbols: len(f.Symbols),
		}
		if summary.Errors > 0 {
			broken++
		}
		files = append(files, summary)
	}

	if wantsJSON(r) {
		writeJSON(w, files)
		return
	}

	data := struct {
		Root   string
		Files  []FileSummary
		Broken int
	}{
		Root:   s.codebase.RootDir(),
		Files:  files,
		Broken: broken,
	}
	s.render(w, "index.html", data)
}

type FileViewData struct {
	File    *codebase.File
	RelPath string
	Outline string
	Lines   []SourceLine
}

// SourceLine is one numbered line of a file; Error is set on lines where
// a syntax error starts.
type SourceLine struct {
	Number int
	Text   string
	Error  string
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	f := s.codebase.GetFile(filepath.Join(s.codebase.RootDir(), filepath.FromSlash(rel)))
	if f == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, struct {
			Path        string                `json:"path"`
			Diagnostics []codebase.Diagnostic `json:"diagnostics"`
			Symbols     []jsonSymbol          `json:"symbols"`
		}{
			Path:        rel,
			Diagnostics: f.Diagnostics,
			Symbols:     toJSONSymbols(f.Symbols),
		})
		return
	}

	data := FileViewData{
		File:    f,
		RelPath: rel,
		Lines:   sourceLines(f),
	}
	if r.URL.Query().Get("view") == "tree" {
		data.Outline = parser.Outline(f.Tree, f.Content)
	}
	s.render(w, "file.html", data)
}

func sourceLines(f *codebase.File) []SourceLine {
	text := strings.Split(f.Content, "\n")
	lines := make([]SourceLine, len(text))
	for i, line := range text {
		lines[i] = SourceLine{Number: i + 1, Text: strings.TrimSuffix(line, "\r")}
	}
	for _, d := range f.Diagnostics {
		if n := d.Range.Start.Line(); n < len(lines) && lines[n].Error == "" {
			lines[n].Error = d.Message
		}
	}
	return lines
}

type jsonSymbol struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name"`
	Line     int          `json:"line"`
	Doc      string       `json:"doc,omitempty"`
	Children []jsonSymbol `json:"children,omitempty"`
}

func toJSONSymbols(symbols []codebase.Symbol) []jsonSymbol {
	out := make([]jsonSymbol, len(symbols))
	for i, sym := range symbols {
		out[i] = jsonSymbol{
			Kind:     sym.Kind.String(),
			Name:     sym.Name,
			Line:     sym.NameRange.Start.Line() + 1,
			Doc:      phpdoc.Format(sym.Doc),
			Children: toJSONSymbols(sym.Children),
		}
	}
	return out
}

// SymbolMatch is a sidebar search hit.
type SymbolMatch struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	var matches []SymbolMatch
	totalMatches := 0
	var visit func(path string, symbols []codebase.Symbol)
	visit = func(path string, symbols []codebase.Symbol) {
		for _, sym := range symbols {
			if sym.Name != "" && strings.Contains(strings.ToLower(sym.Name), query) {
				totalMatches++
				if len(matches) < maxResults {
					matches = append(matches, SymbolMatch{
						Path: path,
						Kind: sym.Kind.String(),
						Name: sym.Name,
						Line: sym.NameRange.Start.Line() + 1,
					})
				}
			}
			visit(path, sym.Children)
		}
	}
	for _, f := range s.codebase.Files() {
		visit(relPath(s.codebase.RootDir(), f.Path), f.Symbols)
	}

	if wantsJSON(r) {
		writeJSON(w, matches)
		return
	}

	data := struct {
		Query        string
		Matches      []SymbolMatch
		TotalMatches int
		HasMore      bool
	}{
		Query:        query,
		Matches:      matches,
		TotalMatches: totalMatches,
		HasMore:      totalMatches > maxResults,
	}
	s.render(w, "_sidebar.html", data)
}

func (s *Server) handleRescan(w http.ResponseWriter, r *http.Request) {
	if err := s.codebase.ScanAll(r.Context()); err != nil {
		http.Error(w, "scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS serves files from primaryPath on disk when present and from
// secondary otherwise.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}

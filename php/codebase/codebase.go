// Package codebase keeps parsed PHP documents in memory and serves them
// to tools: syntax diagnostics, document symbols, a disk cache of scan
// summaries, a polling watcher and a language server.
package codebase

import (
	"context"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/psai/php/parser"
	"github.com/dhamidi/psai/php/position"
	"github.com/dhamidi/psai/project"
)

var log = commonlog.GetLogger("psai.codebase")

type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*File
}

// File is one parsed document. A File is never modified after it is
// stored; updates replace it.
type File struct {
	Path        string
	Content     string
	Tree        *parser.Phrase
	Lines       *position.LineTable
	Diagnostics []Diagnostic
	Symbols     []Symbol
	// ModTime is the modification time of the file on disk when it was
	// read, zero for content that came from an editor.
	ModTime time.Time
}

func New(p *project.Project) *Codebase {
	return &Codebase{
		project: p,
		files:   make(map[string]*File),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll parses every project file, using as many workers as the
// project configuration allows. Files that cannot be read are logged and
// skipped.
func (c *Codebase) ScanAll(ctx context.Context) error {
	files, err := c.project.Files()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.project.Config.Scan.Workers())
	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Codebase) ScanFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	content, err := c.project.ReadFile(path)
	if err != nil {
		return err
	}
	f := Analyze(path, content)
	f.ModTime = info.ModTime()
	c.store(f)
	return nil
}

// UpdateFile parses content and replaces whatever was stored for path.
func (c *Codebase) UpdateFile(path string, content string) *File {
	f := Analyze(path, content)
	c.store(f)
	return f
}

func (c *Codebase) store(f *File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[f.Path] = f
	log.Debugf("updated %s: %d diagnostics", f.Path, len(f.Diagnostics))
}

// Analyze parses content into a File without storing it.
func Analyze(path string, content string) *File {
	p := parser.New(content)
	tree := p.Parse()
	return &File{
		Path:        path,
		Content:     content,
		Tree:        tree,
		Lines:       p.Lines(),
		Diagnostics: Diagnostics(tree, content),
		Symbols:     Symbols(tree, content),
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns all stored files sorted by path.
func (c *Codebase) Files() []*File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*File, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// FindSymbol returns the first top level or member symbol with the given
// name across all files.
func (c *Codebase) FindSymbol(name string) (*File, *Symbol) {
	for _, f := range c.Files() {
		if s := findSymbol(f.Symbols, name); s != nil {
			return f, s
		}
	}
	return nil, nil
}

func findSymbol(symbols []Symbol, name string) *Symbol {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
		if s := findSymbol(symbols[i].Children, name); s != nil {
			return s
		}
	}
	return nil
}

package codebase

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dhamidi/psai/php/parser"
)

// Current schema version. Increment when Summary changes shape or the
// parser starts producing different trees.
const summarySchemaVersion uint16 = 1

// Digest is the SHA-256 of a file's content.
type Digest [32]byte

func DigestOf(content string) Digest {
	return sha256.Sum256([]byte(content))
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Summary is what a scan remembers about one file.
type Summary struct {
	Schema      uint16
	Path        string
	Digest      Digest
	Tokens      int
	Phrases     int
	Symbols     int
	Diagnostics []Diagnostic
}

// Summarize counts the leaves, phrases and symbols of f.
func Summarize(f *File) *Summary {
	s := &Summary{
		Schema:      summarySchemaVersion,
		Path:        f.Path,
		Digest:      DigestOf(f.Content),
		Diagnostics: f.Diagnostics,
	}
	parser.Walk(f.Tree, func(n parser.Node) bool {
		switch n.(type) {
		case *parser.Leaf:
			s.Tokens++
		case *parser.Phrase:
			s.Phrases++
		}
		return true
	})
	var count func([]Symbol)
	count = func(symbols []Symbol) {
		for _, sym := range symbols {
			s.Symbols++
			count(sym.Children)
		}
	}
	count(f.Symbols)
	return s
}

// DiskCache stores summaries keyed by content digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "summaries", hexKey[:2], hexKey+".mp")
}

// Put writes a summary. The file is replaced atomically so concurrent
// readers never see a partial entry.
func (c *DiskCache) Put(key Digest, summary *Summary) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(summary); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a summary. Entries written by another schema version count
// as missing.
func (c *DiskCache) Get(key Digest) (*Summary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var summary Summary
	if err := msgpack.NewDecoder(f).Decode(&summary); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if summary.Schema != summarySchemaVersion || summary.Digest != key {
		return nil, false, nil
	}
	return &summary, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "summaries"))
}

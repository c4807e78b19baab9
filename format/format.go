// Package format renders parsed PHP documents for the command line.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/parser"
	"github.com/dhamidi/psai/php/position"
)

// Document is one source file with its tokens and parse tree.
type Document struct {
	Path   string
	Source string
	Tree   *parser.Phrase
	Tokens []lexer.Token
	Lines  *position.LineTable
}

// NewDocument lexes and parses src.
func NewDocument(path, src string) *Document {
	p := parser.New(src)
	tree := p.Parse()
	return &Document{
		Path:   path,
		Source: src,
		Tree:   tree,
		Tokens: lexer.Tokenize(src),
		Lines:  p.Lines(),
	}
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *Document) error
}

// NewTreeEncoder returns the encoder for a parse tree format: "json",
// "text" or "errors".
func NewTreeEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text":
		return NewTextEncoder(w), nil
	case "errors":
		return NewErrorEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown tree format %q", name)
}

// NewTokenEncoder returns the encoder for a token stream format: "line",
// "json" or "msgpack". Width limits the token text shown by "line".
func NewTokenEncoder(name string, w io.Writer, width int) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w, width), nil
	case "json":
		return NewTokenJSONEncoder(w), nil
	case "msgpack":
		return NewMsgpackEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown token format %q", name)
}

// TokenRecord is the serialized form of one token. Lines and columns
// count from 1.
type TokenRecord struct {
	Kind   string `json:"kind" msgpack:"kind"`
	Offset int    `json:"offset" msgpack:"offset"`
	Length int    `json:"length" msgpack:"length"`
	Line   int    `json:"line" msgpack:"line"`
	Column int    `json:"column" msgpack:"column"`
	Mode   string `json:"mode" msgpack:"mode"`
	Text   string `json:"text" msgpack:"text"`
}

// Records converts the document's tokens into records.
func (d *Document) Records() []TokenRecord {
	records := make([]TokenRecord, len(d.Tokens))
	for i, tok := range d.Tokens {
		pos := d.Lines.Position(tok.Offset)
		mode := ""
		if len(tok.Modes) > 0 {
			mode = tok.Modes.Top().String()
		}
		records[i] = TokenRecord{
			Kind:   tok.Kind.String(),
			Offset: tok.Offset,
			Length: tok.Length,
			Line:   pos.Line() + 1,
			Column: pos.Column() + 1,
			Mode:   mode,
			Text:   tok.Text(d.Source),
		}
	}
	return records
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

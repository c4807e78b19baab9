package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/psai/php/parser"
)

type JSONEncoder struct {
	w   io.Writer
	doc *Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

type jsonDocument struct {
	Path   string `json:"path"`
	Errors int    `json:"errors"`
	Tree   any    `json:"tree"`
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := jsonDocument{
		Path:   e.doc.Path,
		Errors: len(parser.Errors(e.doc.Tree)),
		Tree:   parser.ToJSON(e.doc.Tree, e.doc.Source),
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type TokenJSONEncoder struct {
	w   io.Writer
	doc *Document
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

func (e *TokenJSONEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *TokenJSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(e.doc.Records(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

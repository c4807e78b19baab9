package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/psai/php/parser"
)

// LineEncoder writes one token per line: position, kind and quoted text.
type LineEncoder struct {
	w     io.Writer
	width int
	doc   *Document
}

// NewLineEncoder returns a LineEncoder that cuts token text wider than
// width display cells. A width of zero or less never cuts.
func NewLineEncoder(w io.Writer, width int) *LineEncoder {
	return &LineEncoder{w: w, width: width}
}

func (e *LineEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.doc.Records() {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", r.Line, r.Column, r.Kind, e.truncate(strconv.Quote(r.Text)))
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) truncate(value string) string {
	if e.width <= 0 || runewidth.StringWidth(value) <= e.width {
		return value
	}
	if e.width <= 3 {
		return runewidth.Truncate(value, e.width, "")
	}
	return runewidth.Truncate(value, e.width, "...")
}

// TextEncoder writes the parse tree as an indented outline.
type TextEncoder struct {
	w   io.Writer
	doc *Document
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	return []byte(parser.Outline(e.doc.Tree, e.doc.Source)), nil
}

// ErrorEncoder writes one "path:line:column: message" line per syntax
// error.
type ErrorEncoder struct {
	w   io.Writer
	doc *Document
}

func NewErrorEncoder(w io.Writer) *ErrorEncoder {
	return &ErrorEncoder{w: w}
}

func (e *ErrorEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *ErrorEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, ph := range parser.Errors(e.doc.Tree) {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.doc.Path,
			ph.Range.Start.Line()+1, ph.Range.Start.Column()+1, ph.Error.Message(e.doc.Source))
	}
	return []byte(sb.String()), nil
}

package parser

import (
	"strings"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/position"
)

// Node is either a *Leaf or a *Phrase.
type Node interface {
	Span() position.Range
	node()
}

// Leaf wraps a single token of the source.
type Leaf struct {
	lexer.Token
	Range position.Range
}

func (l *Leaf) Span() position.Range { return l.Range }
func (*Leaf) node()                  {}

// Phrase is one grammar production. Its children are in source order and
// its range covers all of them.
type Phrase struct {
	Kind     PhraseKind
	Range    position.Range
	Children []Node
	// Error is set when the phrase records a syntax error.
	Error *Error
}

func (p *Phrase) Span() position.Range { return p.Range }
func (*Phrase) node()                  {}

// Error describes why a phrase could not be parsed.
type Error struct {
	Unexpected lexer.Token
	// Expected is lexer.TokenUndefined when no single kind was expected.
	Expected lexer.TokenKind
}

func (e *Error) Message(src string) string {
	got := e.Unexpected.Kind.String()
	if text := e.Unexpected.Text(src); text != "" && e.Unexpected.Kind != lexer.TokenEndOfFile {
		if len(text) > 20 {
			text = text[:20] + "..."
		}
		got += " " + quote(text)
	}
	if e.Expected == lexer.TokenUndefined {
		return "unexpected " + got
	}
	return "unexpected " + got + ", expected " + e.Expected.String()
}

func quote(s string) string {
	return "'" + strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s) + "'"
}

func (p *Phrase) IsError() bool {
	return p.Error != nil
}

func (p *Phrase) add(child Node) {
	switch c := child.(type) {
	case nil:
		return
	case *Phrase:
		if c == nil {
			return
		}
	case *Leaf:
		if c == nil {
			return
		}
	}
	p.Children = append(p.Children, child)
}

func (p *Phrase) FirstChildOfKind(kind PhraseKind) *Phrase {
	for _, child := range p.Children {
		if ph, ok := child.(*Phrase); ok && ph.Kind == kind {
			return ph
		}
	}
	return nil
}

func (p *Phrase) ChildrenOfKind(kind PhraseKind) []*Phrase {
	var result []*Phrase
	for _, child := range p.Children {
		if ph, ok := child.(*Phrase); ok && ph.Kind == kind {
			result = append(result, ph)
		}
	}
	return result
}

// FirstToken returns the first leaf child of the given token kind.
func (p *Phrase) FirstToken(kind lexer.TokenKind) *Leaf {
	for _, child := range p.Children {
		if leaf, ok := child.(*Leaf); ok && leaf.Kind == kind {
			return leaf
		}
	}
	return nil
}

// Phrases returns the phrase children, skipping leaves.
func (p *Phrase) Phrases() []*Phrase {
	var result []*Phrase
	for _, child := range p.Children {
		if ph, ok := child.(*Phrase); ok {
			result = append(result, ph)
		}
	}
	return result
}

// Walk calls fn for n and every node below it in source order. Returning
// false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if ph, ok := n.(*Phrase); ok {
		for _, child := range ph.Children {
			Walk(child, fn)
		}
	}
}

// Leaves returns all tokens under n in source order.
func Leaves(n Node) []*Leaf {
	var leaves []*Leaf
	Walk(n, func(n Node) bool {
		if leaf, ok := n.(*Leaf); ok {
			leaves = append(leaves, leaf)
		}
		return true
	})
	return leaves
}

// Errors returns every phrase under n that records a syntax error.
func Errors(n Node) []*Phrase {
	var errs []*Phrase
	Walk(n, func(n Node) bool {
		if ph, ok := n.(*Phrase); ok && ph.Error != nil {
			errs = append(errs, ph)
		}
		return true
	})
	return errs
}

// Text returns the source text covered by the leaves under n.
func Text(n Node, src string) string {
	var b strings.Builder
	for _, leaf := range Leaves(n) {
		b.WriteString(leaf.Token.Text(src))
	}
	return b.String()
}

// PhraseRange is the range of a phrase, for callers holding a Node.
func PhraseRange(n Node) position.Range {
	return n.Span()
}

// String renders the tree as an indented outline of kinds.
func (p *Phrase) String() string {
	var b strings.Builder
	writeOutline(&b, p, 0, "")
	return b.String()
}

// Outline renders the tree with ranges and token text.
func Outline(n Node, src string) string {
	var b strings.Builder
	writeOutline(&b, n, 0, src)
	return b.String()
}

func writeOutline(b *strings.Builder, n Node, indent int, src string) {
	b.WriteString(strings.Repeat("  ", indent))
	switch n := n.(type) {
	case *Leaf:
		b.WriteString(n.Kind.String())
		if src != "" {
			b.WriteString(" [" + n.Range.String() + "] " + quote(n.Token.Text(src)))
		}
		b.WriteByte('\n')
	case *Phrase:
		b.WriteString(n.Kind.String())
		if src != "" {
			b.WriteString(" [" + n.Range.String() + "]")
			if n.Error != nil {
				b.WriteString(" ERROR: " + n.Error.Message(src))
			}
		} else if n.Error != nil {
			b.WriteString(" ERROR")
		}
		b.WriteByte('\n')
		for _, child := range n.Children {
			writeOutline(b, child, indent+1, src)
		}
	}
}

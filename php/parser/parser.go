package parser

import (
	"slices"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/position"
)

// Parser builds one phrase tree from one source text. A Parser is not
// safe for concurrent use and must not be reused.
type Parser struct {
	src   string
	lexer *lexer.Lexer
	// queue holds tokens that were lexed for lookahead but not yet
	// placed in the tree, trivia included.
	queue []lexer.Token
	stack []*Phrase
	// recover holds one recover set per active list production and
	// recoverCount how many of them contain each kind.
	recover      [][]lexer.TokenKind
	recoverCount map[lexer.TokenKind]int
	// errorPhrase is the last error reported. While it is set, further
	// errors are not reported; a successful expect clears it.
	errorPhrase *Phrase
	consumed    int
}

func New(text string) *Parser {
	l := lexer.New()
	l.SetInput(text)
	return &Parser{src: text, lexer: l, recoverCount: map[lexer.TokenKind]int{}}
}

// Parse parses text into a StatementList covering all of it. The last
// child of the result is the EndOfFile leaf.
func Parse(text string) *Phrase {
	return New(text).Parse()
}

func (p *Parser) Parse() *Phrase {
	root := p.statementList(lexer.TokenEndOfFile)
	p.stack = append(p.stack, root)
	p.flushHidden(false)
	if p.peek(0).Kind != lexer.TokenEndOfFile {
		p.error(lexer.TokenUndefined)
		p.skip(func(lexer.Token) bool { return false })
		p.flushHidden(false)
	}
	root.add(p.leaf(p.raw(0)))
	return p.end()
}

// Lines returns the line table built while lexing. It is complete once
// Parse has returned.
func (p *Parser) Lines() *position.LineTable {
	return p.lexer.Lines()
}

func (p *Parser) Source() string {
	return p.src
}

// raw returns the i-th unconsumed token, trivia included.
func (p *Parser) raw(i int) lexer.Token {
	for len(p.queue) <= i {
		if n := len(p.queue); n > 0 && p.queue[n-1].Kind == lexer.TokenEndOfFile {
			return p.queue[n-1]
		}
		p.queue = append(p.queue, p.lexer.Lex())
	}
	return p.queue[i]
}

func (p *Parser) shift() lexer.Token {
	tok := p.raw(0)
	p.queue = p.queue[1:]
	p.consumed++
	return tok
}

func hidden(kind lexer.TokenKind, allowDoc bool) bool {
	if kind == lexer.TokenDocumentComment {
		return !allowDoc
	}
	return kind.IsTrivia()
}

// peekDoc returns the n-th significant token ahead without consuming
// anything. Document comments count as significant only when allowDoc is
// set.
func (p *Parser) peekDoc(n int, allowDoc bool) lexer.Token {
	for i := 0; ; i++ {
		tok := p.raw(i)
		if tok.Kind == lexer.TokenEndOfFile {
			return tok
		}
		if hidden(tok.Kind, allowDoc) {
			continue
		}
		if n == 0 {
			return tok
		}
		n--
	}
}

func (p *Parser) peek(n int) lexer.Token {
	return p.peekDoc(n, false)
}

func (p *Parser) at(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.peek(0).Kind)
}

func (p *Parser) leaf(tok lexer.Token) *Leaf {
	return &Leaf{Token: tok, Range: p.lexer.TokenRange(tok)}
}

func (p *Parser) top() *Phrase {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) add(child Node) {
	p.top().add(child)
}

// flushHidden moves the tokens hidden from the grammar that precede the
// next significant token into the current phrase.
func (p *Parser) flushHidden(allowDoc bool) {
	if len(p.stack) == 0 {
		return
	}
	for {
		tok := p.raw(0)
		if tok.Kind == lexer.TokenEndOfFile || !hidden(tok.Kind, allowDoc) {
			return
		}
		p.top().add(p.leaf(p.shift()))
	}
}

// nextDoc consumes the next significant token and appends it, and the
// trivia before it, to the current phrase. It never consumes EndOfFile.
func (p *Parser) nextDoc(allowDoc bool) *Leaf {
	p.flushHidden(allowDoc)
	if p.raw(0).Kind == lexer.TokenEndOfFile {
		return nil
	}
	leaf := p.leaf(p.shift())
	p.top().add(leaf)
	return leaf
}

func (p *Parser) next() *Leaf {
	return p.nextDoc(false)
}

// take consumes the next significant token like next, but returns the
// leaf instead of appending it so the caller can place it.
func (p *Parser) take() *Leaf {
	p.flushHidden(false)
	if p.raw(0).Kind == lexer.TokenEndOfFile {
		return nil
	}
	return p.leaf(p.shift())
}

func (p *Parser) optional(kind lexer.TokenKind) *Leaf {
	if p.peek(0).Kind == kind {
		return p.next()
	}
	return nil
}

func (p *Parser) optionalOneOf(kinds ...lexer.TokenKind) *Leaf {
	if p.at(kinds...) {
		return p.next()
	}
	return nil
}

// start opens a phrase. Trivia before it goes to the parent unless
// keepTrivia is set, which productions wrapping an already parsed left
// operand use.
func (p *Parser) start(kind PhraseKind, keepTrivia bool) *Phrase {
	if !keepTrivia {
		p.flushHidden(false)
	}
	ph := &Phrase{Kind: kind}
	p.stack = append(p.stack, ph)
	return ph
}

func (p *Parser) end() *Phrase {
	n := len(p.stack) - 1
	ph := p.stack[n]
	p.stack = p.stack[:n]
	p.span(ph)
	return ph
}

func (p *Parser) span(ph *Phrase) {
	if len(ph.Children) == 0 {
		at := p.lexer.TokenRange(p.raw(0)).Start
		ph.Range = position.Range{Start: at, End: at}
		return
	}
	r := ph.Children[0].Span()
	for _, child := range ph.Children[1:] {
		r = r.Cover(child.Span())
	}
	ph.Range = r
}

// expect consumes a token of the given kind. When the token after the
// next one has that kind, the next token is skipped as an error and the
// expected one consumed. A close tag stands in for a semicolon.
func (p *Parser) expect(kind lexer.TokenKind) *Leaf {
	tok := p.peek(0)
	if tok.Kind == kind {
		p.errorPhrase = nil
		return p.next()
	}
	if kind == lexer.TokenSemicolon && tok.Kind == lexer.TokenCloseTag {
		return nil
	}
	p.error(kind)
	if after := p.peek(1); after.Kind == kind {
		p.skipTo(after)
		p.errorPhrase = nil
		return p.next()
	}
	return nil
}

func (p *Parser) expectOneOf(kinds ...lexer.TokenKind) *Leaf {
	if p.at(kinds...) {
		p.errorPhrase = nil
		return p.next()
	}
	p.error(lexer.TokenUndefined)
	return nil
}

// error appends an error phrase for the next token to the current phrase,
// unless the parser is still recovering from an earlier one.
func (p *Parser) error(expected lexer.TokenKind) {
	if p.errorPhrase != nil {
		return
	}
	p.flushHidden(false)
	tok := p.peek(0)
	at := p.lexer.TokenRange(tok).Start
	e := &Phrase{
		Kind:  KindError,
		Range: position.Range{Start: at, End: at},
		Error: &Error{Unexpected: tok, Expected: expected},
	}
	p.top().add(e)
	p.errorPhrase = e
}

// fail closes the current phrase, whose kind is one of the error kinds,
// as an error phrase for the next token. Unlike error it records the
// error even while the parser is recovering, since the phrase kind
// already claims one.
func (p *Parser) fail(expected lexer.TokenKind) *Phrase {
	ph := p.top()
	if !ph.Kind.IsErrorKind() {
		panic("parser: fail on " + ph.Kind.String())
	}
	ph.Error = &Error{Unexpected: p.peek(0), Expected: expected}
	if p.errorPhrase == nil {
		p.errorPhrase = ph
	}
	return p.end()
}

// sink returns the error phrase skipped tokens go into: the last reported
// error if it is the newest child of the current phrase, or a new one.
func (p *Parser) sink() *Phrase {
	top := p.top()
	if e := p.errorPhrase; e != nil && len(top.Children) > 0 && top.Children[len(top.Children)-1] == e {
		return e
	}
	e := &Phrase{Kind: KindError, Error: &Error{Unexpected: p.peek(0)}}
	top.add(e)
	p.errorPhrase = e
	return e
}

// skip moves tokens into an error phrase until stop matches or the input
// ends.
func (p *Parser) skip(stop func(lexer.Token) bool) {
	for {
		tok := p.raw(0)
		if tok.Kind == lexer.TokenEndOfFile || stop(tok) {
			return
		}
		e := p.sink()
		leaf := p.leaf(p.shift())
		if len(e.Children) == 0 {
			e.Range = leaf.Range
		} else {
			e.Range = e.Range.Cover(leaf.Range)
		}
		e.add(leaf)
	}
}

func (p *Parser) skipTo(target lexer.Token) {
	p.skip(func(tok lexer.Token) bool { return tok.Offset >= target.Offset })
}

func (p *Parser) pushRecover(set []lexer.TokenKind) {
	p.recover = append(p.recover, set)
	for _, kind := range set {
		p.recoverCount[kind]++
	}
}

func (p *Parser) popRecover() {
	n := len(p.recover) - 1
	for _, kind := range p.recover[n] {
		if p.recoverCount[kind]--; p.recoverCount[kind] == 0 {
			delete(p.recoverCount, kind)
		}
	}
	p.recover = p.recover[:n]
}

// sync skips to the first token that belongs to any active recover set.
func (p *Parser) sync() {
	p.skip(func(tok lexer.Token) bool { return p.recoverCount[tok.Kind] > 0 })
}

type tokenPredicate func(lexer.TokenKind) bool

func oneOf(kinds ...lexer.TokenKind) tokenPredicate {
	return func(k lexer.TokenKind) bool {
		return slices.Contains(kinds, k)
	}
}

func asNode(f func() *Phrase) func() Node {
	return func() Node { return f() }
}

// list parses elements while the next token starts one. On any other
// token it stops if the token is in breakOn; otherwise it reports an
// error and either skips a single token, when that lets the list go on,
// or skips to the nearest token of any active recover set. A list without
// breakOn stops at the first token that does not start an element.
func (p *Parser) list(kind PhraseKind, element func() Node, starts tokenPredicate, breakOn, recoverSet []lexer.TokenKind, allowDoc bool) *Phrase {
	p.flushHidden(allowDoc)
	ph := p.start(kind, true)
	p.pushRecover(slices.Concat(recoverSet, breakOn))
	defer p.popRecover()

	attempted := false
	for {
		tok := p.peekDoc(0, allowDoc)
		if allowDoc && tok.Kind == lexer.TokenDocumentComment {
			p.nextDoc(true)
			attempted = false
			continue
		}
		if starts(tok.Kind) {
			attempted = false
			before := p.consumed
			ph.add(element())
			if p.consumed == before {
				p.error(lexer.TokenUndefined)
				p.skipTo(p.peek(1))
			}
			continue
		}
		if breakOn == nil || tok.Kind == lexer.TokenEndOfFile || slices.Contains(breakOn, tok.Kind) || attempted {
			break
		}
		p.error(lexer.TokenUndefined)
		if after := p.peek(1); starts(after.Kind) || slices.Contains(breakOn, after.Kind) {
			p.skipTo(after)
		} else {
			p.sync()
		}
		attempted = true
	}
	return p.end()
}

// delimitedList parses elements separated by delimiter. A trailing
// delimiter before a break token is accepted. A missing delimiter is
// reported and parsing goes on if an element follows.
func (p *Parser) delimitedList(kind PhraseKind, element func() Node, starts tokenPredicate, delimiter lexer.TokenKind, breakOn []lexer.TokenKind, keepTrivia bool) *Phrase {
	ph := p.start(kind, keepTrivia)
	p.pushRecover(append(slices.Clone(breakOn), delimiter))
	defer p.popRecover()

	for {
		before := p.consumed
		ph.add(element())
		tok := p.peek(0)
		if tok.Kind == delimiter {
			p.next()
			if after := p.peek(0).Kind; after == lexer.TokenEndOfFile || slices.Contains(breakOn, after) {
				break
			}
			continue
		}
		if breakOn == nil || tok.Kind == lexer.TokenEndOfFile || slices.Contains(breakOn, tok.Kind) {
			break
		}
		p.error(lexer.TokenUndefined)
		if starts(tok.Kind) && p.consumed > before {
			continue
		}
		p.sync()
		if p.peek(0).Kind == delimiter {
			p.next()
			continue
		}
		break
	}
	return p.end()
}

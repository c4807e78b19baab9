// Package lexer turns PHP source text into tokens.
//
// The lexer is driven by a stack of modes. The mode on top of the stack
// selects the scanning function for the next token: inline markup outside
// of PHP tags, the scripting grammar, the inside of double quoted strings,
// heredocs, nowdocs, backtick commands, and the narrow modes used for
// variables interpolated into strings.
//
// Every token records the mode stack that was in effect before it was
// scanned, so lexing can resume from any token:
//
//	lx := lexer.New()
//	lx.SetInput(text, lexer.WithOffset(tok.Offset), lexer.WithModes(tok.Modes))
//	again := lx.Lex() // same as tok
//
// The lexer never fails. Bytes it does not recognize become TokenUnknown
// tokens of length one and unterminated constructs run to end of input.
package lexer

import (
	"fmt"

	"github.com/dhamidi/psai/php/position"
)

type Lexer struct {
	input        string
	pos          int
	modes        ModeStack
	lines        *position.LineTable
	heredocLabel string
	// dqScanned is the length of literal text already measured after an
	// opening double quote. It is consumed by the next DoubleQuotes token.
	dqScanned int
}

func New() *Lexer {
	l := &Lexer{}
	l.SetInput("")
	return l
}

type inputConfig struct {
	modes  ModeStack
	offset int
}

type InputOption func(*inputConfig)

// WithModes starts lexing with the given mode stack instead of [Initial].
func WithModes(modes ModeStack) InputOption {
	return func(c *inputConfig) {
		if len(modes) > 0 {
			c.modes = modes
		}
	}
}

// WithOffset starts lexing at a byte offset into the text.
func WithOffset(offset int) InputOption {
	return func(c *inputConfig) {
		c.offset = offset
	}
}

// SetInput resets all scan state for text.
func (l *Lexer) SetInput(text string, opts ...InputOption) {
	cfg := inputConfig{modes: InitialModes()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.offset < 0 {
		cfg.offset = 0
	}
	if cfg.offset > len(text) {
		cfg.offset = len(text)
	}

	l.input = text
	l.pos = cfg.offset
	l.modes = cfg.modes
	l.lines = position.NewLineTable()
	l.lines.Scan(text, 0, cfg.offset)
	l.heredocLabel = ""
	l.dqScanned = 0

	switch l.modes.Top() {
	case ModeHeredoc, ModeNowdoc, ModeEndHeredoc:
		l.heredocLabel = recoverHeredocLabel(text, cfg.offset)
	}
}

// recoverHeredocLabel lexes text from the start up to offset and returns
// the label of the heredoc open there. Searching backwards for "<<<" is
// not enough, since heredoc bodies may contain it.
func recoverHeredocLabel(text string, offset int) string {
	l := &Lexer{}
	l.SetInput(text)
	for l.pos < offset {
		if l.Lex().Kind == TokenEndOfFile {
			break
		}
	}
	return l.heredocLabel
}

// Lex scans and returns the next token. At end of input it returns a
// zero-length TokenEndOfFile, and keeps doing so on every further call.
func (l *Lexer) Lex() Token {
	modes := l.modes
	start := l.pos
	for {
		if l.pos >= len(l.input) {
			return Token{Kind: TokenEndOfFile, Offset: len(l.input), Modes: modes}
		}

		var kind TokenKind
		switch mode := l.modes.Top(); mode {
		case ModeInitial:
			kind = l.scanInitial()
		case ModeScripting:
			kind = l.scanScripting()
		case ModeLookingForProperty:
			kind = l.scanLookingForProperty()
		case ModeDoubleQuotes:
			kind = l.scanDoubleQuotes()
		case ModeNowdoc:
			kind = l.scanHeredocBody(false)
		case ModeHeredoc:
			kind = l.scanHeredocBody(true)
		case ModeEndHeredoc:
			kind = l.scanEndHeredoc()
		case ModeBacktick:
			kind = l.scanBacktick()
		case ModeVarOffset:
			kind = l.scanVarOffset()
		case ModeLookingForVarName:
			kind = l.scanLookingForVarName()
		default:
			panic(fmt.Sprintf("lexer: no scanner for mode %v", mode))
		}

		// TokenUndefined means the scanner only changed modes.
		if kind == TokenUndefined {
			if l.pos != start {
				panic("lexer: mode change consumed input")
			}
			continue
		}
		if l.pos <= start {
			panic(fmt.Sprintf("lexer: no progress in mode %v at offset %d", l.modes.Top(), start))
		}

		l.lines.Scan(l.input, start, l.pos)
		return Token{Kind: kind, Offset: start, Length: l.pos - start, Modes: modes}
	}
}

// TokenRange converts the offsets of a token produced by this lexer into
// packed line/column positions.
func (l *Lexer) TokenRange(tok Token) position.Range {
	return position.Range{
		Start: l.lines.Position(tok.Offset),
		End:   l.lines.Position(tok.End()),
	}
}

func (l *Lexer) Lines() *position.LineTable {
	return l.lines
}

func (l *Lexer) Modes() ModeStack {
	return l.modes
}

func (l *Lexer) Offset() int {
	return l.pos
}

// Tokenize lexes all of text. The last token is always TokenEndOfFile.
func Tokenize(text string) []Token {
	l := New()
	l.SetInput(text)
	var tokens []Token
	for {
		tok := l.Lex()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEndOfFile {
			return tokens
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) at(i int) byte {
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) push(m Mode) {
	l.modes = l.modes.Push(m)
}

func (l *Lexer) pop() {
	l.modes = l.modes.Pop()
}

func (l *Lexer) replace(m Mode) {
	l.modes = l.modes.Replace(m)
}

func isLabelStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isLabelChar(ch byte) bool {
	return isLabelStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// labelEnd returns the offset just past the label starting at i.
func (l *Lexer) labelEnd(i int) int {
	for i < len(l.input) && isLabelChar(l.input[i]) {
		i++
	}
	return i
}

package phpdoc

import (
	"slices"
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for PHPDoc blocks.
type Parser struct {
	input     []rune
	pos       int
	len       int
	lineStart int // position after the most recent line prefix
}

// Parse parses a doc comment, delimiters included, and returns its
// DocBlock. Parse never fails: anything it cannot interpret is kept as
// text or as an UnknownTag.
func Parse(text string) *DocBlock {
	p := &Parser{
		input: []rune(text),
	}
	p.len = len(p.input)
	return p.parseDocBlock()
}

func (p *Parser) parseDocBlock() *DocBlock {
	p.skipCommentStart()

	doc := &DocBlock{}
	doc.Summary, doc.Description = splitSummary(p.parseContent(false))
	doc.Tags = p.parseTags()

	return doc
}

// skipCommentStart skips the leading /** and the first line prefix.
func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	}
	p.skipLinePrefix()
}

// skipLinePrefix skips leading whitespace and a single asterisk at the
// start of a line.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
	p.lineStart = p.pos
}

// parseContent parses text and inline tags. Inside an inline tag parsing
// stops at the unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var textBuf strings.Builder
	depth := 0

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if !inInlineTag && p.isAtTag() {
			break
		}

		switch ch {
		case '\n', '\r':
			textBuf.WriteRune('\n')
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flushText()
				nodes = append(nodes, p.parseInlineTag())
				continue
			}
			if inInlineTag {
				depth++
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		case '}':
			if inInlineTag {
				if depth == 0 {
					flushText()
					return nodes
				}
				depth--
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return nodes
}

// isAtTag reports whether a tag starts here: an '@' preceded on its line
// by nothing but the line prefix.
func (p *Parser) isAtTag() bool {
	if p.peek() != '@' {
		return false
	}
	for i := p.lineStart; i < p.pos; i++ {
		if ch := p.input[i]; ch != ' ' && ch != '\t' {
			return false
		}
	}
	return true
}

// parseInlineTag parses an inline tag like {@link ...} or {@inheritDoc}.
func (p *Parser) parseInlineTag() Node {
	p.advance(2)

	name := p.readTagName()
	if name == "" {
		return Text{Content: "{@"}
	}
	p.skipHorizontalWhitespace()

	tag := InlineTag{Name: name}
	switch strings.ToLower(name) {
	case "link", "see", "inheritdoc":
		tag.Reference = p.readReference()
		p.skipHorizontalWhitespace()
	}
	if p.peek() != '}' {
		tag.Description = trimNodes(p.parseContent(true))
	}

	if p.peek() == '}' {
		p.advance(1)
	}
	return tag
}

// parseTags parses tags until the end of the comment.
func (p *Parser) parseTags() []Node {
	var tags []Node

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.match("*/") {
			break
		}

		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		name := p.readTagName()
		if name == "" {
			continue
		}

		p.skipHorizontalWhitespace()

		var tag Node
		switch name {
		case "param":
			tag = p.parseParamTag()
		case "return":
			tag = p.parseReturnTag()
		case "var":
			tag = p.parseVarTag()
		case "throws":
			tag = p.parseThrowsTag()
		case "property":
			tag = p.parsePropertyTag(ReadWrite)
		case "property-read":
			tag = p.parsePropertyTag(ReadOnly)
		case "property-write":
			tag = p.parsePropertyTag(WriteOnly)
		case "method":
			tag = p.parseMethodTag()
		case "deprecated":
			tag = p.parseDeprecatedTag()
		case "see":
			tag = p.parseSeeTag()
		default:
			tag = UnknownTag{Name: name, Content: p.parseTagContent()}
		}
		tags = append(tags, tag)
	}

	return tags
}

func (p *Parser) parseParamTag() Node {
	var param Param
	if !p.atVariable() {
		param.Type = p.readType()
		p.skipHorizontalWhitespace()
	}
	if p.peek() == '&' {
		param.ByRef = true
		p.advance(1)
	}
	if p.match("...") {
		param.Variadic = true
		p.advance(3)
	}
	param.Name = p.readVariable()
	p.skipHorizontalWhitespace()
	param.Description = p.parseTagContent()
	return param
}

func (p *Parser) parseReturnTag() Node {
	typ := p.readType()
	p.skipHorizontalWhitespace()
	return Return{Type: typ, Description: p.parseTagContent()}
}

func (p *Parser) parseVarTag() Node {
	var v Var
	if p.peek() != '$' {
		v.Type = p.readType()
		p.skipHorizontalWhitespace()
	}
	v.Name = p.readVariable()
	p.skipHorizontalWhitespace()
	v.Description = p.parseTagContent()
	return v
}

func (p *Parser) parseThrowsTag() Node {
	typ := p.readType()
	p.skipHorizontalWhitespace()
	return Throws{Type: typ, Description: p.parseTagContent()}
}

func (p *Parser) parsePropertyTag(access PropertyAccess) Node {
	prop := Property{Access: access}
	if p.peek() != '$' {
		prop.Type = p.readType()
		p.skipHorizontalWhitespace()
	}
	prop.Name = p.readVariable()
	p.skipHorizontalWhitespace()
	prop.Description = p.parseTagContent()
	return prop
}

// parseMethodTag parses "@method [static] [ReturnType] name(params) desc".
func (p *Parser) parseMethodTag() Node {
	var m Method
	if p.matchWord("static") {
		m.Static = true
		p.advance(len("static"))
		p.skipHorizontalWhitespace()
	}

	signature := p.readType()
	p.skipHorizontalWhitespace()
	if isIdentifierStart(p.peek()) {
		save := p.pos
		if next := p.readType(); strings.Contains(next, "(") {
			m.ReturnType = signature
			signature = next
		} else {
			p.pos = save
		}
	}

	if open := strings.IndexByte(signature, '('); open >= 0 {
		m.Name = signature[:open]
		m.Parameters = strings.TrimSuffix(signature[open+1:], ")")
	} else {
		m.Name = signature
	}
	p.skipHorizontalWhitespace()
	m.Description = p.parseTagContent()
	return m
}

func (p *Parser) parseDeprecatedTag() Node {
	var d Deprecated
	if isDigit(p.peek()) {
		d.Version = p.readWord()
		p.skipHorizontalWhitespace()
	}
	d.Description = p.parseTagContent()
	return d
}

func (p *Parser) parseSeeTag() Node {
	ref := p.readReference()
	p.skipHorizontalWhitespace()
	return See{Reference: ref, Description: p.parseTagContent()}
}

// parseTagContent parses content until the next tag or end of comment.
func (p *Parser) parseTagContent() []Node {
	return trimNodes(p.parseContent(false))
}

func (p *Parser) atVariable() bool {
	return p.peek() == '$' || p.peek() == '&' || p.match("...")
}

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	i := p.pos
	for _, ch := range s {
		if i >= p.len || p.input[i] != ch {
			return false
		}
		i++
	}
	return true
}

// matchWord matches s followed by whitespace.
func (p *Parser) matchWord(s string) bool {
	if !p.match(s) {
		return false
	}
	next := p.peekAt(len([]rune(s)))
	return next == ' ' || next == '\t'
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

// readTagName reads names like "param", "property-read" and "ORM\Column".
func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if !isIdentifierPart(ch) && ch != '-' && ch != '\\' {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readVariable() string {
	if p.peek() != '$' {
		return ""
	}
	start := p.pos
	p.advance(1)
	for p.pos < p.len && isIdentifierPart(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readWord() string {
	start := p.pos
	for p.pos < p.len && !isWhitespace(p.peek()) && p.peek() != '}' {
		if p.peek() == '*' && p.peekAt(1) == '/' {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readReference reads a structural element such as \Foo\Bar::baz() or a
// URL.
func (p *Parser) readReference() string {
	return p.readWord()
}

// readType reads a type expression such as "array<int, string>|null" or
// "callable(int): void". Whitespace inside brackets belongs to the type.
// A newline always ends it.
func (p *Parser) readType() string {
	start := p.pos
	depth := 0
loop:
	for p.pos < p.len {
		ch := p.peek()
		switch {
		case ch == '\n' || ch == '\r':
			break loop
		case ch == '*' && p.peekAt(1) == '/':
			break loop
		case ch == '<' || ch == '(' || ch == '{' || ch == '[':
			depth++
		case ch == '>' || ch == ')' || ch == '}' || ch == ']':
			if depth == 0 {
				break loop
			}
			depth--
		case ch == ' ' || ch == '\t':
			if depth > 0 {
				break
			}
			if p.pos > start && p.input[p.pos-1] == ':' {
				p.skipHorizontalWhitespace()
				continue
			}
			break loop
		}
		p.advance(1)
	}
	return strings.TrimSpace(string(p.input[start:p.pos]))
}

// splitSummary cuts free text at the first blank line or at the first
// period that ends a line.
func splitSummary(nodes []Node) (summary, description []Node) {
	for i, n := range nodes {
		text, ok := n.(Text)
		if !ok {
			continue
		}
		cut := summaryEnd(text.Content)
		if cut < 0 {
			continue
		}
		summary = append(slices.Clone(nodes[:i]), Text{Content: text.Content[:cut]})
		description = append([]Node{Text{Content: text.Content[cut:]}}, nodes[i+1:]...)
		return trimNodes(summary), trimNodes(description)
	}
	return trimNodes(nodes), nil
}

func summaryEnd(s string) int {
	cut := -1
	if i := strings.Index(s, "\n\n"); i >= 0 {
		cut = i
	}
	if i := strings.Index(s, ".\n"); i >= 0 && (cut < 0 || i+1 < cut) {
		cut = i + 1
	}
	return cut
}

// trimNodes trims surrounding whitespace and drops text that becomes empty.
func trimNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := slices.Clone(nodes)
	if t, ok := out[0].(Text); ok {
		out[0] = Text{Content: strings.TrimLeftFunc(t.Content, unicode.IsSpace)}
	}
	last := len(out) - 1
	if t, ok := out[last].(Text); ok {
		out[last] = Text{Content: strings.TrimRightFunc(t.Content, unicode.IsSpace)}
	}
	out = slices.DeleteFunc(out, func(n Node) bool {
		t, ok := n.(Text)
		return ok && t.Content == ""
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '\\' || ch == '?'
}

func isIdentifierPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

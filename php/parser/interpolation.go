package parser

import "github.com/dhamidi/psai/php/lexer"

var encapsulatedVariableListRecoverSet = []lexer.TokenKind{
	lexer.TokenEncapsulatedAndWhitespace, lexer.TokenDollarCurlyOpen, lexer.TokenCurlyOpen,
}

func isEncapsulatedVariableStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenEncapsulatedAndWhitespace, lexer.TokenVariableName,
		lexer.TokenDollarCurlyOpen, lexer.TokenCurlyOpen:
		return true
	}
	return false
}

// quotedStringLiteral parses a double quoted string or a backtick command
// that contains interpolation.
func (p *Parser) quotedStringLiteral(kind PhraseKind, quote lexer.TokenKind) *Phrase {
	p.start(kind, false)
	p.next()
	p.add(p.encapsulatedVariableList(quote))
	p.expect(quote)
	return p.end()
}

func (p *Parser) heredocStringLiteral() *Phrase {
	p.start(KindHeredocStringLiteral, false)
	p.next()
	if isEncapsulatedVariableStart(p.peek(0).Kind) {
		p.add(p.encapsulatedVariableList(lexer.TokenEndHeredoc))
	}
	p.expect(lexer.TokenEndHeredoc)
	return p.end()
}

// encapsulatedVariableList stops cleanly at end of input so an unclosed
// string reports the missing closing token rather than a stray one.
func (p *Parser) encapsulatedVariableList(closing lexer.TokenKind) *Phrase {
	return p.list(KindEncapsulatedVariableList, p.encapsulatedVariable, isEncapsulatedVariableStart,
		[]lexer.TokenKind{closing, lexer.TokenEndOfFile}, encapsulatedVariableListRecoverSet, false)
}

func (p *Parser) encapsulatedVariable() Node {
	switch p.peek(0).Kind {
	case lexer.TokenEncapsulatedAndWhitespace:
		return p.take()
	case lexer.TokenVariableName:
		switch p.peek(1).Kind {
		case lexer.TokenOpenBracket:
			return p.encapsulatedOffset()
		case lexer.TokenArrow:
			return p.encapsulatedProperty()
		}
		return p.simpleVariable()
	case lexer.TokenDollarCurlyOpen:
		return p.dollarCurlyOpenVariable()
	case lexer.TokenCurlyOpen:
		p.start(KindEncapsulatedVariable, false)
		p.next()
		p.add(p.variable(p.variableAtom()))
		p.expect(lexer.TokenCloseBrace)
		return p.end()
	}
	p.start(KindError, false)
	return p.fail(lexer.TokenUndefined)
}

// encapsulatedOffset parses "$a[key]" where the key is a bare name, an
// integer, a negative integer or a variable.
func (p *Parser) encapsulatedOffset() *Phrase {
	p.start(KindSubscriptExpression, false)
	p.add(p.simpleVariable())
	p.next()
	switch p.peek(0).Kind {
	case lexer.TokenName, lexer.TokenIntegerLiteral:
		p.next()
	case lexer.TokenVariableName:
		p.add(p.simpleVariable())
	case lexer.TokenMinus:
		p.start(KindUnaryOpExpression, false)
		p.next()
		p.expect(lexer.TokenIntegerLiteral)
		p.add(p.end())
	default:
		p.error(lexer.TokenUndefined)
	}
	p.expect(lexer.TokenCloseBracket)
	return p.end()
}

func (p *Parser) encapsulatedProperty() *Phrase {
	p.start(KindPropertyAccessExpression, false)
	p.add(p.simpleVariable())
	p.next()
	p.start(KindMemberName, false)
	p.expect(lexer.TokenName)
	p.add(p.end())
	return p.end()
}

// dollarCurlyOpenVariable parses "${name}", "${name[expr]}" and "${expr}".
func (p *Parser) dollarCurlyOpenVariable() *Phrase {
	p.start(KindEncapsulatedVariable, false)
	p.next()
	switch kind := p.peek(0).Kind; {
	case kind == lexer.TokenVariableName && p.peek(1).Kind == lexer.TokenOpenBracket:
		p.start(KindSubscriptExpression, false)
		p.start(KindSimpleVariable, false)
		p.next()
		p.add(p.end())
		p.next()
		p.add(p.expression(0))
		p.expect(lexer.TokenCloseBracket)
		p.add(p.end())
	case kind == lexer.TokenVariableName:
		p.start(KindSimpleVariable, false)
		p.next()
		p.add(p.end())
	case isExpressionStart(kind):
		p.add(p.expression(0))
	default:
		p.error(lexer.TokenUndefined)
	}
	p.expect(lexer.TokenCloseBrace)
	return p.end()
}

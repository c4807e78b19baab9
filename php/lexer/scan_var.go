package lexer

// scanLookingForProperty runs after "->". A property name is lexed as a
// plain name even when it spells a keyword.
func (l *Lexer) scanLookingForProperty() TokenKind {
	switch ch := l.peek(); {
	case isWhitespace(ch):
		for isWhitespace(l.peek()) {
			l.pos++
		}
		return TokenWhitespace
	case ch == '-' && l.peekN(1) == '>':
		return l.take(2, TokenArrow)
	case isLabelStart(ch):
		l.pos = l.labelEnd(l.pos)
		l.pop()
		return TokenName
	}
	l.pop()
	return TokenUndefined
}

// scanVarOffset handles the key of "$a[key]" inside a string.
func (l *Lexer) scanVarOffset() TokenKind {
	switch ch := l.peek(); {
	case ch == '[':
		return l.take(1, TokenOpenBracket)
	case ch == ']':
		l.pop()
		return l.take(1, TokenCloseBracket)
	case isDigit(ch):
		for isDigit(l.peek()) {
			l.pos++
		}
		return TokenIntegerLiteral
	case isLabelStart(ch):
		l.pos = l.labelEnd(l.pos)
		return TokenName
	case ch == '$' && isLabelStart(l.peekN(1)):
		l.pos = l.labelEnd(l.pos + 1)
		return TokenVariableName
	case ch == '-':
		return l.take(1, TokenMinus)
	}
	l.pop()
	return l.take(1, TokenUnknown)
}

// scanLookingForVarName runs after "${". A bare name directly followed by
// "[" or "}" is a variable name; anything else is an expression.
func (l *Lexer) scanLookingForVarName() TokenKind {
	if isLabelStart(l.peek()) {
		end := l.labelEnd(l.pos)
		if next := l.at(end); next == '[' || next == '}' {
			l.pos = end
			l.replace(ModeScripting)
			return TokenVariableName
		}
	}
	l.replace(ModeScripting)
	return TokenUndefined
}

package lexer

import (
	"errors"
	"strconv"
	"strings"
)

// scanScripting handles the main PHP token grammar.
func (l *Lexer) scanScripting() TokenKind {
	ch := l.peek()

	switch {
	case isWhitespace(ch):
		for isWhitespace(l.peek()) {
			l.pos++
		}
		return TokenWhitespace
	case isDigit(ch) || ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber()
	case (ch == 'b' || ch == 'B') && (l.peekN(1) == '\'' || l.peekN(1) == '"'):
		l.pos++
		if l.peek() == '\'' {
			return l.scanSingleQuoted()
		}
		return l.scanDoubleQuoteStart()
	case (ch == 'b' || ch == 'B') && strings.HasPrefix(l.input[l.pos+1:], "<<<"):
		if kind, ok := l.scanHeredocStart(l.pos + 1); ok {
			return kind
		}
		return l.scanIdentifier()
	case isLabelStart(ch):
		return l.scanIdentifier()
	}

	switch ch {
	case '$':
		if isLabelStart(l.peekN(1)) {
			l.pos = l.labelEnd(l.pos + 1)
			return TokenVariableName
		}
		return l.take(1, TokenDollar)
	case '\'':
		return l.scanSingleQuoted()
	case '"':
		return l.scanDoubleQuoteStart()
	case '`':
		l.push(ModeBacktick)
		return l.take(1, TokenBacktick)
	case '#':
		return l.scanLineComment()
	case '/':
		switch l.peekN(1) {
		case '/':
			return l.scanLineComment()
		case '*':
			return l.scanBlockComment()
		case '=':
			return l.take(2, TokenForwardSlashEquals)
		}
		return l.take(1, TokenForwardSlash)
	case '?':
		switch {
		case l.peekN(1) == '>':
			n := 2
			if l.peekN(2) == '\n' {
				n = 3
			} else if l.peekN(2) == '\r' {
				n = 3
				if l.peekN(3) == '\n' {
					n = 4
				}
			}
			l.replace(ModeInitial)
			return l.take(n, TokenCloseTag)
		case l.peekN(1) == '?' && l.peekN(2) == '=':
			return l.take(3, TokenQuestionQuestionEquals)
		case l.peekN(1) == '?':
			return l.take(2, TokenQuestionQuestion)
		}
		return l.take(1, TokenQuestion)
	case '<':
		if l.peekN(1) == '<' && l.peekN(2) == '<' {
			if kind, ok := l.scanHeredocStart(l.pos); ok {
				return kind
			}
		}
		return l.choose(
			"<<=", TokenLessThanLessThanEquals,
			"<<", TokenLessThanLessThan,
			"<=>", TokenSpaceship,
			"<=", TokenLessThanEquals,
			"<>", TokenExclamationEquals,
			"<", TokenLessThan,
		)
	case '>':
		return l.choose(
			">>=", TokenGreaterThanGreaterThanEquals,
			">>", TokenGreaterThanGreaterThan,
			">=", TokenGreaterThanEquals,
			">", TokenGreaterThan,
		)
	case '=':
		return l.choose(
			"===", TokenEqualsEqualsEquals,
			"==", TokenEqualsEquals,
			"=>", TokenFatArrow,
			"=", TokenEquals,
		)
	case '!':
		return l.choose(
			"!==", TokenExclamationEqualsEquals,
			"!=", TokenExclamationEquals,
			"!", TokenExclamation,
		)
	case '+':
		return l.choose(
			"++", TokenPlusPlus,
			"+=", TokenPlusEquals,
			"+", TokenPlus,
		)
	case '-':
		if l.peekN(1) == '>' {
			l.push(ModeLookingForProperty)
			return l.take(2, TokenArrow)
		}
		return l.choose(
			"--", TokenMinusMinus,
			"-=", TokenMinusEquals,
			"-", TokenMinus,
		)
	case '*':
		return l.choose(
			"**=", TokenAsteriskAsteriskEquals,
			"**", TokenAsteriskAsterisk,
			"*=", TokenAsteriskEquals,
			"*", TokenAsterisk,
		)
	case '%':
		return l.choose("%=", TokenPercentEquals, "%", TokenPercent)
	case '&':
		return l.choose(
			"&&", TokenAmpersandAmpersand,
			"&=", TokenAmpersandEquals,
			"&", TokenAmpersand,
		)
	case '|':
		return l.choose(
			"||", TokenBarBar,
			"|=", TokenBarEquals,
			"|", TokenBar,
		)
	case '^':
		return l.choose("^=", TokenCaretEquals, "^", TokenCaret)
	case '.':
		return l.choose(
			"...", TokenEllipsis,
			".=", TokenDotEquals,
			".", TokenDot,
		)
	case ':':
		return l.choose("::", TokenColonColon, ":", TokenColon)
	case '(':
		if kind, n := l.matchCast(); n > 0 {
			return l.take(n, kind)
		}
		return l.take(1, TokenOpenParenthesis)
	case ')':
		return l.take(1, TokenCloseParenthesis)
	case '[':
		return l.take(1, TokenOpenBracket)
	case ']':
		return l.take(1, TokenCloseBracket)
	case '{':
		l.push(ModeScripting)
		return l.take(1, TokenOpenBrace)
	case '}':
		if len(l.modes) > 1 {
			l.pop()
		}
		return l.take(1, TokenCloseBrace)
	case ';':
		return l.take(1, TokenSemicolon)
	case ',':
		return l.take(1, TokenComma)
	case '\\':
		return l.take(1, TokenBackslash)
	case '~':
		return l.take(1, TokenTilde)
	case '@':
		return l.take(1, TokenAtSymbol)
	}

	return l.take(1, TokenUnknown)
}

func (l *Lexer) take(n int, kind TokenKind) TokenKind {
	l.pos += n
	return kind
}

// choose takes the first operator spelling that matches at the current
// position. Arguments alternate spelling and kind, longest first.
func (l *Lexer) choose(alternatives ...any) TokenKind {
	rest := l.input[l.pos:]
	for i := 0; i+1 < len(alternatives); i += 2 {
		op := alternatives[i].(string)
		if strings.HasPrefix(rest, op) {
			return l.take(len(op), alternatives[i+1].(TokenKind))
		}
	}
	return l.take(1, TokenUnknown)
}

func (l *Lexer) scanIdentifier() TokenKind {
	start := l.pos
	l.pos = l.labelEnd(l.pos)
	kind := LookupKeyword(l.input[start:l.pos])
	if kind == TokenYield {
		// "yield from" is one token whatever whitespace separates the words
		i := l.pos
		for i < len(l.input) && isWhitespace(l.input[i]) {
			i++
		}
		if i > l.pos && i+4 <= len(l.input) && strings.EqualFold(l.input[i:i+4], "from") && !isLabelChar(l.at(i+4)) {
			l.pos = i + 4
			return TokenYieldFrom
		}
	}
	return kind
}

func (l *Lexer) scanNumber() TokenKind {
	start := l.pos
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') && isHexDigit(l.peekN(2)) {
		l.pos += 2
		for isHexDigit(l.peek()) || l.peek() == '_' && isHexDigit(l.peekN(1)) {
			l.pos++
		}
		return integerKind(l.input[start:l.pos])
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') && (l.peekN(2) == '0' || l.peekN(2) == '1') {
		l.pos += 2
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' && (l.peekN(1) == '0' || l.peekN(1) == '1') {
			l.pos++
		}
		return integerKind(l.input[start:l.pos])
	}

	float := false
	l.scanDigits()
	if l.peek() == '.' && l.peekN(1) != '.' {
		float = true
		l.pos++
		l.scanDigits()
	}
	if e := l.peek(); e == 'e' || e == 'E' {
		switch {
		case isDigit(l.peekN(1)):
			float = true
			l.pos++
			l.scanDigits()
		case (l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2)):
			float = true
			l.pos += 2
			l.scanDigits()
		}
	}
	if float {
		return TokenFloatingLiteral
	}
	return integerKind(l.input[start:l.pos])
}

func (l *Lexer) scanDigits() {
	for isDigit(l.peek()) || l.peek() == '_' && isDigit(l.peekN(1)) {
		l.pos++
	}
}

// integerKind classifies an integer literal. Values that do not fit in
// 64 bits are floats in PHP.
func integerKind(text string) TokenKind {
	text = strings.ReplaceAll(text, "_", "")
	if len(text) > 2 && text[0] == '0' && (text[1] == 'b' || text[1] == 'B') {
		_, err := strconv.ParseInt(text[2:], 2, 64)
		if errors.Is(err, strconv.ErrRange) {
			return TokenFloatingLiteral
		}
		return TokenIntegerLiteral
	}
	_, err := strconv.ParseInt(text, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		return TokenFloatingLiteral
	}
	return TokenIntegerLiteral
}

// matchCast recognizes "(int)", "( string )" and the other casts.
func (l *Lexer) matchCast() (TokenKind, int) {
	i := l.pos + 1
	for isBlank(l.at(i)) {
		i++
	}
	start := i
	for isLabelStart(l.at(i)) && l.at(i) < 0x80 {
		i++
	}
	if i == start {
		return TokenUndefined, 0
	}
	kind, ok := castTypes[strings.ToLower(l.input[start:i])]
	if !ok {
		return TokenUndefined, 0
	}
	for isBlank(l.at(i)) {
		i++
	}
	if l.at(i) != ')' {
		return TokenUndefined, 0
	}
	return kind, i + 1 - l.pos
}

// scanLineComment scans "#" and "//" comments up to the end of the line or
// a closing tag, whichever comes first.
func (l *Lexer) scanLineComment() TokenKind {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\n' || ch == '\r' || ch == '?' && l.peekN(1) == '>' {
			break
		}
		l.pos++
	}
	return TokenComment
}

func (l *Lexer) scanBlockComment() TokenKind {
	kind := TokenComment
	if l.peekN(2) == '*' && l.peekN(3) != '/' && l.pos+3 < len(l.input) {
		kind = TokenDocumentComment
	}
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		l.pos = len(l.input)
	} else {
		l.pos += 2 + end + 2
	}
	return kind
}

// scanSingleQuoted scans a single quoted string. The only escapes are \'
// and \\.
func (l *Lexer) scanSingleQuoted() TokenKind {
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '\'':
			l.pos++
			return TokenStringLiteral
		}
		l.pos++
	}
	l.pos = len(l.input)
	return TokenStringLiteral
}

package lexer

import "strings"

// scanInitial handles inline markup outside of PHP tags.
func (l *Lexer) scanInitial() TokenKind {
	if kind, n := l.matchOpenTag(l.pos); n > 0 {
		l.pos += n
		l.replace(ModeScripting)
		return kind
	}

	// every "<?" opens some kind of tag
	i := strings.Index(l.input[l.pos:], "<?")
	if i < 0 {
		l.pos = len(l.input)
	} else {
		l.pos += i
	}
	return TokenText
}

// matchOpenTag reports the open tag starting at i and its length in bytes.
func (l *Lexer) matchOpenTag(i int) (TokenKind, int) {
	if l.at(i) != '<' || l.at(i+1) != '?' {
		return TokenUndefined, 0
	}
	if l.at(i+2) == '=' {
		return TokenOpenTagEcho, 3
	}
	if i+5 <= len(l.input) && strings.EqualFold(l.input[i+2:i+5], "php") {
		switch ch := l.at(i + 5); {
		case i+5 == len(l.input):
			return TokenOpenTag, 5
		case ch == '\r' && l.at(i+6) == '\n':
			return TokenOpenTag, 7
		case isWhitespace(ch):
			return TokenOpenTag, 6
		}
	}
	return TokenOpenTagShort, 2
}

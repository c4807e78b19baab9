package lexer

import "strings"

// scanDoubleQuoteStart scans a double quoted string opened at l.pos. A
// string without interpolation is a single TokenStringLiteral; otherwise
// only the opening quote is returned and the lexer enters ModeDoubleQuotes.
func (l *Lexer) scanDoubleQuoteStart() TokenKind {
	l.pos++
	n, interpolated := l.scanEncapsulated(l.pos, '"')
	if !interpolated {
		l.pos += n
		if l.peek() == '"' {
			l.pos++
		}
		return TokenStringLiteral
	}
	l.dqScanned = n
	l.push(ModeDoubleQuotes)
	return TokenDoubleQuote
}

// scanEncapsulated measures the literal text starting at from. It stops at
// an unescaped quote, at the start of an interpolation, or at end of input,
// and reports whether it stopped because of an interpolation.
func (l *Lexer) scanEncapsulated(from int, quote byte) (int, bool) {
	i := from
	for i < len(l.input) {
		switch ch := l.input[i]; {
		case ch == '\\':
			i += 2
			continue
		case ch == quote:
			return i - from, false
		case l.isInterpolationStart(i):
			return i - from, true
		}
		i++
	}
	return len(l.input) - from, false
}

func (l *Lexer) isInterpolationStart(i int) bool {
	switch l.at(i) {
	case '$':
		return isLabelStart(l.at(i+1)) || l.at(i+1) == '{'
	case '{':
		return l.at(i+1) == '$'
	}
	return false
}

// scanInterpolation scans the token that opens an interpolated variable:
// "$name", "${" or "{$". It returns TokenUndefined if none starts here.
func (l *Lexer) scanInterpolation() TokenKind {
	switch {
	case l.peek() == '$' && isLabelStart(l.peekN(1)):
		l.pos = l.labelEnd(l.pos + 1)
		switch {
		case l.peek() == '[':
			l.push(ModeVarOffset)
		case l.peek() == '-' && l.peekN(1) == '>' && isLabelStart(l.peekN(2)):
			l.push(ModeLookingForProperty)
		}
		return TokenVariableName
	case l.peek() == '$' && l.peekN(1) == '{':
		l.push(ModeLookingForVarName)
		return l.take(2, TokenDollarCurlyOpen)
	case l.peek() == '{' && l.peekN(1) == '$':
		l.push(ModeScripting)
		return l.take(1, TokenCurlyOpen)
	}
	return TokenUndefined
}

func (l *Lexer) scanDoubleQuotes() TokenKind {
	if n := l.dqScanned; n > 0 {
		l.dqScanned = 0
		return l.take(n, TokenEncapsulatedAndWhitespace)
	}
	return l.scanQuotedPart('"', TokenDoubleQuote)
}

func (l *Lexer) scanBacktick() TokenKind {
	l.dqScanned = 0
	return l.scanQuotedPart('`', TokenBacktick)
}

func (l *Lexer) scanQuotedPart(quote byte, closing TokenKind) TokenKind {
	if l.peek() == quote {
		l.pop()
		return l.take(1, closing)
	}
	if kind := l.scanInterpolation(); kind != TokenUndefined {
		return kind
	}
	n, _ := l.scanEncapsulated(l.pos, quote)
	return l.take(n, TokenEncapsulatedAndWhitespace)
}

// matchHeredocStart matches a heredoc or nowdoc opener at i: "<<<", optional
// blanks, a bare, double quoted or single quoted label, and a line break.
func matchHeredocStart(text string, i int) (end int, label string, nowdoc bool, ok bool) {
	if !strings.HasPrefix(text[i:], "<<<") {
		return 0, "", false, false
	}
	j := i + 3
	for j < len(text) && isBlank(text[j]) {
		j++
	}
	var quote byte
	if j < len(text) && (text[j] == '\'' || text[j] == '"') {
		quote = text[j]
		j++
	}
	if j >= len(text) || !isLabelStart(text[j]) {
		return 0, "", false, false
	}
	s := j
	for j < len(text) && isLabelChar(text[j]) {
		j++
	}
	label = text[s:j]
	if quote != 0 {
		if j >= len(text) || text[j] != quote {
			return 0, "", false, false
		}
		j++
	}
	switch {
	case j < len(text) && text[j] == '\n':
		j++
	case j < len(text) && text[j] == '\r':
		j++
		if j < len(text) && text[j] == '\n' {
			j++
		}
	default:
		return 0, "", false, false
	}
	return j, label, quote == '\'', true
}

// scanHeredocStart scans "<<<LABEL\n" at i. An empty body goes straight to
// ModeEndHeredoc.
func (l *Lexer) scanHeredocStart(i int) (TokenKind, bool) {
	end, label, nowdoc, ok := matchHeredocStart(l.input, i)
	if !ok {
		return TokenUndefined, false
	}
	l.pos = end
	l.heredocLabel = label
	switch {
	case l.matchHeredocEnd(end):
		l.push(ModeEndHeredoc)
	case nowdoc:
		l.push(ModeNowdoc)
	default:
		l.push(ModeHeredoc)
	}
	return TokenStartHeredoc, true
}

// matchHeredocEnd reports whether the line starting at i closes the current
// heredoc: optional blanks, the label, and then anything that cannot
// continue a label.
func (l *Lexer) matchHeredocEnd(i int) bool {
	label := l.heredocLabel
	if label == "" || i > len(l.input) {
		return false
	}
	for isBlank(l.at(i)) {
		i++
	}
	if !strings.HasPrefix(l.input[i:], label) {
		return false
	}
	return !isLabelChar(l.at(i + len(label)))
}

// scanHeredocBody scans literal text inside a heredoc or nowdoc. The newline
// before the closing label belongs to the body.
func (l *Lexer) scanHeredocBody(interpolate bool) TokenKind {
	start := l.pos
	i := start
	lineStart := i == 0 || l.input[i-1] == '\n' || l.input[i-1] == '\r'
	for i < len(l.input) {
		if lineStart && l.matchHeredocEnd(i) {
			l.replace(ModeEndHeredoc)
			if i == start {
				return TokenUndefined
			}
			l.pos = i
			return TokenEncapsulatedAndWhitespace
		}
		ch := l.input[i]
		if interpolate {
			if l.isInterpolationStart(i) {
				if i == start {
					return l.scanInterpolation()
				}
				l.pos = i
				return TokenEncapsulatedAndWhitespace
			}
			if ch == '\\' && i+1 < len(l.input) {
				i++
				ch = l.input[i]
			}
		}
		i++
		lineStart = ch == '\n' || ch == '\r' && l.at(i) != '\n'
	}
	l.pos = len(l.input)
	return TokenEncapsulatedAndWhitespace
}

// scanEndHeredoc scans the indentation and label that close a heredoc.
func (l *Lexer) scanEndHeredoc() TokenKind {
	i := l.pos
	for isBlank(l.at(i)) {
		i++
	}
	if label := l.heredocLabel; label != "" && strings.HasPrefix(l.input[i:], label) {
		i += len(label)
	}
	l.pop()
	if i == l.pos {
		return TokenUndefined
	}
	l.pos = i
	return TokenEndHeredoc
}

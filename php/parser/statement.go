package parser

import (
	"slices"

	"github.com/dhamidi/psai/php/lexer"
)

var statementListRecoverSet = []lexer.TokenKind{
	lexer.TokenNamespace, lexer.TokenUse, lexer.TokenHaltCompiler,
	lexer.TokenConst, lexer.TokenFunction, lexer.TokenClass,
	lexer.TokenAbstract, lexer.TokenFinal, lexer.TokenTrait,
	lexer.TokenInterface, lexer.TokenOpenBrace, lexer.TokenIf,
	lexer.TokenWhile, lexer.TokenDo, lexer.TokenFor, lexer.TokenSwitch,
	lexer.TokenBreak, lexer.TokenContinue, lexer.TokenReturn,
	lexer.TokenGlobal, lexer.TokenStatic, lexer.TokenEcho, lexer.TokenUnset,
	lexer.TokenForeach, lexer.TokenDeclare, lexer.TokenTry, lexer.TokenThrow,
	lexer.TokenGoto, lexer.TokenSemicolon, lexer.TokenCloseTag,
	lexer.TokenOpenTagEcho, lexer.TokenText, lexer.TokenOpenTag,
	lexer.TokenOpenTagShort,
}

var caseListRecoverSet = []lexer.TokenKind{lexer.TokenCase, lexer.TokenDefault}

func isStatementStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenNamespace, lexer.TokenUse, lexer.TokenHaltCompiler,
		lexer.TokenConst, lexer.TokenFunction, lexer.TokenClass,
		lexer.TokenAbstract, lexer.TokenFinal, lexer.TokenTrait,
		lexer.TokenInterface, lexer.TokenOpenBrace, lexer.TokenIf,
		lexer.TokenWhile, lexer.TokenDo, lexer.TokenFor, lexer.TokenSwitch,
		lexer.TokenBreak, lexer.TokenContinue, lexer.TokenReturn,
		lexer.TokenGlobal, lexer.TokenStatic, lexer.TokenEcho,
		lexer.TokenUnset, lexer.TokenForeach, lexer.TokenDeclare,
		lexer.TokenTry, lexer.TokenThrow, lexer.TokenGoto,
		lexer.TokenSemicolon, lexer.TokenCloseTag, lexer.TokenOpenTagEcho,
		lexer.TokenText, lexer.TokenOpenTag, lexer.TokenOpenTagShort:
		return true
	}
	return isExpressionStart(kind)
}

func (p *Parser) statementList(breakOn ...lexer.TokenKind) *Phrase {
	return p.list(KindStatementList, asNode(p.statement), isStatementStart, breakOn, statementListRecoverSet, true)
}

// optionalStatementList parses a statement list unless the next token
// already ends it.
func (p *Parser) optionalStatementList(breakOn ...lexer.TokenKind) {
	if kind := p.peek(0).Kind; kind != lexer.TokenEndOfFile && !slices.Contains(breakOn, kind) {
		p.add(p.statementList(breakOn...))
	}
}

func (p *Parser) statement() *Phrase {
	switch p.peek(0).Kind {
	case lexer.TokenNamespace:
		if p.peek(1).Kind == lexer.TokenBackslash {
			return p.expressionStatement()
		}
		return p.namespaceDefinition()
	case lexer.TokenUse:
		return p.namespaceUseDeclaration()
	case lexer.TokenHaltCompiler:
		return p.haltCompilerStatement()
	case lexer.TokenConst:
		return p.constDeclaration()
	case lexer.TokenFunction:
		after := p.peek(1).Kind
		if after == lexer.TokenOpenParenthesis ||
			after == lexer.TokenAmpersand && p.peek(2).Kind == lexer.TokenOpenParenthesis {
			return p.expressionStatement()
		}
		return p.functionDeclaration()
	case lexer.TokenAbstract, lexer.TokenFinal, lexer.TokenClass:
		return p.classDeclaration()
	case lexer.TokenTrait:
		return p.traitDeclaration()
	case lexer.TokenInterface:
		return p.interfaceDeclaration()
	case lexer.TokenOpenBrace:
		return p.compoundStatement(KindCompoundStatement)
	case lexer.TokenIf:
		return p.ifStatement()
	case lexer.TokenWhile:
		return p.whileStatement()
	case lexer.TokenDo:
		return p.doStatement()
	case lexer.TokenFor:
		return p.forStatement()
	case lexer.TokenSwitch:
		return p.switchStatement()
	case lexer.TokenBreak:
		return p.jumpStatement(KindBreakStatement)
	case lexer.TokenContinue:
		return p.jumpStatement(KindContinueStatement)
	case lexer.TokenReturn:
		return p.jumpStatement(KindReturnStatement)
	case lexer.TokenGlobal:
		return p.globalDeclaration()
	case lexer.TokenStatic:
		if p.peek(1).Kind == lexer.TokenVariableName && p.peek(2).Kind != lexer.TokenColonColon {
			return p.functionStaticDeclaration()
		}
		return p.expressionStatement()
	case lexer.TokenText, lexer.TokenOpenTag, lexer.TokenOpenTagShort, lexer.TokenCloseTag:
		return p.inlineText()
	case lexer.TokenEcho, lexer.TokenOpenTagEcho:
		return p.echoIntrinsic()
	case lexer.TokenForeach:
		return p.foreachStatement()
	case lexer.TokenUnset:
		return p.unsetIntrinsic()
	case lexer.TokenDeclare:
		return p.declareStatement()
	case lexer.TokenTry:
		return p.tryStatement()
	case lexer.TokenThrow:
		return p.throwStatement()
	case lexer.TokenGoto:
		return p.gotoStatement()
	case lexer.TokenSemicolon:
		p.start(KindNullStatement, false)
		p.next()
		return p.end()
	case lexer.TokenName:
		if p.peek(1).Kind == lexer.TokenColon {
			return p.namedLabelStatement()
		}
	}
	return p.expressionStatement()
}

func (p *Parser) expressionStatement() *Phrase {
	p.start(KindExpressionStatement, false)
	p.add(p.expression(0))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) compoundStatement(kind PhraseKind) *Phrase {
	p.start(kind, false)
	p.expect(lexer.TokenOpenBrace)
	p.optionalStatementList(lexer.TokenCloseBrace)
	p.expect(lexer.TokenCloseBrace)
	return p.end()
}

// inlineText covers the text between a close tag and the next open tag.
func (p *Parser) inlineText() *Phrase {
	p.start(KindInlineText, false)
	p.optional(lexer.TokenCloseTag)
	p.optional(lexer.TokenText)
	p.optionalOneOf(lexer.TokenOpenTag, lexer.TokenOpenTagShort)
	return p.end()
}

func (p *Parser) echoIntrinsic() *Phrase {
	p.start(KindEchoIntrinsic, false)
	p.next()
	p.add(p.expressionList(lexer.TokenSemicolon, lexer.TokenCloseTag))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) expressionList(breakOn ...lexer.TokenKind) *Phrase {
	return p.delimitedList(KindExpressionList, p.expressionNode, isExpressionStart, lexer.TokenComma, breakOn, false)
}

func (p *Parser) expressionNode() Node {
	return p.expression(0)
}

// parenthesised parses "( expr )" directly into the current phrase.
func (p *Parser) parenthesised() {
	p.expect(lexer.TokenOpenParenthesis)
	p.add(p.expression(0))
	p.expect(lexer.TokenCloseParenthesis)
}

func (p *Parser) ifStatement() *Phrase {
	p.start(KindIfStatement, false)
	p.next()
	p.parenthesised()
	if p.optional(lexer.TokenColon) != nil {
		p.optionalStatementList(lexer.TokenElseIf, lexer.TokenElse, lexer.TokenEndIf)
		for p.at(lexer.TokenElseIf) {
			p.add(p.elseIfClause(true))
		}
		if p.at(lexer.TokenElse) {
			p.add(p.elseClause(true))
		}
		p.expect(lexer.TokenEndIf)
		p.expect(lexer.TokenSemicolon)
		return p.end()
	}
	p.add(p.statement())
	for p.at(lexer.TokenElseIf) {
		p.add(p.elseIfClause(false))
	}
	if p.at(lexer.TokenElse) {
		p.add(p.elseClause(false))
	}
	return p.end()
}

func (p *Parser) elseIfClause(alternative bool) *Phrase {
	p.start(KindElseIfClause, false)
	p.next()
	p.parenthesised()
	if alternative {
		p.expect(lexer.TokenColon)
		p.optionalStatementList(lexer.TokenElseIf, lexer.TokenElse, lexer.TokenEndIf)
	} else {
		p.add(p.statement())
	}
	return p.end()
}

func (p *Parser) elseClause(alternative bool) *Phrase {
	p.start(KindElseClause, false)
	p.next()
	if alternative {
		p.expect(lexer.TokenColon)
		p.optionalStatementList(lexer.TokenEndIf)
	} else {
		p.add(p.statement())
	}
	return p.end()
}

// loopBody parses either a single statement or, after a colon, a
// statement list closed by terminator and a semicolon.
func (p *Parser) loopBody(terminator lexer.TokenKind) {
	if p.optional(lexer.TokenColon) == nil {
		p.add(p.statement())
		return
	}
	p.optionalStatementList(terminator)
	p.expect(terminator)
	p.expect(lexer.TokenSemicolon)
}

func (p *Parser) whileStatement() *Phrase {
	p.start(KindWhileStatement, false)
	p.next()
	p.parenthesised()
	p.loopBody(lexer.TokenEndWhile)
	return p.end()
}

func (p *Parser) doStatement() *Phrase {
	p.start(KindDoStatement, false)
	p.next()
	p.add(p.statement())
	p.expect(lexer.TokenWhile)
	p.parenthesised()
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) forStatement() *Phrase {
	p.start(KindForStatement, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	groups := []struct {
		kind  PhraseKind
		close lexer.TokenKind
	}{
		{KindForInitialiser, lexer.TokenSemicolon},
		{KindForControl, lexer.TokenSemicolon},
		{KindForEndOfLoop, lexer.TokenCloseParenthesis},
	}
	for _, g := range groups {
		if isExpressionStart(p.peek(0).Kind) {
			p.add(p.delimitedList(g.kind, p.expressionNode, isExpressionStart, lexer.TokenComma, []lexer.TokenKind{g.close}, false))
		}
		p.expect(g.close)
	}
	p.loopBody(lexer.TokenEndFor)
	return p.end()
}

func (p *Parser) foreachStatement() *Phrase {
	p.start(KindForeachStatement, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)

	p.start(KindForeachCollection, false)
	p.add(p.expression(0))
	p.add(p.end())

	p.expect(lexer.TokenAs)
	value := p.foreachValue()
	if p.at(lexer.TokenFatArrow) {
		value.Kind = KindForeachKey
		p.add(value)
		p.next()
		value = p.foreachValue()
	}
	p.add(value)
	p.expect(lexer.TokenCloseParenthesis)
	p.loopBody(lexer.TokenEndForeach)
	return p.end()
}

func (p *Parser) foreachValue() *Phrase {
	p.start(KindForeachValue, false)
	p.optional(lexer.TokenAmpersand)
	p.add(p.expression(0))
	return p.end()
}

func (p *Parser) switchStatement() *Phrase {
	p.start(KindSwitchStatement, false)
	p.next()
	p.parenthesised()

	closing := lexer.TokenCloseBrace
	if open := p.expectOneOf(lexer.TokenColon, lexer.TokenOpenBrace); open != nil && open.Kind == lexer.TokenColon {
		closing = lexer.TokenEndSwitch
	}
	p.optional(lexer.TokenSemicolon)
	if p.at(lexer.TokenCase, lexer.TokenDefault) {
		p.add(p.list(KindCaseStatementList, func() Node { return p.caseStatement(closing) },
			oneOf(lexer.TokenCase, lexer.TokenDefault), []lexer.TokenKind{closing}, caseListRecoverSet, false))
	}
	p.expect(closing)
	if closing == lexer.TokenEndSwitch {
		p.expect(lexer.TokenSemicolon)
	}
	return p.end()
}

func (p *Parser) caseStatement(closing lexer.TokenKind) *Phrase {
	ph := p.start(KindCaseStatement, false)
	if p.next().Kind == lexer.TokenDefault {
		ph.Kind = KindDefaultStatement
	} else {
		p.add(p.expression(0))
	}
	p.expectOneOf(lexer.TokenColon, lexer.TokenSemicolon)
	p.optionalStatementList(lexer.TokenCase, lexer.TokenDefault, closing)
	return p.end()
}

// jumpStatement parses break, continue and return, which all take an
// optional expression.
func (p *Parser) jumpStatement(kind PhraseKind) *Phrase {
	p.start(kind, false)
	p.next()
	if isExpressionStart(p.peek(0).Kind) {
		p.add(p.expression(0))
	}
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func isSimpleVariableStart(kind lexer.TokenKind) bool {
	return kind == lexer.TokenVariableName || kind == lexer.TokenDollar
}

func (p *Parser) globalDeclaration() *Phrase {
	p.start(KindGlobalDeclaration, false)
	p.next()
	p.add(p.delimitedList(KindVariableNameList, asNode(p.simpleVariable), isSimpleVariableStart,
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, false))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) functionStaticDeclaration() *Phrase {
	p.start(KindFunctionStaticDeclaration, false)
	p.next()
	p.add(p.delimitedList(KindStaticVariableDeclarationList, asNode(p.staticVariableDeclaration),
		oneOf(lexer.TokenVariableName), lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, false))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) staticVariableDeclaration() *Phrase {
	p.start(KindStaticVariableDeclaration, false)
	p.expect(lexer.TokenVariableName)
	if p.at(lexer.TokenEquals) {
		p.start(KindFunctionStaticInitialiser, false)
		p.next()
		p.add(p.expression(0))
		p.add(p.end())
	}
	return p.end()
}

func (p *Parser) unsetIntrinsic() *Phrase {
	p.start(KindUnsetIntrinsic, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	p.add(p.delimitedList(KindVariableList, p.expressionNode, isExpressionStart,
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
	p.expect(lexer.TokenCloseParenthesis)
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) declareStatement() *Phrase {
	p.start(KindDeclareStatement, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	p.add(p.delimitedList(KindDeclareDirective, p.declareDirective, oneOf(lexer.TokenName),
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
	p.expect(lexer.TokenCloseParenthesis)

	switch p.peek(0).Kind {
	case lexer.TokenColon:
		p.next()
		p.optionalStatementList(lexer.TokenEndDeclare)
		p.expect(lexer.TokenEndDeclare)
		p.expect(lexer.TokenSemicolon)
	case lexer.TokenSemicolon:
		p.next()
	default:
		p.add(p.statement())
	}
	return p.end()
}

// declareDirective parses "name = literal" into the directive list.
func (p *Parser) declareDirective() Node {
	p.expect(lexer.TokenName)
	p.expect(lexer.TokenEquals)
	p.expectOneOf(lexer.TokenIntegerLiteral, lexer.TokenFloatingLiteral, lexer.TokenStringLiteral)
	return nil
}

func (p *Parser) tryStatement() *Phrase {
	p.start(KindTryStatement, false)
	p.next()
	p.add(p.compoundStatement(KindCompoundStatement))
	if p.at(lexer.TokenCatch) {
		p.add(p.list(KindCatchClauseList, asNode(p.catchClause), oneOf(lexer.TokenCatch), nil, nil, false))
	}
	if p.at(lexer.TokenFinally) {
		p.start(KindFinallyClause, false)
		p.next()
		p.add(p.compoundStatement(KindCompoundStatement))
		p.add(p.end())
	}
	return p.end()
}

func (p *Parser) catchClause() *Phrase {
	p.start(KindCatchClause, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	p.add(p.delimitedList(KindCatchNameList, asNode(p.qualifiedName), isQualifiedNameStart,
		lexer.TokenBar, []lexer.TokenKind{lexer.TokenVariableName}, false))
	p.expect(lexer.TokenVariableName)
	p.expect(lexer.TokenCloseParenthesis)
	p.add(p.compoundStatement(KindCompoundStatement))
	return p.end()
}

func (p *Parser) throwStatement() *Phrase {
	p.start(KindThrowStatement, false)
	p.next()
	p.add(p.expression(0))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) gotoStatement() *Phrase {
	p.start(KindGotoStatement, false)
	p.next()
	p.expect(lexer.TokenName)
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) namedLabelStatement() *Phrase {
	p.start(KindNamedLabelStatement, false)
	p.next()
	p.next()
	return p.end()
}

// haltCompilerStatement ends parsing: everything after
// "__halt_compiler();" is kept as plain leaves.
func (p *Parser) haltCompilerStatement() *Phrase {
	p.start(KindHaltCompilerStatement, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	p.expect(lexer.TokenCloseParenthesis)
	p.expect(lexer.TokenSemicolon)
	for p.raw(0).Kind != lexer.TokenEndOfFile {
		p.add(p.leaf(p.shift()))
	}
	return p.end()
}

package parser

import "github.com/dhamidi/psai/php/lexer"

type associativity int

const (
	assocNone associativity = iota
	assocLeft
	assocRight
)

type operator struct {
	kind       PhraseKind
	precedence int
	assoc      associativity
}

// binaryOperators maps each infix token to the phrase it builds. Higher
// precedence binds tighter.
var binaryOperators = map[lexer.TokenKind]operator{
	lexer.TokenAsteriskAsterisk: {KindExponentiationExpression, 48, assocRight},
	lexer.TokenInstanceOf:       {KindInstanceOfExpression, 46, assocNone},

	lexer.TokenAsterisk:     {KindMultiplicativeExpression, 44, assocLeft},
	lexer.TokenForwardSlash: {KindMultiplicativeExpression, 44, assocLeft},
	lexer.TokenPercent:      {KindMultiplicativeExpression, 44, assocLeft},

	lexer.TokenPlus:  {KindAdditiveExpression, 43, assocLeft},
	lexer.TokenMinus: {KindAdditiveExpression, 43, assocLeft},
	lexer.TokenDot:   {KindAdditiveExpression, 43, assocLeft},

	lexer.TokenLessThanLessThan:       {KindShiftExpression, 42, assocLeft},
	lexer.TokenGreaterThanGreaterThan: {KindShiftExpression, 42, assocLeft},

	lexer.TokenLessThan:          {KindRelationalExpression, 41, assocNone},
	lexer.TokenGreaterThan:       {KindRelationalExpression, 41, assocNone},
	lexer.TokenLessThanEquals:    {KindRelationalExpression, 41, assocNone},
	lexer.TokenGreaterThanEquals: {KindRelationalExpression, 41, assocNone},

	lexer.TokenEqualsEquals:            {KindEqualityExpression, 40, assocNone},
	lexer.TokenEqualsEqualsEquals:      {KindEqualityExpression, 40, assocNone},
	lexer.TokenExclamationEquals:       {KindEqualityExpression, 40, assocNone},
	lexer.TokenExclamationEqualsEquals: {KindEqualityExpression, 40, assocNone},
	lexer.TokenSpaceship:               {KindEqualityExpression, 40, assocNone},

	lexer.TokenAmpersand: {KindBitwiseExpression, 39, assocLeft},
	lexer.TokenCaret:     {KindBitwiseExpression, 38, assocLeft},
	lexer.TokenBar:       {KindBitwiseExpression, 37, assocLeft},

	lexer.TokenAmpersandAmpersand: {KindLogicalExpression, 36, assocLeft},
	lexer.TokenBarBar:             {KindLogicalExpression, 35, assocLeft},
	lexer.TokenQuestionQuestion:   {KindCoalesceExpression, 34, assocRight},
	lexer.TokenQuestion:           {KindTernaryExpression, 33, assocLeft},

	lexer.TokenEquals:                       {KindSimpleAssignmentExpression, 32, assocRight},
	lexer.TokenPlusEquals:                   {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenMinusEquals:                  {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenAsteriskEquals:               {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenAsteriskAsteriskEquals:       {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenForwardSlashEquals:           {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenPercentEquals:                {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenDotEquals:                    {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenAmpersandEquals:              {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenBarEquals:                    {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenCaretEquals:                  {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenLessThanLessThanEquals:       {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenGreaterThanGreaterThanEquals: {KindCompoundAssignmentExpression, 32, assocRight},
	lexer.TokenQuestionQuestionEquals:       {KindCompoundAssignmentExpression, 32, assocRight},

	lexer.TokenAnd: {KindLogicalExpression, 31, assocLeft},
	lexer.TokenXor: {KindLogicalExpression, 30, assocLeft},
	lexer.TokenOr:  {KindLogicalExpression, 29, assocLeft},
}

// Operand precedences of the prefix operators.
const (
	precClone   = 49
	precUnary   = 47
	precNot     = 45
	precYield   = 32
	precInclude = 0
)

func isAssignment(kind PhraseKind) bool {
	switch kind {
	case KindSimpleAssignmentExpression, KindCompoundAssignmentExpression:
		return true
	}
	return false
}

func phraseKind(n Node) PhraseKind {
	if ph, ok := n.(*Phrase); ok {
		return ph.Kind
	}
	return KindError
}

// isVariable reports whether n can be assigned to.
func isVariable(n Node) bool {
	switch phraseKind(n) {
	case KindSimpleVariable, KindSubscriptExpression, KindPropertyAccessExpression,
		KindScopedPropertyAccessExpression, KindListIntrinsic, KindArrayCreationExpression,
		KindErrorVariable:
		return true
	}
	return false
}

func isCast(kind lexer.TokenKind) bool {
	return kind >= lexer.TokenArrayCast && kind <= lexer.TokenUnsetCast
}

func isMagicConstant(kind lexer.TokenKind) bool {
	return kind >= lexer.TokenClassConstant && kind <= lexer.TokenTraitConstant
}

func isExpressionStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenVariableName, lexer.TokenDollar, lexer.TokenArray,
		lexer.TokenOpenBracket, lexer.TokenStringLiteral, lexer.TokenBackslash,
		lexer.TokenName, lexer.TokenNamespace, lexer.TokenOpenParenthesis,
		lexer.TokenStatic, lexer.TokenPlusPlus, lexer.TokenMinusMinus,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenExclamation,
		lexer.TokenTilde, lexer.TokenAtSymbol, lexer.TokenList, lexer.TokenClone,
		lexer.TokenNew, lexer.TokenFloatingLiteral, lexer.TokenIntegerLiteral,
		lexer.TokenStartHeredoc, lexer.TokenDoubleQuote, lexer.TokenBacktick,
		lexer.TokenPrint, lexer.TokenYield, lexer.TokenYieldFrom,
		lexer.TokenFunction, lexer.TokenFn, lexer.TokenInclude,
		lexer.TokenIncludeOnce, lexer.TokenRequire, lexer.TokenRequireOnce,
		lexer.TokenEval, lexer.TokenEmpty, lexer.TokenExit, lexer.TokenIsset:
		return true
	}
	return isCast(kind) || isMagicConstant(kind)
}

func isDereference(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenColonColon, lexer.TokenArrow, lexer.TokenOpenBracket,
		lexer.TokenOpenBrace, lexer.TokenOpenParenthesis:
		return true
	}
	return false
}

// expression parses an expression by precedence climbing. Operators below
// minPrecedence end it, except that an assignment always binds to a
// variable on its left.
func (p *Parser) expression(minPrecedence int) Node {
	lhs := p.expressionAtom()
	for {
		op, ok := binaryOperators[p.peek(0).Kind]
		if !ok {
			break
		}
		precedence := op.precedence
		if precedence < minPrecedence && !(isAssignment(op.kind) && isVariable(lhs)) {
			break
		}
		if op.assoc != assocRight {
			precedence++
		}
		if op.kind == KindTernaryExpression {
			lhs = p.ternaryExpression(lhs, precedence)
			continue
		}

		ph := p.start(op.kind, true)
		ph.add(lhs)
		p.next()
		switch {
		case op.kind == KindInstanceOfExpression:
			p.add(p.typeDesignator(KindInstanceofTypeDesignator))
		case op.kind == KindSimpleAssignmentExpression && p.at(lexer.TokenAmpersand):
			ph.Kind = KindByRefAssignmentExpression
			p.next()
			p.add(p.expression(precedence))
		default:
			p.add(p.expression(precedence))
		}
		lhs = p.end()
	}
	return lhs
}

// ternaryExpression parses "test ? a : b" and the short "test ?: b". The
// false branch binds at the raised precedence so chains nest to the left.
func (p *Parser) ternaryExpression(test Node, precedence int) *Phrase {
	ph := p.start(KindTernaryExpression, true)
	ph.add(test)
	p.next()
	if p.optional(lexer.TokenColon) == nil {
		p.add(p.expression(0))
		p.expect(lexer.TokenColon)
	}
	p.add(p.expression(precedence))
	return p.end()
}

func (p *Parser) expressionAtom() Node {
	tok := p.peek(0)
	switch kind := tok.Kind; {
	case kind == lexer.TokenStatic:
		switch p.peek(1).Kind {
		case lexer.TokenFunction:
			return p.anonymousFunction()
		case lexer.TokenFn:
			return p.arrowFunction()
		}
		return p.variableOrExpression()
	case kind == lexer.TokenStringLiteral:
		switch p.peek(1).Kind {
		case lexer.TokenOpenBracket, lexer.TokenOpenParenthesis, lexer.TokenColonColon:
			return p.variableOrExpression()
		}
		return p.take()
	case kind == lexer.TokenVariableName, kind == lexer.TokenDollar,
		kind == lexer.TokenArray, kind == lexer.TokenOpenBracket,
		kind == lexer.TokenBackslash, kind == lexer.TokenName,
		kind == lexer.TokenNamespace, kind == lexer.TokenOpenParenthesis:
		return p.variableOrExpression()
	case kind == lexer.TokenPlusPlus:
		return p.prefixIncrement(KindPrefixIncrementExpression)
	case kind == lexer.TokenMinusMinus:
		return p.prefixIncrement(KindPrefixDecrementExpression)
	case kind == lexer.TokenPlus, kind == lexer.TokenMinus, kind == lexer.TokenTilde:
		return p.unaryExpression(KindUnaryOpExpression, precUnary)
	case kind == lexer.TokenExclamation:
		return p.unaryExpression(KindUnaryOpExpression, precNot)
	case kind == lexer.TokenAtSymbol:
		return p.unaryExpression(KindErrorControlExpression, precUnary)
	case isCast(kind):
		return p.unaryExpression(KindCastExpression, precUnary)
	case kind == lexer.TokenList:
		return p.listIntrinsic()
	case kind == lexer.TokenClone:
		return p.unaryExpression(KindCloneExpression, precClone)
	case kind == lexer.TokenNew:
		return p.objectCreationExpression()
	case kind == lexer.TokenIntegerLiteral, kind == lexer.TokenFloatingLiteral, isMagicConstant(kind):
		return p.take()
	case kind == lexer.TokenStartHeredoc:
		return p.heredocStringLiteral()
	case kind == lexer.TokenDoubleQuote:
		return p.quotedStringLiteral(KindDoubleQuotedStringLiteral, lexer.TokenDoubleQuote)
	case kind == lexer.TokenBacktick:
		return p.quotedStringLiteral(KindShellCommandExpression, lexer.TokenBacktick)
	case kind == lexer.TokenPrint:
		return p.unaryExpression(KindPrintIntrinsic, precYield)
	case kind == lexer.TokenYield:
		return p.yieldExpression()
	case kind == lexer.TokenYieldFrom:
		return p.unaryExpression(KindYieldFromExpression, precYield)
	case kind == lexer.TokenFunction:
		return p.anonymousFunction()
	case kind == lexer.TokenFn:
		return p.arrowFunction()
	case kind == lexer.TokenInclude:
		return p.unaryExpression(KindIncludeExpression, precInclude)
	case kind == lexer.TokenIncludeOnce:
		return p.unaryExpression(KindIncludeOnceExpression, precInclude)
	case kind == lexer.TokenRequire:
		return p.unaryExpression(KindRequireExpression, precInclude)
	case kind == lexer.TokenRequireOnce:
		return p.unaryExpression(KindRequireOnceExpression, precInclude)
	case kind == lexer.TokenEval:
		return p.parenthesisedIntrinsic(KindEvalIntrinsic)
	case kind == lexer.TokenEmpty:
		return p.parenthesisedIntrinsic(KindEmptyIntrinsic)
	case kind == lexer.TokenExit:
		return p.exitIntrinsic()
	case kind == lexer.TokenIsset:
		return p.issetIntrinsic()
	}

	p.start(KindErrorExpression, false)
	return p.fail(lexer.TokenUndefined)
}

// unaryExpression parses an operator token followed by one operand bound
// at the given precedence.
func (p *Parser) unaryExpression(kind PhraseKind, precedence int) *Phrase {
	p.start(kind, false)
	p.next()
	p.add(p.expression(precedence))
	return p.end()
}

func (p *Parser) prefixIncrement(kind PhraseKind) *Phrase {
	p.start(kind, false)
	p.next()
	p.add(p.variable(p.variableAtom()))
	return p.end()
}

func (p *Parser) postfixExpression(kind PhraseKind, operand Node) *Phrase {
	ph := p.start(kind, true)
	ph.add(operand)
	p.next()
	return p.end()
}

func (p *Parser) yieldExpression() *Phrase {
	p.start(KindYieldExpression, false)
	p.next()
	if !isExpressionStart(p.peek(0).Kind) {
		return p.end()
	}
	p.add(p.expression(precYield))
	if p.optional(lexer.TokenFatArrow) != nil {
		p.add(p.expression(precYield))
	}
	return p.end()
}

func (p *Parser) parenthesisedIntrinsic(kind PhraseKind) *Phrase {
	p.start(kind, false)
	p.next()
	p.parenthesised()
	return p.end()
}

func (p *Parser) exitIntrinsic() *Phrase {
	p.start(KindExitIntrinsic, false)
	p.next()
	if p.optional(lexer.TokenOpenParenthesis) != nil {
		if isExpressionStart(p.peek(0).Kind) {
			p.add(p.expression(0))
		}
		p.expect(lexer.TokenCloseParenthesis)
	}
	return p.end()
}

func (p *Parser) issetIntrinsic() *Phrase {
	p.start(KindIssetIntrinsic, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	p.add(p.delimitedList(KindVariableList, p.expressionNode, isExpressionStart,
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
	p.expect(lexer.TokenCloseParenthesis)
	return p.end()
}

// variableOrExpression parses an atom and any dereference chain after it.
// A bare name becomes a constant access.
func (p *Parser) variableOrExpression() Node {
	part := p.variableAtom()
	variable := phraseKind(part) == KindSimpleVariable
	switch kind := phraseKind(part); {
	case isDereference(p.peek(0).Kind):
		part = p.variable(part)
		variable = true
	case kind == KindQualifiedName, kind == KindFullyQualifiedName, kind == KindRelativeQualifiedName:
		ph := p.start(KindConstantAccessExpression, true)
		ph.add(part)
		part = p.end()
	}
	if !variable {
		return part
	}
	switch p.peek(0).Kind {
	case lexer.TokenPlusPlus:
		return p.postfixExpression(KindPostfixIncrementExpression, part)
	case lexer.TokenMinusMinus:
		return p.postfixExpression(KindPostfixDecrementExpression, part)
	}
	return part
}

func (p *Parser) variableAtom() Node {
	switch p.peek(0).Kind {
	case lexer.TokenVariableName, lexer.TokenDollar:
		return p.simpleVariable()
	case lexer.TokenOpenParenthesis:
		return p.encapsulatedExpression(lexer.TokenOpenParenthesis, lexer.TokenCloseParenthesis)
	case lexer.TokenArray, lexer.TokenOpenBracket:
		return p.arrayCreationExpression()
	case lexer.TokenStringLiteral:
		return p.take()
	case lexer.TokenStatic:
		return p.relativeScope()
	case lexer.TokenName, lexer.TokenNamespace, lexer.TokenBackslash:
		return p.qualifiedName()
	}
	p.start(KindErrorVariableAtom, false)
	return p.fail(lexer.TokenUndefined)
}

func (p *Parser) relativeScope() *Phrase {
	p.start(KindRelativeScope, false)
	p.next()
	return p.end()
}

// simpleVariable parses "$name", "$$name" and "${expr}".
func (p *Parser) simpleVariable() *Phrase {
	p.start(KindSimpleVariable, false)
	tok := p.expectOneOf(lexer.TokenVariableName, lexer.TokenDollar)
	if tok != nil && tok.Kind == lexer.TokenDollar {
		switch p.peek(0).Kind {
		case lexer.TokenOpenBrace:
			p.next()
			p.add(p.expression(0))
			p.expect(lexer.TokenCloseBrace)
		case lexer.TokenDollar, lexer.TokenVariableName:
			p.add(p.simpleVariable())
		default:
			p.error(lexer.TokenUndefined)
		}
	}
	return p.end()
}

func (p *Parser) encapsulatedExpression(open, close lexer.TokenKind) *Phrase {
	p.start(KindEncapsulatedExpression, false)
	p.expect(open)
	p.add(p.expression(0))
	p.expect(close)
	return p.end()
}

// variable applies dereference operators to part for as long as they
// follow. An atom that is not a simple variable and takes no dereference
// is wrapped in an error.
func (p *Parser) variable(part Node) Node {
	for count := 1; ; count++ {
		switch p.peek(0).Kind {
		case lexer.TokenColonColon:
			part = p.scopedAccessExpression(part)
			continue
		case lexer.TokenArrow:
			part = p.propertyAccessExpression(part, true)
			continue
		case lexer.TokenOpenBracket:
			part = p.subscriptExpression(part, lexer.TokenCloseBracket)
			continue
		case lexer.TokenOpenBrace:
			part = p.subscriptExpression(part, lexer.TokenCloseBrace)
			continue
		case lexer.TokenOpenParenthesis:
			part = p.functionCallExpression(part)
			continue
		}
		if count == 1 && phraseKind(part) != KindSimpleVariable {
			ph := p.start(KindErrorVariable, true)
			ph.add(part)
			return p.fail(lexer.TokenUndefined)
		}
		return part
	}
}

func (p *Parser) scopedAccessExpression(lhs Node) *Phrase {
	ph := p.start(KindErrorScopedAccessExpression, true)
	ph.add(lhs)
	p.next()

	p.start(KindScopedMemberName, false)
	switch kind := p.peek(0).Kind; {
	case kind == lexer.TokenOpenBrace:
		ph.Kind = KindScopedCallExpression
		p.add(p.encapsulatedExpression(lexer.TokenOpenBrace, lexer.TokenCloseBrace))
	case kind == lexer.TokenVariableName, kind == lexer.TokenDollar:
		ph.Kind = KindScopedPropertyAccessExpression
		p.add(p.simpleVariable())
	case isSemiReserved(kind):
		ph.Kind = KindClassConstantAccessExpression
		p.add(p.identifier())
	default:
		p.add(p.end())
		return p.fail(lexer.TokenName)
	}
	p.add(p.end())

	if p.at(lexer.TokenOpenParenthesis) {
		ph.Kind = KindScopedCallExpression
		p.argumentList()
	} else if ph.Kind == KindScopedCallExpression {
		p.error(lexer.TokenOpenParenthesis)
	}
	return p.end()
}

func (p *Parser) propertyAccessExpression(lhs Node, allowCall bool) *Phrase {
	ph := p.start(KindPropertyAccessExpression, true)
	ph.add(lhs)
	p.next()

	p.start(KindMemberName, false)
	switch p.peek(0).Kind {
	case lexer.TokenName:
		p.next()
	case lexer.TokenOpenBrace:
		p.add(p.encapsulatedExpression(lexer.TokenOpenBrace, lexer.TokenCloseBrace))
	case lexer.TokenVariableName, lexer.TokenDollar:
		p.add(p.simpleVariable())
	default:
		p.error(lexer.TokenName)
	}
	p.add(p.end())

	if allowCall && p.at(lexer.TokenOpenParenthesis) {
		ph.Kind = KindMethodCallExpression
		p.argumentList()
	}
	return p.end()
}

func (p *Parser) subscriptExpression(lhs Node, close lexer.TokenKind) *Phrase {
	ph := p.start(KindSubscriptExpression, true)
	ph.add(lhs)
	p.next()
	if isExpressionStart(p.peek(0).Kind) {
		p.add(p.expression(0))
	}
	p.expect(close)
	return p.end()
}

func (p *Parser) functionCallExpression(lhs Node) *Phrase {
	ph := p.start(KindFunctionCallExpression, true)
	ph.add(lhs)
	p.argumentList()
	return p.end()
}

func isArgumentStart(kind lexer.TokenKind) bool {
	return kind == lexer.TokenEllipsis || isExpressionStart(kind)
}

// argumentList parses "( arguments )" into the current phrase.
func (p *Parser) argumentList() {
	p.expect(lexer.TokenOpenParenthesis)
	if isArgumentStart(p.peek(0).Kind) {
		p.add(p.delimitedList(KindArgumentExpressionList, p.argumentExpression, isArgumentStart,
			lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
	}
	p.expect(lexer.TokenCloseParenthesis)
}

func (p *Parser) argumentExpression() Node {
	if !p.at(lexer.TokenEllipsis) {
		return p.expression(0)
	}
	p.start(KindVariadicUnpacking, false)
	p.next()
	p.add(p.expression(0))
	return p.end()
}

func isArrayElementStart(kind lexer.TokenKind) bool {
	return kind == lexer.TokenAmpersand || kind == lexer.TokenEllipsis || isExpressionStart(kind)
}

func (p *Parser) arrayCreationExpression() *Phrase {
	p.start(KindArrayCreationExpression, false)
	closing := lexer.TokenCloseBracket
	if p.optional(lexer.TokenArray) != nil {
		p.expect(lexer.TokenOpenParenthesis)
		closing = lexer.TokenCloseParenthesis
	} else {
		p.next()
	}
	if !p.at(closing, lexer.TokenEndOfFile) {
		p.add(p.arrayInitialiserList(closing))
	}
	p.expect(closing)
	return p.end()
}

// arrayInitialiserList allows empty elements, as in "[, $b] = $pair".
func (p *Parser) arrayInitialiserList(closing lexer.TokenKind) *Phrase {
	ph := p.start(KindArrayInitialiserList, false)
	p.pushRecover([]lexer.TokenKind{closing, lexer.TokenComma})
	defer p.popRecover()

	for {
		before := p.consumed
		if isArrayElementStart(p.peek(0).Kind) {
			ph.add(p.arrayElement())
		}
		tok := p.peek(0)
		switch {
		case tok.Kind == lexer.TokenComma:
			p.next()
			continue
		case tok.Kind == closing, tok.Kind == lexer.TokenEndOfFile:
		default:
			p.error(lexer.TokenUndefined)
			if isArrayElementStart(tok.Kind) && p.consumed > before {
				continue
			}
			p.sync()
			if p.at(lexer.TokenComma) {
				continue
			}
		}
		break
	}
	return p.end()
}

func (p *Parser) arrayElement() *Phrase {
	p.start(KindArrayElement, false)
	if p.at(lexer.TokenAmpersand, lexer.TokenEllipsis) {
		p.add(p.arrayValue())
		return p.end()
	}
	value := p.arrayValue()
	if p.at(lexer.TokenFatArrow) {
		value.Kind = KindArrayKey
		p.add(value)
		p.next()
		value = p.arrayValue()
	}
	p.add(value)
	return p.end()
}

func (p *Parser) arrayValue() *Phrase {
	p.start(KindArrayValue, false)
	p.optionalOneOf(lexer.TokenAmpersand, lexer.TokenEllipsis)
	p.add(p.expression(0))
	return p.end()
}

func (p *Parser) listIntrinsic() *Phrase {
	p.start(KindListIntrinsic, false)
	p.next()
	p.expect(lexer.TokenOpenParenthesis)
	if !p.at(lexer.TokenCloseParenthesis, lexer.TokenEndOfFile) {
		p.add(p.arrayInitialiserList(lexer.TokenCloseParenthesis))
	}
	p.expect(lexer.TokenCloseParenthesis)
	return p.end()
}

func (p *Parser) objectCreationExpression() *Phrase {
	p.start(KindObjectCreationExpression, false)
	p.next()
	if p.at(lexer.TokenClass) {
		p.add(p.anonymousClassDeclaration())
		return p.end()
	}
	p.add(p.typeDesignator(KindClassTypeDesignator))
	if p.at(lexer.TokenOpenParenthesis) {
		p.argumentList()
	}
	return p.end()
}

// typeDesignator parses the class operand of new and instanceof: a name,
// static, or a variable with property, static property and subscript
// access but no calls.
func (p *Parser) typeDesignator(kind PhraseKind) *Phrase {
	p.start(kind, false)
	var part Node
	switch p.peek(0).Kind {
	case lexer.TokenStatic:
		part = p.relativeScope()
	case lexer.TokenVariableName, lexer.TokenDollar:
		part = p.simpleVariable()
	case lexer.TokenName, lexer.TokenNamespace, lexer.TokenBackslash:
		part = p.qualifiedName()
	default:
		p.start(KindErrorClassTypeDesignatorAtom, false)
		part = p.fail(lexer.TokenUndefined)
	}

	named := phraseKind(part) != KindSimpleVariable
	for loop := true; loop; {
		switch p.peek(0).Kind {
		case lexer.TokenOpenBracket:
			if named {
				loop = false
				break
			}
			part = p.subscriptExpression(part, lexer.TokenCloseBracket)
		case lexer.TokenOpenBrace:
			if named {
				loop = false
				break
			}
			part = p.subscriptExpression(part, lexer.TokenCloseBrace)
		case lexer.TokenArrow:
			part = p.propertyAccessExpression(part, false)
			named = false
		case lexer.TokenColonColon:
			ph := p.start(KindScopedPropertyAccessExpression, true)
			ph.add(part)
			p.next()
			p.start(KindScopedMemberName, false)
			if isSimpleVariableStart(p.peek(0).Kind) {
				p.add(p.simpleVariable())
			} else {
				p.error(lexer.TokenVariableName)
			}
			p.add(p.end())
			part = p.end()
			named = false
		default:
			loop = false
		}
	}
	p.add(part)
	return p.end()
}

func (p *Parser) anonymousClassDeclaration() *Phrase {
	p.start(KindAnonymousClassDeclaration, false)

	p.start(KindAnonymousClassDeclarationHeader, false)
	p.next()
	if p.at(lexer.TokenOpenParenthesis) {
		p.argumentList()
	}
	p.classClauses()
	p.add(p.end())

	p.add(p.classBody(KindClassDeclarationBody, KindClassMemberDeclarationList))
	return p.end()
}

func (p *Parser) anonymousFunction() *Phrase {
	p.start(KindAnonymousFunctionCreationExpression, false)

	p.start(KindAnonymousFunctionHeader, false)
	p.optional(lexer.TokenStatic)
	p.next()
	p.optional(lexer.TokenAmpersand)
	p.parameterList()
	if p.at(lexer.TokenUse) {
		p.start(KindAnonymousFunctionUseClause, false)
		p.next()
		p.expect(lexer.TokenOpenParenthesis)
		p.add(p.delimitedList(KindClosureUseList, asNode(p.closureUseVariable),
			oneOf(lexer.TokenAmpersand, lexer.TokenVariableName),
			lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
		p.expect(lexer.TokenCloseParenthesis)
		p.add(p.end())
	}
	p.optionalReturnType()
	p.add(p.end())

	p.add(p.compoundStatement(KindFunctionDeclarationBody))
	return p.end()
}

func (p *Parser) closureUseVariable() *Phrase {
	p.start(KindAnonymousFunctionUseVariable, false)
	p.optional(lexer.TokenAmpersand)
	p.expect(lexer.TokenVariableName)
	return p.end()
}

func (p *Parser) arrowFunction() *Phrase {
	p.start(KindArrowFunctionCreationExpression, false)

	p.start(KindArrowFunctionHeader, false)
	p.optional(lexer.TokenStatic)
	p.next()
	p.optional(lexer.TokenAmpersand)
	p.parameterList()
	p.optionalReturnType()
	p.add(p.end())

	p.expect(lexer.TokenFatArrow)
	p.add(p.expression(0))
	return p.end()
}

package parser

import "github.com/dhamidi/psai/php/lexer"

var classMemberRecoverSet = []lexer.TokenKind{
	lexer.TokenPublic, lexer.TokenProtected, lexer.TokenPrivate,
	lexer.TokenStatic, lexer.TokenAbstract, lexer.TokenFinal,
	lexer.TokenFunction, lexer.TokenVar, lexer.TokenConst, lexer.TokenUse,
}

func isClassMemberStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenPublic, lexer.TokenProtected, lexer.TokenPrivate,
		lexer.TokenStatic, lexer.TokenAbstract, lexer.TokenFinal,
		lexer.TokenFunction, lexer.TokenVar, lexer.TokenConst, lexer.TokenUse:
		return true
	}
	return false
}

func isMemberModifier(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenPublic, lexer.TokenProtected, lexer.TokenPrivate,
		lexer.TokenStatic, lexer.TokenAbstract, lexer.TokenFinal:
		return true
	}
	return false
}

// isSemiReserved reports whether kind can name a member: any plain name
// and every keyword.
func isSemiReserved(kind lexer.TokenKind) bool {
	return kind == lexer.TokenName || kind.IsKeyword()
}

func isQualifiedNameStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenName, lexer.TokenBackslash, lexer.TokenNamespace:
		return true
	}
	return false
}

func isTypeDeclarationStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenQuestion, lexer.TokenCallable, lexer.TokenArray:
		return true
	}
	return isQualifiedNameStart(kind)
}

func isParameterStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokenAmpersand, lexer.TokenEllipsis, lexer.TokenVariableName:
		return true
	}
	return isTypeDeclarationStart(kind)
}

func (p *Parser) namespaceDefinition() *Phrase {
	p.start(KindNamespaceDefinition, false)
	p.next()
	if p.at(lexer.TokenName) {
		p.add(p.namespaceName())
		if !p.at(lexer.TokenOpenBrace) {
			p.expect(lexer.TokenSemicolon)
			return p.end()
		}
	}
	p.add(p.compoundStatement(KindCompoundStatement))
	return p.end()
}

// namespaceName parses "Name(\Name)*". A trailing backslash is left for
// group use declarations.
func (p *Parser) namespaceName() *Phrase {
	p.start(KindNamespaceName, false)
	p.expect(lexer.TokenName)
	for p.at(lexer.TokenBackslash) && p.peek(1).Kind == lexer.TokenName {
		p.next()
		p.next()
	}
	return p.end()
}

func (p *Parser) qualifiedName() *Phrase {
	ph := p.start(KindQualifiedName, false)
	switch p.peek(0).Kind {
	case lexer.TokenBackslash:
		ph.Kind = KindFullyQualifiedName
		p.next()
	case lexer.TokenNamespace:
		ph.Kind = KindRelativeQualifiedName
		p.next()
		p.expect(lexer.TokenBackslash)
	}
	p.add(p.namespaceName())
	return p.end()
}

func (p *Parser) qualifiedNameList(breakOn ...lexer.TokenKind) *Phrase {
	return p.delimitedList(KindQualifiedNameList, asNode(p.qualifiedName), isQualifiedNameStart,
		lexer.TokenComma, breakOn, false)
}

func (p *Parser) identifier() *Phrase {
	p.start(KindIdentifier, false)
	if isSemiReserved(p.peek(0).Kind) {
		p.next()
	} else {
		p.error(lexer.TokenName)
	}
	return p.end()
}

func (p *Parser) namespaceUseDeclaration() *Phrase {
	p.start(KindNamespaceUseDeclaration, false)
	p.next()
	p.optionalOneOf(lexer.TokenFunction, lexer.TokenConst)
	p.optional(lexer.TokenBackslash)

	prefix := p.namespaceName()
	if p.at(lexer.TokenBackslash, lexer.TokenOpenBrace) {
		p.add(prefix)
		p.expect(lexer.TokenBackslash)
		p.expect(lexer.TokenOpenBrace)
		p.add(p.delimitedList(KindNamespaceUseGroupClauseList, asNode(p.namespaceUseGroupClause),
			oneOf(lexer.TokenConst, lexer.TokenFunction, lexer.TokenName),
			lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseBrace}, false))
		p.expect(lexer.TokenCloseBrace)
		p.expect(lexer.TokenSemicolon)
		return p.end()
	}

	p.add(p.delimitedList(KindNamespaceUseClauseList, func() Node {
		ph := p.start(KindNamespaceUseClause, prefix != nil)
		if prefix != nil {
			ph.add(prefix)
			prefix = nil
		} else {
			p.optional(lexer.TokenBackslash)
			p.add(p.namespaceName())
		}
		if p.at(lexer.TokenAs) {
			p.add(p.namespaceAliasingClause())
		}
		return p.end()
	}, oneOf(lexer.TokenName, lexer.TokenBackslash), lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, true))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) namespaceUseGroupClause() *Phrase {
	p.start(KindNamespaceUseGroupClause, false)
	p.optionalOneOf(lexer.TokenFunction, lexer.TokenConst)
	p.add(p.namespaceName())
	if p.at(lexer.TokenAs) {
		p.add(p.namespaceAliasingClause())
	}
	return p.end()
}

func (p *Parser) namespaceAliasingClause() *Phrase {
	p.start(KindNamespaceAliasingClause, false)
	p.next()
	p.expect(lexer.TokenName)
	return p.end()
}

func (p *Parser) constDeclaration() *Phrase {
	p.start(KindConstDeclaration, false)
	p.next()
	p.add(p.delimitedList(KindConstElementList, asNode(p.constElement), oneOf(lexer.TokenName),
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, false))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) constElement() *Phrase {
	p.start(KindConstElement, false)
	p.expect(lexer.TokenName)
	p.expect(lexer.TokenEquals)
	p.add(p.expression(0))
	return p.end()
}

func (p *Parser) functionDeclaration() *Phrase {
	p.start(KindFunctionDeclaration, false)

	p.start(KindFunctionDeclarationHeader, false)
	p.next()
	p.optional(lexer.TokenAmpersand)
	p.expect(lexer.TokenName)
	p.parameterList()
	p.optionalReturnType()
	p.add(p.end())

	p.add(p.compoundStatement(KindFunctionDeclarationBody))
	return p.end()
}

// parameterList parses "( parameters )" into the current phrase.
func (p *Parser) parameterList() {
	p.expect(lexer.TokenOpenParenthesis)
	if isParameterStart(p.peek(0).Kind) {
		p.add(p.delimitedList(KindParameterDeclarationList, asNode(p.parameterDeclaration), isParameterStart,
			lexer.TokenComma, []lexer.TokenKind{lexer.TokenCloseParenthesis}, false))
	}
	p.expect(lexer.TokenCloseParenthesis)
}

func (p *Parser) parameterDeclaration() *Phrase {
	p.start(KindParameterDeclaration, false)
	if isTypeDeclarationStart(p.peek(0).Kind) {
		p.add(p.typeDeclaration())
	}
	p.optional(lexer.TokenAmpersand)
	p.optional(lexer.TokenEllipsis)
	p.expect(lexer.TokenVariableName)
	if p.optional(lexer.TokenEquals) != nil {
		p.add(p.expression(0))
	}
	return p.end()
}

func (p *Parser) typeDeclaration() *Phrase {
	p.start(KindTypeDeclaration, false)
	p.optional(lexer.TokenQuestion)
	switch kind := p.peek(0).Kind; {
	case kind == lexer.TokenCallable, kind == lexer.TokenArray:
		p.next()
	case isQualifiedNameStart(kind):
		p.add(p.qualifiedName())
	default:
		p.error(lexer.TokenName)
	}
	return p.end()
}

func (p *Parser) optionalReturnType() {
	if !p.at(lexer.TokenColon) {
		return
	}
	p.start(KindReturnType, false)
	p.next()
	p.add(p.typeDeclaration())
	p.add(p.end())
}

func (p *Parser) classDeclaration() *Phrase {
	p.start(KindClassDeclaration, false)

	p.start(KindClassDeclarationHeader, false)
	if p.at(lexer.TokenAbstract, lexer.TokenFinal) {
		p.start(KindClassModifiers, false)
		for p.at(lexer.TokenAbstract, lexer.TokenFinal) {
			p.next()
		}
		p.add(p.end())
	}
	p.expect(lexer.TokenClass)
	p.expect(lexer.TokenName)
	p.classClauses()
	p.add(p.end())

	p.add(p.classBody(KindClassDeclarationBody, KindClassMemberDeclarationList))
	return p.end()
}

// classClauses parses the optional extends and implements clauses.
func (p *Parser) classClauses() {
	if p.at(lexer.TokenExtends) {
		p.start(KindClassBaseClause, false)
		p.next()
		p.add(p.qualifiedName())
		p.add(p.end())
	}
	if p.at(lexer.TokenImplements) {
		p.start(KindClassInterfaceClause, false)
		p.next()
		p.add(p.qualifiedNameList(lexer.TokenOpenBrace))
		p.add(p.end())
	}
}

func (p *Parser) classBody(kind, listKind PhraseKind) *Phrase {
	p.start(kind, false)
	p.expect(lexer.TokenOpenBrace)
	if !p.at(lexer.TokenCloseBrace, lexer.TokenEndOfFile) {
		p.add(p.list(listKind, asNode(p.classMemberDeclaration), isClassMemberStart,
			[]lexer.TokenKind{lexer.TokenCloseBrace}, classMemberRecoverSet, true))
	}
	p.expect(lexer.TokenCloseBrace)
	return p.end()
}

func (p *Parser) interfaceDeclaration() *Phrase {
	p.start(KindInterfaceDeclaration, false)

	p.start(KindInterfaceDeclarationHeader, false)
	p.next()
	p.expect(lexer.TokenName)
	if p.at(lexer.TokenExtends) {
		p.start(KindInterfaceBaseClause, false)
		p.next()
		p.add(p.qualifiedNameList(lexer.TokenOpenBrace))
		p.add(p.end())
	}
	p.add(p.end())

	p.add(p.classBody(KindInterfaceDeclarationBody, KindInterfaceMemberDeclarationList))
	return p.end()
}

func (p *Parser) traitDeclaration() *Phrase {
	p.start(KindTraitDeclaration, false)

	p.start(KindTraitDeclarationHeader, false)
	p.next()
	p.expect(lexer.TokenName)
	p.add(p.end())

	p.add(p.classBody(KindTraitDeclarationBody, KindTraitMemberDeclarationList))
	return p.end()
}

// classMemberDeclaration starts every member as an error phrase and
// settles its kind once the member's shape is known.
func (p *Parser) classMemberDeclaration() *Phrase {
	ph := p.start(KindErrorClassMemberDeclaration, false)
	switch p.peek(0).Kind {
	case lexer.TokenFunction:
		return p.methodDeclaration(ph, nil)
	case lexer.TokenVar:
		p.next()
		return p.propertyDeclaration(ph)
	case lexer.TokenConst:
		return p.classConstDeclaration(ph)
	case lexer.TokenUse:
		return p.traitUseClause(ph)
	}

	modifiers := p.memberModifierList()
	switch kind := p.peek(0).Kind; {
	case kind == lexer.TokenFunction:
		return p.methodDeclaration(ph, modifiers)
	case kind == lexer.TokenConst:
		ph.add(modifiers)
		return p.classConstDeclaration(ph)
	case kind == lexer.TokenVariableName, isTypeDeclarationStart(kind):
		ph.add(modifiers)
		return p.propertyDeclaration(ph)
	}
	ph.add(modifiers)
	return p.fail(lexer.TokenUndefined)
}

func (p *Parser) memberModifierList() *Phrase {
	p.start(KindMemberModifierList, false)
	for isMemberModifier(p.peek(0).Kind) {
		p.next()
	}
	return p.end()
}

func (p *Parser) propertyDeclaration(ph *Phrase) *Phrase {
	ph.Kind = KindPropertyDeclaration
	if isTypeDeclarationStart(p.peek(0).Kind) {
		p.add(p.typeDeclaration())
	}
	p.add(p.delimitedList(KindPropertyElementList, asNode(p.propertyElement), oneOf(lexer.TokenVariableName),
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, false))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) propertyElement() *Phrase {
	p.start(KindPropertyElement, false)
	p.expect(lexer.TokenVariableName)
	if p.at(lexer.TokenEquals) {
		p.start(KindPropertyInitialiser, false)
		p.next()
		p.add(p.expression(0))
		p.add(p.end())
	}
	return p.end()
}

func (p *Parser) classConstDeclaration(ph *Phrase) *Phrase {
	ph.Kind = KindClassConstDeclaration
	p.next()
	p.add(p.delimitedList(KindClassConstElementList, asNode(p.classConstElement), isSemiReserved,
		lexer.TokenComma, []lexer.TokenKind{lexer.TokenSemicolon}, false))
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

func (p *Parser) classConstElement() *Phrase {
	p.start(KindClassConstElement, false)
	p.add(p.identifier())
	p.expect(lexer.TokenEquals)
	p.add(p.expression(0))
	return p.end()
}

func (p *Parser) methodDeclaration(ph *Phrase, modifiers *Phrase) *Phrase {
	ph.Kind = KindMethodDeclaration

	header := p.start(KindMethodDeclarationHeader, true)
	header.add(modifiers)
	p.next()
	p.optional(lexer.TokenAmpersand)
	p.add(p.identifier())
	p.parameterList()
	p.optionalReturnType()
	p.add(p.end())

	if p.at(lexer.TokenSemicolon) {
		p.start(KindMethodDeclarationBody, false)
		p.next()
		p.add(p.end())
	} else {
		p.add(p.compoundStatement(KindMethodDeclarationBody))
	}
	return p.end()
}

func (p *Parser) traitUseClause(ph *Phrase) *Phrase {
	ph.Kind = KindTraitUseClause
	p.next()
	p.add(p.qualifiedNameList(lexer.TokenSemicolon, lexer.TokenOpenBrace))

	p.start(KindTraitUseSpecification, false)
	if open := p.expectOneOf(lexer.TokenSemicolon, lexer.TokenOpenBrace); open != nil && open.Kind == lexer.TokenOpenBrace {
		if !p.at(lexer.TokenCloseBrace, lexer.TokenEndOfFile) {
			p.add(p.list(KindTraitAdaptationList, asNode(p.traitAdaptation), isTraitAdaptationStart,
				[]lexer.TokenKind{lexer.TokenCloseBrace}, []lexer.TokenKind{lexer.TokenSemicolon}, false))
		}
		p.expect(lexer.TokenCloseBrace)
	}
	p.add(p.end())
	return p.end()
}

func isTraitAdaptationStart(kind lexer.TokenKind) bool {
	return isSemiReserved(kind) || kind == lexer.TokenBackslash
}

// traitAdaptation parses "A::m insteadof B;" or "m as [modifier] [alias];".
func (p *Parser) traitAdaptation() *Phrase {
	ph := p.start(KindErrorTraitAdaptation, false)
	first, second := p.peek(0).Kind, p.peek(1).Kind
	switch {
	case first == lexer.TokenBackslash,
		first == lexer.TokenNamespace && second == lexer.TokenBackslash,
		first == lexer.TokenName && (second == lexer.TokenColonColon || second == lexer.TokenBackslash):
		p.start(KindMethodReference, false)
		p.add(p.qualifiedName())
		p.expect(lexer.TokenColonColon)
		p.add(p.identifier())
		p.add(p.end())
		if p.at(lexer.TokenInsteadOf) {
			ph.Kind = KindTraitPrecedence
			p.next()
			p.add(p.qualifiedNameList(lexer.TokenSemicolon))
			p.expect(lexer.TokenSemicolon)
			return p.end()
		}
	case isSemiReserved(first):
		p.start(KindMethodReference, false)
		p.add(p.identifier())
		p.add(p.end())
	default:
		return p.fail(lexer.TokenUndefined)
	}

	ph.Kind = KindTraitAlias
	p.expect(lexer.TokenAs)
	if isMemberModifier(p.peek(0).Kind) {
		p.next()
	}
	if isSemiReserved(p.peek(0).Kind) {
		p.add(p.identifier())
	}
	p.expect(lexer.TokenSemicolon)
	return p.end()
}

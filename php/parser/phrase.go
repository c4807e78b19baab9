package parser

import "fmt"

type PhraseKind int

const (
	KindError PhraseKind = iota

	// Statements
	KindStatementList
	KindExpressionStatement
	KindCompoundStatement
	KindNullStatement
	KindInlineText
	KindEchoIntrinsic
	KindExpressionList
	KindIfStatement
	KindElseIfClause
	KindElseClause
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForInitialiser
	KindForControl
	KindForEndOfLoop
	KindForeachStatement
	KindForeachCollection
	KindForeachKey
	KindForeachValue
	KindSwitchStatement
	KindCaseStatementList
	KindCaseStatement
	KindDefaultStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindGlobalDeclaration
	KindVariableNameList
	KindFunctionStaticDeclaration
	KindStaticVariableDeclarationList
	KindStaticVariableDeclaration
	KindFunctionStaticInitialiser
	KindUnsetIntrinsic
	KindVariableList
	KindDeclareStatement
	KindDeclareDirective
	KindTryStatement
	KindCatchClauseList
	KindCatchClause
	KindCatchNameList
	KindFinallyClause
	KindThrowStatement
	KindGotoStatement
	KindNamedLabelStatement
	KindHaltCompilerStatement

	// Namespaces and names
	KindNamespaceDefinition
	KindNamespaceName
	KindNamespaceUseDeclaration
	KindNamespaceUseClauseList
	KindNamespaceUseClause
	KindNamespaceUseGroupClauseList
	KindNamespaceUseGroupClause
	KindNamespaceAliasingClause
	KindConstDeclaration
	KindConstElementList
	KindConstElement
	KindQualifiedName
	KindFullyQualifiedName
	KindRelativeQualifiedName
	KindQualifiedNameList
	KindIdentifier

	// Declarations
	KindFunctionDeclaration
	KindFunctionDeclarationHeader
	KindFunctionDeclarationBody
	KindParameterDeclarationList
	KindParameterDeclaration
	KindTypeDeclaration
	KindReturnType
	KindClassDeclaration
	KindClassDeclarationHeader
	KindClassModifiers
	KindClassBaseClause
	KindClassInterfaceClause
	KindClassDeclarationBody
	KindClassMemberDeclarationList
	KindInterfaceDeclaration
	KindInterfaceDeclarationHeader
	KindInterfaceBaseClause
	KindInterfaceDeclarationBody
	KindInterfaceMemberDeclarationList
	KindTraitDeclaration
	KindTraitDeclarationHeader
	KindTraitDeclarationBody
	KindTraitMemberDeclarationList
	KindMemberModifierList
	KindClassConstDeclaration
	KindClassConstElementList
	KindClassConstElement
	KindPropertyDeclaration
	KindPropertyElementList
	KindPropertyElement
	KindPropertyInitialiser
	KindMethodDeclaration
	KindMethodDeclarationHeader
	KindMethodDeclarationBody
	KindTraitUseClause
	KindTraitUseSpecification
	KindTraitAdaptationList
	KindTraitPrecedence
	KindTraitAlias
	KindMethodReference

	// Error variants
	KindErrorClassMemberDeclaration
	KindErrorTraitAdaptation
	KindErrorVariable
	KindErrorVariableAtom
	KindErrorExpression
	KindErrorScopedAccessExpression
	KindErrorClassTypeDesignatorAtom

	// Variables and access
	KindSimpleVariable
	KindConstantAccessExpression
	KindClassConstantAccessExpression
	KindScopedPropertyAccessExpression
	KindScopedCallExpression
	KindScopedMemberName
	KindRelativeScope
	KindPropertyAccessExpression
	KindMethodCallExpression
	KindMemberName
	KindSubscriptExpression
	KindFunctionCallExpression
	KindArgumentExpressionList
	KindVariadicUnpacking
	KindEncapsulatedExpression

	// Expressions
	KindArrayCreationExpression
	KindArrayInitialiserList
	KindArrayElement
	KindArrayKey
	KindArrayValue
	KindListIntrinsic
	KindObjectCreationExpression
	KindClassTypeDesignator
	KindInstanceofTypeDesignator
	KindAnonymousClassDeclaration
	KindAnonymousClassDeclarationHeader
	KindAnonymousFunctionCreationExpression
	KindAnonymousFunctionHeader
	KindAnonymousFunctionUseClause
	KindClosureUseList
	KindAnonymousFunctionUseVariable
	KindArrowFunctionCreationExpression
	KindArrowFunctionHeader
	KindCloneExpression
	KindCastExpression
	KindErrorControlExpression
	KindUnaryOpExpression
	KindPrefixIncrementExpression
	KindPrefixDecrementExpression
	KindPostfixIncrementExpression
	KindPostfixDecrementExpression
	KindExponentiationExpression
	KindMultiplicativeExpression
	KindAdditiveExpression
	KindShiftExpression
	KindRelationalExpression
	KindEqualityExpression
	KindBitwiseExpression
	KindLogicalExpression
	KindCoalesceExpression
	KindTernaryExpression
	KindInstanceOfExpression
	KindSimpleAssignmentExpression
	KindByRefAssignmentExpression
	KindCompoundAssignmentExpression
	KindPrintIntrinsic
	KindYieldExpression
	KindYieldFromExpression
	KindIncludeExpression
	KindIncludeOnceExpression
	KindRequireExpression
	KindRequireOnceExpression
	KindEvalIntrinsic
	KindEmptyIntrinsic
	KindIssetIntrinsic
	KindExitIntrinsic

	// Strings
	KindDoubleQuotedStringLiteral
	KindHeredocStringLiteral
	KindShellCommandExpression
	KindEncapsulatedVariableList
	KindEncapsulatedVariable

	phraseKindCount
)

var phraseKindNames = map[PhraseKind]string{
	KindError:                               "Error",
	KindStatementList:                       "StatementList",
	KindExpressionStatement:                 "ExpressionStatement",
	KindCompoundStatement:                   "CompoundStatement",
	KindNullStatement:                       "NullStatement",
	KindInlineText:                          "InlineText",
	KindEchoIntrinsic:                       "EchoIntrinsic",
	KindExpressionList:                      "ExpressionList",
	KindIfStatement:                         "IfStatement",
	KindElseIfClause:                        "ElseIfClause",
	KindElseClause:                          "ElseClause",
	KindWhileStatement:                      "WhileStatement",
	KindDoStatement:                         "DoStatement",
	KindForStatement:                        "ForStatement",
	KindForInitialiser:                      "ForInitialiser",
	KindForControl:                          "ForControl",
	KindForEndOfLoop:                        "ForEndOfLoop",
	KindForeachStatement:                    "ForeachStatement",
	KindForeachCollection:                   "ForeachCollection",
	KindForeachKey:                          "ForeachKey",
	KindForeachValue:                        "ForeachValue",
	KindSwitchStatement:                     "SwitchStatement",
	KindCaseStatementList:                   "CaseStatementList",
	KindCaseStatement:                       "CaseStatement",
	KindDefaultStatement:                    "DefaultStatement",
	KindBreakStatement:                      "BreakStatement",
	KindContinueStatement:                   "ContinueStatement",
	KindReturnStatement:                     "ReturnStatement",
	KindGlobalDeclaration:                   "GlobalDeclaration",
	KindVariableNameList:                    "VariableNameList",
	KindFunctionStaticDeclaration:           "FunctionStaticDeclaration",
	KindStaticVariableDeclarationList:       "StaticVariableDeclarationList",
	KindStaticVariableDeclaration:           "StaticVariableDeclaration",
	KindFunctionStaticInitialiser:           "FunctionStaticInitialiser",
	KindUnsetIntrinsic:                      "UnsetIntrinsic",
	KindVariableList:                        "VariableList",
	KindDeclareStatement:                    "DeclareStatement",
	KindDeclareDirective:                    "DeclareDirective",
	KindTryStatement:                        "TryStatement",
	KindCatchClauseList:                     "CatchClauseList",
	KindCatchClause:                         "CatchClause",
	KindCatchNameList:                       "CatchNameList",
	KindFinallyClause:                       "FinallyClause",
	KindThrowStatement:                      "ThrowStatement",
	KindGotoStatement:                       "GotoStatement",
	KindNamedLabelStatement:                 "NamedLabelStatement",
	KindHaltCompilerStatement:               "HaltCompilerStatement",
	KindNamespaceDefinition:                 "NamespaceDefinition",
	KindNamespaceName:                       "NamespaceName",
	KindNamespaceUseDeclaration:             "NamespaceUseDeclaration",
	KindNamespaceUseClauseList:              "NamespaceUseClauseList",
	KindNamespaceUseClause:                  "NamespaceUseClause",
	KindNamespaceUseGroupClauseList:         "NamespaceUseGroupClauseList",
	KindNamespaceUseGroupClause:             "NamespaceUseGroupClause",
	KindNamespaceAliasingClause:             "NamespaceAliasingClause",
	KindConstDeclaration:                    "ConstDeclaration",
	KindConstElementList:                    "ConstElementList",
	KindConstElement:                        "ConstElement",
	KindQualifiedName:                       "QualifiedName",
	KindFullyQualifiedName:                  "FullyQualifiedName",
	KindRelativeQualifiedName:               "RelativeQualifiedName",
	KindQualifiedNameList:                   "QualifiedNameList",
	KindIdentifier:                          "Identifier",
	KindFunctionDeclaration:                 "FunctionDeclaration",
	KindFunctionDeclarationHeader:           "FunctionDeclarationHeader",
	KindFunctionDeclarationBody:             "FunctionDeclarationBody",
	KindParameterDeclarationList:            "ParameterDeclarationList",
	KindParameterDeclaration:                "ParameterDeclaration",
	KindTypeDeclaration:                     "TypeDeclaration",
	KindReturnType:                          "ReturnType",
	KindClassDeclaration:                    "ClassDeclaration",
	KindClassDeclarationHeader:              "ClassDeclarationHeader",
	KindClassModifiers:                      "ClassModifiers",
	KindClassBaseClause:                     "ClassBaseClause",
	KindClassInterfaceClause:                "ClassInterfaceClause",
	KindClassDeclarationBody:                "ClassDeclarationBody",
	KindClassMemberDeclarationList:          "ClassMemberDeclarationList",
	KindInterfaceDeclaration:                "InterfaceDeclaration",
	KindInterfaceDeclarationHeader:          "InterfaceDeclarationHeader",
	KindInterfaceBaseClause:                 "InterfaceBaseClause",
	KindInterfaceDeclarationBody:            "InterfaceDeclarationBody",
	KindInterfaceMemberDeclarationList:      "InterfaceMemberDeclarationList",
	KindTraitDeclaration:                    "TraitDeclaration",
	KindTraitDeclarationHeader:              "TraitDeclarationHeader",
	KindTraitDeclarationBody:                "TraitDeclarationBody",
	KindTraitMemberDeclarationList:          "TraitMemberDeclarationList",
	KindMemberModifierList:                  "MemberModifierList",
	KindClassConstDeclaration:               "ClassConstDeclaration",
	KindClassConstElementList:               "ClassConstElementList",
	KindClassConstElement:                   "ClassConstElement",
	KindPropertyDeclaration:                 "PropertyDeclaration",
	KindPropertyElementList:                 "PropertyElementList",
	KindPropertyElement:                     "PropertyElement",
	KindPropertyInitialiser:                 "PropertyInitialiser",
	KindMethodDeclaration:                   "MethodDeclaration",
	KindMethodDeclarationHeader:             "MethodDeclarationHeader",
	KindMethodDeclarationBody:               "MethodDeclarationBody",
	KindTraitUseClause:                      "TraitUseClause",
	KindTraitUseSpecification:               "TraitUseSpecification",
	KindTraitAdaptationList:                 "TraitAdaptationList",
	KindTraitPrecedence:                     "TraitPrecedence",
	KindTraitAlias:                          "TraitAlias",
	KindMethodReference:                     "MethodReference",
	KindErrorClassMemberDeclaration:         "ErrorClassMemberDeclaration",
	KindErrorTraitAdaptation:                "ErrorTraitAdaptation",
	KindErrorVariable:                       "ErrorVariable",
	KindErrorVariableAtom:                   "ErrorVariableAtom",
	KindErrorExpression:                     "ErrorExpression",
	KindErrorScopedAccessExpression:         "ErrorScopedAccessExpression",
	KindErrorClassTypeDesignatorAtom:        "ErrorClassTypeDesignatorAtom",
	KindSimpleVariable:                      "SimpleVariable",
	KindConstantAccessExpression:            "ConstantAccessExpression",
	KindClassConstantAccessExpression:       "ClassConstantAccessExpression",
	KindScopedPropertyAccessExpression:      "ScopedPropertyAccessExpression",
	KindScopedCallExpression:                "ScopedCallExpression",
	KindScopedMemberName:                    "ScopedMemberName",
	KindRelativeScope:                       "RelativeScope",
	KindPropertyAccessExpression:            "PropertyAccessExpression",
	KindMethodCallExpression:                "MethodCallExpression",
	KindMemberName:                          "MemberName",
	KindSubscriptExpression:                 "SubscriptExpression",
	KindFunctionCallExpression:              "FunctionCallExpression",
	KindArgumentExpressionList:              "ArgumentExpressionList",
	KindVariadicUnpacking:                   "VariadicUnpacking",
	KindEncapsulatedExpression:              "EncapsulatedExpression",
	KindArrayCreationExpression:             "ArrayCreationExpression",
	KindArrayInitialiserList:                "ArrayInitialiserList",
	KindArrayElement:                        "ArrayElement",
	KindArrayKey:                            "ArrayKey",
	KindArrayValue:                          "ArrayValue",
	KindListIntrinsic:                       "ListIntrinsic",
	KindObjectCreationExpression:            "ObjectCreationExpression",
	KindClassTypeDesignator:                 "ClassTypeDesignator",
	KindInstanceofTypeDesignator:            "InstanceofTypeDesignator",
	KindAnonymousClassDeclaration:           "AnonymousClassDeclaration",
	KindAnonymousClassDeclarationHeader:     "AnonymousClassDeclarationHeader",
	KindAnonymousFunctionCreationExpression: "AnonymousFunctionCreationExpression",
	KindAnonymousFunctionHeader:             "AnonymousFunctionHeader",
	KindAnonymousFunctionUseClause:          "AnonymousFunctionUseClause",
	KindClosureUseList:                      "ClosureUseList",
	KindAnonymousFunctionUseVariable:        "AnonymousFunctionUseVariable",
	KindArrowFunctionCreationExpression:     "ArrowFunctionCreationExpression",
	KindArrowFunctionHeader:                 "ArrowFunctionHeader",
	KindCloneExpression:                     "CloneExpression",
	KindCastExpression:                      "CastExpression",
	KindErrorControlExpression:              "ErrorControlExpression",
	KindUnaryOpExpression:                   "UnaryOpExpression",
	KindPrefixIncrementExpression:           "PrefixIncrementExpression",
	KindPrefixDecrementExpression:           "PrefixDecrementExpression",
	KindPostfixIncrementExpression:          "PostfixIncrementExpression",
	KindPostfixDecrementExpression:          "PostfixDecrementExpression",
	KindExponentiationExpression:            "ExponentiationExpression",
	KindMultiplicativeExpression:            "MultiplicativeExpression",
	KindAdditiveExpression:                  "AdditiveExpression",
	KindShiftExpression:                     "ShiftExpression",
	KindRelationalExpression:                "RelationalExpression",
	KindEqualityExpression:                  "EqualityExpression",
	KindBitwiseExpression:                   "BitwiseExpression",
	KindLogicalExpression:                   "LogicalExpression",
	KindCoalesceExpression:                  "CoalesceExpression",
	KindTernaryExpression:                   "TernaryExpression",
	KindInstanceOfExpression:                "InstanceOfExpression",
	KindSimpleAssignmentExpression:          "SimpleAssignmentExpression",
	KindByRefAssignmentExpression:           "ByRefAssignmentExpression",
	KindCompoundAssignmentExpression:        "CompoundAssignmentExpression",
	KindPrintIntrinsic:                      "PrintIntrinsic",
	KindYieldExpression:                     "YieldExpression",
	KindYieldFromExpression:                 "YieldFromExpression",
	KindIncludeExpression:                   "IncludeExpression",
	KindIncludeOnceExpression:               "IncludeOnceExpression",
	KindRequireExpression:                   "RequireExpression",
	KindRequireOnceExpression:               "RequireOnceExpression",
	KindEvalIntrinsic:                       "EvalIntrinsic",
	KindEmptyIntrinsic:                      "EmptyIntrinsic",
	KindIssetIntrinsic:                      "IssetIntrinsic",
	KindExitIntrinsic:                       "ExitIntrinsic",
	KindDoubleQuotedStringLiteral:           "DoubleQuotedStringLiteral",
	KindHeredocStringLiteral:                "HeredocStringLiteral",
	KindShellCommandExpression:              "ShellCommandExpression",
	KindEncapsulatedVariableList:            "EncapsulatedVariableList",
	KindEncapsulatedVariable:                "EncapsulatedVariable",
}

func (k PhraseKind) String() string {
	if name, ok := phraseKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PhraseKind(%d)", int(k))
}

// PhraseKindName returns the display name of kind.
func PhraseKindName(kind PhraseKind) string {
	return kind.String()
}

// IsErrorKind reports whether k is one of the kinds used only for phrases
// the parser could not complete.
func (k PhraseKind) IsErrorKind() bool {
	switch k {
	case KindError, KindErrorClassMemberDeclaration, KindErrorTraitAdaptation,
		KindErrorVariable, KindErrorVariableAtom, KindErrorExpression,
		KindErrorScopedAccessExpression, KindErrorClassTypeDesignatorAtom:
		return true
	}
	return false
}

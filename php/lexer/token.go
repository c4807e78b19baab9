package lexer

import (
	"fmt"
	"strings"
)

type TokenKind int

const (
	TokenUndefined TokenKind = iota
	TokenUnknown
	TokenEndOfFile

	// Keywords
	TokenAbstract
	TokenAnd
	TokenArray
	TokenAs
	TokenBreak
	TokenCallable
	TokenCase
	TokenCatch
	TokenClass
	TokenClone
	TokenConst
	TokenContinue
	TokenDeclare
	TokenDefault
	TokenDo
	TokenEcho
	TokenElse
	TokenElseIf
	TokenEmpty
	TokenEndDeclare
	TokenEndFor
	TokenEndForeach
	TokenEndIf
	TokenEndSwitch
	TokenEndWhile
	TokenEval
	TokenExit
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFn
	TokenFor
	TokenForeach
	TokenFunction
	TokenGlobal
	TokenGoto
	TokenHaltCompiler
	TokenIf
	TokenImplements
	TokenInclude
	TokenIncludeOnce
	TokenInstanceOf
	TokenInsteadOf
	TokenInterface
	TokenIsset
	TokenList
	TokenNamespace
	TokenNew
	TokenOr
	TokenPrint
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenRequire
	TokenRequireOnce
	TokenReturn
	TokenStatic
	TokenSwitch
	TokenThrow
	TokenTrait
	TokenTry
	TokenUnset
	TokenUse
	TokenVar
	TokenWhile
	TokenXor
	TokenYield
	TokenYieldFrom

	// Magic constants
	TokenClassConstant
	TokenDirectoryConstant
	TokenFileConstant
	TokenFunctionConstant
	TokenLineConstant
	TokenMethodConstant
	TokenNamespaceConstant
	TokenTraitConstant

	// Casts
	TokenArrayCast
	TokenBooleanCast
	TokenFloatCast
	TokenIntegerCast
	TokenObjectCast
	TokenStringCast
	TokenUnsetCast

	// Literals and names
	TokenIntegerLiteral
	TokenFloatingLiteral
	TokenStringLiteral
	TokenEncapsulatedAndWhitespace
	TokenText
	TokenStartHeredoc
	TokenEndHeredoc
	TokenDollarCurlyOpen
	TokenCurlyOpen
	TokenVariableName
	TokenName

	// Tags
	TokenOpenTag
	TokenOpenTagEcho
	TokenOpenTagShort
	TokenCloseTag

	// Punctuation
	TokenSemicolon
	TokenComma
	TokenColon
	TokenColonColon
	TokenBackslash
	TokenQuestion
	TokenQuestionQuestion
	TokenOpenParenthesis
	TokenCloseParenthesis
	TokenOpenBracket
	TokenCloseBracket
	TokenOpenBrace
	TokenCloseBrace
	TokenDollar
	TokenBacktick
	TokenDoubleQuote
	TokenArrow
	TokenFatArrow
	TokenEllipsis
	TokenAtSymbol

	// Operators
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenAsteriskAsterisk
	TokenForwardSlash
	TokenPercent
	TokenDot
	TokenAmpersand
	TokenBar
	TokenCaret
	TokenTilde
	TokenExclamation
	TokenLessThan
	TokenGreaterThan
	TokenLessThanEquals
	TokenGreaterThanEquals
	TokenEqualsEquals
	TokenEqualsEqualsEquals
	TokenExclamationEquals
	TokenExclamationEqualsEquals
	TokenSpaceship
	TokenAmpersandAmpersand
	TokenBarBar
	TokenLessThanLessThan
	TokenGreaterThanGreaterThan
	TokenPlusPlus
	TokenMinusMinus

	// Assignment operators
	TokenEquals
	TokenPlusEquals
	TokenMinusEquals
	TokenAsteriskEquals
	TokenAsteriskAsteriskEquals
	TokenForwardSlashEquals
	TokenPercentEquals
	TokenDotEquals
	TokenAmpersandEquals
	TokenBarEquals
	TokenCaretEquals
	TokenLessThanLessThanEquals
	TokenGreaterThanGreaterThanEquals
	TokenQuestionQuestionEquals

	// Trivia
	TokenWhitespace
	TokenComment
	TokenDocumentComment

	tokenKindCount
)

var tokenKindNames = map[TokenKind]string{
	TokenUndefined:                    "Undefined",
	TokenUnknown:                      "Unknown",
	TokenEndOfFile:                    "EndOfFile",
	TokenAbstract:                     "Abstract",
	TokenAnd:                          "And",
	TokenArray:                        "Array",
	TokenAs:                           "As",
	TokenBreak:                        "Break",
	TokenCallable:                     "Callable",
	TokenCase:                         "Case",
	TokenCatch:                        "Catch",
	TokenClass:                        "Class",
	TokenClone:                        "Clone",
	TokenConst:                        "Const",
	TokenContinue:                     "Continue",
	TokenDeclare:                      "Declare",
	TokenDefault:                      "Default",
	TokenDo:                           "Do",
	TokenEcho:                         "Echo",
	TokenElse:                         "Else",
	TokenElseIf:                       "ElseIf",
	TokenEmpty:                        "Empty",
	TokenEndDeclare:                   "EndDeclare",
	TokenEndFor:                       "EndFor",
	TokenEndForeach:                   "EndForeach",
	TokenEndIf:                        "EndIf",
	TokenEndSwitch:                    "EndSwitch",
	TokenEndWhile:                     "EndWhile",
	TokenEval:                         "Eval",
	TokenExit:                         "Exit",
	TokenExtends:                      "Extends",
	TokenFinal:                        "Final",
	TokenFinally:                      "Finally",
	TokenFn:                           "Fn",
	TokenFor:                          "For",
	TokenForeach:                      "Foreach",
	TokenFunction:                     "Function",
	TokenGlobal:                       "Global",
	TokenGoto:                         "Goto",
	TokenHaltCompiler:                 "HaltCompiler",
	TokenIf:                           "If",
	TokenImplements:                   "Implements",
	TokenInclude:                      "Include",
	TokenIncludeOnce:                  "IncludeOnce",
	TokenInstanceOf:                   "InstanceOf",
	TokenInsteadOf:                    "InsteadOf",
	TokenInterface:                    "Interface",
	TokenIsset:                        "Isset",
	TokenList:                         "List",
	TokenNamespace:                    "Namespace",
	TokenNew:                          "New",
	TokenOr:                           "Or",
	TokenPrint:                        "Print",
	TokenPrivate:                      "Private",
	TokenProtected:                    "Protected",
	TokenPublic:                       "Public",
	TokenRequire:                      "Require",
	TokenRequireOnce:                  "RequireOnce",
	TokenReturn:                       "Return",
	TokenStatic:                       "Static",
	TokenSwitch:                       "Switch",
	TokenThrow:                        "Throw",
	TokenTrait:                        "Trait",
	TokenTry:                          "Try",
	TokenUnset:                        "Unset",
	TokenUse:                          "Use",
	TokenVar:                          "Var",
	TokenWhile:                        "While",
	TokenXor:                          "Xor",
	TokenYield:                        "Yield",
	TokenYieldFrom:                    "YieldFrom",
	TokenClassConstant:                "ClassConstant",
	TokenDirectoryConstant:            "DirectoryConstant",
	TokenFileConstant:                 "FileConstant",
	TokenFunctionConstant:             "FunctionConstant",
	TokenLineConstant:                 "LineConstant",
	TokenMethodConstant:               "MethodConstant",
	TokenNamespaceConstant:            "NamespaceConstant",
	TokenTraitConstant:                "TraitConstant",
	TokenArrayCast:                    "ArrayCast",
	TokenBooleanCast:                  "BooleanCast",
	TokenFloatCast:                    "FloatCast",
	TokenIntegerCast:                  "IntegerCast",
	TokenObjectCast:                   "ObjectCast",
	TokenStringCast:                   "StringCast",
	TokenUnsetCast:                    "UnsetCast",
	TokenIntegerLiteral:               "IntegerLiteral",
	TokenFloatingLiteral:              "FloatingLiteral",
	TokenStringLiteral:                "StringLiteral",
	TokenEncapsulatedAndWhitespace:    "EncapsulatedAndWhitespace",
	TokenText:                         "Text",
	TokenStartHeredoc:                 "StartHeredoc",
	TokenEndHeredoc:                   "EndHeredoc",
	TokenDollarCurlyOpen:              "DollarCurlyOpen",
	TokenCurlyOpen:                    "CurlyOpen",
	TokenVariableName:                 "VariableName",
	TokenName:                         "Name",
	TokenOpenTag:                      "OpenTag",
	TokenOpenTagEcho:                  "OpenTagEcho",
	TokenOpenTagShort:                 "OpenTagShort",
	TokenCloseTag:                     "CloseTag",
	TokenSemicolon:                    "Semicolon",
	TokenComma:                        "Comma",
	TokenColon:                        "Colon",
	TokenColonColon:                   "ColonColon",
	TokenBackslash:                    "Backslash",
	TokenQuestion:                     "Question",
	TokenQuestionQuestion:             "QuestionQuestion",
	TokenOpenParenthesis:              "OpenParenthesis",
	TokenCloseParenthesis:             "CloseParenthesis",
	TokenOpenBracket:                  "OpenBracket",
	TokenCloseBracket:                 "CloseBracket",
	TokenOpenBrace:                    "OpenBrace",
	TokenCloseBrace:                   "CloseBrace",
	TokenDollar:                       "Dollar",
	TokenBacktick:                     "Backtick",
	TokenDoubleQuote:                  "DoubleQuote",
	TokenArrow:                        "Arrow",
	TokenFatArrow:                     "FatArrow",
	TokenEllipsis:                     "Ellipsis",
	TokenAtSymbol:                     "AtSymbol",
	TokenPlus:                         "Plus",
	TokenMinus:                        "Minus",
	TokenAsterisk:                     "Asterisk",
	TokenAsteriskAsterisk:             "AsteriskAsterisk",
	TokenForwardSlash:                 "ForwardSlash",
	TokenPercent:                      "Percent",
	TokenDot:                          "Dot",
	TokenAmpersand:                    "Ampersand",
	TokenBar:                          "Bar",
	TokenCaret:                        "Caret",
	TokenTilde:                        "Tilde",
	TokenExclamation:                  "Exclamation",
	TokenLessThan:                     "LessThan",
	TokenGreaterThan:                  "GreaterThan",
	TokenLessThanEquals:               "LessThanEquals",
	TokenGreaterThanEquals:            "GreaterThanEquals",
	TokenEqualsEquals:                 "EqualsEquals",
	TokenEqualsEqualsEquals:           "EqualsEqualsEquals",
	TokenExclamationEquals:            "ExclamationEquals",
	TokenExclamationEqualsEquals:      "ExclamationEqualsEquals",
	TokenSpaceship:                    "Spaceship",
	TokenAmpersandAmpersand:           "AmpersandAmpersand",
	TokenBarBar:                       "BarBar",
	TokenLessThanLessThan:             "LessThanLessThan",
	TokenGreaterThanGreaterThan:       "GreaterThanGreaterThan",
	TokenPlusPlus:                     "PlusPlus",
	TokenMinusMinus:                   "MinusMinus",
	TokenEquals:                       "Equals",
	TokenPlusEquals:                   "PlusEquals",
	TokenMinusEquals:                  "MinusEquals",
	TokenAsteriskEquals:               "AsteriskEquals",
	TokenAsteriskAsteriskEquals:       "AsteriskAsteriskEquals",
	TokenForwardSlashEquals:           "ForwardSlashEquals",
	TokenPercentEquals:                "PercentEquals",
	TokenDotEquals:                    "DotEquals",
	TokenAmpersandEquals:              "AmpersandEquals",
	TokenBarEquals:                    "BarEquals",
	TokenCaretEquals:                  "CaretEquals",
	TokenLessThanLessThanEquals:       "LessThanLessThanEquals",
	TokenGreaterThanGreaterThanEquals: "GreaterThanGreaterThanEquals",
	TokenQuestionQuestionEquals:       "QuestionQuestionEquals",
	TokenWhitespace:                   "Whitespace",
	TokenComment:                      "Comment",
	TokenDocumentComment:              "DocumentComment",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// TokenKindName returns the display name of kind.
func TokenKindName(kind TokenKind) string {
	return kind.String()
}

// IsTrivia reports whether tokens of this kind carry no grammatical meaning.
// Document comments count as trivia; the parser surfaces them on request.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenComment, TokenDocumentComment:
		return true
	}
	return false
}

// IsKeyword reports whether k is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenAbstract && k <= TokenYieldFrom
}

// Token is one lexical unit. A token never holds text; slice the source
// with Text to recover it.
type Token struct {
	Kind   TokenKind
	Offset int
	Length int
	// Modes is the mode stack in effect before the token was scanned.
	// Restarting a lexer at Offset with these modes reproduces the token.
	Modes ModeStack
}

func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) Text(src string) string {
	if t.Offset < 0 || t.End() > len(src) {
		return ""
	}
	return src[t.Offset:t.End()]
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d+%d", t.Kind, t.Offset, t.Length)
}

var keywords = map[string]TokenKind{
	"abstract":        TokenAbstract,
	"and":             TokenAnd,
	"array":           TokenArray,
	"as":              TokenAs,
	"break":           TokenBreak,
	"callable":        TokenCallable,
	"case":            TokenCase,
	"catch":           TokenCatch,
	"class":           TokenClass,
	"clone":           TokenClone,
	"const":           TokenConst,
	"continue":        TokenContinue,
	"declare":         TokenDeclare,
	"default":         TokenDefault,
	"die":             TokenExit,
	"do":              TokenDo,
	"echo":            TokenEcho,
	"else":            TokenElse,
	"elseif":          TokenElseIf,
	"empty":           TokenEmpty,
	"enddeclare":      TokenEndDeclare,
	"endfor":          TokenEndFor,
	"endforeach":      TokenEndForeach,
	"endif":           TokenEndIf,
	"endswitch":       TokenEndSwitch,
	"endwhile":        TokenEndWhile,
	"eval":            TokenEval,
	"exit":            TokenExit,
	"extends":         TokenExtends,
	"final":           TokenFinal,
	"finally":         TokenFinally,
	"fn":              TokenFn,
	"for":             TokenFor,
	"foreach":         TokenForeach,
	"function":        TokenFunction,
	"global":          TokenGlobal,
	"goto":            TokenGoto,
	"__halt_compiler": TokenHaltCompiler,
	"if":              TokenIf,
	"implements":      TokenImplements,
	"include":         TokenInclude,
	"include_once":    TokenIncludeOnce,
	"instanceof":      TokenInstanceOf,
	"insteadof":       TokenInsteadOf,
	"interface":       TokenInterface,
	"isset":           TokenIsset,
	"list":            TokenList,
	"namespace":       TokenNamespace,
	"new":             TokenNew,
	"or":              TokenOr,
	"print":           TokenPrint,
	"private":         TokenPrivate,
	"protected":       TokenProtected,
	"public":          TokenPublic,
	"require":         TokenRequire,
	"require_once":    TokenRequireOnce,
	"return":          TokenReturn,
	"static":          TokenStatic,
	"switch":          TokenSwitch,
	"throw":           TokenThrow,
	"trait":           TokenTrait,
	"try":             TokenTry,
	"unset":           TokenUnset,
	"use":             TokenUse,
	"var":             TokenVar,
	"while":           TokenWhile,
	"xor":             TokenXor,
	"yield":           TokenYield,
}

var magicConstants = map[string]TokenKind{
	"__CLASS__":     TokenClassConstant,
	"__DIR__":       TokenDirectoryConstant,
	"__FILE__":      TokenFileConstant,
	"__FUNCTION__":  TokenFunctionConstant,
	"__LINE__":      TokenLineConstant,
	"__METHOD__":    TokenMethodConstant,
	"__NAMESPACE__": TokenNamespaceConstant,
	"__TRAIT__":     TokenTraitConstant,
}

var castTypes = map[string]TokenKind{
	"array":   TokenArrayCast,
	"binary":  TokenStringCast,
	"bool":    TokenBooleanCast,
	"boolean": TokenBooleanCast,
	"double":  TokenFloatCast,
	"float":   TokenFloatCast,
	"int":     TokenIntegerCast,
	"integer": TokenIntegerCast,
	"object":  TokenObjectCast,
	"real":    TokenFloatCast,
	"string":  TokenStringCast,
	"unset":   TokenUnsetCast,
}

// LookupKeyword resolves an identifier. Keywords match case-insensitively,
// magic constants only in their canonical spelling.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := magicConstants[ident]; ok {
		return kind
	}
	if kind, ok := keywords[strings.ToLower(ident)]; ok {
		return kind
	}
	return TokenName
}

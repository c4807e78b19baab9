package codebase

import (
	"strings"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/parser"
	"github.com/dhamidi/psai/php/phpdoc"
	"github.com/dhamidi/psai/php/position"
)

type SymbolKind int

const (
	SymbolNamespace SymbolKind = iota
	SymbolClass
	SymbolInterface
	SymbolTrait
	SymbolFunction
	SymbolMethod
	SymbolProperty
	SymbolConstant
)

var symbolKindNames = map[SymbolKind]string{
	SymbolNamespace: "namespace",
	SymbolClass:     "class",
	SymbolInterface: "interface",
	SymbolTrait:     "trait",
	SymbolFunction:  "function",
	SymbolMethod:    "method",
	SymbolProperty:  "property",
	SymbolConstant:  "constant",
}

func (k SymbolKind) String() string {
	return symbolKindNames[k]
}

// Symbol is a declaration found in a document, with the doc block that
// precedes it when there is one.
type Symbol struct {
	Kind      SymbolKind
	Name      string
	Range     position.Range
	NameRange position.Range
	Doc       *phpdoc.DocBlock
	Children  []Symbol
}

// Symbols lists the declarations of a parsed document: namespaces,
// classes, interfaces, traits, functions and constants, with class
// members as children. Declarations whose name is missing are skipped.
func Symbols(tree *parser.Phrase, src string) []Symbol {
	return listSymbols(tree, src)
}

// listSymbols collects the symbols of a statement or member list. A doc
// comment attaches to the next declaration unless other code comes first.
func listSymbols(list *parser.Phrase, src string) []Symbol {
	var symbols []Symbol
	var doc *parser.Leaf
	for _, child := range list.Children {
		switch n := child.(type) {
		case *parser.Leaf:
			switch n.Kind {
			case lexer.TokenDocumentComment:
				doc = n
			case lexer.TokenWhitespace, lexer.TokenComment:
			default:
				doc = nil
			}
		case *parser.Phrase:
			symbols = append(symbols, phraseSymbols(n, doc, src)...)
			doc = nil
		}
	}
	return symbols
}

func phraseSymbols(ph *parser.Phrase, doc *parser.Leaf, src string) []Symbol {
	var block *phpdoc.DocBlock
	if doc != nil {
		block = phpdoc.Parse(doc.Token.Text(src))
	}

	declare := func(kind SymbolKind, name *parser.Leaf, children []Symbol) []Symbol {
		if name == nil {
			return nil
		}
		return []Symbol{{
			Kind:      kind,
			Name:      name.Token.Text(src),
			Range:     ph.Range,
			NameRange: name.Range,
			Doc:       block,
			Children:  children,
		}}
	}

	switch ph.Kind {
	case parser.KindNamespaceDefinition:
		return namespaceSymbols(ph, block, src)
	case parser.KindFunctionDeclaration:
		return declare(SymbolFunction, headerName(ph, parser.KindFunctionDeclarationHeader), nil)
	case parser.KindClassDeclaration:
		return declare(SymbolClass, headerName(ph, parser.KindClassDeclarationHeader),
			memberSymbols(ph, parser.KindClassDeclarationBody, parser.KindClassMemberDeclarationList, src))
	case parser.KindInterfaceDeclaration:
		return declare(SymbolInterface, headerName(ph, parser.KindInterfaceDeclarationHeader),
			memberSymbols(ph, parser.KindInterfaceDeclarationBody, parser.KindInterfaceMemberDeclarationList, src))
	case parser.KindTraitDeclaration:
		return declare(SymbolTrait, headerName(ph, parser.KindTraitDeclarationHeader),
			memberSymbols(ph, parser.KindTraitDeclarationBody, parser.KindTraitMemberDeclarationList, src))
	case parser.KindMethodDeclaration:
		if header := ph.FirstChildOfKind(parser.KindMethodDeclarationHeader); header != nil {
			return declare(SymbolMethod, firstLeaf(header.FirstChildOfKind(parser.KindIdentifier)), nil)
		}
	case parser.KindPropertyDeclaration:
		return elementSymbols(ph, block, SymbolProperty, parser.KindPropertyElementList, parser.KindPropertyElement, src,
			func(el *parser.Phrase) *parser.Leaf { return el.FirstToken(lexer.TokenVariableName) })
	case parser.KindClassConstDeclaration:
		return elementSymbols(ph, block, SymbolConstant, parser.KindClassConstElementList, parser.KindClassConstElement, src,
			func(el *parser.Phrase) *parser.Leaf { return firstLeaf(el.FirstChildOfKind(parser.KindIdentifier)) })
	case parser.KindConstDeclaration:
		return elementSymbols(ph, block, SymbolConstant, parser.KindConstElementList, parser.KindConstElement, src,
			func(el *parser.Phrase) *parser.Leaf { return el.FirstToken(lexer.TokenName) })
	}
	return nil
}

func namespaceSymbols(ph *parser.Phrase, doc *phpdoc.DocBlock, src string) []Symbol {
	sym := Symbol{
		Kind:  SymbolNamespace,
		Range: ph.Range,
		Doc:   doc,
	}
	if name := ph.FirstChildOfKind(parser.KindNamespaceName); name != nil {
		sym.Name = strings.TrimSpace(parser.Text(name, src))
		sym.NameRange = name.Range
	} else if kw := ph.FirstToken(lexer.TokenNamespace); kw != nil {
		sym.NameRange = kw.Range
	}
	if body := ph.FirstChildOfKind(parser.KindCompoundStatement); body != nil {
		if list := body.FirstChildOfKind(parser.KindStatementList); list != nil {
			sym.Children = listSymbols(list, src)
		}
	}
	return []Symbol{sym}
}

func memberSymbols(ph *parser.Phrase, bodyKind, listKind parser.PhraseKind, src string) []Symbol {
	body := ph.FirstChildOfKind(bodyKind)
	if body == nil {
		return nil
	}
	list := body.FirstChildOfKind(listKind)
	if list == nil {
		return nil
	}
	return listSymbols(list, src)
}

func elementSymbols(ph *parser.Phrase, doc *phpdoc.DocBlock, kind SymbolKind, listKind, elementKind parser.PhraseKind,
	src string, nameOf func(*parser.Phrase) *parser.Leaf) []Symbol {
	list := ph.FirstChildOfKind(listKind)
	if list == nil {
		return nil
	}
	var symbols []Symbol
	for _, el := range list.ChildrenOfKind(elementKind) {
		name := nameOf(el)
		if name == nil {
			continue
		}
		symbols = append(symbols, Symbol{
			Kind:      kind,
			Name:      name.Token.Text(src),
			Range:     ph.Range,
			NameRange: name.Range,
			Doc:       doc,
		})
	}
	return symbols
}

func headerName(ph *parser.Phrase, headerKind parser.PhraseKind) *parser.Leaf {
	header := ph.FirstChildOfKind(headerKind)
	if header == nil {
		return nil
	}
	return header.FirstToken(lexer.TokenName)
}

// firstLeaf returns the first leaf of ph that is not trivia.
func firstLeaf(ph *parser.Phrase) *parser.Leaf {
	if ph == nil {
		return nil
	}
	for _, child := range ph.Children {
		if leaf, ok := child.(*parser.Leaf); ok && !leaf.Kind.IsTrivia() {
			return leaf
		}
	}
	return nil
}

// SymbolAt returns the innermost symbol whose name contains pos.
func SymbolAt(symbols []Symbol, pos position.Position) *Symbol {
	for i := range symbols {
		s := &symbols[i]
		if !s.Range.Contains(pos) && !s.NameRange.Contains(pos) {
			continue
		}
		if inner := SymbolAt(s.Children, pos); inner != nil {
			return inner
		}
		if s.NameRange.Contains(pos) {
			return s
		}
	}
	return nil
}

// HoverText describes a symbol for display: its kind and name, followed
// by its formatted doc block.
func HoverText(s *Symbol) string {
	text := s.Kind.String()
	if s.Name != "" {
		text += " " + s.Name
	}
	if doc := phpdoc.Format(s.Doc); doc != "" {
		text += "\n\n" + doc
	}
	return text
}

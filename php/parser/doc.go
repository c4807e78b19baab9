// Package parser builds an error tolerant parse tree for PHP source.
//
// # Overview
//
// Parse never fails. Whatever the input, it returns a StatementList whose
// leaves, read in order, reproduce the input byte for byte: whitespace,
// comments and inline HTML are kept as leaves next to the tokens they
// precede. Code that cannot be parsed ends up in phrases of kind KindError
// (or one of the other error kinds, see PhraseKind.IsErrorKind) placed
// exactly where parsing went wrong.
//
//	root := parser.Parse("<?php $a = 1 + 2;")
//	for _, e := range parser.Errors(root) {
//	    fmt.Println(e.Range, e.Error.Message(src))
//	}
//
// # Tree
//
// A tree has two node types:
//
//	*Leaf    one token; see lexer.Token
//	*Phrase  one grammar production with ordered children
//
// Every node carries a position.Range. A phrase's range covers exactly its
// children. Nodes have no parent links; walk down from the root with Walk
// to find a parent.
//
// # Recovery
//
// Repeated constructs (statement lists, class bodies, argument lists) push
// a recover set while they are parsed. When a token cannot start an
// element, the parser first tries to skip just that token; failing that,
// it skips to the nearest token that belongs to any active recover set and
// lets the construct owning that set continue. After an error, further
// errors are suppressed until a token is matched again, so one mistake
// produces one error phrase.
//
// # Expressions
//
// Binary operators are parsed by precedence climbing over a table of PHP 7
// precedences. Left associative operators raise the minimum precedence of
// their right operand, so "a - b - c" nests to the left while "a ** b ** c"
// nests to the right. An assignment binds to a variable on its left even
// inside a tighter operator, which makes "!$a = f()" mean "!($a = f())".
package parser

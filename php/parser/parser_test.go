package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/position"
)

func find(n Node, kind PhraseKind) *Phrase {
	var found *Phrase
	Walk(n, func(n Node) bool {
		if found != nil {
			return false
		}
		if ph, ok := n.(*Phrase); ok && ph.Kind == kind {
			found = ph
			return false
		}
		return true
	})
	return found
}

func findAll(n Node, kind PhraseKind) []*Phrase {
	var found []*Phrase
	Walk(n, func(n Node) bool {
		if ph, ok := n.(*Phrase); ok && ph.Kind == kind {
			found = append(found, ph)
		}
		return true
	})
	return found
}

// shape renders an expression with one pair of parentheses per phrase.
// Variables and names print as their text.
func shape(n Node, src string) string {
	switch n := n.(type) {
	case *Leaf:
		return n.Token.Text(src)
	case *Phrase:
		switch n.Kind {
		case KindSimpleVariable, KindConstantAccessExpression, KindQualifiedName, KindNamespaceName:
			return strings.TrimSpace(Text(n, src))
		}
		var parts []string
		for _, child := range n.Children {
			if leaf, ok := child.(*Leaf); ok && leaf.Kind.IsTrivia() {
				continue
			}
			parts = append(parts, shape(child, src))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "?"
}

// statementExpression returns the expression of the first expression
// statement in src.
func statementExpression(t *testing.T, src string) Node {
	t.Helper()
	root := Parse(src)
	stmt := find(root, KindExpressionStatement)
	if stmt == nil {
		t.Fatalf("no expression statement in %q:\n%s", src, root)
	}
	for _, child := range stmt.Children {
		if leaf, ok := child.(*Leaf); ok && leaf.Kind.IsTrivia() {
			continue
		}
		return child
	}
	t.Fatalf("empty expression statement in %q", src)
	return nil
}

var parserSamples = []string{
	"",
	"hello world",
	"<?php",
	"<?php ",
	"<?php $a = 1 + 2;",
	"<?php echo 'hi'",
	"<?php $s = \"a${1+1}b\";",
	"<?php if (true) { echo 1; } elseif (false) { echo 2; } else { echo 3; }",
	"<?php <<<EOT\nabc",
	"<p><?= $a ?></p><?php echo 1; ?>x",
	"<?php\nnamespace A\\B;\nuse C\\D as E, F;\nuse G\\{H, function i};\n",
	"<?php abstract class A extends B implements C, D {\n  const X = 1;\n  /** doc */\n  private static ?int $y = 2;\n  abstract protected function f(int $a = 1, ...$rest): ?string;\n  use T { a as protected b; T::c insteadof U; }\n}\n",
	"<?php interface I extends J, K { public function f(); }\ntrait T { var $x; }",
	"<?php $f = function ($a) use (&$b): int { return $a; }; $g = fn($x) => $x * 2; $h = static fn() => 1;",
	"<?php $s = \"x $a[0] $b->c {$d['e']} ${f} ${g[1]} $h[-1] $i[j]\";",
	"<?php $s = <<<EOT\nHello $name\n  {$obj->x}\nEOT;\n$t = <<<'N'\nraw $x\nN;\n",
	"<?php $c = `ls $dir`;",
	"<?php if ($a): echo 1; elseif ($b): echo 2; else: echo 3; endif;",
	"<?php foreach ($a as $k => &$v): endforeach; foreach ($a as list($x, $y)) {}",
	"<?php switch ($a) { case 1: echo 1; break; default: echo 2; }\nswitch ($b): case 2; endswitch;",
	"<?php for ($i = 0, $j = 1; $i < 10; $i++) {} do { } while (0); while (1): endwhile;",
	"<?php try { f(); } catch (A | B $e) { } finally { }",
	"<?php declare(strict_types=1); declare(ticks=1): enddeclare;",
	"<?php list($a, , $b) = $c; [$x, $y] = $z; $w = [1, 'k' => 2, &$r, ...$s,];",
	"<?php $a = new Foo(1); $b = new class(2) extends C { }; $c = $a instanceof Foo; $d = clone $a; $e = new $cls->name;",
	"<?php A::b(); A::$c; A::D; static::e(); $x::f(); $y->{'z'}(); $$v = ${'w'};",
	"<?php exit; die(1); print 1; include 'a.php'; require_once 'b.php'; eval('1'); isset($a, $b); empty($c);",
	"<?php function g() { yield; yield 1; yield $k => $v; yield from g(); $x = yield; }",
	"<?php a: goto a;",
	"<?php __halt_compiler(); raw ) data <?php { \"",
	"<?php function f() { static $a = 1, $b; global $c, $$d; unset($a[1]); }",
	"<?php $a = ;",
	"<?php if (",
	"<?php class {",
	"<?php function (",
	"<?php \"unterminated $a",
	"<?php /* open",
	"<?php $a->",
	"<?php A::",
	"<?php [1, 2",
	"<?php foo(1 2)",
	"<?php <<<'EOT'\nx",
	"<?php } } ) ] $a; }",
	"\xff\x00<?php \x01 \x02 $a;",
	"<?php class A { public $a; ) public function b() {} }",
	"<?php class A { public $a; $x y z public function b() {} }",
	"<?php $a = [1, 2 3, 4];",
	"<?php namespace\\f(); namespace { echo 1; }",
	"<?php $x = $a ? : $b; $y = $a ?? $b ?? $c; $z = @$a['x']; $q = (int) $a;",
}

func TestParseCoversInput(t *testing.T) {
	for _, src := range parserSamples {
		t.Run(src, func(t *testing.T) {
			root := Parse(src)
			if got := Text(root, src); got != src {
				t.Errorf("leaves reproduce %q, want %q", got, src)
			}
			leaves := Leaves(root)
			if len(leaves) == 0 || leaves[len(leaves)-1].Kind != lexer.TokenEndOfFile {
				t.Fatalf("tree does not end with EndOfFile:\n%s", root)
			}
			for i := 1; i < len(leaves); i++ {
				if leaves[i].Offset != leaves[i-1].End() {
					t.Errorf("gap or overlap between %v and %v", leaves[i-1].Token, leaves[i].Token)
				}
			}
		})
	}
}

func checkRanges(t *testing.T, n Node) {
	t.Helper()
	ph, ok := n.(*Phrase)
	if !ok || len(ph.Children) == 0 {
		return
	}
	want := ph.Children[0].Span()
	for _, child := range ph.Children {
		want = want.Cover(child.Span())
		checkRanges(t, child)
	}
	if ph.Range != want {
		t.Errorf("%v has range %v, children cover %v", ph.Kind, ph.Range, want)
	}
	if ph.Range.Start > ph.Range.End {
		t.Errorf("%v has inverted range %v", ph.Kind, ph.Range)
	}
}

func TestParseRangesCoverChildren(t *testing.T) {
	for _, src := range parserSamples {
		t.Run(src, func(t *testing.T) {
			checkRanges(t, Parse(src))
		})
	}
}

func TestParseTerminates(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantErrors bool
	}{
		{"close parens", "<?php " + strings.Repeat(")", 10000), true},
		{"close parens as html", strings.Repeat(")", 10000), false},
		{"open parens", "<?php " + strings.Repeat("(", 2000), true},
		{"open braces", "<?php " + strings.Repeat("{", 2000), true},
		{"close braces", "<?php " + strings.Repeat("}", 10000), true},
		{"commas in call", "<?php f(" + strings.Repeat(",", 10000), true},
		{"arrows", "<?php $a" + strings.Repeat("->", 5000), true},
		{"members", "<?php class A {" + strings.Repeat(") ", 5000), true},
		{"operators", "<?php " + strings.Repeat("+", 10000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.src)
			if got := Text(root, tt.src); got != tt.src {
				t.Errorf("leaves do not reproduce the input")
			}
			if got := len(Errors(root)) > 0; got != tt.wantErrors {
				t.Errorf("errors reported = %v, want %v", got, tt.wantErrors)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	src := "<?php $a = 1 + 2;"
	root := Parse(src)

	if root.Kind != KindStatementList {
		t.Fatalf("root kind = %v, want StatementList", root.Kind)
	}
	if errs := Errors(root); len(errs) != 0 {
		t.Errorf("errors = %d, want 0:\n%s", len(errs), Outline(root, src))
	}
	last, ok := root.Children[len(root.Children)-1].(*Leaf)
	if !ok || last.Kind != lexer.TokenEndOfFile {
		t.Errorf("last child = %v, want EndOfFile leaf", root.Children[len(root.Children)-1])
	}
	stmts := root.ChildrenOfKind(KindExpressionStatement)
	if len(stmts) != 1 {
		t.Fatalf("expression statements = %d, want 1", len(stmts))
	}
	assign := stmts[0].FirstChildOfKind(KindSimpleAssignmentExpression)
	if assign == nil {
		t.Fatalf("no assignment:\n%s", root)
	}
	if got, want := shape(assign, src), "($a = (1 + 2))"; got != want {
		t.Errorf("shape = %s, want %s", got, want)
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	src := "<?php echo 'hi'"
	root := Parse(src)

	phrases := root.Phrases()
	if len(phrases) != 2 || phrases[0].Kind != KindInlineText || phrases[1].Kind != KindEchoIntrinsic {
		t.Fatalf("statements = %v, want InlineText and EchoIntrinsic:\n%s", phrases, root)
	}
	errs := Errors(root)
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1:\n%s", len(errs), Outline(root, src))
	}
	if got := errs[0].Error.Expected; got != lexer.TokenSemicolon {
		t.Errorf("expected = %v, want Semicolon", got)
	}
	if got := errs[0].Error.Unexpected.Kind; got != lexer.TokenEndOfFile {
		t.Errorf("unexpected = %v, want EndOfFile", got)
	}
	if phrases[1].FirstChildOfKind(KindError) != errs[0] {
		t.Errorf("error is not a child of the echo statement")
	}
	if last := root.Children[len(root.Children)-1]; last.(*Leaf).Kind != lexer.TokenEndOfFile {
		t.Errorf("last child = %v, want EndOfFile", last)
	}
}

func TestParseInterpolatedString(t *testing.T) {
	src := "<?php $s = \"a${1+1}b\";"
	root := Parse(src)

	if errs := Errors(root); len(errs) != 0 {
		t.Errorf("errors = %d, want 0:\n%s", len(errs), Outline(root, src))
	}
	str := find(root, KindDoubleQuotedStringLiteral)
	if str == nil {
		t.Fatalf("no string literal:\n%s", root)
	}
	parts := str.FirstChildOfKind(KindEncapsulatedVariableList)
	if parts == nil || len(parts.Children) != 3 {
		t.Fatalf("parts = %v, want 3:\n%s", parts, str)
	}
	if leaf, ok := parts.Children[0].(*Leaf); !ok || leaf.Token.Text(src) != "a" {
		t.Errorf("first part = %v, want literal a", parts.Children[0])
	}
	embedded, ok := parts.Children[1].(*Phrase)
	if !ok || embedded.Kind != KindEncapsulatedVariable {
		t.Fatalf("second part = %v, want EncapsulatedVariable", parts.Children[1])
	}
	if sum := embedded.FirstChildOfKind(KindAdditiveExpression); sum == nil || shape(sum, src) != "(1 + 1)" {
		t.Errorf("embedded expression = %v, want (1 + 1)", embedded)
	}
	if leaf, ok := parts.Children[2].(*Leaf); !ok || leaf.Token.Text(src) != "b" {
		t.Errorf("third part = %v, want literal b", parts.Children[2])
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	src := "<?php if (true) { echo 1; } elseif (false) { echo 2; } else { echo 3; }"
	root := Parse(src)

	if errs := Errors(root); len(errs) != 0 {
		t.Errorf("errors = %d, want 0:\n%s", len(errs), Outline(root, src))
	}
	ifs := root.ChildrenOfKind(KindIfStatement)
	if len(ifs) != 1 {
		t.Fatalf("if statements = %d, want 1", len(ifs))
	}
	stmt := ifs[0]
	if stmt.FirstChildOfKind(KindCompoundStatement) == nil {
		t.Errorf("if has no compound statement")
	}
	elseifs := stmt.ChildrenOfKind(KindElseIfClause)
	elses := stmt.ChildrenOfKind(KindElseClause)
	if len(elseifs) != 1 || len(elses) != 1 {
		t.Fatalf("elseif = %d, else = %d, want 1 and 1", len(elseifs), len(elses))
	}
	for _, clause := range []*Phrase{elseifs[0], elses[0]} {
		body := clause.FirstChildOfKind(KindCompoundStatement)
		if body == nil || find(body, KindEchoIntrinsic) == nil {
			t.Errorf("%v body = %v, want compound statement with echo", clause.Kind, body)
		}
	}
}

func TestParseUnterminatedHeredoc(t *testing.T) {
	src := "<?php <<<EOT\nabc"
	root := Parse(src)

	kinds := []lexer.TokenKind{}
	for _, tok := range lexer.Tokenize(src) {
		kinds = append(kinds, tok.Kind)
	}
	want := []lexer.TokenKind{lexer.TokenOpenTag, lexer.TokenStartHeredoc, lexer.TokenEncapsulatedAndWhitespace, lexer.TokenEndOfFile}
	if len(kinds) != len(want) {
		t.Fatalf("tokens = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}

	if find(root, KindHeredocStringLiteral) == nil {
		t.Fatalf("no heredoc:\n%s", root)
	}
	errs := Errors(root)
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1:\n%s", len(errs), Outline(root, src))
	}
	if errs[0].Error.Expected != lexer.TokenEndHeredoc {
		t.Errorf("expected = %v, want EndHeredoc", errs[0].Error.Expected)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"$a - $b - $c", "(($a - $b) - $c)"},
		{"$a ** $b ** $c", "($a ** ($b ** $c))"},
		{"$a = $b = 1", "($a = ($b = 1))"},
		{"$a ?? $b ?? $c", "($a ?? ($b ?? $c))"},
		{"$a ? 1 : 2", "($a ? 1 : 2)"},
		{"$a ?: $b", "($a ? : $b)"},
		{"$a ? 1 : $b ? 2 : 3", "(($a ? 1 : $b) ? 2 : 3)"},
		{"-$a ** 2", "(- ($a ** 2))"},
		{"!$a = 1", "(! ($a = 1))"},
		{"$a and $b or $c", "(($a and $b) or $c)"},
		{"$a = $b and $c", "(($a = $b) and $c)"},
		{"$a instanceof B && $c", "(($a instanceof (B)) && $c)"},
		{"$a . $b + $c", "(($a . $b) + $c)"},
		{"$a < $b == $c", "(($a < $b) == $c)"},
		{"(int) $a + 1", "(((int) $a) + 1)"},
		{"$a & $b | $c ^ $d", "(($a & $b) | ($c ^ $d))"},
		{"$a + $b = 1", "($a + ($b = 1))"},
		{"$a || $b && $c", "($a || ($b && $c))"},
		{"$a << 1 + 2", "($a << (1 + 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			src := "<?php " + tt.expr + ";"
			if got := shape(statementExpression(t, src), src); got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseExpressionKinds(t *testing.T) {
	tests := []struct {
		expr string
		want PhraseKind
	}{
		{"$a = &$b", KindByRefAssignmentExpression},
		{"$a .= 'x'", KindCompoundAssignmentExpression},
		{"$a ??= 1", KindCompoundAssignmentExpression},
		{"$a <=> $b", KindEqualityExpression},
		{"$a++", KindPostfixIncrementExpression},
		{"--$a", KindPrefixDecrementExpression},
		{"@f()", KindErrorControlExpression},
		{"(string) $a", KindCastExpression},
		{"new Foo", KindObjectCreationExpression},
		{"clone $a", KindCloneExpression},
		{"f(1, ...$rest)", KindFunctionCallExpression},
		{"$a->b()", KindMethodCallExpression},
		{"$a->b", KindPropertyAccessExpression},
		{"A::b()", KindScopedCallExpression},
		{"A::$b", KindScopedPropertyAccessExpression},
		{"A::B", KindClassConstantAccessExpression},
		{"A::class", KindClassConstantAccessExpression},
		{"$a[0]", KindSubscriptExpression},
		{"FOO", KindConstantAccessExpression},
		{"[1, 2]", KindArrayCreationExpression},
		{"array(1, 2)", KindArrayCreationExpression},
		{"list($a) = $b", KindSimpleAssignmentExpression},
		{"function() {}", KindAnonymousFunctionCreationExpression},
		{"fn($x) => $x", KindArrowFunctionCreationExpression},
		{"print 1", KindPrintIntrinsic},
		{"include 'a.php'", KindIncludeExpression},
		{"isset($a)", KindIssetIntrinsic},
		{"exit(1)", KindExitIntrinsic},
		{"`ls $a`", KindShellCommandExpression},
		{"\"x$a\"", KindDoubleQuotedStringLiteral},
		{"$a instanceof $b", KindInstanceOfExpression},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			src := "<?php " + tt.expr + ";"
			expr := statementExpression(t, src)
			if got := phraseKind(expr); got != tt.want {
				t.Errorf("kind = %v, want %v:\n%s", got, tt.want, Outline(expr, src))
			}
			if errs := Errors(Parse(src)); len(errs) != 0 {
				t.Errorf("errors = %d, want 0", len(errs))
			}
		})
	}
}

func TestParseWellFormedHasNoErrors(t *testing.T) {
	tests := []string{
		"<?php if ($a): echo 1; elseif ($b): echo 2; else: echo 3; endif;",
		"<?php foreach ($a as $k => &$v): endforeach;",
		"<?php switch ($a) { case 1: echo 1; break; default: echo 2; }",
		"<?php\nnamespace A\\B;\nuse C\\D as E, F;\nuse G\\{H, function i};\n",
		"<?php abstract class A extends B implements C, D {\n  const X = 1;\n  private static ?int $y = 2;\n  abstract protected function f(int $a = 1, ...$rest): ?string;\n  use T { a as protected b; T::c insteadof U; }\n}\n",
		"<?php $f = function ($a) use (&$b): int { return $a; }; $g = fn($x) => $x * 2; $h = static fn() => 1;",
		"<?php $s = \"x $a[0] $b->c {$d['e']} ${f} ${g[1]}\";",
		"<?php $s = <<<EOT\nHello $name\nEOT;\n",
		"<?php for ($i = 0, $j = 1; $i < 10; $i++) {} do { } while (0); while (1): endwhile;",
		"<?php try { f(); } catch (A | B $e) { } finally { }",
		"<?php declare(strict_types=1);",
		"<?php list($a, , $b) = $c; [$x, $y] = $z;",
		"<?php function g() { yield; yield 1; yield $k => $v; yield from g(); $x = yield; }",
		"<?php a: goto a;",
		"<p><?= $a ?></p><?php echo 1; ?>x",
		"<?php __halt_compiler(); raw ) data",
		"<?php function f() { static $a = 1, $b; global $c; }",
		"<?php $e = new $cls->name; $f = new static; $g = new class { public $x; };",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			root := Parse(src)
			if errs := Errors(root); len(errs) != 0 {
				t.Errorf("errors = %d, want 0:\n%s", len(errs), Outline(root, src))
			}
		})
	}
}

func TestParseRecoversInsideClassBody(t *testing.T) {
	tests := []string{
		"<?php class A { public $a; ) public function b() {} }",
		"<?php class A { public $a; $x y z public function b() {} }",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			root := Parse(src)
			if errs := Errors(root); len(errs) != 1 {
				t.Errorf("errors = %d, want 1:\n%s", len(errs), Outline(root, src))
			}
			if find(root, KindPropertyDeclaration) == nil {
				t.Errorf("property before the error is missing")
			}
			if find(root, KindMethodDeclaration) == nil {
				t.Errorf("method after the error is missing")
			}
		})
	}
}

func TestParseRecoversBetweenFunctions(t *testing.T) {
	src := "<?php function a() { $x = ; } function b() {}"
	root := Parse(src)
	if got := len(findAll(root, KindFunctionDeclaration)); got != 2 {
		t.Errorf("functions = %d, want 2:\n%s", got, Outline(root, src))
	}
	if got := len(Errors(root)); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
}

func TestParseDocumentComments(t *testing.T) {
	src := "<?php\n/** top */\nfunction a() {}\nclass B {\n  /** member */\n  public function c() {}\n}\n"
	root := Parse(src)

	next := func(ph *Phrase, text string) Node {
		for i, child := range ph.Children {
			leaf, ok := child.(*Leaf)
			if !ok || leaf.Kind != lexer.TokenDocumentComment || leaf.Token.Text(src) != text {
				continue
			}
			for _, after := range ph.Children[i+1:] {
				if l, ok := after.(*Leaf); ok && l.Kind.IsTrivia() {
					continue
				}
				return after
			}
		}
		return nil
	}

	if got := next(root, "/** top */"); phraseKind(got) != KindFunctionDeclaration {
		t.Errorf("node after top doc comment = %v, want FunctionDeclaration", got)
	}
	members := find(root, KindClassMemberDeclarationList)
	if members == nil {
		t.Fatalf("no member list:\n%s", root)
	}
	if got := next(members, "/** member */"); phraseKind(got) != KindMethodDeclaration {
		t.Errorf("node after member doc comment = %v, want MethodDeclaration", got)
	}
}

func TestParsePositions(t *testing.T) {
	src := "<?php\n$a = 1;\n  echo $a;"
	p := New(src)
	root := p.Parse()

	stmts := root.ChildrenOfKind(KindExpressionStatement)
	if len(stmts) != 1 {
		t.Fatalf("statements = %d, want 1", len(stmts))
	}
	want := position.Range{Start: position.Pack(1, 0), End: position.Pack(1, 7)}
	if stmts[0].Range != want {
		t.Errorf("statement range = %v, want %v", stmts[0].Range, want)
	}
	echo := root.FirstChildOfKind(KindEchoIntrinsic)
	if echo == nil || echo.Range.Start != position.Pack(2, 2) {
		t.Errorf("echo = %v, want start 3:3", echo)
	}
	if got := p.Lines().Len(); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}
}

func TestPhraseKindNamesAreTotal(t *testing.T) {
	seen := map[string]PhraseKind{}
	for kind := KindError; kind < phraseKindCount; kind++ {
		name, ok := phraseKindNames[kind]
		if !ok {
			t.Errorf("PhraseKind(%d) has no name", int(kind))
			continue
		}
		if other, dup := seen[name]; dup {
			t.Errorf("%v and %v share the name %q", other, kind, name)
		}
		seen[name] = kind
	}
	if got := PhraseKindName(phraseKindCount + 1); got == "" {
		t.Error("out of range kinds need a name too")
	}
}

// parentOf returns the phrase that has target as a direct child.
func parentOf(root *Phrase, target *Phrase) *Phrase {
	var parent *Phrase
	Walk(root, func(n Node) bool {
		ph, ok := n.(*Phrase)
		if !ok || parent != nil {
			return false
		}
		for _, child := range ph.Children {
			if child == Node(target) {
				parent = ph
				return false
			}
		}
		return true
	})
	return parent
}

func TestParseReportsMissingCloserAtEndOfInput(t *testing.T) {
	tests := []struct {
		src      string
		expected lexer.TokenKind
		parent   PhraseKind
	}{
		{"<?php echo 'hi'", lexer.TokenSemicolon, KindEchoIntrinsic},
		{"<?php echo 1, 2", lexer.TokenSemicolon, KindEchoIntrinsic},
		{"<?php f(1, 2", lexer.TokenCloseParenthesis, KindFunctionCallExpression},
		{"<?php f(1,", lexer.TokenCloseParenthesis, KindFunctionCallExpression},
		{"<?php $a = [1, 2", lexer.TokenCloseBracket, KindArrayCreationExpression},
		{"<?php class A { public $a;", lexer.TokenCloseBrace, KindClassDeclarationBody},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root := Parse(tt.src)
			errs := Errors(root)
			if len(errs) != 1 {
				t.Fatalf("errors = %d, want 1:\n%s", len(errs), Outline(root, tt.src))
			}
			e := errs[0]
			if e.Error.Expected != tt.expected {
				t.Errorf("expected = %v, want %v:\n%s", e.Error.Expected, tt.expected, Outline(root, tt.src))
			}
			if e.Error.Unexpected.Kind != lexer.TokenEndOfFile {
				t.Errorf("unexpected = %v, want EndOfFile", e.Error.Unexpected.Kind)
			}
			if parent := parentOf(root, e); parent == nil || parent.Kind != tt.parent {
				t.Errorf("error parent = %v, want %v", parent, tt.parent)
			}
		})
	}
}

func TestParseErrorKindsCarryErrors(t *testing.T) {
	tests := []string{
		"<?php $a = ;",
		"<?php echo 1 2 + ;",
		"<?php class A { public }",
		"<?php class A { use T { ; } }",
		"<?php new ;",
		"<?php A::;",
		"<?php if ($a) { $b = * ; ) }",
		"<?php function f( { [ ( ",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			root := Parse(src)
			if len(Errors(root)) == 0 {
				t.Fatalf("no errors:\n%s", Outline(root, src))
			}
			Walk(root, func(n Node) bool {
				if ph, ok := n.(*Phrase); ok && ph.Kind.IsErrorKind() != (ph.Error != nil) {
					t.Errorf("%v has error %v:\n%s", ph.Kind, ph.Error, Outline(root, src))
				}
				return true
			})
		})
	}

	// the second error is found while the first is still being recovered from
	src := "<?php echo 1 2 + ;"
	if ph := find(Parse(src), KindErrorExpression); ph == nil || ph.Error == nil {
		t.Errorf("missing operand = %v, want an error phrase", ph)
	}
}

func TestParseLeavesNoOpenState(t *testing.T) {
	tests := []string{
		"",
		"<?php class A { public function b() { return [1, f(2, 3)]; } }",
		"<?php { [ ( array(, f(",
		"<?php ) ] } ; ,",
		"<?php class A { use T { a as ; } public }",
	}

	for _, src := range tests {
		p := New(src)
		p.Parse()
		if len(p.recover) != 0 || len(p.recoverCount) != 0 {
			t.Errorf("%q: recover sets left = %v, counts = %v", src, p.recover, p.recoverCount)
		}
		if len(p.stack) != 0 {
			t.Errorf("%q: open phrases = %d", src, len(p.stack))
		}
	}
}

func TestParseUnbalancedInputScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	measure := func(src string) time.Duration {
		best := time.Duration(1<<63 - 1)
		for range 3 {
			start := time.Now()
			Parse(src)
			best = min(best, time.Since(start))
		}
		return best
	}

	for _, unit := range []string{"{", "[", "array(,", "f(", "{ ) ) "} {
		t.Run(unit, func(t *testing.T) {
			small := measure("<?php " + strings.Repeat(unit, 1000))
			large := measure("<?php " + strings.Repeat(unit, 10000))
			// ten times the input; quadratic work would take about a
			// hundred times as long
			if small > 0 && large > 40*small && large > 50*time.Millisecond {
				t.Errorf("1000 units: %v, 10000 units: %v", small, large)
			}
		})
	}
}

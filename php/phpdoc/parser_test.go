package phpdoc

import (
	"testing"
)

func TestParseSummaryOnly(t *testing.T) {
	doc := Parse("/** Simple text. */")

	if got := FormatText(doc.Summary); got != "Simple text." {
		t.Errorf("summary = %q, want %q", got, "Simple text.")
	}
	if len(doc.Description) != 0 || len(doc.Tags) != 0 {
		t.Errorf("description = %v, tags = %v, want none", doc.Description, doc.Tags)
	}
}

func TestParseSummaryAndDescription(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		summary     string
		description string
	}{
		{
			name:        "period ends summary",
			input:       "/**\n * Summary line.\n * More text.\n */",
			summary:     "Summary line.",
			description: "More text.",
		},
		{
			name:        "blank line ends summary",
			input:       "/**\n * Summary spans\n * two lines\n *\n * Description.\n */",
			summary:     "Summary spans\ntwo lines",
			description: "Description.",
		},
		{
			name:    "summary without period",
			input:   "/**\n * Just a summary\n */",
			summary: "Just a summary",
		},
		{
			name:        "crlf line endings",
			input:       "/**\r\n * One.\r\n * Two.\r\n */",
			summary:     "One.",
			description: "Two.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if got := FormatText(doc.Summary); got != tt.summary {
				t.Errorf("summary = %q, want %q", got, tt.summary)
			}
			if got := FormatText(doc.Description); got != tt.description {
				t.Errorf("description = %q, want %q", got, tt.description)
			}
		})
	}
}

func TestParseInlineTags(t *testing.T) {
	doc := Parse("/** See {@link \\Foo\\Bar::baz() the baz method} and {@inheritDoc}. */")

	if len(doc.Summary) != 5 {
		t.Fatalf("expected 5 summary nodes, got %d: %+v", len(doc.Summary), doc.Summary)
	}

	link, ok := doc.Summary[1].(InlineTag)
	if !ok {
		t.Fatalf("expected InlineTag, got %T", doc.Summary[1])
	}
	if link.Name != "link" || link.Reference != "\\Foo\\Bar::baz()" {
		t.Errorf("link = %+v, want link to \\Foo\\Bar::baz()", link)
	}
	if got := FormatText(link.Description); got != "the baz method" {
		t.Errorf("link description = %q, want %q", got, "the baz method")
	}

	inherit, ok := doc.Summary[3].(InlineTag)
	if !ok || inherit.Name != "inheritDoc" || inherit.Reference != "" {
		t.Errorf("inheritDoc = %+v", doc.Summary[3])
	}

	if got := FormatText(doc.Summary); got != "See the baz method and {@inheritDoc}." {
		t.Errorf("FormatText = %q", got)
	}
}

func TestParseParamTags(t *testing.T) {
	tests := []struct {
		input string
		want  Param
		desc  string
	}{
		{"@param int $a the count", Param{Type: "int", Name: "$a"}, "the count"},
		{"@param $a untyped", Param{Name: "$a"}, "untyped"},
		{"@param string ...$rest", Param{Type: "string", Name: "$rest", Variadic: true}, ""},
		{"@param array &$out filled in", Param{Type: "array", Name: "$out", ByRef: true}, "filled in"},
		{"@param array<int, string> $map", Param{Type: "array<int, string>", Name: "$map"}, ""},
		{"@param callable(int): void $cb", Param{Type: "callable(int): void", Name: "$cb"}, ""},
		{"@param ?Foo|null $foo", Param{Type: "?Foo|null", Name: "$foo"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse("/**\n * " + tt.input + "\n */")
			if len(doc.Tags) != 1 {
				t.Fatalf("expected 1 tag, got %d: %+v", len(doc.Tags), doc.Tags)
			}
			param, ok := doc.Tags[0].(Param)
			if !ok {
				t.Fatalf("expected Param, got %T", doc.Tags[0])
			}
			if param.Type != tt.want.Type || param.Name != tt.want.Name ||
				param.Variadic != tt.want.Variadic || param.ByRef != tt.want.ByRef {
				t.Errorf("param = %+v, want %+v", param, tt.want)
			}
			if got := FormatText(param.Description); got != tt.desc {
				t.Errorf("description = %q, want %q", got, tt.desc)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	doc := Parse(`/**
 * Summary.
 *
 * @return static|null the result
 *   continued here
 * @var int $count
 * @throws \RuntimeException when broken
 * @property-read string $name
 * @property-write int $age
 * @property array $tags
 * @method static Foo create(array $a) Creates one.
 * @method getName()
 * @deprecated 2.0 use something else
 * @see \Other::method()
 * @psalm-param list<int> $ids
 * @ORM\Column(type="string")
 */`)

	if got := FormatText(doc.Summary); got != "Summary." {
		t.Errorf("summary = %q, want %q", got, "Summary.")
	}

	want := []string{
		"@return static|null the result\n  continued here",
		"@var int $count",
		"@throws \\RuntimeException when broken",
		"@property-read string $name",
		"@property-write int $age",
		"@property array $tags",
		"@method static Foo create(array $a) Creates one.",
		"@method getName()",
		"@deprecated 2.0 use something else",
		"@see \\Other::method()",
		"@psalm-param list<int> $ids",
		"@ORM\\Column (type=\"string\")",
	}
	if len(doc.Tags) != len(want) {
		t.Fatalf("expected %d tags, got %d: %+v", len(want), len(doc.Tags), doc.Tags)
	}
	for i, tag := range doc.Tags {
		if got := FormatTag(tag); got != want[i] {
			t.Errorf("tag %d = %q, want %q", i, got, want[i])
		}
	}

	method, ok := doc.Tags[6].(Method)
	if !ok {
		t.Fatalf("expected Method, got %T", doc.Tags[6])
	}
	if !method.Static || method.ReturnType != "Foo" || method.Name != "create" || method.Parameters != "array $a" {
		t.Errorf("method = %+v", method)
	}
	if prop, ok := doc.Tags[3].(Property); !ok || prop.Access != ReadOnly {
		t.Errorf("property-read = %+v", doc.Tags[3])
	}
}

func TestParseSingleLineVar(t *testing.T) {
	doc := Parse("/** @var Foo[] $items */")

	if len(doc.Summary) != 0 {
		t.Errorf("summary = %+v, want none", doc.Summary)
	}
	if len(doc.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(doc.Tags))
	}
	v, ok := doc.Tags[0].(Var)
	if !ok || v.Type != "Foo[]" || v.Name != "$items" || len(v.Description) != 0 {
		t.Errorf("var = %+v", doc.Tags[0])
	}
}

func TestParseAtSignInText(t *testing.T) {
	doc := Parse("/** Mail me at someone@example.com please. */")

	if len(doc.Tags) != 0 {
		t.Errorf("tags = %+v, want none", doc.Tags)
	}
	if got := FormatText(doc.Summary); got != "Mail me at someone@example.com please." {
		t.Errorf("summary = %q", got)
	}
}

func TestParseNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"/**",
		"*/",
		"/** {@",
		"/** {@link",
		"/** @",
		"/**\n * @param\n */",
		"/**\n * @method static\n */",
		"/** @return array<int */",
		"/** {{{ }}} */",
		"not a comment at all",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if doc := Parse(input); doc == nil {
				t.Fatal("Parse returned nil")
			}
		})
	}
}

func TestFormat(t *testing.T) {
	doc := Parse(`/**
 * Adds numbers.
 *
 * Returns the {@see sum()} of both.
 *
 * @param int $a
 * @return int
 */`)

	want := "Adds numbers.\n\nReturns the sum() of both.\n\n@param int $a\n@return int"
	if got := Format(doc); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

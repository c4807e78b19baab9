package lexer

import "testing"

func TestTokenKindNamesAreTotal(t *testing.T) {
	seen := map[string]TokenKind{}
	for kind := TokenUndefined; kind < tokenKindCount; kind++ {
		name, ok := tokenKindNames[kind]
		if !ok {
			t.Errorf("TokenKind(%d) has no name", int(kind))
			continue
		}
		if other, dup := seen[name]; dup {
			t.Errorf("%v and %v share the name %q", other, kind, name)
		}
		seen[name] = kind
	}
	if got := TokenKindName(tokenKindCount + 5); got == "" {
		t.Error("out of range kinds need a name too")
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"CLASS", TokenClass},
		{"Function", TokenFunction},
		{"die", TokenExit},
		{"exit", TokenExit},
		{"__halt_compiler", TokenHaltCompiler},
		{"fn", TokenFn},
		{"__CLASS__", TokenClassConstant},
		{"__class__", TokenName},
		{"__DIR__", TokenDirectoryConstant},
		{"self", TokenName},
		{"true", TokenName},
		{"foo", TokenName},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestModeStack(t *testing.T) {
	base := InitialModes()
	pushed := base.Push(ModeScripting).Push(ModeDoubleQuotes)
	if pushed.Top() != ModeDoubleQuotes || len(pushed) != 3 {
		t.Fatalf("pushed = %v", pushed)
	}
	popped := pushed.Pop()
	again := popped.Push(ModeHeredoc)
	if pushed.Top() != ModeDoubleQuotes {
		t.Errorf("push after pop mutated the original stack: %v", pushed)
	}
	if again.Top() != ModeHeredoc {
		t.Errorf("again = %v", again)
	}
	if floor := base.Pop().Pop(); len(floor) != 1 || floor.Top() != ModeInitial {
		t.Errorf("pop removed the floor: %v", floor)
	}
	replaced := base.Replace(ModeScripting)
	if base.Top() != ModeInitial || replaced.Top() != ModeScripting {
		t.Errorf("replace: base %v, replaced %v", base, replaced)
	}
}

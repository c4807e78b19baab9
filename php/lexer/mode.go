package lexer

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeInitial Mode = iota
	ModeScripting
	ModeLookingForProperty
	ModeDoubleQuotes
	ModeNowdoc
	ModeHeredoc
	ModeEndHeredoc
	ModeBacktick
	ModeVarOffset
	ModeLookingForVarName
)

var modeNames = map[Mode]string{
	ModeInitial:            "Initial",
	ModeScripting:          "Scripting",
	ModeLookingForProperty: "LookingForProperty",
	ModeDoubleQuotes:       "DoubleQuotes",
	ModeNowdoc:             "Nowdoc",
	ModeHeredoc:            "Heredoc",
	ModeEndHeredoc:         "EndHeredoc",
	ModeBacktick:           "Backtick",
	ModeVarOffset:          "VarOffset",
	ModeLookingForVarName:  "LookingForVarName",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeStack is a non-empty stack of lexer modes, top last. Push and Replace
// copy, Pop reslices, so a stack held by an earlier token never changes.
type ModeStack []Mode

// InitialModes is the stack a fresh lexer starts with.
func InitialModes() ModeStack {
	return ModeStack{ModeInitial}
}

func (s ModeStack) Top() Mode {
	if len(s) == 0 {
		panic("lexer: empty mode stack")
	}
	return s[len(s)-1]
}

func (s ModeStack) Push(m Mode) ModeStack {
	out := make(ModeStack, len(s)+1)
	copy(out, s)
	out[len(s)] = m
	return out
}

// Pop removes the top mode. The bottom mode is never removed.
func (s ModeStack) Pop() ModeStack {
	if len(s) <= 1 {
		return s
	}
	n := len(s) - 1
	return s[:n:n]
}

// Replace swaps the top mode for m.
func (s ModeStack) Replace(m Mode) ModeStack {
	if len(s) == 0 {
		panic("lexer: empty mode stack")
	}
	out := make(ModeStack, len(s))
	copy(out, s)
	out[len(s)-1] = m
	return out
}

func (s ModeStack) Equal(other ModeStack) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s ModeStack) String() string {
	parts := make([]string, len(s))
	for i, m := range s {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

package codebase

import (
	"github.com/dhamidi/psai/php/parser"
	"github.com/dhamidi/psai/php/position"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

type Diagnostic struct {
	Range    position.Range
	Severity Severity
	Message  string
}

// Diagnostics reports one syntax error per error phrase in tree. An
// error that swallowed tokens spans them; one that did not sits at the
// token that was unexpected.
func Diagnostics(tree *parser.Phrase, src string) []Diagnostic {
	var diags []Diagnostic
	for _, e := range parser.Errors(tree) {
		diags = append(diags, Diagnostic{
			Range:    e.Range,
			Severity: SeverityError,
			Message:  e.Error.Message(src),
		})
	}
	return diags
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

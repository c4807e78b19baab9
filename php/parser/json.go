package parser

import (
	"encoding/json"

	"github.com/dhamidi/psai/php/lexer"
	"github.com/dhamidi/psai/php/position"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Text     *string     `json:"text,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got"`
}

func toJSONSpan(r position.Range) *jsonSpan {
	return &jsonSpan{
		Start: jsonPosition{Line: r.Start.Line() + 1, Column: r.Start.Column() + 1},
		End:   jsonPosition{Line: r.End.Line() + 1, Column: r.End.Column() + 1},
	}
}

// ToJSON converts a tree into its JSON shape. Leaves carry their source
// text when src is not empty.
func ToJSON(n Node, src string) any {
	return toJSON(n, src)
}

func toJSON(n Node, src string) *jsonNode {
	switch n := n.(type) {
	case *Leaf:
		jn := &jsonNode{
			Kind:  "Token",
			Span:  toJSONSpan(n.Range),
			Token: n.Kind.String(),
		}
		if src != "" {
			text := n.Token.Text(src)
			jn.Text = &text
		}
		return jn
	case *Phrase:
		jn := &jsonNode{
			Kind: n.Kind.String(),
			Span: toJSONSpan(n.Range),
		}
		if n.Error != nil {
			jn.Error = &jsonError{
				Message: n.Error.Message(src),
				Got:     n.Error.Unexpected.Kind.String(),
			}
			if n.Error.Expected != lexer.TokenUndefined {
				jn.Error.Expected = n.Error.Expected.String()
			}
		}
		if len(n.Children) > 0 {
			jn.Children = make([]*jsonNode, len(n.Children))
			for i, child := range n.Children {
				jn.Children[i] = toJSON(child, src)
			}
		}
		return jn
	}
	return nil
}

func (p *Phrase) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(p, ""))
}
